package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagListScan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want TagList
	}{
		{"plain", `{perfume,oud}`, TagList{"perfume", "oud"}},
		{"quoted with comma", `{"eau de parfum","summer, light"}`, TagList{"eau de parfum", "summer, light"}},
		{"escaped quote", `{"5\" strap"}`, TagList{`5" strap`}},
		{"empty array", `{}`, TagList{}},
		{"nil column", nil, nil},
		{"bytes input", []byte(`{sport}`), TagList{"sport"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TagList
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagListScanRejectsUnknownType(t *testing.T) {
	var got TagList
	assert.Error(t, got.Scan(42))
}

func TestTagListValue(t *testing.T) {
	v, err := TagList{"perfume", `5" strap`}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"perfume","5\" strap"}`, v)

	v, err = TagList{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}
