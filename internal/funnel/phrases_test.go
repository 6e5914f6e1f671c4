package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhraseSetMatches(t *testing.T) {
	set := NewPhraseSet([]string{"i'll take it", "proceed with order"})

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"exact", "i'll take it", true},
		{"embedded in sentence", "Yes, I'll take it please!", true},
		{"case insensitive", "I'LL TAKE IT", true},
		{"typographic apostrophe", "I’ll take it", true},
		{"second phrase", "ok, proceed with order", true},
		{"interest wording is not confirmation", "this sounds good", false},
		{"empty message", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Matches(tt.message))
		})
	}
}

func TestPhraseSetSkipsEmptyPhrases(t *testing.T) {
	set := NewPhraseSet([]string{"", "  ", "confirm"})
	assert.False(t, set.Matches("anything at all"))
	assert.True(t, set.Matches("please confirm"))
}
