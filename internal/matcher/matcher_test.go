package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline-ai/sales-agent/internal/model"
)

func testCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Midnight Oud", Rating: 4.5, Tags: []string{"perfume", "oud", "unisex"}},
		{ID: "p2", Name: "Citrus Splash", Rating: 4.8, Tags: []string{"perfume", "citrus", "summer"}},
		{ID: "p3", Name: "Trail Runner X", Rating: 4.2, Tags: []string{"shoes", "running", "sport"}},
		{ID: "p4", Name: "Rose Garden", Rating: 4.8, Tags: []string{"perfume", "floral", "rose"}},
	}
}

func TestMatchScoring(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		max       int
		signal    model.ExtractedSignal
		wantIDs   []string
	}{
		{
			name:      "exact tag match",
			threshold: 0.7,
			max:       3,
			signal:    model.ExtractedSignal{"running", "shoes"},
			wantIDs:   []string{"p3"},
		},
		{
			name:      "below threshold filtered out",
			threshold: 0.7,
			max:       3,
			signal:    model.ExtractedSignal{"perfumes"},
			wantIDs:   []string{},
		},
		{
			name:      "substring counts at lower threshold",
			threshold: 0.4,
			max:       3,
			signal:    model.ExtractedSignal{"perfumes"},
			wantIDs:   []string{"p2", "p4", "p1"},
		},
		{
			name:      "empty signal",
			threshold: 0.7,
			max:       3,
			signal:    model.ExtractedSignal{},
			wantIDs:   []string{},
		},
		{
			name:      "rating breaks score ties, then insertion order",
			threshold: 0.7,
			max:       3,
			signal:    model.ExtractedSignal{"perfume"},
			wantIDs:   []string{"p2", "p4", "p1"},
		},
		{
			name:      "result cap",
			threshold: 0.7,
			max:       2,
			signal:    model.ExtractedSignal{"perfume"},
			wantIDs:   []string{"p2", "p4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.threshold, tt.max)
			results := m.Match(tt.signal, testCatalog())

			ids := make([]string, len(results))
			for i, r := range results {
				ids[i] = r.ProductID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMatchEmptyCatalog(t *testing.T) {
	m := New(0.7, 3)
	results := m.Match(model.ExtractedSignal{"perfume"}, nil)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestMatchScoreCappedAtOne(t *testing.T) {
	m := New(0.7, 3)
	catalog := []model.Product{
		{ID: "p1", Name: "Rose Duo", Tags: []string{"rose", "rose water"}},
	}

	// One keyword hitting both tags (exact plus substring) would sum past 1.0.
	results := m.Match(model.ExtractedSignal{"rose"}, catalog)
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, []string{"rose", "rose water"}, results[0].MatchedTags)
}

func TestMatchCaseInsensitive(t *testing.T) {
	m := New(0.7, 3)
	results := m.Match(model.ExtractedSignal{"RUNNING", " Shoes "}, testCatalog())
	require.Len(t, results, 1)
	assert.Equal(t, "p3", results[0].ProductID)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestMatchDeterministic(t *testing.T) {
	m := New(0.5, 3)
	signal := model.ExtractedSignal{"perfume", "rose"}

	first := m.Match(signal, testCatalog())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Match(signal, testCatalog()))
	}
}

func TestMatchCarriesProduct(t *testing.T) {
	m := New(0.7, 3)
	results := m.Match(model.ExtractedSignal{"running", "shoes"}, testCatalog())
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Product)
	assert.Equal(t, "Trail Runner X", results[0].Product.Name)
}
