package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		total    int
		pageSize int
		want     []Page
	}{
		{name: "empty", total: 0, pageSize: 50, want: []Page{}},
		{name: "single partial page", total: 7, pageSize: 50, want: []Page{{Index: 0, Skip: 0, Top: 7}}},
		{name: "exact multiple", total: 100, pageSize: 50, want: []Page{{0, 0, 50}, {1, 50, 50}}},
		{name: "remainder on last page", total: 120, pageSize: 50, want: []Page{{0, 0, 50}, {1, 50, 50}, {2, 100, 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages := Plan(tt.total, tt.pageSize)
			assert.Equal(t, tt.want, pages)
			assert.Len(t, pages, PageCount(tt.total, tt.pageSize))

			covered := 0
			for _, p := range pages {
				assert.LessOrEqual(t, p.Top, tt.pageSize)
				covered += p.Top
			}

			assert.Equal(t, tt.total, covered)
		})
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, PageCount(0, 50))
	assert.Equal(t, 1, PageCount(1, 50))
	assert.Equal(t, 1, PageCount(50, 50))
	assert.Equal(t, 2, PageCount(51, 50))
	assert.Equal(t, 0, PageCount(10, 0))
}

func TestEffectivePageSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, EffectivePageSize(1000, 50))
	assert.Equal(t, 50, EffectivePageSize(0, 50))
	assert.Equal(t, 50, EffectivePageSize(-3, 50))
	assert.Equal(t, 20, EffectivePageSize(20, 50))
}
