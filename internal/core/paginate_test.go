package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginator_GoToPageClamps(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(25)

	assert.Equal(t, 3, p.TotalPages())

	p.GoToPage(5)
	assert.Equal(t, 3, p.CurrentPage())

	p.GoToPage(-2)
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPaginator_SetItemsPerPageResetsToFirstPage(t *testing.T) {
	p := NewPaginator(20)
	p.SetTotal(12)
	require.Equal(t, 1, p.CurrentPage())

	p.SetItemsPerPage(5)

	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, 1, p.CurrentPage())

	p.GoToPage(3)
	p.SetItemsPerPage(4)
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPaginator_BoundariesAreIdempotent(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(30)

	p.PrevPage()
	assert.Equal(t, PageState{CurrentPage: 1, ItemsPerPage: 10, TotalItems: 30, TotalPages: 3}, p.State())

	p.GoToPage(3)
	before := p.State()
	p.NextPage()
	assert.Equal(t, before, p.State())
}

func TestPaginator_EmptyCollection(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(0)

	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 1, p.CurrentPage())
	assert.False(t, p.State().HasNext())

	p.NextPage()
	assert.Equal(t, 1, p.CurrentPage())

	start, end := p.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPaginator_ShrinkingTotalClampsPage(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(45)
	p.GoToPage(5)

	p.SetTotal(12)

	assert.Equal(t, 2, p.CurrentPage())
}

func TestPaginator_InvalidSizeBecomesOne(t *testing.T) {
	p := NewPaginator(0)
	assert.Equal(t, 1, p.ItemsPerPage())

	p.SetItemsPerPage(-3)
	assert.Equal(t, 1, p.ItemsPerPage())
}

func TestPaginator_InvariantUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		p := NewPaginator(1 + rng.Intn(20))
		p.SetTotal(rng.Intn(120))

		for step := 0; step < 40; step++ {
			switch rng.Intn(5) {
			case 0:
				p.NextPage()
			case 1:
				p.PrevPage()
			case 2:
				p.GoToPage(rng.Intn(30) - 5)
			case 3:
				p.SetItemsPerPage(1 + rng.Intn(25))
			case 4:
				p.SetTotal(rng.Intn(120))
			}

			total, size := p.TotalItems(), p.ItemsPerPage()
			wantPages := int(math.Ceil(float64(total) / float64(size)))
			if wantPages < 1 {
				wantPages = 1
			}
			require.Equal(t, wantPages, p.TotalPages())

			require.GreaterOrEqual(t, p.CurrentPage(), 1)
			require.LessOrEqual(t, p.CurrentPage(), wantPages)
		}
	}
}

func TestPaginator_HugePageSize(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(25)
	p.SetItemsPerPage(math.MaxInt)

	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 1, p.CurrentPage())
	assert.False(t, p.State().HasNext())

	start, end := p.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 25, end)

	p.SetTotal(math.MaxInt)
	assert.Equal(t, 1, p.TotalPages())
	p.SetItemsPerPage(math.MaxInt - 1)
	assert.Equal(t, 2, p.TotalPages())
	p.GoToPage(2)
	start, end = p.Bounds()
	assert.Equal(t, math.MaxInt-1, start)
	assert.Equal(t, math.MaxInt, end)
}

func TestPage_SlicesCurrentPage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}
	p := NewPaginator(10)

	assert.Equal(t, items[:10], Page(items, p))

	p.GoToPage(3)
	assert.Equal(t, items[20:], Page(items, p))

	// A shorter collection pulls the page back in range.
	assert.Equal(t, items[:5], Page(items[:5], p))
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPaginator_Window(t *testing.T) {
	p := NewPaginator(1)
	p.SetTotal(10)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Window(5))

	p.GoToPage(6)
	assert.Equal(t, []int{4, 5, 6, 7, 8}, p.Window(5))

	p.GoToPage(10)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, p.Window(5))

	p.SetTotal(2)
	assert.Equal(t, []int{1, 2}, p.Window(5))

	p.SetTotal(0)
	assert.Equal(t, []int{1}, p.Window(5))
}

func TestPageState_Navigation(t *testing.T) {
	s := PageState{CurrentPage: 2, TotalPages: 3}
	assert.True(t, s.HasPrev())
	assert.True(t, s.HasNext())

	s.CurrentPage = 3
	assert.False(t, s.HasNext())
}
