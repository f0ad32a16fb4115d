package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_KeepsRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"eleves", "paiements", "salles"} {
		require.NoError(t, reg.Register(Tab{ID: id, Label: id, Store: newRecordStore()}))
	}

	var ids []string
	for _, tab := range reg.All() {
		ids = append(ids, tab.ID)
	}
	assert.Equal(t, []string{"eleves", "paiements", "salles"}, ids)
	assert.Equal(t, 3, reg.Count())

	first, ok := reg.First()
	require.True(t, ok)
	assert.Equal(t, "eleves", first.ID)

	tab, ok := reg.Get("salles")
	require.True(t, ok)
	assert.Equal(t, "salles", tab.Label)

	_, ok = reg.Get("inconnu")
	assert.False(t, ok)
}

func TestRegistry_RejectsInvalidTabs(t *testing.T) {
	store := newRecordStore()
	tests := []struct {
		name string
		tab  Tab
	}{
		{"empty id", Tab{Store: store}},
		{"no store", Tab{ID: "x"}},
		{"column without key", Tab{ID: "x", Store: store, Columns: []Column{{Label: "Nom"}}}},
		{"duplicate column", Tab{ID: "x", Store: store, Columns: []Column{{Key: "nom"}, {Key: "nom"}}}},
		{"filter without key", Tab{ID: "x", Store: store, Filters: []FilterDescriptor{{Kind: FilterSelect}}}},
		{"duplicate filter", Tab{ID: "x", Store: store, Filters: []FilterDescriptor{{Key: "a"}, {Key: "a"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.tab)
			assert.ErrorIs(t, err, ErrInvalidTab)
		})
	}
}

func TestRegistry_RejectsDuplicateID(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Tab{ID: "eleves", Store: newRecordStore()}))

	err := reg.Register(Tab{ID: "eleves", Store: newRecordStore()})
	assert.ErrorIs(t, err, ErrDuplicateTab)
	assert.Equal(t, 1, reg.Count())
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	assert.Panics(t, func() { NewRegistry().MustRegister(Tab{}) })
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Tab{ID: "eleves", Store: newRecordStore()})

	tabs := reg.All()
	tabs[0].ID = "modifie"

	_, ok := reg.Get("eleves")
	assert.True(t, ok)
}
