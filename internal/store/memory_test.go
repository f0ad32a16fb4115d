package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

type room struct {
	ID       string `json:"id" yaml:"id"`
	Nom      string `json:"nom" yaml:"nom"`
	Capacite int    `json:"capacite" yaml:"capacite"`
}

func (r room) EntityID() string { return r.ID }

var roomForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "nom", Label: "Nom", Required: true},
	{Name: "capacite", Label: "Capacité", Type: core.FieldNumeric, Required: true},
}}

func buildRoom(id string, data core.FormData) (room, error) {
	n, err := data.Int("capacite")
	if err != nil {
		return room{}, err
	}
	if n <= 0 {
		return room{}, errors.New("invalid number: capacité must be positive")
	}
	return room{ID: id, Nom: data.Get("nom"), Capacite: n}, nil
}

func applyRoom(r room, data core.FormData) (room, error) {
	return buildRoom(r.ID, data)
}

func newRooms(t *testing.T, seed ...room) *Memory[room] {
	t.Helper()
	m := NewMemory("salle", buildRoom, applyRoom, nil)
	require.NoError(t, m.Seed(seed...))
	return m
}

func TestMemory_ListIsOrderedSnapshot(t *testing.T) {
	m := newRooms(t, room{ID: "10", Nom: "J"}, room{ID: "2", Nom: "B"}, room{ID: "1", Nom: "A"})
	ctx := context.Background()

	items, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"1", "2", "10"}, []string{items[0].EntityID(), items[1].EntityID(), items[2].EntityID()})

	_, err = m.Update(ctx, items[0], core.FormData{"nom": "Changé", "capacite": "3"})
	require.NoError(t, err)
	assert.Equal(t, "A", items[0].(room).Nom)

	got, ok := m.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Changé", got.Nom)
}

func TestMemory_CreateAssignsSequentialIDs(t *testing.T) {
	m := newRooms(t, room{ID: "7", Nom: "G", Capacite: 1})

	created, err := m.Create(context.Background(), core.FormData{"nom": "H", "capacite": "20"})
	require.NoError(t, err)

	assert.Equal(t, "8", created.EntityID())
	assert.Equal(t, 2, m.Len())
}

func TestMemory_CreateWithUUIDs(t *testing.T) {
	m := NewMemory("salle", buildRoom, applyRoom, UUIDs)

	created, err := m.Create(context.Background(), core.FormData{"nom": "H", "capacite": "20"})
	require.NoError(t, err)

	_, err = uuid.Parse(created.EntityID())
	assert.NoError(t, err)
}

func TestMemory_BuildErrorIsWrapped(t *testing.T) {
	m := newRooms(t)

	_, err := m.Create(context.Background(), core.FormData{"nom": "H", "capacite": "-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create salle")
	assert.Equal(t, 0, m.Len())
}

func TestMemory_MissingItems(t *testing.T) {
	m := newRooms(t)
	ctx := context.Background()
	ghost := room{ID: "99"}

	_, err := m.Update(ctx, ghost, core.FormData{"nom": "x", "capacite": "1"})
	assert.ErrorIs(t, err, core.ErrItemNotFound)
	assert.ErrorIs(t, m.Delete(ctx, ghost), core.ErrItemNotFound)
	assert.ErrorIs(t, m.Delete(ctx, nil), core.ErrItemNotFound)
}

func TestMemory_SeedRejectsDuplicates(t *testing.T) {
	m := NewMemory("salle", buildRoom, applyRoom, nil)

	err := m.Seed(room{ID: "1"}, room{ID: "1"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "ENT002", core.MapError(err).Code)
}

func TestMemory_CanceledContext(t *testing.T) {
	m := newRooms(t, room{ID: "1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = m.Create(ctx, core.FormData{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, m.Delete(ctx, room{ID: "1"}), context.Canceled)
	assert.Equal(t, 1, m.Len())
}

func TestMemory_ConcurrentCreates(t *testing.T) {
	m := newRooms(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Create(context.Background(), core.FormData{"nom": "x", "capacite": "1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.Len())
	last := m.All()[49]
	assert.Equal(t, "50", last.ID)
}

func TestImporter_StoresValidBatch(t *testing.T) {
	m := newRooms(t, room{ID: "1", Nom: "A", Capacite: 10})
	handler := Importer(m, roomForm, func(row core.RawRecord) map[string]string {
		return map[string]string{"nom": row["Salle"], "capacite": row["Places"]}
	})

	err := handler(context.Background(), []core.RawRecord{
		{"Salle": "B", "Places": "12"},
		{"Salle": "C", "Places": "30"},
	})
	require.NoError(t, err)

	all := m.All()
	require.Len(t, all, 3)
	assert.Equal(t, room{ID: "3", Nom: "C", Capacite: 30}, all[2])
}

func TestImporter_RejectsWholeBatchOnInvalidRow(t *testing.T) {
	m := newRooms(t)
	handler := Importer(m, roomForm, nil)

	err := handler(context.Background(), []core.RawRecord{
		{"nom": "B", "capacite": "12"},
		{"nom": "", "capacite": "12"},
	})

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "import row 3: "), err.Error())
	assert.Equal(t, "VAL003", core.MapError(err).Code)
	assert.Equal(t, 0, m.Len())
}

func TestImporter_BuildFailureRollsBack(t *testing.T) {
	m := newRooms(t)
	handler := Importer(m, roomForm, nil)

	err := handler(context.Background(), []core.RawRecord{
		{"nom": "B", "capacite": "12"},
		{"nom": "C", "capacite": "0"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import row 3")
	assert.Equal(t, 0, m.Len())
}

func TestImporter_ReportsSourceLine(t *testing.T) {
	m := newRooms(t)
	handler := Importer(m, roomForm, nil)

	err := handler(context.Background(), []core.RawRecord{
		{"nom": "B", "capacite": "12", core.LineField: "2"},
		{"nom": "", "capacite": "12", core.LineField: "7"},
	})

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "import row 7: "), err.Error())
	assert.Equal(t, 0, m.Len())
}

func TestImporter_EmptyRows(t *testing.T) {
	err := Importer(newRooms(t), roomForm, nil)(context.Background(), nil)
	assert.Equal(t, "FILE005", core.MapError(err).Code)
}
