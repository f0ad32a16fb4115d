package core

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// recordStore is an in-memory Store over Records used by the engine tests.
type recordStore struct {
	mu     sync.Mutex
	items  []Record
	nextID int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// gate, when set, blocks every mutation until it is closed.
	gate chan struct{}
	// entered receives a value when a mutation starts waiting on gate.
	entered chan struct{}
}

func newRecordStore(items ...Record) *recordStore {
	s := &recordStore{nextID: 1}
	for _, it := range items {
		s.items = append(s.items, it)
		if n, err := strconv.Atoi(it.EntityID()); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	return s
}

func (s *recordStore) wait() {
	if s.gate == nil {
		return
	}
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	<-s.gate
}

func (s *recordStore) List(context.Context) ([]Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]Entity, len(s.items))
	for i, it := range s.items {
		cp := make(Record, len(it))
		for k, v := range it {
			cp[k] = v
		}
		out[i] = cp
	}
	return out, nil
}

func (s *recordStore) Create(_ context.Context, data FormData) (Entity, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	rec := Record{"id": s.nextID}
	s.nextID++
	for k, v := range data {
		rec[k] = v
	}
	s.items = append(s.items, rec)
	return rec, nil
}

func (s *recordStore) Update(_ context.Context, item Entity, data FormData) (Entity, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for _, it := range s.items {
		if it.EntityID() == item.EntityID() {
			for k, v := range data {
				it[k] = v
			}
			return it, nil
		}
	}
	return nil, fmt.Errorf("update %s: %w", item.EntityID(), ErrItemNotFound)
}

func (s *recordStore) Delete(_ context.Context, item Entity) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, it := range s.items {
		if it.EntityID() == item.EntityID() {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %s: %w", item.EntityID(), ErrItemNotFound)
}

func (s *recordStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// lineExporter writes one id per line.
type lineExporter struct{}

func (lineExporter) FileExtension() string { return ".txt" }
func (lineExporter) ContentType() string   { return "text/plain" }
func (lineExporter) Export(w io.Writer, items []Entity) error {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.EntityID()
	}
	_, err := io.WriteString(w, strings.Join(ids, "\n"))
	return err
}

// recordingNotifier keeps every notification.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (n *recordingNotifier) Notify(kind NotifyKind, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, Notification{Kind: kind, Title: title, Message: message})
}

func (n *recordingNotifier) last() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return Notification{}
	}
	return n.sent[len(n.sent)-1]
}

func students(n int) []Record {
	classes := []string{"6A", "6B", "5A"}
	out := make([]Record, n)
	for i := range out {
		statut := "actif"
		if i%4 == 0 {
			statut = "inactif"
		}
		out[i] = Record{
			"id":      i + 1,
			"nom":     fmt.Sprintf("Eleve %02d", i+1),
			"classe":  classes[i%len(classes)],
			"statut":  statut,
			"moyenne": float64(8 + i%10),
		}
	}
	return out
}

var studentForm = FormSpec{Specs: []FieldSpec{
	{Name: "nom", Label: "Nom", Type: FieldText, Required: true},
	{Name: "classe", Label: "Classe", Type: FieldEnum, Options: []FilterOption{{Value: "6A"}, {Value: "6B"}, {Value: "5A"}}},
	{Name: "moyenne", Label: "Moyenne", Type: FieldNumeric},
}}

func studentTab(store Store) Tab {
	return Tab{
		ID:    "eleves",
		Label: "Élèves",
		Columns: []Column{
			{Key: "nom", Label: "Nom"},
			{Key: "classe", Label: "Classe"},
		},
		SearchFields: []string{"nom", "classe"},
		Filters: []FilterDescriptor{
			{Key: "classe", Kind: FilterSelect},
			{Key: "statut", Kind: FilterSelect},
			{Key: "moyenne", Kind: FilterRange, Predicate: RangePredicate("moyenne")},
		},
		Form:        studentForm,
		Store:       store,
		CreateLabel: "Ajouter un élève",
		Exporter:    lineExporter{},
		ImportKind:  "élèves",
		Import: func(ctx context.Context, rows []RawRecord) error {
			for _, r := range rows {
				if _, err := store.Create(ctx, FormData(r)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
