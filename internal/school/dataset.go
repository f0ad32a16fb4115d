package school

import (
	_ "embed"
	"fmt"

	"github.com/JonMunkholm/schooladmin/internal/store"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Dataset is the seed data of every tab, as read from a fixtures file.
type Dataset struct {
	Students []Student     `yaml:"eleves"`
	Payments []Payment     `yaml:"paiements"`
	Rooms    []Room        `yaml:"salles"`
	Staff    []Staff       `yaml:"personnel"`
	Fees     []Fee         `yaml:"frais"`
	Library  []LibraryItem `yaml:"bibliotheque"`
	Grades   []Grade       `yaml:"notes"`
}

// LoadDataset reads the fixtures at path, or the built-in sample data when
// path is empty.
func LoadDataset(path string) (*Dataset, error) {
	var ds Dataset
	if err := store.LoadFixtures(path, defaultFixtures, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Stores holds one in-memory collection per tab.
type Stores struct {
	Students *store.Memory[Student]
	Payments *store.Memory[Payment]
	Rooms    *store.Memory[Room]
	Staff    *store.Memory[Staff]
	Fees     *store.Memory[Fee]
	Library  *store.Memory[LibraryItem]
	Grades   *store.Memory[Grade]
}

// NewStores creates empty stores.
func NewStores() *Stores {
	return &Stores{
		Students: store.NewMemory[Student]("élève", buildStudent, replace(buildStudent), store.SequentialIDs),
		Payments: store.NewMemory[Payment]("paiement", buildPayment, replace(buildPayment), store.SequentialIDs),
		Rooms:    store.NewMemory[Room]("salle", buildRoom, replace(buildRoom), store.SequentialIDs),
		Staff:    store.NewMemory[Staff]("membre du personnel", buildStaff, replace(buildStaff), store.SequentialIDs),
		Fees:     store.NewMemory[Fee]("frais", buildFee, replace(buildFee), store.SequentialIDs),
		Library:  store.NewMemory[LibraryItem]("document", buildLibraryItem, replace(buildLibraryItem), store.UUIDs),
		Grades:   store.NewMemory[Grade]("note", buildGrade, replace(buildGrade), store.SequentialIDs),
	}
}

// Seed loads ds into the stores.
func (s *Stores) Seed(ds *Dataset) error {
	if ds == nil {
		return nil
	}
	seeds := []struct {
		name string
		fn   func() error
	}{
		{"eleves", func() error { return s.Students.Seed(ds.Students...) }},
		{"paiements", func() error { return s.Payments.Seed(ds.Payments...) }},
		{"salles", func() error { return s.Rooms.Seed(ds.Rooms...) }},
		{"personnel", func() error { return s.Staff.Seed(ds.Staff...) }},
		{"frais", func() error { return s.Fees.Seed(ds.Fees...) }},
		{"bibliotheque", func() error { return s.Library.Seed(ds.Library...) }},
		{"notes", func() error { return s.Grades.Seed(ds.Grades...) }},
	}
	for _, seed := range seeds {
		if err := seed.fn(); err != nil {
			return fmt.Errorf("seed %s: %w", seed.name, err)
		}
	}
	return nil
}

// Counts returns the number of stored items per tab id.
func (s *Stores) Counts() map[string]int {
	return map[string]int{
		"eleves":       s.Students.Len(),
		"paiements":    s.Payments.Len(),
		"salles":       s.Rooms.Len(),
		"personnel":    s.Staff.Len(),
		"frais":        s.Fees.Len(),
		"bibliotheque": s.Library.Len(),
		"notes":        s.Grades.Len(),
	}
}
