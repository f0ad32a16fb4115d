package core

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterItems_SearchMatchesSubstring(t *testing.T) {
	items := []Record{
		{"id": 1, "nom": "Paul"},
		{"id": 2, "nom": "Marie"},
	}

	got := FilterItems(items, []string{"nom"}, nil, FilterState{Search: "mar"})

	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].EntityID())
	assert.Equal(t, "Marie", got[0]["nom"])
}

func TestFilterItems_EmptySearchIsIdentity(t *testing.T) {
	items := students(12)

	got := FilterItems(items, []string{"nom"}, nil, FilterState{Search: ""})
	assert.Equal(t, items, got)
}

func TestFilterItems_SearchTermIsLiteral(t *testing.T) {
	items := []Record{
		{"id": 1, "nom": "Marie"},
		{"id": 2, "nom": "Anne Marie"},
		{"id": 3, "nom": "Paul"},
	}

	got := FilterItems(items, []string{"nom"}, nil, FilterState{Search: " mar"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].EntityID())

	got = FilterItems(items, []string{"nom"}, nil, FilterState{Search: " "})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].EntityID())

	assert.Empty(t, FilterItems(items, []string{"nom"}, nil, FilterState{Search: "  "}))
	assert.False(t, FilterState{Search: " "}.IsZero())
}

func TestFilterItems_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	items := students(9)

	got := FilterItems(items, []string{"nom", "classe"}, nil, FilterState{Search: "6a"})

	require.NotEmpty(t, got)
	for _, r := range got {
		assert.Equal(t, "6A", r["classe"])
	}
}

func TestFilterItems_SearchLaw(t *testing.T) {
	items := students(30)
	fields := []string{"nom", "classe"}
	rng := rand.New(rand.NewSource(7))
	alphabet := []string{"e", "E", "6", "a", "0", "1", "ve", "5a", "zz"}

	for i := 0; i < 50; i++ {
		term := alphabet[rng.Intn(len(alphabet))]
		got := FilterItems(items, fields, nil, FilterState{Search: term})

		var want []Record
		for _, it := range items {
			for _, f := range fields {
				if strings.Contains(strings.ToLower(FieldString(it, f)), strings.ToLower(term)) {
					want = append(want, it)
					break
				}
			}
		}
		assert.ElementsMatch(t, want, got, "term %q", term)
	}
}

func TestFilterItems_AllValueIsNoOp(t *testing.T) {
	items := students(10)
	filters := []FilterDescriptor{{Key: "statut"}}

	unfiltered := FilterItems(items, nil, filters, NewFilterState())
	all := FilterItems(items, nil, filters, FilterState{Selected: map[string]string{"statut": AllValue}})
	empty := FilterItems(items, nil, filters, FilterState{Selected: map[string]string{"statut": ""}})

	assert.Equal(t, unfiltered, all)
	assert.Equal(t, unfiltered, empty)
	assert.Len(t, all, 10)
}

func TestFilterItems_CompositionIsIntersection(t *testing.T) {
	items := students(24)
	filters := []FilterDescriptor{{Key: "classe"}, {Key: "statut"}}

	one := FilterItems(items, nil, filters, FilterState{Selected: map[string]string{"classe": "6B"}})
	two := FilterItems(items, nil, filters, FilterState{Selected: map[string]string{"statut": "actif"}})
	both := FilterItems(items, nil, filters, FilterState{Selected: map[string]string{"classe": "6B", "statut": "actif"}})

	var want []Record
	for _, a := range one {
		for _, b := range two {
			if a.EntityID() == b.EntityID() {
				want = append(want, a)
			}
		}
	}
	assert.Equal(t, want, both)

	reversed := []FilterDescriptor{{Key: "statut"}, {Key: "classe"}}
	assert.Equal(t, both, FilterItems(items, nil, reversed, FilterState{Selected: map[string]string{"classe": "6B", "statut": "actif"}}))
}

func TestFilterItems_SearchAndFiltersCombine(t *testing.T) {
	items := []Record{
		{"id": 1, "nom": "Marie", "statut": "actif"},
		{"id": 2, "nom": "Mario", "statut": "inactif"},
		{"id": 3, "nom": "Paul", "statut": "actif"},
	}
	state := FilterState{Search: "mari", Selected: map[string]string{"statut": "actif"}}

	got := FilterItems(items, []string{"nom"}, []FilterDescriptor{{Key: "statut"}}, state)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].EntityID())
}

func TestFilterItems_MissingFieldDoesNotMatch(t *testing.T) {
	items := []Record{{"id": 1, "nom": "Paul"}}
	state := FilterState{Selected: map[string]string{"inexistant": "x"}}

	got := FilterItems(items, nil, []FilterDescriptor{{Key: "inexistant"}}, state)

	assert.Empty(t, got)
}

func TestFilterItems_DoesNotModifyInput(t *testing.T) {
	items := students(5)
	before := append([]Record(nil), items...)

	_ = FilterItems(items, []string{"nom"}, []FilterDescriptor{{Key: "classe"}}, FilterState{Search: "eleve", Selected: map[string]string{"classe": "6A"}})

	assert.Equal(t, before, items)
}

func TestRangePredicate(t *testing.T) {
	pred := RangePredicate("montant")
	rec := func(v any) Record { return Record{"id": 1, "montant": v} }

	tests := []struct {
		name     string
		value    any
		selected string
		want     bool
	}{
		{"inside", 150.0, "100-200", true},
		{"min inclusive", 100, "100-200", true},
		{"max exclusive", 200, "100-200", false},
		{"below", 50, "100-200", false},
		{"open upper", 5000, "1000-", true},
		{"open lower", 10, "-100", true},
		{"string value", "120", "100-200", true},
		{"non numeric value", "abc", "100-200", false},
		{"malformed selection", 150, "abc", false},
		{"bare dash", 150, "-", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pred(rec(tt.value), tt.selected))
		})
	}
}

func TestPredicateAs(t *testing.T) {
	pred := PredicateAs(func(r roomEntity, sel string) bool { return sel == "grande" && r.Capacite >= 30 })

	assert.True(t, pred(roomEntity{ID: "a", Capacite: 32}, "grande"))
	assert.False(t, pred(roomEntity{ID: "b", Capacite: 12}, "grande"))
	assert.False(t, pred(Record{"id": 1, "capacite": 40}, "grande"))
}

type roomEntity struct {
	ID       string `json:"id"`
	Nom      string `json:"nom"`
	Capacite int    `json:"capacite"`
}

func (r roomEntity) EntityID() string { return r.ID }

func TestFilterState(t *testing.T) {
	s := NewFilterState()
	assert.True(t, s.IsZero())

	s.Selected["classe"] = AllValue
	assert.True(t, s.IsZero())
	assert.False(t, s.Active("classe"))

	s.Selected["classe"] = "6A"
	assert.False(t, s.IsZero())
	assert.True(t, s.Active("classe"))

	clone := s.Clone()
	clone.Selected["classe"] = "5A"
	assert.Equal(t, "6A", s.Selected["classe"])
}
