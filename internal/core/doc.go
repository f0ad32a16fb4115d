// Package core is the tabulated data-management engine behind the admin
// console.
//
// It has no knowledge of HTTP, templates or of any concrete entity. Web
// handlers, the schoolctl CLI and tests all drive it through the same types.
//
// # Architecture
//
//   - Filter composer: [FilterItems] narrows a collection by a free-text
//     search and any number of keyed filters, combined with AND.
//   - Paginator: [Paginator] holds the current page and page size and keeps
//     the page inside [1, max(1, totalPages)] as the collection changes.
//   - Tab registry: [Registry] lists the [Tab] configurations in display
//     order. A tab bundles columns, filters, a [Form], a [Store] and the
//     optional [Exporter] and [ImportHandler].
//   - Modal orchestrator: [Orchestrator] is the dialog state machine of one
//     tab. At most one dialog is open, and only one effect runs at a time.
//   - Management surface: [Surface] ties the above together per tab and
//     produces a [SurfaceView] for rendering.
//
// # Defining a tab
//
//	reg := core.NewRegistry()
//	reg.MustRegister(core.Tab{
//	    ID:    "eleves",
//	    Label: "Élèves",
//	    Columns: []core.Column{
//	        {Key: "nom", Label: "Nom"},
//	        {Key: "classe", Label: "Classe"},
//	    },
//	    Filters: []core.FilterDescriptor{
//	        {Key: "classe", Kind: core.FilterSelect, Options: classes},
//	    },
//	    Form:  studentForm,
//	    Store: students,
//	})
//
// Filters without a Predicate compare the entity field named by Key with
// the selected value. Entities expose fields through json tags, a plain
// map, or [FieldGetter].
//
// # Error Handling
//
// Effects return their errors unchanged. The surface reports them through
// its [Notifier] using [MapError], which turns sentinel errors and known
// patterns into French messages with a support code (VAL, ENT, UI, TAB,
// IMP, EXP, FILE, REQ, RATE; ERR000 as fallback).
package core
