package core

// modal.go implements the modal orchestrator: the state machine deciding
// which dialog of a tab is open and running the effect each dialog ends with.
//
// State diagram:
//
//	None ──ClickCreate──▶ Create ──Submit ok / Cancel──▶ None
//	None ──ClickEdit(x)─▶ Edit(x) ─Submit ok / Cancel──▶ None
//	None ──ClickDetails(x)▶ Details(x) ──EditFromDetails──▶ Edit(x)
//	                        Details(x) ──CloseDetails──▶ None
//	None ──ClickDelete(x)▶ DeleteConfirm(x) ──ConfirmDelete / CancelDelete──▶ None
//	None ──ClickImport──▶ Import ──Import ok / CloseImport──▶ None
//
// Every Click* is accepted from any state and replaces whatever was open.

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInvalidTransition is returned when an action does not apply to the
	// dialog currently open. The state is left unchanged.
	ErrInvalidTransition = errors.New("action not available in current dialog")

	// ErrBusy is returned while an effect of the same tab is still running.
	ErrBusy = errors.New("another operation is in progress")
)

// ModalKind identifies which dialog is open.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalCreate
	ModalEdit
	ModalDetails
	ModalDeleteConfirm
	ModalImport
)

func (k ModalKind) String() string {
	switch k {
	case ModalCreate:
		return "create"
	case ModalEdit:
		return "edit"
	case ModalDetails:
		return "details"
	case ModalDeleteConfirm:
		return "delete"
	case ModalImport:
		return "import"
	default:
		return "none"
	}
}

// Modal is the tagged dialog state. Item is set exactly for Edit, Details
// and DeleteConfirm; the constructors are the only way to build one.
type Modal struct {
	kind ModalKind
	item Entity
}

func noModal() Modal                 { return Modal{} }
func createModal() Modal             { return Modal{kind: ModalCreate} }
func editModal(item Entity) Modal    { return Modal{kind: ModalEdit, item: item} }
func detailsModal(item Entity) Modal { return Modal{kind: ModalDetails, item: item} }
func deleteModal(item Entity) Modal  { return Modal{kind: ModalDeleteConfirm, item: item} }
func importModal() Modal             { return Modal{kind: ModalImport} }

// Kind returns the open dialog.
func (m Modal) Kind() ModalKind { return m.kind }

// Item returns the selected entity, or nil for dialogs without one.
func (m Modal) Item() Entity { return m.item }

// IsOpen reports whether any dialog is open.
func (m Modal) IsOpen() bool { return m.kind != ModalNone }

// Editing reports whether a submitted form updates an existing entity.
func (m Modal) Editing() bool { return m.item != nil }

// DeletePolicy decides when the delete confirmation closes.
type DeletePolicy int

const (
	// DeleteOptimistic closes the confirmation before the delete effect
	// resolves. A failure is still returned to the caller.
	DeleteOptimistic DeletePolicy = iota

	// DeleteConfirmed keeps the confirmation open until the effect succeeds.
	DeleteConfirmed
)

// ParseDeletePolicy maps a configuration value to a policy.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch s {
	case "", "optimistic":
		return DeleteOptimistic, nil
	case "confirmed":
		return DeleteConfirmed, nil
	}
	return DeleteOptimistic, fmt.Errorf("unknown delete policy %q", s)
}

// Orchestrator coordinates the dialogs of one tab. It validates nothing and
// catches nothing: effect errors are returned unchanged.
//
// Effects run without holding the orchestrator lock so the state stays
// readable, but only one effect runs at a time; every action attempted
// meanwhile returns ErrBusy.
type Orchestrator struct {
	store        Store
	importer     ImportHandler
	deletePolicy DeletePolicy

	mu    sync.Mutex
	state Modal
	busy  bool
}

// NewOrchestrator returns an orchestrator with no dialog open.
func NewOrchestrator(store Store, importer ImportHandler, policy DeletePolicy) *Orchestrator {
	return &Orchestrator{store: store, importer: importer, deletePolicy: policy}
}

// State returns the current dialog state.
func (o *Orchestrator) State() Modal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Busy reports whether an effect is running.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// ClickCreate opens the create dialog.
func (o *Orchestrator) ClickCreate() error { return o.open(createModal()) }

// ClickEdit opens the edit dialog for item.
func (o *Orchestrator) ClickEdit(item Entity) error {
	if item == nil {
		return fmt.Errorf("edit: %w", ErrItemNotFound)
	}
	return o.open(editModal(item))
}

// ClickDetails opens the details dialog for item.
func (o *Orchestrator) ClickDetails(item Entity) error {
	if item == nil {
		return fmt.Errorf("details: %w", ErrItemNotFound)
	}
	return o.open(detailsModal(item))
}

// ClickDelete opens the delete confirmation for item.
func (o *Orchestrator) ClickDelete(item Entity) error {
	if item == nil {
		return fmt.Errorf("delete: %w", ErrItemNotFound)
	}
	return o.open(deleteModal(item))
}

// ClickImport opens the import dialog.
func (o *Orchestrator) ClickImport() error { return o.open(importModal()) }

// EditFromDetails switches from Details(item) straight to Edit(item).
func (o *Orchestrator) EditFromDetails() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.busy {
		return ErrBusy
	}
	if o.state.kind != ModalDetails {
		return fmt.Errorf("edit from %s: %w", o.state.kind, ErrInvalidTransition)
	}
	o.state = editModal(o.state.item)
	return nil
}

// Cancel closes the create or edit dialog without saving anything.
func (o *Orchestrator) Cancel() error {
	return o.closeFrom("cancel", ModalCreate, ModalEdit)
}

// CancelDelete closes the delete confirmation.
func (o *Orchestrator) CancelDelete() error {
	return o.closeFrom("cancel delete", ModalDeleteConfirm)
}

// CloseDetails closes the details dialog.
func (o *Orchestrator) CloseDetails() error {
	return o.closeFrom("close details", ModalDetails)
}

// CloseImport closes the import dialog.
func (o *Orchestrator) CloseImport() error {
	return o.closeFrom("close import", ModalImport)
}

// Close closes whatever is open. Used when the selected item disappears.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = noModal()
}

// Submit runs the create or update effect of the open form. Whether it is
// an update is decided by the item carried in state. On success the dialog
// closes and the stored entity is returned; on failure it stays open.
func (o *Orchestrator) Submit(ctx context.Context, data FormData) (Entity, error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	current := o.state
	if current.kind != ModalCreate && current.kind != ModalEdit {
		o.mu.Unlock()
		return nil, fmt.Errorf("submit from %s: %w", current.kind, ErrInvalidTransition)
	}
	o.busy = true
	o.mu.Unlock()

	var (
		saved Entity
		err   error
	)
	if current.Editing() {
		saved, err = o.store.Update(ctx, current.item, data)
	} else {
		saved, err = o.store.Create(ctx, data)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.busy = false
	if err != nil {
		return nil, err
	}
	o.state = noModal()
	return saved, nil
}

// ConfirmDelete runs the delete effect on the item awaiting confirmation.
// Under DeleteOptimistic the dialog is closed before the effect runs.
func (o *Orchestrator) ConfirmDelete(ctx context.Context) (Entity, error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	if o.state.kind != ModalDeleteConfirm {
		kind := o.state.kind
		o.mu.Unlock()
		return nil, fmt.Errorf("confirm delete from %s: %w", kind, ErrInvalidTransition)
	}
	item := o.state.item
	if o.deletePolicy == DeleteOptimistic {
		o.state = noModal()
	}
	o.busy = true
	o.mu.Unlock()

	err := o.store.Delete(ctx, item)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.busy = false
	if err != nil {
		return item, err
	}
	o.state = noModal()
	return item, nil
}

// Import hands rows to the tab's import handler. On success the dialog
// closes; on failure it stays open so the user can pick another file.
func (o *Orchestrator) Import(ctx context.Context, rows []RawRecord) error {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return ErrBusy
	}
	if o.state.kind != ModalImport {
		kind := o.state.kind
		o.mu.Unlock()
		return fmt.Errorf("import from %s: %w", kind, ErrInvalidTransition)
	}
	if o.importer == nil {
		o.mu.Unlock()
		return fmt.Errorf("import: %w", ErrImportUnsupported)
	}
	o.busy = true
	o.mu.Unlock()

	err := o.importer(ctx, rows)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.busy = false
	if err != nil {
		return err
	}
	o.state = noModal()
	return nil
}

// Rebind points the selected item at its counterpart in a fresh snapshot.
// The dialog closes when the item no longer exists.
func (o *Orchestrator) Rebind(lookup func(id string) (Entity, bool)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.item == nil {
		return
	}
	fresh, ok := lookup(o.state.item.EntityID())
	if !ok {
		o.state = noModal()
		return
	}
	o.state.item = fresh
}

func (o *Orchestrator) open(m Modal) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.busy {
		return ErrBusy
	}
	o.state = m
	return nil
}

func (o *Orchestrator) closeFrom(action string, allowed ...ModalKind) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.busy {
		return ErrBusy
	}
	for _, k := range allowed {
		if o.state.kind == k {
			o.state = noModal()
			return nil
		}
	}
	return fmt.Errorf("%s from %s: %w", action, o.state.kind, ErrInvalidTransition)
}
