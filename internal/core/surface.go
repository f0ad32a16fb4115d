package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrTabNotFound       = errors.New("tab not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrUnknownFilter     = errors.New("unknown filter")
	ErrImportUnsupported = errors.New("import not supported for this tab")
	ErrExportUnsupported = errors.New("export not supported for this tab")
	ErrEmptyRegistry     = errors.New("registry has no tabs")
)

// DefaultPageSizes are the page sizes offered by the pagination controls.
var DefaultPageSizes = []int{5, 10, 20, 50}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithNotifier sets where success and error reports go.
func WithNotifier(n Notifier) SurfaceOption {
	return func(s *Surface) { s.notifier = n }
}

// WithPageSize sets the initial page size of every tab.
func WithPageSize(n int) SurfaceOption {
	return func(s *Surface) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithPageSizes sets the page sizes offered to the user.
func WithPageSizes(sizes []int) SurfaceOption {
	return func(s *Surface) {
		if len(sizes) > 0 {
			s.pageSizes = sizes
		}
	}
}

// WithDeletePolicy sets when delete confirmations close.
func WithDeletePolicy(p DeletePolicy) SurfaceOption {
	return func(s *Surface) { s.deletePolicy = p }
}

// WithLogger sets the logger used for surface events.
func WithLogger(l *slog.Logger) SurfaceOption {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// tabView is the per-tab state of a surface. Each tab keeps its own filters,
// page and dialog; switching tabs only changes which view is active.
type tabView struct {
	tab     Tab
	filter  FilterState
	pager   *Paginator
	modal   *Orchestrator
	items   []Entity
	loadErr error
}

// filtered returns the active collection of the view and syncs the pager.
// Callers hold the surface lock.
func (v *tabView) filtered() []Entity {
	out := FilterItems(v.items, v.tab.SearchFields, v.tab.Filters, v.filter)
	v.pager.SetTotal(len(out))
	return out
}

// Surface is the management page model: a tab switcher over a registry, with
// per-tab search, filters, pagination and dialogs.
type Surface struct {
	notifier     Notifier
	logger       *slog.Logger
	pageSize     int
	pageSizes    []int
	deletePolicy DeletePolicy

	mu     sync.Mutex
	active string
	order  []string
	views  map[string]*tabView
}

// NewSurface builds a surface over every tab of registry. The first tab is active.
func NewSurface(registry *Registry, opts ...SurfaceOption) (*Surface, error) {
	tabs := registry.All()
	if len(tabs) == 0 {
		return nil, ErrEmptyRegistry
	}

	s := &Surface{
		logger:    slog.Default(),
		pageSize:  DefaultPageSize,
		pageSizes: DefaultPageSizes,
		views:     make(map[string]*tabView, len(tabs)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Logger: s.logger}
	}

	for _, tab := range tabs {
		s.views[tab.ID] = &tabView{
			tab:    tab,
			filter: NewFilterState(),
			pager:  NewPaginator(s.pageSize),
			modal:  NewOrchestrator(tab.Store, tab.Import, s.deletePolicy),
		}
		s.order = append(s.order, tab.ID)
	}
	s.active = tabs[0].ID
	return s, nil
}

// Load takes a fresh snapshot of every tab. Tabs that fail keep their
// previous snapshot; all failures are returned joined.
func (s *Surface) Load(ctx context.Context) error {
	var errs []error
	for _, id := range s.tabIDs() {
		if err := s.Refresh(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Refresh reloads one tab from its store, re-binds its open dialog to the new
// snapshot and clamps its page.
func (s *Surface) Refresh(ctx context.Context, tabID string) error {
	s.mu.Lock()
	view, ok := s.views[tabID]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("refresh %s: %w", tabID, ErrTabNotFound)
	}

	items, err := view.tab.Store.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		view.loadErr = err
		s.logger.Error("tab refresh failed", "tab", tabID, "error", err)
		return fmt.Errorf("refresh %s: %w", tabID, err)
	}

	view.items = items
	view.loadErr = nil
	view.modal.Rebind(func(id string) (Entity, bool) {
		return FindByID(items, id)
	})
	view.filtered()

	s.logger.Debug("tab refreshed", "tab", tabID, "items", len(items))
	return nil
}

// ActiveTab returns the ID of the active tab.
func (s *Surface) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SwitchTab makes id the active tab. Its filters, page and dialog are the
// ones it had when it was last active.
func (s *Surface) SwitchTab(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[id]; !ok {
		return fmt.Errorf("switch to %s: %w", id, ErrTabNotFound)
	}
	s.active = id
	return nil
}

// SetSearch sets the search term of the active tab.
func (s *Surface) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.views[s.active]
	view.filter.Search = term
	view.filtered()
}

// SetFilter selects value for the filter key of the active tab.
// AllValue or "" disables the filter.
func (s *Surface) SetFilter(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.views[s.active]
	if _, ok := view.tab.Filter(key); !ok {
		return fmt.Errorf("filter %q on %s: %w", key, view.tab.ID, ErrUnknownFilter)
	}
	view.filter.Selected[key] = value
	view.filtered()
	return nil
}

// ResetFilters clears the search term and every filter of the active tab only.
func (s *Surface) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.views[s.active]
	view.filter = NewFilterState()
	view.filtered()
}

// FilterState returns a copy of the active tab's search and filters.
func (s *Surface) FilterState() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views[s.active].filter.Clone()
}

// GoToPage moves the active tab to page n, clamped to the valid range.
func (s *Surface) GoToPage(n int) {
	s.withPager(func(p *Paginator) { p.GoToPage(n) })
}

// NextPage advances the active tab one page.
func (s *Surface) NextPage() {
	s.withPager((*Paginator).NextPage)
}

// PrevPage moves the active tab back one page.
func (s *Surface) PrevPage() {
	s.withPager((*Paginator).PrevPage)
}

// SetItemsPerPage changes the active tab's page size and returns to page 1.
func (s *Surface) SetItemsPerPage(n int) {
	s.withPager(func(p *Paginator) { p.SetItemsPerPage(n) })
}

func (s *Surface) withPager(fn func(*Paginator)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.views[s.active]
	view.filtered()
	fn(view.pager)
}

// OpenCreate opens the create dialog of the active tab.
func (s *Surface) OpenCreate() error {
	return s.activeModal().ClickCreate()
}

// OpenImport opens the import dialog of the active tab.
func (s *Surface) OpenImport() error {
	s.mu.Lock()
	view := s.views[s.active]
	s.mu.Unlock()

	if !view.tab.CanImport() {
		return fmt.Errorf("import on %s: %w", view.tab.ID, ErrImportUnsupported)
	}
	return view.modal.ClickImport()
}

// OpenEdit opens the edit dialog for the item id of the active tab.
func (s *Surface) OpenEdit(id string) error {
	item, modal, err := s.lookup(id)
	if err != nil {
		return err
	}
	return modal.ClickEdit(item)
}

// OpenDetails opens the details dialog for the item id of the active tab.
func (s *Surface) OpenDetails(id string) error {
	item, modal, err := s.lookup(id)
	if err != nil {
		return err
	}
	return modal.ClickDetails(item)
}

// OpenDelete opens the delete confirmation for the item id of the active tab.
func (s *Surface) OpenDelete(id string) error {
	item, modal, err := s.lookup(id)
	if err != nil {
		return err
	}
	return modal.ClickDelete(item)
}

// EditFromDetails turns the open details dialog into an edit dialog.
func (s *Surface) EditFromDetails() error {
	return s.activeModal().EditFromDetails()
}

// CancelForm closes the create or edit dialog without saving.
func (s *Surface) CancelForm() error {
	return s.activeModal().Cancel()
}

// CancelDelete closes the delete confirmation.
func (s *Surface) CancelDelete() error {
	return s.activeModal().CancelDelete()
}

// CloseDetails closes the details dialog.
func (s *Surface) CloseDetails() error {
	return s.activeModal().CloseDetails()
}

// CloseImport closes the import dialog.
func (s *Surface) CloseImport() error {
	return s.activeModal().CloseImport()
}

// Modal returns the dialog state of the active tab.
func (s *Surface) Modal() Modal {
	return s.activeModal().State()
}

// SubmitForm decodes values with the active tab's form and runs the create
// or update effect. Failures are reported and leave the dialog open.
func (s *Surface) SubmitForm(ctx context.Context, values map[string]string) error {
	view := s.activeView()
	state := view.modal.State()
	if state.Kind() != ModalCreate && state.Kind() != ModalEdit {
		return fmt.Errorf("submit from %s: %w", state.Kind(), ErrInvalidTransition)
	}

	data := FormData(values)
	if view.tab.Form != nil {
		decoded, err := view.tab.Form.Decode(values)
		if err != nil {
			s.report("Formulaire invalide", err)
			return err
		}
		data = decoded
	}

	saved, err := view.modal.Submit(ctx, data)
	if err != nil {
		s.report("Enregistrement impossible", err)
		return err
	}

	s.refreshAfterEffect(ctx, view.tab.ID)
	if state.Editing() {
		s.notifier.Notify(NotifySuccess, "Modification enregistrée", describe(view.tab, saved))
	} else {
		s.notifier.Notify(NotifySuccess, "Création réussie", describe(view.tab, saved))
	}
	return nil
}

// ConfirmDelete runs the delete effect for the item awaiting confirmation.
func (s *Surface) ConfirmDelete(ctx context.Context) error {
	view := s.activeView()

	item, err := view.modal.ConfirmDelete(ctx)
	if err != nil {
		if item != nil {
			// The dialog may already be closed; resync with the store either way.
			s.refreshAfterEffect(ctx, view.tab.ID)
		}
		s.report("Suppression impossible", err)
		return err
	}

	s.refreshAfterEffect(ctx, view.tab.ID)
	s.notifier.Notify(NotifySuccess, "Suppression réussie", describe(view.tab, item))
	return nil
}

// Import hands spreadsheet rows to the active tab's import handler and
// refreshes the tab so imported rows join filtering and pagination.
func (s *Surface) Import(ctx context.Context, rows []RawRecord) error {
	view := s.activeView()

	if err := view.modal.Import(ctx, rows); err != nil {
		s.report("Import impossible", err)
		return err
	}

	s.refreshAfterEffect(ctx, view.tab.ID)
	s.notifier.Notify(NotifySuccess, "Import terminé",
		fmt.Sprintf("%d ligne(s) importée(s) dans %s", len(rows), view.tab.Label))
	return nil
}

// ExportJob is a prepared export of the active tab's filtered collection.
type ExportJob struct {
	FileName    string
	ContentType string
	Items       []Entity
	exporter    Exporter
}

// Write encodes the collection to w.
func (j *ExportJob) Write(w io.Writer) error {
	return j.exporter.Export(w, j.Items)
}

// Export prepares an export of the active tab. The collection is the
// filtered one, not the visible page.
func (s *Surface) Export() (*ExportJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.views[s.active]
	if !view.tab.CanExport() {
		return nil, fmt.Errorf("export %s: %w", view.tab.ID, ErrExportUnsupported)
	}

	items := view.filtered()
	return &ExportJob{
		FileName:    fmt.Sprintf("%s_%s%s", view.tab.ID, time.Now().Format("20060102_150405"), view.tab.Exporter.FileExtension()),
		ContentType: view.tab.Exporter.ContentType(),
		Items:       items,
		exporter:    view.tab.Exporter,
	}, nil
}

// Tabs returns the tab bar: every tab with its unfiltered item count.
func (s *Surface) Tabs() []TabInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tabInfos()
}

func (s *Surface) tabInfos() []TabInfo {
	infos := make([]TabInfo, len(s.order))
	for i, id := range s.order {
		v := s.views[id]
		infos[i] = TabInfo{
			ID:     id,
			Label:  v.tab.Label,
			Icon:   v.tab.Icon,
			Count:  len(v.items),
			Active: id == s.active,
		}
	}
	return infos
}

func (s *Surface) tabIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

func (s *Surface) activeView() *tabView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views[s.active]
}

func (s *Surface) activeModal() *Orchestrator {
	return s.activeView().modal
}

// lookup resolves id against the active snapshot so the dialog holds the
// snapshot's own element.
func (s *Surface) lookup(id string) (Entity, *Orchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.views[s.active]
	item, ok := FindByID(view.items, id)
	if !ok {
		return nil, nil, fmt.Errorf("%s %s: %w", view.tab.ID, id, ErrItemNotFound)
	}
	return item, view.modal, nil
}

func (s *Surface) refreshAfterEffect(ctx context.Context, tabID string) {
	if err := s.Refresh(ctx, tabID); err != nil {
		s.report("Actualisation impossible", err)
	}
}

func (s *Surface) report(title string, err error) {
	msg := MapError(err)
	text := msg.Message
	var verr *ValidationError
	if errors.As(err, &verr) {
		text = verr.Error()
	}
	if msg.Action != "" {
		text += ". " + msg.Action
	}
	s.logger.Warn("operation failed", "title", title, "error", err, "code", msg.Code)
	s.notifier.Notify(NotifyError, title, text+" ("+msg.Code+")")
}

// describe names an entity in notifications by its first column.
func describe(tab Tab, e Entity) string {
	if e == nil {
		return tab.Label
	}
	if len(tab.Columns) > 0 {
		if label := tab.Columns[0].Cell(e); label != "" {
			return label
		}
	}
	return tab.Label + " #" + e.EntityID()
}
