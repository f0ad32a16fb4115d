package core

// ColumnView is a table header.
type ColumnView struct {
	Key   string
	Label string
}

// RowView is one rendered row of the current page.
type RowView struct {
	ID    string
	Cells []string
}

// FilterView is one filter control with its current selection.
type FilterView struct {
	Key         string
	Kind        FilterKind
	Placeholder string
	Options     []FilterOption
	Selected    string
}

// DetailView is one label/value pair of the details dialog.
type DetailView struct {
	Label string
	Value string
}

// ModalView is the render model of the open dialog.
type ModalView struct {
	Kind       ModalKind
	ItemID     string
	ItemLabel  string
	Fields     []FormField
	Details    []DetailView
	ImportKind string
}

// SurfaceView is everything needed to render the management page once.
type SurfaceView struct {
	Tabs          []TabInfo
	Active        TabInfo
	CreateLabel   string
	CanExport     bool
	CanImport     bool
	Search        string
	Filters       []FilterView
	FiltersActive bool
	Columns       []ColumnView
	Rows          []RowView
	Page          PageState
	PageWindow    []int
	PageSizes     []int
	Modal         ModalView
	Busy          bool
	LoadError     string
}

// pageWindowWidth is how many page buttons the controls show.
const pageWindowWidth = 5

// View renders the active tab into a view model.
func (s *Surface) View() SurfaceView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.views[s.active]
	tab := view.tab

	v := SurfaceView{
		Tabs:          s.tabInfos(),
		CreateLabel:   tab.CreateLabel,
		CanExport:     tab.CanExport(),
		CanImport:     tab.CanImport(),
		Search:        view.filter.Search,
		FiltersActive: !view.filter.IsZero(),
		PageSizes:     s.pageSizes,
		Busy:          view.modal.Busy(),
	}
	for _, info := range v.Tabs {
		if info.Active {
			v.Active = info
		}
	}
	if view.loadErr != nil {
		v.LoadError = MapError(view.loadErr).Message
	}

	for _, f := range tab.Filters {
		selected := view.filter.Selected[f.Key]
		if selected == "" {
			selected = AllValue
		}
		v.Filters = append(v.Filters, FilterView{
			Key:         f.Key,
			Kind:        f.Kind,
			Placeholder: f.Placeholder,
			Options:     f.Options,
			Selected:    selected,
		})
	}

	for _, c := range tab.Columns {
		v.Columns = append(v.Columns, ColumnView{Key: c.Key, Label: c.Label})
	}

	for _, item := range Page(view.filtered(), view.pager) {
		row := RowView{ID: item.EntityID(), Cells: make([]string, len(tab.Columns))}
		for i, c := range tab.Columns {
			row.Cells[i] = c.Cell(item)
		}
		v.Rows = append(v.Rows, row)
	}
	v.Page = view.pager.State()
	v.PageWindow = view.pager.Window(pageWindowWidth)

	v.Modal = buildModalView(tab, view.modal.State())
	return v
}

func buildModalView(tab Tab, m Modal) ModalView {
	mv := ModalView{Kind: m.Kind(), ImportKind: tab.ImportKind}
	item := m.Item()
	if item != nil {
		mv.ItemID = item.EntityID()
		mv.ItemLabel = describe(tab, item)
	}

	switch m.Kind() {
	case ModalCreate, ModalEdit:
		if tab.Form != nil {
			mv.Fields = tab.Form.Fields(item)
		}
	case ModalDetails:
		mv.Details = detailsOf(tab, item)
	}
	return mv
}

// detailsOf lists the form fields of item, falling back to the table columns
// when the tab has no form.
func detailsOf(tab Tab, item Entity) []DetailView {
	var out []DetailView
	if tab.Form != nil {
		for _, f := range tab.Form.Fields(item) {
			out = append(out, DetailView{Label: f.Label, Value: f.Value})
		}
		return out
	}
	for _, c := range tab.Columns {
		out = append(out, DetailView{Label: c.Label, Value: c.Cell(item)})
	}
	return out
}
