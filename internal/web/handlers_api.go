package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// The JSON API is stateless: every call lists the store and runs the same
// filter composer and paginator as the console, from query parameters.

type apiColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type apiPage struct {
	Current    int  `json:"current"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

type apiItem struct {
	ID    string            `json:"id"`
	Cells map[string]string `json:"cells"`
}

type apiItemsResponse struct {
	Tab     core.TabInfo `json:"tab"`
	Columns []apiColumn  `json:"columns"`
	Items   []apiItem    `json:"items"`
	Page    apiPage      `json:"page"`
}

// handleAPITabs lists the tabs with their item counts.
func (s *Server) handleAPITabs(w http.ResponseWriter, r *http.Request) {
	tabs := s.registry.All()
	infos := make([]core.TabInfo, 0, len(tabs))
	for _, tab := range tabs {
		items, err := tab.Store.List(r.Context())
		if err != nil {
			s.respondError(w, r, fmt.Errorf("list %s: %w", tab.ID, err))
			return
		}
		infos = append(infos, core.TabInfo{ID: tab.ID, Label: tab.Label, Icon: tab.Icon, Count: len(items)})
	}
	writeJSON(w, infos)
}

// handleAPIItems serves one page of a tab.
//
//	GET /api/tabs/eleves/items?search=dia&filter[classe]=6A&page=2&size=20
func (s *Server) handleAPIItems(w http.ResponseWriter, r *http.Request) {
	tabID := chi.URLParam(r, "tabID")
	tab, ok := s.registry.Get(tabID)
	if !ok {
		s.respondError(w, r, fmt.Errorf("tab %q: %w", tabID, core.ErrTabNotFound))
		return
	}

	state, err := parseFilterState(r, tab)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	items, err := tab.Store.List(r.Context())
	if err != nil {
		s.respondError(w, r, fmt.Errorf("list %s: %w", tab.ID, err))
		return
	}
	filtered := core.FilterItems(items, tab.SearchFields, tab.Filters, state)

	pager := core.NewPaginator(parseIntParam(r, "size", s.cfg.Grid.PageSize))
	pager.SetTotal(len(filtered))
	pager.GoToPage(parseIntParam(r, "page", 1))

	resp := apiItemsResponse{
		Tab:   core.TabInfo{ID: tab.ID, Label: tab.Label, Icon: tab.Icon, Count: len(items)},
		Items: []apiItem{},
	}
	for _, c := range tab.Columns {
		resp.Columns = append(resp.Columns, apiColumn{Key: c.Key, Label: c.Label})
	}
	for _, item := range core.Page(filtered, pager) {
		cells := make(map[string]string, len(tab.Columns))
		for _, c := range tab.Columns {
			cells[c.Key] = c.Cell(item)
		}
		resp.Items = append(resp.Items, apiItem{ID: item.EntityID(), Cells: cells})
	}
	st := pager.State()
	resp.Page = apiPage{
		Current:    st.CurrentPage,
		PerPage:    st.ItemsPerPage,
		TotalItems: st.TotalItems,
		TotalPages: st.TotalPages,
		HasPrev:    st.HasPrev(),
		HasNext:    st.HasNext(),
	}
	writeJSON(w, resp)
}

// parseFilterState reads search and filter[key] parameters. Unknown filter
// keys are rejected.
func parseFilterState(r *http.Request, tab core.Tab) (core.FilterState, error) {
	state := core.NewFilterState()
	query := r.URL.Query()
	state.Search = query.Get("search")

	for key, values := range query {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		name := key[len("filter[") : len(key)-1]
		if _, ok := tab.Filter(name); !ok {
			return state, fmt.Errorf("filter %q on %s: %w", name, tab.ID, core.ErrUnknownFilter)
		}
		if len(values) > 0 {
			state.Selected[name] = values[0]
		}
	}
	return state, nil
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
