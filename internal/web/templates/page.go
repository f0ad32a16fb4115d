package templates

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6f8;color:#1f2933}
header{background:#1e3a5f;color:#fff;padding:12px 24px}
main{padding:16px 24px}
.inline{display:inline}
.tabs a{display:inline-block;padding:8px 14px;margin-right:4px;border-radius:6px 6px 0 0;background:#dde3ea;color:#1f2933;text-decoration:none}
.tabs a.active{background:#fff;font-weight:600}
.badge{background:#1e3a5f;color:#fff;border-radius:10px;padding:0 7px;margin-left:6px;font-size:.8em}
.panel{background:#fff;padding:16px;border-radius:0 6px 6px 6px}
.toolbar{display:flex;gap:8px;flex-wrap:wrap;align-items:center;margin-bottom:12px}
table{width:100%;border-collapse:collapse}
th,td{text-align:left;padding:6px 8px;border-bottom:1px solid #e4e7eb}
button{cursor:pointer;border:1px solid #9aa5b1;background:#fff;border-radius:4px;padding:4px 10px}
button.primary{background:#1e3a5f;color:#fff;border-color:#1e3a5f}
button.danger{background:#b42318;color:#fff;border-color:#b42318}
button[disabled]{opacity:.5;cursor:default}
.pager{display:flex;gap:4px;align-items:center;margin-top:12px}
.pager .current{font-weight:700}
.modal{position:fixed;inset:0;background:rgba(0,0,0,.4);display:flex;align-items:center;justify-content:center}
.dialog{background:#fff;padding:20px;border-radius:8px;min-width:420px;max-height:90vh;overflow:auto}
.dialog label{display:block;margin-top:8px}
.toast{padding:8px 12px;margin-bottom:6px;border-radius:4px}
.toast.success{background:#e3f9e5}.toast.error{background:#fde8e8}.toast.info,.toast.warning{background:#fff4d6}
.empty{padding:24px;text-align:center;color:#616e7c}
`

// Page renders the whole console for view, with toasts shown on top.
func Page(view core.SurfaceView, toasts []core.Notification) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "fr")
		h.raw(`<head><meta charset="utf-8">`)
		h.element("title", "Administration scolaire · "+view.Active.Label)
		h.raw("<style>" + stylesheet + "</style></head><body>")

		h.open("header")
		h.element("strong", "Administration scolaire")
		h.close("header")

		h.open("main")
		h.render(ctx, Toasts(toasts))
		h.render(ctx, TabBar(view.Tabs))

		h.open("section", "class", "panel")
		h.render(ctx, Toolbar(view))
		if view.LoadError != "" {
			h.element("p", view.LoadError, "class", "toast error")
		}
		h.render(ctx, ResultsTable(view))
		h.render(ctx, Pager(view))
		h.close("section")

		h.render(ctx, Modal(view))
		h.close("main")
		h.raw("</body></html>")
	})
}

// Toasts renders pending notifications, oldest first.
func Toasts(toasts []core.Notification) templ.Component {
	return component(func(_ context.Context, h *html) {
		writeToasts(h, toasts)
	})
}

func writeToasts(h *html, toasts []core.Notification) {
	for _, t := range toasts {
		h.open("div", "class", "toast "+string(t.Kind), "role", "status")
		h.element("strong", t.Title)
		if t.Message != "" {
			h.raw(" ")
			h.text(t.Message)
		}
		h.close("div")
	}
}

// TabBar renders one link per tab with its item count.
func TabBar(tabs []core.TabInfo) templ.Component {
	return component(func(_ context.Context, h *html) {
		writeTabBar(h, tabs)
	})
}

func writeTabBar(h *html, tabs []core.TabInfo) {
	h.open("nav", "class", "tabs")
	for _, tab := range tabs {
		class := ""
		if tab.Active {
			class = "active"
		}
		h.open("a", "href", "/tabs/"+url.PathEscape(tab.ID), "class", class, "data-icon", tab.Icon)
		h.text(tab.Label)
		h.element("span", itoa(tab.Count), "class", "badge")
		h.close("a")
	}
	h.close("nav")
}

func Toolbar(view core.SurfaceView) templ.Component {
	return component(func(_ context.Context, h *html) {
		writeToolbar(h, view)
	})
}

func writeToolbar(h *html, view core.SurfaceView) {
	h.open("div", "class", "toolbar")

	h.open("form", "method", "post", "action", "/query", "class", "toolbar")
	h.open("input", "type", "search", "name", "search", "value", view.Search, "placeholder", "Rechercher…")
	for _, f := range view.Filters {
		h.open("select", "name", "filter."+f.Key, "aria-label", f.Placeholder)
		option(h, core.AllValue, f.Placeholder, f.Selected)
		for _, o := range f.Options {
			option(h, o.Value, o.Label, f.Selected)
		}
		h.close("select")
	}
	h.element("button", "Appliquer", "type", "submit")
	h.close("form")

	if view.FiltersActive {
		h.button("/filters/reset", "Réinitialiser", "")
	}
	if view.CreateLabel != "" {
		h.button("/modal/create", view.CreateLabel, "primary")
	}
	if view.CanImport {
		h.button("/modal/import", "Importer", "")
	}
	if view.CanExport {
		h.open("a", "href", "/export")
		h.element("button", "Exporter", "type", "button")
		h.close("a")
	}
	h.close("div")
}

func option(h *html, value, label, selected string) {
	if value == selected {
		h.open("option", "value", value, "selected", "selected")
	} else {
		h.open("option", "value", value)
	}
	h.text(label)
	h.close("option")
}

// ResultsTable renders the current page of rows, or an empty-state message.
func ResultsTable(view core.SurfaceView) templ.Component {
	return component(func(_ context.Context, h *html) {
		writeTable(h, view)
	})
}

func writeTable(h *html, view core.SurfaceView) {
	if len(view.Rows) == 0 {
		msg := "Aucun élément"
		if view.FiltersActive {
			msg = "Aucun élément ne correspond à la recherche"
		}
		h.element("p", msg, "class", "empty")
		return
	}

	h.open("table")
	h.raw("<thead><tr>")
	for _, c := range view.Columns {
		h.element("th", c.Label, "scope", "col")
	}
	h.element("th", "Actions", "scope", "col")
	h.raw("</tr></thead><tbody>")
	for _, row := range view.Rows {
		h.open("tr", "data-id", row.ID)
		for _, cell := range row.Cells {
			h.element("td", cell)
		}
		h.open("td")
		base := "/items/" + url.PathEscape(row.ID) + "/"
		h.button(base+"details", "Voir", "")
		h.button(base+"edit", "Modifier", "")
		h.button(base+"delete", "Supprimer", "danger")
		h.close("td")
		h.close("tr")
	}
	h.raw("</tbody>")
	h.close("table")
}

func Pager(view core.SurfaceView) templ.Component {
	return component(func(_ context.Context, h *html) {
		writePager(h, view)
	})
}

func writePager(h *html, view core.SurfaceView) {
	p := view.Page
	h.open("div", "class", "pager")

	pageButton(h, "prev", "‹ Précédent", !p.HasPrev())
	for _, n := range view.PageWindow {
		if n == p.CurrentPage {
			h.element("span", itoa(n), "class", "current")
			continue
		}
		h.button("/page", itoa(n), "", "to", itoa(n))
	}
	pageButton(h, "next", "Suivant ›", !p.HasNext())

	h.element("span", "Page "+itoa(p.CurrentPage)+" sur "+itoa(p.TotalPages)+" · "+itoa(p.TotalItems)+" élément(s)")

	h.open("form", "method", "post", "action", "/page-size", "class", "inline")
	h.open("select", "name", "size", "aria-label", "Éléments par page")
	for _, size := range view.PageSizes {
		option(h, itoa(size), itoa(size)+" par page", itoa(p.ItemsPerPage))
	}
	h.close("select")
	h.element("button", "OK", "type", "submit")
	h.close("form")

	h.close("div")
}

func pageButton(h *html, to, label string, disabled bool) {
	h.open("form", "method", "post", "action", "/page", "class", "inline")
	h.open("input", "type", "hidden", "name", "to", "value", to)
	if disabled {
		h.open("button", "type", "submit", "disabled", "disabled")
	} else {
		h.open("button", "type", "submit")
	}
	h.text(label)
	h.close("button")
	h.close("form")
}
