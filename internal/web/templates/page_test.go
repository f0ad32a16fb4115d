package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

func render(t *testing.T, view core.SurfaceView, toasts []core.Notification) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(view, toasts).Render(context.Background(), &buf))
	return buf.String()
}

func sampleView() core.SurfaceView {
	active := core.TabInfo{ID: "eleves", Label: "Élèves", Count: 2, Active: true}
	return core.SurfaceView{
		Tabs:        []core.TabInfo{active, {ID: "salles", Label: "Salles", Count: 12}},
		Active:      active,
		CreateLabel: "Ajouter un élève",
		CanExport:   true,
		CanImport:   true,
		Filters: []core.FilterView{{
			Key:         "classe",
			Placeholder: "Toutes les classes",
			Options:     []core.FilterOption{{Value: "6A", Label: "6e A"}, {Value: "6B", Label: "6e B"}},
			Selected:    "6B",
		}},
		Columns: []core.ColumnView{{Key: "nom", Label: "Nom"}},
		Rows: []core.RowView{
			{ID: "1", Cells: []string{"Aminata Diallo"}},
			{ID: "2", Cells: []string{"<b>Moussa</b>"}},
		},
		Page:       core.PageState{CurrentPage: 1, ItemsPerPage: 10, TotalItems: 2, TotalPages: 1},
		PageWindow: []int{1},
		PageSizes:  []int{5, 10},
	}
}

func TestPage_Table(t *testing.T) {
	out := render(t, sampleView(), nil)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `<a href="/tabs/eleves" class="active"`)
	assert.Contains(t, out, `<span class="badge">12</span>`)
	assert.Contains(t, out, "<td>Aminata Diallo</td>")
	assert.Contains(t, out, `action="/items/2/delete"`)
	assert.Contains(t, out, `<option value="6B" selected="selected">6e B</option>`)
	assert.Contains(t, out, `<option value="10" selected="selected">10 par page</option>`)
	assert.Contains(t, out, "Page 1 sur 1 · 2 élément(s)")
	assert.NotContains(t, out, `role="dialog"`)
}

func TestPage_EscapesContent(t *testing.T) {
	out := render(t, sampleView(), []core.Notification{
		{Kind: core.NotifyError, Title: "Import impossible", Message: `<script>alert("x")</script>`},
	})

	assert.NotContains(t, out, "<b>Moussa</b>")
	assert.Contains(t, out, "&lt;b&gt;Moussa&lt;/b&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `class="toast error"`)
}

func TestPage_EmptyTable(t *testing.T) {
	view := sampleView()
	view.Rows = nil
	out := render(t, view, nil)
	assert.Contains(t, out, "Aucun élément")

	view.FiltersActive = true
	out = render(t, view, nil)
	assert.Contains(t, out, "Aucun élément ne correspond à la recherche")
	assert.Contains(t, out, `action="/filters/reset"`)
}

func TestPage_PagerDisablesEdges(t *testing.T) {
	out := render(t, sampleView(), nil)
	assert.Contains(t, out, `<button type="submit" disabled="disabled">‹ Précédent</button>`)
	assert.Contains(t, out, `<button type="submit" disabled="disabled">Suivant ›</button>`)
}

func TestModal_Form(t *testing.T) {
	view := sampleView()
	view.Modal = core.ModalView{
		Kind: core.ModalCreate,
		Fields: []core.FormField{
			{Name: "nom", Label: "Nom", Required: true},
			{Name: "classe", Label: "Classe", Type: core.FieldEnum, Options: []core.FilterOption{{Value: "6A", Label: "6e A"}}, Value: "6A"},
			{Name: "actif", Label: "Actif", Type: core.FieldBool, Value: "true"},
		},
	}
	out := render(t, view, nil)

	assert.Contains(t, out, `role="dialog"`)
	assert.Contains(t, out, "<h2>Ajouter un élève</h2>")
	assert.Contains(t, out, `name="nom" value="" required="required"`)
	assert.Contains(t, out, `<option value="6A" selected="selected">6e A</option>`)
	assert.Contains(t, out, `type="checkbox" name="actif" value="true" checked="checked"`)
	assert.Contains(t, out, `action="/modal/cancel"`)
}

func TestModal_Details(t *testing.T) {
	view := sampleView()
	view.Modal = core.ModalView{
		Kind:      core.ModalDetails,
		ItemID:    "1",
		ItemLabel: "Aminata Diallo",
		Details:   []core.DetailView{{Label: "Classe", Value: "6A"}},
	}
	out := render(t, view, nil)

	assert.Contains(t, out, "<dt>Classe</dt><dd>6A</dd>")
	assert.Contains(t, out, `action="/modal/edit"`)
	assert.Contains(t, out, `action="/modal/details/close"`)
}

func TestModal_BusyHidesActions(t *testing.T) {
	view := sampleView()
	view.Modal = core.ModalView{Kind: core.ModalDeleteConfirm, ItemID: "1", ItemLabel: "Aminata Diallo"}
	out := render(t, view, nil)
	assert.Contains(t, out, `action="/modal/delete/confirm"`)

	view.Busy = true
	out = render(t, view, nil)
	assert.NotContains(t, out, `action="/modal/delete/confirm"`)
	assert.Contains(t, out, "Suppression en cours")

	view.Modal = core.ModalView{Kind: core.ModalImport, ImportKind: "élèves"}
	out = render(t, view, nil)
	assert.Contains(t, out, "<h2>Importer des élèves</h2>")
	assert.NotContains(t, out, `enctype="multipart/form-data"`)
}

func TestSections_RenderOnTheirOwn(t *testing.T) {
	view := sampleView()

	var buf bytes.Buffer
	require.NoError(t, Pager(view).Render(context.Background(), &buf))
	assert.True(t, strings.HasPrefix(buf.String(), `<div class="pager">`), buf.String())
	assert.Contains(t, buf.String(), "Page 1 sur 1 · 2 élément(s)")
	assert.NotContains(t, buf.String(), "<!DOCTYPE html>")

	buf.Reset()
	require.NoError(t, TabBar(view.Tabs).Render(context.Background(), &buf))
	assert.Equal(t, 2, strings.Count(buf.String(), `<a href="/tabs/`))

	buf.Reset()
	require.NoError(t, Modal(view).Render(context.Background(), &buf))
	assert.Empty(t, buf.String())
}

func TestPage_SectionsInOrder(t *testing.T) {
	view := sampleView()
	view.Modal = core.ModalView{Kind: core.ModalImport, ImportKind: "élèves"}
	out := render(t, view, []core.Notification{{Kind: core.NotifySuccess, Title: "Import réussi"}})

	order := []string{`class="toast success"`, `<nav class="tabs">`, `action="/query"`, "<table>", `<div class="pager">`, `role="dialog"`, "</body></html>"}
	last := -1
	for _, marker := range order {
		i := strings.Index(out, marker)
		require.Greater(t, i, last, marker)
		last = i
	}
}

func TestPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Page(sampleView(), nil).Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
