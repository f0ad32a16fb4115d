package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// Modal renders the open dialog of view, if any.
func Modal(view core.SurfaceView) templ.Component {
	return component(func(_ context.Context, h *html) {
		writeModal(h, view)
	})
}

func writeModal(h *html, view core.SurfaceView) {
	m := view.Modal
	if m.Kind == core.ModalNone {
		return
	}

	h.open("div", "class", "modal")
	h.open("div", "class", "dialog", "role", "dialog", "aria-modal", "true")
	switch m.Kind {
	case core.ModalCreate, core.ModalEdit:
		writeFormDialog(h, view)
	case core.ModalDetails:
		writeDetailsDialog(h, m)
	case core.ModalDeleteConfirm:
		writeDeleteDialog(h, m, view.Busy)
	case core.ModalImport:
		writeImportDialog(h, m, view.Busy)
	}
	h.close("div")
	h.close("div")
}

func writeFormDialog(h *html, view core.SurfaceView) {
	m := view.Modal
	title := view.CreateLabel
	if m.Kind == core.ModalEdit {
		title = "Modifier " + m.ItemLabel
	}
	h.element("h2", title)

	h.open("form", "method", "post", "action", "/modal/submit")
	for _, f := range m.Fields {
		writeField(h, f)
	}
	h.open("p")
	if view.Busy {
		h.open("button", "type", "submit", "class", "primary", "disabled", "disabled")
	} else {
		h.open("button", "type", "submit", "class", "primary")
	}
	h.text("Enregistrer")
	h.close("button")
	h.close("p")
	h.close("form")

	h.button("/modal/cancel", "Annuler", "")
}

func writeField(h *html, f core.FormField) {
	label := f.Label
	if f.Required {
		label += " *"
	}
	h.open("label", "for", "field-"+f.Name)
	h.text(label)
	h.close("label")

	id := "field-" + f.Name
	switch f.Type {
	case core.FieldEnum:
		h.open("select", "id", id, "name", f.Name)
		if !f.Required {
			option(h, "", "—", f.Value)
		}
		for _, o := range f.Options {
			option(h, o.Value, o.Label, f.Value)
		}
		h.close("select")
	case core.FieldBool:
		if f.Value == "true" {
			h.open("input", "id", id, "type", "checkbox", "name", f.Name, "value", "true", "checked", "checked")
		} else {
			h.open("input", "id", id, "type", "checkbox", "name", f.Name, "value", "true")
		}
	default:
		attrs := []string{"id", id, "type", f.Type.String(), "name", f.Name, "value", f.Value}
		if f.Type == core.FieldNumeric {
			attrs = append(attrs, "step", "any")
		}
		if f.Required {
			attrs = append(attrs, "required", "required")
		}
		h.open("input", attrs...)
	}
}

func writeDetailsDialog(h *html, m core.ModalView) {
	h.element("h2", m.ItemLabel)
	h.open("dl")
	for _, d := range m.Details {
		h.element("dt", d.Label)
		h.element("dd", d.Value)
	}
	h.close("dl")
	h.button("/modal/edit", "Modifier", "primary")
	h.button("/modal/details/close", "Fermer", "")
}

func writeDeleteDialog(h *html, m core.ModalView, busy bool) {
	h.element("h2", "Confirmer la suppression")
	h.element("p", "Supprimer « "+m.ItemLabel+" » ? Cette action est irréversible.")
	if busy {
		h.element("p", "Suppression en cours…")
		return
	}
	h.button("/modal/delete/confirm", "Supprimer", "danger")
	h.button("/modal/delete/cancel", "Annuler", "")
}

func writeImportDialog(h *html, m core.ModalView, busy bool) {
	h.element("h2", "Importer des "+m.ImportKind)
	h.element("p", "Fichier .csv ou .xlsx. La première ligne contient les en-têtes de colonnes.")
	if busy {
		h.element("p", "Import en cours…")
		return
	}
	h.open("form", "method", "post", "action", "/import", "enctype", "multipart/form-data")
	h.open("input", "type", "file", "name", "file", "accept", ".csv,.xlsx", "required", "required")
	h.element("button", "Importer", "type", "submit", "class", "primary")
	h.close("form")
	h.button("/modal/import/close", "Fermer", "")
}
