package school

import (
	"fmt"

	"github.com/JonMunkholm/schooladmin/internal/core"
	"github.com/JonMunkholm/schooladmin/internal/spreadsheet"
	"github.com/JonMunkholm/schooladmin/internal/store"
)

// Options tunes the generated tabs.
type Options struct {
	// ExportFormat is the file type produced by every tab's export action.
	ExportFormat spreadsheet.Format
}

// ParseExportFormat maps a configuration value ("xlsx" or "csv") to a format.
func ParseExportFormat(s string) (spreadsheet.Format, error) {
	switch s {
	case "", "xlsx":
		return spreadsheet.FormatXLSX, nil
	case "csv":
		return spreadsheet.FormatCSV, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func exporter(format spreadsheet.Format, columns []core.Column) core.Exporter {
	if format == spreadsheet.FormatCSV {
		return spreadsheet.NewCSVExporter(columns)
	}
	return spreadsheet.NewXLSXExporter(columns)
}

// importer wires a store to its form with header aliases for spreadsheets.
func importer[E core.Entity](m *store.Memory[E], form core.Form, aliases map[string][]string) core.ImportHandler {
	return store.Importer(m, form, spreadsheet.HeaderMapper(aliases))
}

// RegisterTabs adds the school tabs to reg in display order.
func RegisterTabs(reg *core.Registry, s *Stores, opts Options) error {
	tabs := []core.Tab{
		studentTab(s.Students, opts),
		paymentTab(s.Payments, opts),
		roomTab(s.Rooms, opts),
		staffTab(s.Staff, opts),
		feeTab(s.Fees, opts),
		libraryTab(s.Library, opts),
		gradeTab(s.Grades, opts),
	}
	for _, tab := range tabs {
		if err := reg.Register(tab); err != nil {
			return fmt.Errorf("register %s: %w", tab.ID, err)
		}
	}
	return nil
}

func studentTab(m *store.Memory[Student], opts Options) core.Tab {
	columns := []core.Column{
		{Key: "nom", Label: "Nom complet", Render: core.RenderAs(Student.FullName)},
		{Key: "classe", Label: "Classe"},
		{Key: "sexe", Label: "Sexe"},
		{Key: "date_naissance", Label: "Né(e) le", Render: core.RenderAs(func(s Student) string { return formatDate(s.DateNaissance) })},
		{Key: "tuteur", Label: "Tuteur"},
		{Key: "statut", Label: "Statut", Render: core.RenderAs(func(s Student) string { return optionLabel(studentStatuses, s.Statut) })},
	}
	return core.Tab{
		ID:           "eleves",
		Label:        "Élèves",
		Icon:         "users",
		Columns:      columns,
		SearchFields: []string{"nom", "prenom", "classe", "tuteur", "telephone"},
		Filters: []core.FilterDescriptor{
			{Key: "classe", Kind: core.FilterSelect, Placeholder: "Toutes les classes", Options: Classes},
			{Key: "sexe", Kind: core.FilterSelect, Placeholder: "Tous", Options: sexes},
			{Key: "statut", Kind: core.FilterSelect, Placeholder: "Tous les statuts", Options: studentStatuses},
		},
		Form:        studentForm,
		Store:       m,
		CreateLabel: "Ajouter un élève",
		Exporter:    exporter(opts.ExportFormat, columns),
		ImportKind:  "élèves",
		Import: importer(m, studentForm, map[string][]string{
			"nom":            {"nom de famille"},
			"prenom":         {"prénom", "prénoms"},
			"sexe":           {"genre"},
			"date_naissance": {"date de naissance", "né le", "née le", "naissance"},
			"classe":         {"niveau"},
			"tuteur":         {"parent", "responsable"},
			"telephone":      {"téléphone", "tel", "tél"},
			"statut":         nil,
		}),
	}
}

func paymentTab(m *store.Memory[Payment], opts Options) core.Tab {
	columns := []core.Column{
		{Key: "reference", Label: "Référence"},
		{Key: "eleve", Label: "Élève"},
		{Key: "classe", Label: "Classe"},
		{Key: "montant", Label: "Montant", Render: core.RenderAs(func(p Payment) string { return formatMoney(p.Montant) })},
		{Key: "date", Label: "Date", Render: core.RenderAs(func(p Payment) string { return formatDate(p.Date) })},
		{Key: "mode", Label: "Mode", Render: core.RenderAs(func(p Payment) string { return optionLabel(paymentModes, p.Mode) })},
		{Key: "statut", Label: "Statut", Render: core.RenderAs(func(p Payment) string { return optionLabel(paymentStatuses, p.Statut) })},
	}
	return core.Tab{
		ID:           "paiements",
		Label:        "Paiements",
		Icon:         "credit-card",
		Columns:      columns,
		SearchFields: []string{"eleve", "reference", "classe"},
		Filters: []core.FilterDescriptor{
			{Key: "statut", Kind: core.FilterSelect, Placeholder: "Tous les statuts", Options: paymentStatuses},
			{Key: "mode", Kind: core.FilterSelect, Placeholder: "Tous les modes", Options: paymentModes},
			{
				Key:         "montant",
				Kind:        core.FilterRange,
				Placeholder: "Tous les montants",
				Options: []core.FilterOption{
					{Value: "-100", Label: "Moins de 100 €"},
					{Value: "100-500", Label: "100 € à 500 €"},
					{Value: "500-", Label: "500 € et plus"},
				},
				Predicate: core.RangePredicate("montant"),
			},
		},
		Form:        paymentForm,
		Store:       m,
		CreateLabel: "Enregistrer un paiement",
		Exporter:    exporter(opts.ExportFormat, columns),
		ImportKind:  "paiements",
		Import: importer(m, paymentForm, map[string][]string{
			"eleve":     {"élève", "nom"},
			"classe":    nil,
			"montant":   {"somme", "montant payé"},
			"date":      {"date de paiement"},
			"mode":      {"mode de paiement", "moyen"},
			"statut":    nil,
			"reference": {"référence", "ref", "réf"},
		}),
	}
}

func roomTab(m *store.Memory[Room], opts Options) core.Tab {
	columns := []core.Column{
		{Key: "nom", Label: "Nom"},
		{Key: "batiment", Label: "Bâtiment"},
		{Key: "type", Label: "Type", Render: core.RenderAs(func(r Room) string { return optionLabel(roomTypes, r.Type) })},
		{Key: "capacite", Label: "Capacité"},
		{Key: "disponible", Label: "Disponible", Render: core.RenderAs(func(r Room) string { return formatBool(r.Disponible) })},
	}
	return core.Tab{
		ID:           "salles",
		Label:        "Salles",
		Icon:         "door",
		Columns:      columns,
		SearchFields: []string{"nom", "batiment"},
		Filters: []core.FilterDescriptor{
			{Key: "type", Kind: core.FilterSelect, Placeholder: "Tous les types", Options: roomTypes},
			{Key: "disponible", Kind: core.FilterSelect, Placeholder: "Disponibilité", Options: yesNo},
			{
				Key:         "capacite",
				Kind:        core.FilterRange,
				Placeholder: "Toutes capacités",
				Options: []core.FilterOption{
					{Value: "-20", Label: "Moins de 20 places"},
					{Value: "20-35", Label: "20 à 34 places"},
					{Value: "35-", Label: "35 places et plus"},
				},
				Predicate: core.RangePredicate("capacite"),
			},
		},
		Form:        roomForm,
		Store:       m,
		CreateLabel: "Ajouter une salle",
		Exporter:    exporter(opts.ExportFormat, columns),
		ImportKind:  "salles",
		Import: importer(m, roomForm, map[string][]string{
			"nom":        {"salle"},
			"batiment":   {"bâtiment"},
			"type":       nil,
			"capacite":   {"capacité", "places"},
			"disponible": nil,
		}),
	}
}

func staffTab(m *store.Memory[Staff], opts Options) core.Tab {
	columns := []core.Column{
		{Key: "nom", Label: "Nom complet", Render: core.RenderAs(Staff.FullName)},
		{Key: "poste", Label: "Poste", Render: core.RenderAs(func(s Staff) string { return optionLabel(staffRoles, s.Poste) })},
		{Key: "matiere", Label: "Matière"},
		{Key: "email", Label: "E-mail"},
		{Key: "contrat", Label: "Contrat"},
	}
	return core.Tab{
		ID:           "personnel",
		Label:        "Personnel",
		Icon:         "briefcase",
		Columns:      columns,
		SearchFields: []string{"nom", "prenom", "email", "matiere"},
		Filters: []core.FilterDescriptor{
			{Key: "poste", Kind: core.FilterSelect, Placeholder: "Tous les postes", Options: staffRoles},
			{Key: "contrat", Kind: core.FilterSelect, Placeholder: "Tous les contrats", Options: contracts},
		},
		Form:        staffForm,
		Store:       m,
		CreateLabel: "Ajouter un membre du personnel",
		Exporter:    exporter(opts.ExportFormat, columns),
		ImportKind:  "membres du personnel",
		Import: importer(m, staffForm, map[string][]string{
			"nom":           nil,
			"prenom":        {"prénom"},
			"poste":         {"fonction"},
			"matiere":       {"matière", "discipline"},
			"email":         {"e-mail", "courriel", "mail"},
			"telephone":     {"téléphone", "tel"},
			"contrat":       nil,
			"date_embauche": {"date d'embauche", "embauche"},
			"salaire":       nil,
		}),
	}
}

func feeTab(m *store.Memory[Fee], opts Options) core.Tab {
	columns := []core.Column{
		{Key: "libelle", Label: "Libellé"},
		{Key: "classe", Label: "Classe"},
		{Key: "montant", Label: "Montant", Render: core.RenderAs(func(f Fee) string { return formatMoney(f.Montant) })},
		{Key: "trimestre", Label: "Trimestre"},
		{Key: "echeance", Label: "Échéance", Render: core.RenderAs(func(f Fee) string { return formatDate(f.Echeance) })},
		{Key: "obligatoire", Label: "Obligatoire", Render: core.RenderAs(func(f Fee) string { return formatBool(f.Obligatoire) })},
	}
	return core.Tab{
		ID:           "frais",
		Label:        "Frais scolaires",
		Icon:         "receipt",
		Columns:      columns,
		SearchFields: []string{"libelle", "classe"},
		Filters: []core.FilterDescriptor{
			{Key: "classe", Kind: core.FilterSelect, Placeholder: "Toutes les classes", Options: Classes},
			{Key: "trimestre", Kind: core.FilterSelect, Placeholder: "Tous les trimestres", Options: Trimestres},
			{Key: "obligatoire", Kind: core.FilterSelect, Placeholder: "Obligatoire ?", Options: yesNo},
		},
		Form:        feeForm,
		Store:       m,
		CreateLabel: "Ajouter des frais",
		Exporter:    exporter(opts.ExportFormat, columns),
		ImportKind:  "frais",
		Import: importer(m, feeForm, map[string][]string{
			"libelle":     {"libellé", "intitulé"},
			"classe":      nil,
			"montant":     nil,
			"trimestre":   nil,
			"echeance":    {"échéance", "date limite"},
			"obligatoire": nil,
		}),
	}
}

func libraryTab(m *store.Memory[LibraryItem], opts Options) core.Tab {
	columns := []core.Column{
		{Key: "titre", Label: "Titre"},
		{Key: "auteur", Label: "Auteur"},
		{Key: "type", Label: "Type", Render: core.RenderAs(func(l LibraryItem) string { return optionLabel(libraryTypes, l.Type) })},
		{Key: "exemplaires", Label: "Exemplaires"},
		{Key: "statut", Label: "Statut", Render: core.RenderAs(func(l LibraryItem) string { return optionLabel(libraryStatuses, l.Statut) })},
	}
	return core.Tab{
		ID:           "bibliotheque",
		Label:        "Bibliothèque",
		Icon:         "book",
		Columns:      columns,
		SearchFields: []string{"titre", "auteur", "isbn"},
		Filters: []core.FilterDescriptor{
			{Key: "type", Kind: core.FilterSelect, Placeholder: "Tous les types", Options: libraryTypes},
			{Key: "statut", Kind: core.FilterSelect, Placeholder: "Tous les statuts", Options: libraryStatuses},
		},
		Form:        libraryForm,
		Store:       m,
		CreateLabel: "Ajouter un document",
		Exporter:    exporter(opts.ExportFormat, columns),
		ImportKind:  "documents",
		Import: importer(m, libraryForm, map[string][]string{
			"titre":       nil,
			"auteur":      {"auteurs"},
			"type":        nil,
			"isbn":        nil,
			"exemplaires": {"quantité", "qte"},
			"statut":      nil,
		}),
	}
}

func gradeTab(m *store.Memory[Grade], opts Options) core.Tab {
	columns := []core.Column{
		{Key: "eleve", Label: "Élève"},
		{Key: "classe", Label: "Classe"},
		{Key: "matiere", Label: "Matière"},
		{Key: "note", Label: "Note", Render: core.RenderAs(func(g Grade) string { return formatMark(g.Note) })},
		{Key: "coefficient", Label: "Coef."},
		{Key: "trimestre", Label: "Trimestre"},
	}
	return core.Tab{
		ID:           "notes",
		Label:        "Notes",
		Icon:         "chart",
		Columns:      columns,
		SearchFields: []string{"eleve", "matiere", "appreciation"},
		Filters: []core.FilterDescriptor{
			{Key: "classe", Kind: core.FilterSelect, Placeholder: "Toutes les classes", Options: Classes},
			{Key: "matiere", Kind: core.FilterSelect, Placeholder: "Toutes les matières", Options: Matieres},
			{Key: "trimestre", Kind: core.FilterSelect, Placeholder: "Tous les trimestres", Options: Trimestres},
			{
				Key:         "note",
				Kind:        core.FilterRange,
				Placeholder: "Toutes les notes",
				Options: []core.FilterOption{
					{Value: "-10", Label: "Moins de 10"},
					{Value: "10-14", Label: "De 10 à moins de 14"},
					{Value: "14-", Label: "14 et plus"},
				},
				Predicate: core.RangePredicate("note"),
			},
		},
		Form:        gradeForm,
		Store:       m,
		CreateLabel: "Saisir une note",
		Exporter:    exporter(opts.ExportFormat, columns),
		ImportKind:  "notes",
		Import: importer(m, gradeForm, map[string][]string{
			"eleve":        {"élève", "nom"},
			"classe":       nil,
			"matiere":      {"matière", "discipline"},
			"note":         {"note /20", "note sur 20"},
			"coefficient":  {"coef", "coef."},
			"trimestre":    nil,
			"appreciation": {"appréciation", "commentaire"},
		}),
	}
}

// Open loads the dataset at path (empty for the built-in sample), seeds new
// stores with it and returns a registry holding every tab.
func Open(path, exportFormat string) (*core.Registry, *Stores, error) {
	format, err := ParseExportFormat(exportFormat)
	if err != nil {
		return nil, nil, err
	}
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, nil, err
	}
	stores := NewStores()
	if err := stores.Seed(ds); err != nil {
		return nil, nil, err
	}

	reg := core.NewRegistry()
	if err := RegisterTabs(reg, stores, Options{ExportFormat: format}); err != nil {
		return nil, nil, err
	}
	return reg, stores, nil
}
