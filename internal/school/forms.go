package school

import (
	"strconv"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

var studentForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "nom", Label: "Nom", Required: true},
	{Name: "prenom", Label: "Prénom", Required: true},
	{Name: "sexe", Label: "Sexe", Type: core.FieldEnum, Options: sexes},
	{Name: "date_naissance", Label: "Date de naissance", Type: core.FieldDate},
	{Name: "classe", Label: "Classe", Type: core.FieldEnum, Required: true, Options: Classes},
	{Name: "tuteur", Label: "Tuteur"},
	{Name: "telephone", Label: "Téléphone"},
	{Name: "statut", Label: "Statut", Type: core.FieldEnum, Options: studentStatuses, Default: "actif"},
}}

var paymentForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "eleve", Label: "Élève", Required: true},
	{Name: "classe", Label: "Classe", Type: core.FieldEnum, Options: Classes},
	{Name: "montant", Label: "Montant", Type: core.FieldNumeric, Required: true},
	{Name: "date", Label: "Date", Type: core.FieldDate, Required: true},
	{Name: "mode", Label: "Mode de paiement", Type: core.FieldEnum, Options: paymentModes, Default: "especes"},
	{Name: "statut", Label: "Statut", Type: core.FieldEnum, Options: paymentStatuses, Default: "paye"},
	{Name: "reference", Label: "Référence"},
}}

var roomForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "nom", Label: "Nom", Required: true},
	{Name: "batiment", Label: "Bâtiment"},
	{Name: "type", Label: "Type", Type: core.FieldEnum, Options: roomTypes, Default: "classe"},
	{Name: "capacite", Label: "Capacité", Type: core.FieldNumeric, Required: true},
	{Name: "disponible", Label: "Disponible", Type: core.FieldBool, Default: "true"},
}}

var staffForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "nom", Label: "Nom", Required: true},
	{Name: "prenom", Label: "Prénom", Required: true},
	{Name: "poste", Label: "Poste", Type: core.FieldEnum, Required: true, Options: staffRoles},
	{Name: "matiere", Label: "Matière", Type: core.FieldEnum, Options: Matieres},
	{Name: "email", Label: "E-mail", Type: core.FieldEmail},
	{Name: "telephone", Label: "Téléphone"},
	{Name: "contrat", Label: "Contrat", Type: core.FieldEnum, Options: contracts, Default: "CDI"},
	{Name: "date_embauche", Label: "Date d'embauche", Type: core.FieldDate},
	{Name: "salaire", Label: "Salaire", Type: core.FieldNumeric},
}}

var feeForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "libelle", Label: "Libellé", Required: true},
	{Name: "classe", Label: "Classe", Type: core.FieldEnum, Options: Classes},
	{Name: "montant", Label: "Montant", Type: core.FieldNumeric, Required: true},
	{Name: "trimestre", Label: "Trimestre", Type: core.FieldEnum, Options: Trimestres},
	{Name: "echeance", Label: "Échéance", Type: core.FieldDate},
	{Name: "obligatoire", Label: "Obligatoire", Type: core.FieldBool, Default: "true"},
}}

var libraryForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "titre", Label: "Titre", Required: true},
	{Name: "auteur", Label: "Auteur"},
	{Name: "type", Label: "Type", Type: core.FieldEnum, Options: libraryTypes, Default: "livre"},
	{Name: "isbn", Label: "ISBN"},
	{Name: "exemplaires", Label: "Exemplaires", Type: core.FieldNumeric, Default: "1"},
	{Name: "statut", Label: "Statut", Type: core.FieldEnum, Options: libraryStatuses, Default: "disponible"},
}}

var gradeForm = core.FormSpec{Specs: []core.FieldSpec{
	{Name: "eleve", Label: "Élève", Required: true},
	{Name: "classe", Label: "Classe", Type: core.FieldEnum, Options: Classes},
	{Name: "matiere", Label: "Matière", Type: core.FieldEnum, Required: true, Options: Matieres},
	{Name: "note", Label: "Note /20", Type: core.FieldNumeric, Required: true},
	{Name: "coefficient", Label: "Coefficient", Type: core.FieldNumeric, Default: "1"},
	{Name: "trimestre", Label: "Trimestre", Type: core.FieldEnum, Options: Trimestres},
	{Name: "appreciation", Label: "Appréciation"},
}}

// The build functions turn form data already checked by the matching
// FormSpec into entities. Type errors can still surface when data did not
// go through Decode.

func buildStudent(id string, d core.FormData) (Student, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Student{}, err
	}
	born, err := d.Date("date_naissance")
	if err != nil {
		return Student{}, err
	}
	return Student{
		ID:            n,
		Nom:           d.Get("nom"),
		Prenom:        d.Get("prenom"),
		Sexe:          d.Get("sexe"),
		DateNaissance: born,
		Classe:        d.Get("classe"),
		Tuteur:        d.Get("tuteur"),
		Telephone:     d.Get("telephone"),
		Statut:        orDefault(d.Get("statut"), "actif"),
	}, nil
}

func buildPayment(id string, d core.FormData) (Payment, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Payment{}, err
	}
	amount, err := d.Float("montant")
	if err != nil {
		return Payment{}, err
	}
	date, err := d.Date("date")
	if err != nil {
		return Payment{}, err
	}
	return Payment{
		ID:        n,
		Eleve:     d.Get("eleve"),
		Classe:    d.Get("classe"),
		Montant:   amount,
		Date:      date,
		Mode:      orDefault(d.Get("mode"), "especes"),
		Statut:    orDefault(d.Get("statut"), "paye"),
		Reference: d.Get("reference"),
	}, nil
}

func buildRoom(id string, d core.FormData) (Room, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Room{}, err
	}
	capacity, err := d.Int("capacite")
	if err != nil {
		return Room{}, err
	}
	return Room{
		ID:         n,
		Nom:        d.Get("nom"),
		Batiment:   d.Get("batiment"),
		Type:       orDefault(d.Get("type"), "classe"),
		Capacite:   capacity,
		Disponible: d.Bool("disponible"),
	}, nil
}

func buildStaff(id string, d core.FormData) (Staff, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Staff{}, err
	}
	hired, err := d.Date("date_embauche")
	if err != nil {
		return Staff{}, err
	}
	salary, err := d.Float("salaire")
	if err != nil {
		return Staff{}, err
	}
	return Staff{
		ID:           n,
		Nom:          d.Get("nom"),
		Prenom:       d.Get("prenom"),
		Poste:        d.Get("poste"),
		Matiere:      d.Get("matiere"),
		Email:        d.Get("email"),
		Telephone:    d.Get("telephone"),
		Contrat:      orDefault(d.Get("contrat"), "CDI"),
		DateEmbauche: hired,
		Salaire:      salary,
	}, nil
}

func buildFee(id string, d core.FormData) (Fee, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Fee{}, err
	}
	amount, err := d.Float("montant")
	if err != nil {
		return Fee{}, err
	}
	due, err := d.Date("echeance")
	if err != nil {
		return Fee{}, err
	}
	return Fee{
		ID:          n,
		Libelle:     d.Get("libelle"),
		Classe:      d.Get("classe"),
		Montant:     amount,
		Trimestre:   d.Get("trimestre"),
		Echeance:    due,
		Obligatoire: d.Bool("obligatoire"),
	}, nil
}

func buildLibraryItem(id string, d core.FormData) (LibraryItem, error) {
	copies, err := d.Int("exemplaires")
	if err != nil {
		return LibraryItem{}, err
	}
	return LibraryItem{
		ID:          id,
		Titre:       d.Get("titre"),
		Auteur:      d.Get("auteur"),
		Type:        orDefault(d.Get("type"), "livre"),
		ISBN:        d.Get("isbn"),
		Exemplaires: copies,
		Statut:      orDefault(d.Get("statut"), "disponible"),
	}, nil
}

func buildGrade(id string, d core.FormData) (Grade, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Grade{}, err
	}
	mark, err := d.Float("note")
	if err != nil {
		return Grade{}, err
	}
	coef, err := d.Float("coefficient")
	if err != nil {
		return Grade{}, err
	}
	if coef == 0 {
		coef = 1
	}
	return Grade{
		ID:           n,
		Eleve:        d.Get("eleve"),
		Classe:       d.Get("classe"),
		Matiere:      d.Get("matiere"),
		Note:         mark,
		Coefficient:  coef,
		Trimestre:    d.Get("trimestre"),
		Appreciation: d.Get("appreciation"),
	}, nil
}

// replace adapts a build function into an update that keeps the entity id.
func replace[E core.Entity](build func(string, core.FormData) (E, error)) func(E, core.FormData) (E, error) {
	return func(item E, d core.FormData) (E, error) {
		return build(item.EntityID(), d)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
