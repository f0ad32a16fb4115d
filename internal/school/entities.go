// Package school defines the entities managed by the admin console and the
// tab configuration of each one.
package school

import (
	"strconv"
	"time"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// Student is an enrolled pupil.
type Student struct {
	ID            int       `json:"id" yaml:"id"`
	Nom           string    `json:"nom" yaml:"nom"`
	Prenom        string    `json:"prenom" yaml:"prenom"`
	Sexe          string    `json:"sexe" yaml:"sexe"`
	DateNaissance time.Time `json:"date_naissance" yaml:"date_naissance"`
	Classe        string    `json:"classe" yaml:"classe"`
	Tuteur        string    `json:"tuteur" yaml:"tuteur"`
	Telephone     string    `json:"telephone" yaml:"telephone"`
	Statut        string    `json:"statut" yaml:"statut"`
}

func (s Student) EntityID() string { return strconv.Itoa(s.ID) }

// FullName is "Prenom Nom".
func (s Student) FullName() string { return joinName(s.Prenom, s.Nom) }

// Payment is a tuition payment received for a student.
type Payment struct {
	ID        int       `json:"id" yaml:"id"`
	Eleve     string    `json:"eleve" yaml:"eleve"`
	Classe    string    `json:"classe" yaml:"classe"`
	Montant   float64   `json:"montant" yaml:"montant"`
	Date      time.Time `json:"date" yaml:"date"`
	Mode      string    `json:"mode" yaml:"mode"`
	Statut    string    `json:"statut" yaml:"statut"`
	Reference string    `json:"reference" yaml:"reference"`
}

func (p Payment) EntityID() string { return strconv.Itoa(p.ID) }

// Room is a bookable room of the school.
type Room struct {
	ID         int    `json:"id" yaml:"id"`
	Nom        string `json:"nom" yaml:"nom"`
	Batiment   string `json:"batiment" yaml:"batiment"`
	Type       string `json:"type" yaml:"type"`
	Capacite   int    `json:"capacite" yaml:"capacite"`
	Disponible bool   `json:"disponible" yaml:"disponible"`
}

func (r Room) EntityID() string { return strconv.Itoa(r.ID) }

// Staff is a member of personnel.
type Staff struct {
	ID           int       `json:"id" yaml:"id"`
	Nom          string    `json:"nom" yaml:"nom"`
	Prenom       string    `json:"prenom" yaml:"prenom"`
	Poste        string    `json:"poste" yaml:"poste"`
	Matiere      string    `json:"matiere" yaml:"matiere"`
	Email        string    `json:"email" yaml:"email"`
	Telephone    string    `json:"telephone" yaml:"telephone"`
	Contrat      string    `json:"contrat" yaml:"contrat"`
	DateEmbauche time.Time `json:"date_embauche" yaml:"date_embauche"`
	Salaire      float64   `json:"salaire" yaml:"salaire"`
}

func (s Staff) EntityID() string { return strconv.Itoa(s.ID) }

// FullName is "Prenom Nom".
func (s Staff) FullName() string { return joinName(s.Prenom, s.Nom) }

// Fee is a charge billed to the families of a class.
type Fee struct {
	ID          int       `json:"id" yaml:"id"`
	Libelle     string    `json:"libelle" yaml:"libelle"`
	Classe      string    `json:"classe" yaml:"classe"`
	Montant     float64   `json:"montant" yaml:"montant"`
	Trimestre   string    `json:"trimestre" yaml:"trimestre"`
	Echeance    time.Time `json:"echeance" yaml:"echeance"`
	Obligatoire bool      `json:"obligatoire" yaml:"obligatoire"`
}

func (f Fee) EntityID() string { return strconv.Itoa(f.ID) }

// LibraryItem is a lendable document. Items are keyed by UUID because they
// are catalogued from several sources.
type LibraryItem struct {
	ID          string `json:"id" yaml:"id"`
	Titre       string `json:"titre" yaml:"titre"`
	Auteur      string `json:"auteur" yaml:"auteur"`
	Type        string `json:"type" yaml:"type"`
	ISBN        string `json:"isbn" yaml:"isbn"`
	Exemplaires int    `json:"exemplaires" yaml:"exemplaires"`
	Statut      string `json:"statut" yaml:"statut"`
}

func (l LibraryItem) EntityID() string { return l.ID }

// Grade is one mark of a student in a subject.
type Grade struct {
	ID           int     `json:"id" yaml:"id"`
	Eleve        string  `json:"eleve" yaml:"eleve"`
	Classe       string  `json:"classe" yaml:"classe"`
	Matiere      string  `json:"matiere" yaml:"matiere"`
	Note         float64 `json:"note" yaml:"note"`
	Coefficient  float64 `json:"coefficient" yaml:"coefficient"`
	Trimestre    string  `json:"trimestre" yaml:"trimestre"`
	Appreciation string  `json:"appreciation" yaml:"appreciation"`
}

func (g Grade) EntityID() string { return strconv.Itoa(g.ID) }

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// Value lists shared by forms and filters.
var (
	Classes = options("6A", "6B", "5A", "5B", "4A", "4B", "3A", "3B")

	Trimestres = []core.FilterOption{
		{Value: "T1", Label: "1er trimestre"},
		{Value: "T2", Label: "2e trimestre"},
		{Value: "T3", Label: "3e trimestre"},
	}

	Matieres = options("Mathématiques", "Français", "Anglais", "Histoire-Géographie", "SVT", "Physique-Chimie", "EPS")

	studentStatuses = []core.FilterOption{
		{Value: "actif", Label: "Actif"},
		{Value: "inactif", Label: "Inactif"},
		{Value: "transfere", Label: "Transféré"},
	}
	sexes = []core.FilterOption{
		{Value: "F", Label: "Fille"},
		{Value: "M", Label: "Garçon"},
	}
	paymentModes = []core.FilterOption{
		{Value: "especes", Label: "Espèces"},
		{Value: "cheque", Label: "Chèque"},
		{Value: "virement", Label: "Virement"},
		{Value: "carte", Label: "Carte bancaire"},
	}
	paymentStatuses = []core.FilterOption{
		{Value: "paye", Label: "Payé"},
		{Value: "partiel", Label: "Partiel"},
		{Value: "impaye", Label: "Impayé"},
	}
	roomTypes = []core.FilterOption{
		{Value: "classe", Label: "Salle de classe"},
		{Value: "laboratoire", Label: "Laboratoire"},
		{Value: "informatique", Label: "Salle informatique"},
		{Value: "gymnase", Label: "Gymnase"},
	}
	staffRoles = []core.FilterOption{
		{Value: "enseignant", Label: "Enseignant"},
		{Value: "administration", Label: "Administration"},
		{Value: "surveillance", Label: "Surveillance"},
		{Value: "entretien", Label: "Entretien"},
	}
	contracts = options("CDI", "CDD", "Vacataire")

	libraryTypes = []core.FilterOption{
		{Value: "livre", Label: "Livre"},
		{Value: "manuel", Label: "Manuel scolaire"},
		{Value: "revue", Label: "Revue"},
		{Value: "dvd", Label: "DVD"},
	}
	libraryStatuses = []core.FilterOption{
		{Value: "disponible", Label: "Disponible"},
		{Value: "emprunte", Label: "Emprunté"},
		{Value: "perdu", Label: "Perdu"},
	}
	yesNo = []core.FilterOption{
		{Value: "true", Label: "Oui"},
		{Value: "false", Label: "Non"},
	}
)

func options(values ...string) []core.FilterOption {
	out := make([]core.FilterOption, len(values))
	for i, v := range values {
		out[i] = core.FilterOption{Value: v, Label: v}
	}
	return out
}

// optionLabel returns the label of value in opts, or value itself.
func optionLabel(opts []core.FilterOption, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
