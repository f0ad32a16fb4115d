package core

// error_messages.go maps technical errors to the messages shown in toasts
// and API responses. Each message carries a code users can quote to support.
//
// Codes by category:
//
//	VAL001-VAL099   form and import validation
//	ENT001-ENT099   entity lookups and concurrent effects
//	UI001-UI099     dialog transitions and filter controls
//	TAB001-TAB099   tab configuration and lookup
//	IMP001-IMP099   import dialog and import slots
//	EXP001-EXP099   export
//	FILE001-FILE099 uploaded spreadsheets
//	REQ001-REQ099   cancelled or expired requests
//	RATE001         request throttling
//	ERR000          fallback; check the logs for the technical error
//
// Sentinel errors are matched first with errors.Is. Remaining errors are
// matched case-insensitively on their text; the first pattern wins, so
// specific patterns come before general ones.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorSentinel struct {
	target error
	msg    UserMessage
}

var errorSentinels = []errorSentinel{
	{ErrItemNotFound, UserMessage{
		Message: "Cet élément n'existe plus",
		Action:  "Actualisez la liste",
		Code:    "ENT001",
	}},
	{ErrBusy, UserMessage{
		Message: "Une opération est déjà en cours",
		Action:  "Patientez jusqu'à la fin de l'opération",
		Code:    "ENT003",
	}},
	{ErrInvalidTransition, UserMessage{
		Message: "Cette action n'est pas disponible dans la fenêtre ouverte",
		Action:  "Fermez la fenêtre et recommencez",
		Code:    "UI001",
	}},
	{ErrUnknownFilter, UserMessage{
		Message: "Filtre inconnu",
		Action:  "Réinitialisez les filtres",
		Code:    "UI002",
	}},
	{ErrTabNotFound, UserMessage{
		Message: "Onglet introuvable",
		Action:  "Choisissez un onglet dans la barre",
		Code:    "TAB001",
	}},
	{ErrDuplicateTab, UserMessage{
		Message: "Onglet déclaré deux fois",
		Action:  "Vérifiez la configuration des onglets",
		Code:    "TAB002",
	}},
	{ErrInvalidTab, UserMessage{
		Message: "Configuration d'onglet invalide",
		Action:  "Vérifiez la configuration des onglets",
		Code:    "TAB002",
	}},
	{ErrEmptyRegistry, UserMessage{
		Message: "Aucun onglet configuré",
		Action:  "Contactez l'administrateur",
		Code:    "TAB003",
	}},
	{ErrImportUnsupported, UserMessage{
		Message: "L'import n'est pas disponible pour cet onglet",
		Code:    "IMP001",
	}},
	{ErrTooManyImports, UserMessage{
		Message: "Trop d'imports en cours",
		Action:  "Réessayez dans quelques instants",
		Code:    "IMP002",
	}},
	{ErrExportUnsupported, UserMessage{
		Message: "L'export n'est pas disponible pour cet onglet",
		Code:    "EXP001",
	}},
	{context.Canceled, UserMessage{
		Message: "La requête a été annulée",
		Action:  "Réessayez",
		Code:    "REQ001",
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "La requête a expiré",
		Action:  "Réessayez avec un fichier plus petit",
		Code:    "REQ002",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Validation
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Date invalide",
			Action:  "Utilisez le format AAAA-MM-JJ",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Nombre invalide",
			Action:  "Saisissez un nombre sans symbole monétaire",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Champ obligatoire vide",
			Action:  "Remplissez tous les champs obligatoires",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Colonne obligatoire absente du fichier",
			Action:  "Vérifiez les en-têtes du fichier",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid enum",
		msg: UserMessage{
			Message: "Valeur hors de la liste autorisée",
			Action:  "Choisissez une valeur proposée",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid email",
		msg: UserMessage{
			Message: "Adresse e-mail invalide",
			Action:  "Vérifiez l'adresse saisie",
			Code:    "VAL006",
		},
	},

	// Entities
	{
		pattern: "already exists",
		msg: UserMessage{
			Message: "Un élément avec cet identifiant existe déjà",
			Action:  "Modifiez l'élément existant",
			Code:    "ENT002",
		},
	},

	// Import
	{
		pattern: "import row",
		msg: UserMessage{
			Message: "Une ligne du fichier est invalide",
			Action:  "Corrigez la ligne indiquée puis réimportez",
			Code:    "IMP003",
		},
	},

	// Files
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Fichier trop volumineux",
			Action:  "Découpez le fichier en plusieurs parties",
			Code:    "FILE001",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Format de fichier non pris en charge",
			Action:  "Importez un fichier .csv ou .xlsx",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "Le fichier n'est pas un CSV valide",
			Action:  "Vérifiez les séparateurs et le nombre de colonnes",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid xlsx",
		msg: UserMessage{
			Message: "Le fichier n'est pas un classeur Excel valide",
			Action:  "Réenregistrez le fichier au format .xlsx",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "Le fichier contient des caractères invalides",
			Action:  "Enregistrez le fichier en UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "Aucun fichier sélectionné",
			Action:  "Choisissez un fichier à importer",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "Le fichier est vide",
			Action:  "Importez un fichier contenant des lignes",
			Code:    "FILE005",
		},
	},

	// Throttling
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Trop de requêtes",
			Action:  "Patientez un instant avant de réessayer",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "Une erreur inattendue est survenue",
	Action:  "Réessayez ou contactez le support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message.
// Returns the zero UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range errorSentinels {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	if msg.Action == "" {
		return fmt.Sprintf("%s (Code: %s)", msg.Message, msg.Code)
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
