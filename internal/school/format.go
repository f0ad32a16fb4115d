package school

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// formatMoney renders an amount the French way, e.g. "1 250,50 €".
func formatMoney(v float64) string {
	return printer.Sprintf("%.2f €", v)
}

func formatMark(v float64) string {
	return printer.Sprintf("%.2f", v) + "/20"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatBool(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
