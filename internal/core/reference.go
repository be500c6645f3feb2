package core

import (
	"fmt"
	"time"
)

// Portuguese month names for reference display. The API speaks pt-BR
// and the lists show "Março de 2024" style labels.
var monthNamesPT = [13]string{
	"",
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Reference is a bill's year-month period.
type Reference struct {
	Year  int
	Month time.Month
}

// ParseReference parses the wire format "YYYY-MM".
func ParseReference(s string) (Reference, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Reference{}, fmt.Errorf("parse reference %q: %w", s, err)
	}
	return Reference{Year: t.Year(), Month: t.Month()}, nil
}

// CurrentReference returns the running month in wire format, used as
// the default for new bills.
func CurrentReference() string {
	return time.Now().Format("2006-01")
}

// String renders the wire format.
func (r Reference) String() string {
	return fmt.Sprintf("%04d-%02d", r.Year, int(r.Month))
}

// Display renders the capitalized localized label, e.g. "Março de 2024".
func (r Reference) Display() string {
	return fmt.Sprintf("%s de %d", monthNamesPT[int(r.Month)], r.Year)
}

// DisplayReference formats a raw reference for the list view. Missing
// and unparsable values get fixed placeholders instead of breaking the
// row.
func DisplayReference(s string) string {
	if s == "" {
		return "Mês/Ano não definido"
	}
	r, err := ParseReference(s)
	if err != nil {
		return "Erro ao definir referência"
	}
	return r.Display()
}
