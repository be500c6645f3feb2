package core

import (
	"testing"
	"time"
)

func TestParseReference(t *testing.T) {
	r, err := ParseReference("2024-03")
	if err != nil {
		t.Fatalf("ParseReference: %v", err)
	}
	if r.Year != 2024 || r.Month != time.March {
		t.Errorf("got %v-%v, want 2024-March", r.Year, r.Month)
	}

	for _, bad := range []string{"", "2024", "2024-13", "03/2024", "2024-3"} {
		if _, err := ParseReference(bad); err == nil {
			t.Errorf("ParseReference(%q) should fail", bad)
		}
	}
}

func TestDisplayReference(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03", "Março de 2024"},
		{"2023-12", "Dezembro de 2023"},
		{"2024-01", "Janeiro de 2024"},
		{"", "Mês/Ano não definido"},
		{"not-a-month", "Erro ao definir referência"},
	}
	for _, tt := range tests {
		if got := DisplayReference(tt.in); got != tt.want {
			t.Errorf("DisplayReference(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	r := Reference{Year: 2024, Month: time.March}
	if got := r.String(); got != "2024-03" {
		t.Errorf("String() = %q, want 2024-03", got)
	}
}
