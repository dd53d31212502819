package paper

import (
	"testing"

	apperr "github.com/matzehuels/corescene/pkg/errors"
)

func TestLookupNamed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Paper
	}{
		{"lowercase", "a4", A4},
		{"mixed case", " Letter ", Letter},
		{"high resolution default", "default", Letter144},
		{"ledger", "LEDGER", Ledger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.in)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrintableArea(t *testing.T) {
	if Letter.PrintableWidth != 540 || Letter.PrintableHeight != 720 {
		t.Errorf("Letter printable = %dx%d, want 540x720", Letter.PrintableWidth, Letter.PrintableHeight)
	}
	if Letter.PrintableX != 36 || Letter.PrintableY != 36 {
		t.Errorf("Letter origin = %d,%d, want 36,36", Letter.PrintableX, Letter.PrintableY)
	}
}

func TestLookupCustom(t *testing.T) {
	got, err := Lookup("800x600[700x500+50+40]")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	want := Paper{Name: "800x600[700x500+50+40]", Width: 800, Height: 600,
		PrintableWidth: 700, PrintableHeight: 500, PrintableX: 50, PrintableY: 40}
	if got != want {
		t.Errorf("Lookup() = %+v, want %+v", got, want)
	}

	short, err := Lookup("400x300")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if short.PrintableWidth != 328 || short.PrintableHeight != 228 {
		t.Errorf("printable = %dx%d, want 328x228", short.PrintableWidth, short.PrintableHeight)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("a44")
	if err == nil {
		t.Fatal("Lookup() error = nil, want error")
	}
	if !apperr.Is(err, apperr.ErrCodeInvalidPaper) {
		t.Errorf("code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeInvalidPaper)
	}
	if got := Suggest("a44"); got != "a4" {
		t.Errorf("Suggest() = %q, want a4", got)
	}
}

func TestDefaultByLocale(t *testing.T) {
	tests := []struct {
		lang string
		want Paper
	}{
		{"en_US.UTF-8", Letter},
		{"fr_CA", Letter},
		{"de_DE.UTF-8", A4},
		{"C", A4},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Setenv("LC_ALL", "")
			t.Setenv("LC_PAPER", "")
			t.Setenv("LANG", tt.lang)
			if got := Default(); got != tt.want {
				t.Errorf("Default() = %v, want %v", got.Name, tt.want.Name)
			}
			if got := Get("nonsense"); got != tt.want {
				t.Errorf("Get(nonsense) = %v, want %v", got.Name, tt.want.Name)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got, want := A4.String(), "A4 (595 x 842 pixels)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	custom, _ := Lookup("10x20[8x18+1+1]")
	if got, want := custom.String(), "10x20[8x18+1+1]: 10x20[8x18+1+1]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
