// Package paper describes physical output pages: their size and printable area,
// in points (1/72 inch) unless the name says otherwise.
package paper

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	apperr "github.com/matzehuels/corescene/pkg/errors"
)

// DefaultMargin is the margin on every side of the named sizes (0.5").
const DefaultMargin = 36

// Paper is a page size with a printable area.
type Paper struct {
	Name            string
	Width, Height   int
	PrintableX      int
	PrintableY      int
	PrintableWidth  int
	PrintableHeight int
}

// New returns a paper with DefaultMargin-style uniform margins.
func New(name string, width, height, margin int) Paper {
	return Paper{
		Name:            name,
		Width:           width,
		Height:          height,
		PrintableX:      margin,
		PrintableY:      margin,
		PrintableWidth:  width - 2*margin,
		PrintableHeight: height - 2*margin,
	}
}

// Named sizes.
var (
	Letter144 = New("Letter (144dpi)", 1224, 1584, DefaultMargin)
	Letter    = New("Letter (72dpi)", 612, 792, DefaultMargin)
	Legal     = New("Legal", 612, 1008, DefaultMargin)
	A0        = New("A0", 2384, 3371, DefaultMargin)
	A1        = New("A1", 1685, 2384, DefaultMargin)
	A2        = New("A2", 1190, 1684, DefaultMargin)
	A3        = New("A3", 842, 1190, DefaultMargin)
	A4        = New("A4", 595, 842, DefaultMargin)
	A5        = New("A5", 420, 595, DefaultMargin)
	B4        = New("B4", 729, 1032, DefaultMargin)
	B5        = New("B5", 516, 729, DefaultMargin)
	Tabloid   = New("Tabloid", 792, 1224, DefaultMargin)
	Ledger    = New("Ledger", 1224, 792, DefaultMargin)
	Statement = New("Statement", 396, 612, DefaultMargin)
	Executive = New("Executive", 540, 720, DefaultMargin)
	Folio     = New("Folio", 612, 936, DefaultMargin)
	Quarto    = New("Quarto", 610, 780, DefaultMargin)
)

var byKey = map[string]Paper{
	"default":   Letter144,
	"letter":    Letter,
	"legal":     Legal,
	"a0":        A0,
	"a1":        A1,
	"a2":        A2,
	"a3":        A3,
	"a4":        A4,
	"a5":        A5,
	"b4":        B4,
	"b5":        B5,
	"tabloid":   Tabloid,
	"ledger":    Ledger,
	"statement": Statement,
	"executive": Executive,
	"folio":     Folio,
	"quarto":    Quarto,
}

// Names returns the lookup keys of the named sizes, sorted.
func Names() []string {
	out := make([]string, 0, len(byKey))
	for k := range byKey {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// All returns the named sizes in a stable display order.
func All() []Paper {
	return []Paper{Letter144, Letter, Legal, A0, A1, A2, A3, A4, A5, B4, B5,
		Tabloid, Ledger, Statement, Executive, Folio, Quarto}
}

// customPattern matches "WxH" and "WxH[PWxPH+X+Y]".
var customPattern = regexp.MustCompile(`^(\d+)x(\d+)(?:\[(\d+)x(\d+)\+(\d+)\+(\d+)\])?$`)

// Get resolves name leniently: blank and unknown names yield Default().
func Get(name string) Paper {
	p, err := Lookup(name)
	if err != nil {
		return Default()
	}
	return p
}

// Lookup resolves a named size (case-insensitive) or the custom
// "WxH[PWxPH+X+Y]" syntax. Blank names resolve to Default().
func Lookup(name string) (Paper, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default(), nil
	}
	if p, ok := byKey[key]; ok {
		return p, nil
	}
	if m := customPattern.FindStringSubmatch(key); m != nil {
		n := make([]int, 0, 6)
		for _, s := range m[1:] {
			if s == "" {
				continue
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				return Paper{}, apperr.Wrap(apperr.ErrCodeInvalidPaper, err, "invalid paper size %q", name)
			}
			n = append(n, v)
		}
		if len(n) == 2 {
			return New(name, n[0], n[1], DefaultMargin), nil
		}
		return Paper{
			Name:            name,
			Width:           n[0],
			Height:          n[1],
			PrintableWidth:  n[2],
			PrintableHeight: n[3],
			PrintableX:      n[4],
			PrintableY:      n[5],
		}, nil
	}
	msg := fmt.Sprintf("unknown paper %q", name)
	if s := Suggest(key); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return Paper{}, apperr.New(apperr.ErrCodeInvalidPaper, "%s", msg)
}

// Suggest returns the closest named size to key, or "" if nothing is close.
func Suggest(key string) string {
	best, bestDist := "", 3
	for _, k := range Names() {
		if d := levenshtein.ComputeDistance(key, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// Default returns Letter in the US and Canada and A4 elsewhere, judged from
// the POSIX locale variables.
func Default() Paper {
	for _, env := range []string{"LC_ALL", "LC_PAPER", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if country(v) == "US" || country(v) == "CA" {
			return Letter
		}
		return A4
	}
	return A4
}

// country extracts the territory from a locale like "en_US.UTF-8".
func country(locale string) string {
	i := strings.IndexByte(locale, '_')
	if i < 0 {
		return ""
	}
	rest := locale[i+1:]
	if j := strings.IndexAny(rest, ".@"); j >= 0 {
		rest = rest[:j]
	}
	return strings.ToUpper(rest)
}

// String describes the paper. Named sizes print their pixel size, custom
// sizes print in the WxH[PWxPH+X+Y] syntax.
func (p Paper) String() string {
	for _, named := range byKey {
		if named == p {
			return fmt.Sprintf("%s (%d x %d pixels)", p.Name, p.Width, p.Height)
		}
	}
	return fmt.Sprintf("%s: %dx%d[%dx%d+%d+%d]", p.Name, p.Width, p.Height,
		p.PrintableWidth, p.PrintableHeight, p.PrintableX, p.PrintableY)
}
