package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics/recording"
	"github.com/matzehuels/corescene/pkg/interval"
	"github.com/matzehuels/corescene/pkg/model"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", -1},
		{"*", -1},
		{"2*", -1},
		{"2in", 144},
		{"1.5 in", 108},
		{"72", 72},
		{"72.2", 73},
		{" 40 ", 40},
		{"0", 0},
		{"abc", -1},
		{"xin", -1},
		{"1e300", -1},
		{"1e300in", -1},
		{"-1e300", -1},
		{"2147483647", 2147483647},
		{"NaN", -1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseConstraint(tt.in); got != tt.want {
				t.Errorf("ParseConstraint(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func widths(s *Scene) []float64 {
	var out []float64
	for _, tr := range s.Tracks() {
		b, _ := s.TrackBounds(tr)
		out = append(out, b.W)
	}
	return out
}

func xs(s *Scene) []float64 {
	var out []float64
	for _, tr := range s.Tracks() {
		b, _ := s.TrackBounds(tr)
		out = append(out, b.X)
	}
	return out
}

func TestLayout(t *testing.T) {
	type track struct {
		natural    float64
		constraint string
	}
	tests := []struct {
		name      string
		tracks    []track
		preferred float64
		wantW     []float64
		wantX     []float64
		wantTotal float64
	}{
		{
			name:      "natural widths",
			tracks:    []track{{100, ""}, {50, ""}},
			wantW:     []float64{100, 50},
			wantX:     []float64{0, 100},
			wantTotal: 150,
		},
		{
			name:      "fixed points and inches",
			tracks:    []track{{100, "72"}, {100, "1in"}},
			wantW:     []float64{72, 72},
			wantX:     []float64{0, 72},
			wantTotal: 144,
		},
		{
			name:      "expandable absorbs spare width",
			tracks:    []track{{10, "2in"}, {100, "*"}},
			preferred: 300,
			wantW:     []float64{144, 156},
			wantX:     []float64{0, 144},
			wantTotal: 300,
		},
		{
			name:      "spare width split with remainder",
			tracks:    []track{{100, "*"}, {50, ""}, {100, "*"}},
			preferred: 301,
			wantW:     []float64{125, 50, 126},
			wantX:     []float64{0, 125, 175},
			wantTotal: 301,
		},
		{
			name:      "deficit shrinks every track",
			tracks:    []track{{100, ""}, {100, "*"}, {100, "100"}},
			preferred: 200,
			wantW:     []float64{67, 67, 66},
			wantX:     []float64{0, 67, 134},
			wantTotal: 200,
		},
		{
			name:      "no expandable track ignores preferred width",
			tracks:    []track{{100, ""}, {50, ""}},
			preferred: 500,
			wantW:     []float64{100, 50},
			wantX:     []float64{0, 100},
			wantTotal: 150,
		},
		{
			name:      "unparsable constraint falls back",
			tracks:    []track{{80, "wide"}},
			wantW:     []float64{80},
			wantX:     []float64{0},
			wantTotal: 80,
		},
		{
			name:      "fractional natural width rounds up",
			tracks:    []track{{80.2, ""}},
			wantW:     []float64{81},
			wantX:     []float64{0},
			wantTotal: 81,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i, tr := range tt.tracks {
				s.AddTrack(newStub(string(rune('a'+i)), tr.natural), tr.constraint)
			}
			if tt.preferred > 0 {
				s.SetPreferredWidth(tt.preferred)
			}
			content := s.ContentSize()

			if diff := cmp.Diff(tt.wantW, widths(s)); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantX, xs(s)); diff != "" {
				t.Errorf("offsets mismatch (-want +got):\n%s", diff)
			}
			if content.W != tt.wantTotal {
				t.Errorf("ContentSize().W = %v, want %v", content.W, tt.wantTotal)
			}
			var sum float64
			for _, w := range widths(s) {
				sum += w
			}
			if sum != content.W {
				t.Errorf("sum of widths = %v, content width %v", sum, content.W)
			}
		})
	}
}

func TestLayoutVerticalExtent(t *testing.T) {
	s := New()
	a := newStub("a", 10)
	a.size = geom.R(0, 10.5, 10, 20)
	b := newStub("b", 10)
	b.size = geom.R(0, 25, 10, 40.2)
	empty := newStub("empty", 10)
	empty.size = geom.R(0, -500, 10, -1)
	s.AddTrack(a, "")
	s.AddTrack(b, "")
	s.AddTrack(empty, "")

	got := s.ContentSize()
	if want := geom.R(0, 10, 30, 56); got != want {
		t.Errorf("ContentSize() = %v, want %v", got, want)
	}
	tb, _ := s.TrackBounds(empty)
	if want := geom.R(20, 10, 10, 56); tb != want {
		t.Errorf("TrackBounds(empty) = %v, want %v", tb, want)
	}
}

func TestInvalidateNotifiesOnce(t *testing.T) {
	s := New()
	var n int
	s.OnChange(func(*Scene) { n++ })

	s.Invalidate()
	if n != 0 {
		t.Fatalf("notifications before first validate = %d, want 0", n)
	}

	s.Validate()
	s.Invalidate()
	s.Invalidate()
	if n != 1 {
		t.Errorf("notifications = %d, want 1", n)
	}

	s.Validate()
	s.AddTrack(newStub("a", 10), "")
	s.SetPreferredWidth(100)
	if n != 2 {
		t.Errorf("notifications = %d, want 2", n)
	}
}

func TestValidateIsLazy(t *testing.T) {
	s := New()
	a := newStub("a", 10)
	s.AddTrack(a, "")

	s.Validate()
	s.Validate()
	_ = s.ContentSize()
	if a.sizeCalls != 1 {
		t.Errorf("layout passes = %d, want 1", a.sizeCalls)
	}
}

func TestInvalidateDuringLayout(t *testing.T) {
	s := New()
	var n int
	s.OnChange(func(*Scene) { n++ })

	a := newStub("a", 10)
	first := true
	a.sizeFn = func(sc *Scene) geom.Rect {
		if first {
			first = false
			sc.Invalidate()
		}
		return geom.R(0, 0, 10, 10)
	}
	s.AddTrack(a, "")

	s.Validate()
	if s.Valid() {
		t.Fatal("Valid() = true after invalidate during layout")
	}
	if n != 1 {
		t.Errorf("notifications = %d, want 1", n)
	}
	s.Validate()
	if !s.Valid() || a.sizeCalls != 2 {
		t.Errorf("Valid() = %v, layout passes = %d, want true, 2", s.Valid(), a.sizeCalls)
	}
}

func twoTrackScene() (*Scene, *stubTrack, *stubTrack) {
	s := New()
	a := newStub("a", 0)
	a.size = geom.R(0, 10, 100, 50)
	b := newStub("b", 0)
	b.size = geom.R(0, 10, 50, 50)
	s.AddTrack(a, "")
	s.AddTrack(b, "")
	return s, a, b
}

func TestRenderContents(t *testing.T) {
	s, _, _ := twoTrackScene()
	g := recording.New()
	s.RenderContents(g, nil)

	want := []string{
		"pushTransform(1,1,0,-10)",
		"clip(0,10,100,50)", "pushState", `string(0,10,"a")`, "popState", "clearClip", "drawRect(0,10,100,50)",
		"clip(100,10,50,50)", "pushState", `string(100,10,"b")`, "popState", "clearClip", "drawRect(100,10,50,50)",
		"popTransform",
	}
	if diff := cmp.Diff(want, g.Strings()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if !g.Balanced() {
		t.Error("Balanced() = false")
	}

	// The top of the clip lands at device y=0.
	if got := g.Named("string")[0].Device.Y; got != 0 {
		t.Errorf("device y = %v, want 0", got)
	}
}

func TestRenderContentsClip(t *testing.T) {
	s, _, _ := twoTrackScene()
	s.SetRenderHint(HintBorders, "false")
	g := recording.New()
	clip := geom.R(0, 20.5, 150, 9.2)
	s.RenderContents(g, &clip)

	clips := g.Named("clip")
	if len(clips) != 2 {
		t.Fatalf("len(clip) = %d, want 2", len(clips))
	}
	if want := geom.R(0, 20, 100, 10); clips[0].Rect != want {
		t.Errorf("clip = %v, want %v", clips[0].Rect, want)
	}
	if n := len(g.Named("drawRect")); n != 0 {
		t.Errorf("borders drawn = %d, want 0", n)
	}
}

func TestRenderHeaderFooter(t *testing.T) {
	s, _, _ := twoTrackScene()
	g := recording.New()
	s.RenderHeader(g)
	s.RenderFooter(g)

	var got []geom.Rect
	for _, op := range g.Named("drawRect") {
		got = append(got, op.Rect)
	}
	want := []geom.Rect{
		geom.R(0, 0, 100, 35), geom.R(100, 0, 50, 35),
		geom.R(0, 1, 100, 35), geom.R(100, 1, 50, 35),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bands mismatch (-want +got):\n%s", diff)
	}
	if !g.Balanced() {
		t.Error("Balanced() = false")
	}
}

func TestHintsAndParameters(t *testing.T) {
	s := New()
	if got := s.ScalingFactor(); got != 1 {
		t.Errorf("ScalingFactor() = %v, want 1", got)
	}
	if got := s.Origin(); got != OriginTop {
		t.Errorf("Origin() = %v, want top", got)
	}
	if !s.Borders() {
		t.Error("Borders() = false, want true")
	}

	s.SetScalingFactor(2.5)
	if got := s.RenderHint(HintScale); got != "2.5" {
		t.Errorf("scale hint = %q, want 2.5", got)
	}
	s.SetRenderHint(HintScale, "lots")
	if got := s.ScalingFactor(); got != -1 {
		t.Errorf("ScalingFactor() = %v, want -1", got)
	}
	s.SetOrigin(OriginBase)
	if got := s.Origin(); got != OriginBase {
		t.Errorf("Origin() = %v, want base", got)
	}
	s.SetRenderHint(HintOrigin, "TOP")
	if got := s.Origin(); got != OriginTop {
		t.Errorf("Origin() = %v, want top", got)
	}

	s.SetRenderHint(HintPage, "3")
	if got := s.Page(); got != 3 {
		t.Errorf("Page() = %d, want 3", got)
	}
	s.SetRenderHint(HintPage, "")
	if _, ok := s.RenderHints()[HintPage]; ok {
		t.Error("page hint still present after clearing")
	}

	s.SetParameter("title", "Core 7")
	if got := s.Parameter("title", "x"); got != "Core 7" {
		t.Errorf("Parameter() = %q", got)
	}
	s.SetParameter("title", "  ")
	if got := s.Parameter("title", "x"); got != "x" {
		t.Errorf("Parameter() after blank = %q, want default", got)
	}
	if len(s.Parameters()) != 0 {
		t.Errorf("Parameters() = %v, want empty", s.Parameters())
	}
}

func TestPreferredWidth(t *testing.T) {
	s := New()
	if got := s.PreferredWidth(); got != -1 {
		t.Errorf("PreferredWidth() = %d, want -1", got)
	}
	s.SetPreferredWidth(299.1)
	if got := s.PreferredWidth(); got != 300 {
		t.Errorf("PreferredWidth() = %d, want 300", got)
	}
}

func TestFindAt(t *testing.T) {
	s, a, b := twoTrackScene()
	b.hit = "element"
	s.Validate()

	tests := []struct {
		name string
		x    float64
		want any
	}{
		{"inside a", 50, a},
		{"boundary belongs to left", 100, a},
		{"hit in b", 120, "element"},
		{"outside", 151, s},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.FindAt(geom.Pt(tt.x, 20), Contents); got != tt.want {
				t.Errorf("FindAt(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	s := New()
	plain := newStub("plain", 10)
	labelled := labelTrack{newStub("labelled", 10)}
	labelled.label = "depth 12.5"
	s.AddTrack(plain, "")
	s.AddTrack(labelled, "")
	s.Validate()

	if got := s.Label(geom.Pt(5, 0), Contents); got != "" {
		t.Errorf("Label(plain) = %q, want empty", got)
	}
	if got := s.Label(geom.Pt(15, 0), Contents); got != "depth 12.5" {
		t.Errorf("Label(labelled) = %q", got)
	}
}

func TestRemoveTrack(t *testing.T) {
	s, a, b := twoTrackScene()
	s.SetModels(model.NewContainer())

	if !s.RemoveTrack(a) {
		t.Fatal("RemoveTrack() = false")
	}
	if a.scene != nil || a.models != nil {
		t.Error("removed track still bound")
	}
	if s.RemoveTrack(a) {
		t.Error("second RemoveTrack() = true")
	}
	if got := s.ContentSize().W; got != 50 {
		t.Errorf("ContentSize().W = %v, want 50", got)
	}
	if got := s.Tracks(); len(got) != 1 || got[0] != b {
		t.Errorf("Tracks() = %v", got)
	}
}

func TestModelBinding(t *testing.T) {
	s, a, _ := twoTrackScene()
	c := model.NewContainer()
	s.SetModels(c)
	if a.models != model.Container(c) {
		t.Fatal("track not bound to container")
	}
	s.Validate()

	var changes, selections int
	s.OnChange(func(*Scene) { changes++ })
	s.OnSelection(func(Selection) { selections++ })

	iv := interval.New("lithology", 1, 2)
	c.Add(iv)
	if got := s.Selection().First(); got != any(iv) {
		t.Errorf("Selection().First() = %v, want %v", got, iv)
	}
	if changes != 1 || selections != 1 {
		t.Errorf("changes, selections = %d, %d, want 1, 1", changes, selections)
	}

	s.Validate()
	c.Update(iv)
	if changes != 2 {
		t.Errorf("changes after update = %d, want 2", changes)
	}

	s.Validate()
	c.Remove(iv)
	if !s.Selection().IsEmpty() {
		t.Errorf("Selection() = %v, want empty", s.Selection())
	}
	if changes != 3 || selections != 2 {
		t.Errorf("changes, selections = %d, %d, want 3, 2", changes, selections)
	}

	// A replaced container is no longer followed.
	s.Validate()
	s.SetModels(nil)
	s.Validate()
	c.Add(interval.New("lithology", 3, 4))
	if changes != 4 {
		t.Errorf("changes = %d, want 4 (only the SetModels invalidation)", changes)
	}
}

func TestCreatedTypes(t *testing.T) {
	s := New()
	a := newStub("a", 1)
	a.types = []string{"interval"}
	b := newStub("b", 1)
	b.types = []string{"image", "sample"}
	s.AddTrack(a, "")
	s.AddTrack(b, "")

	if diff := cmp.Diff([]string{"interval", "image", "sample"}, s.CreatedTypes()); diff != "" {
		t.Errorf("CreatedTypes() mismatch (-want +got):\n%s", diff)
	}
}
