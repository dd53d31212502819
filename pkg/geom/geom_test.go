package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
)

func TestRectEdges(t *testing.T) {
	r := R(10, 20, 30, 40)
	if r.MaxX() != 40 {
		t.Errorf("MaxX() = %v, want %v", r.MaxX(), 40)
	}
	if r.MaxY() != 60 {
		t.Errorf("MaxY() = %v, want %v", r.MaxY(), 60)
	}
	if r.CenterY() != 40 {
		t.Errorf("CenterY() = %v, want %v", r.CenterY(), 40)
	}
}

func TestRectBounds(t *testing.T) {
	r := R(10, 20, 30, 40)
	want := rect.Rect{LLx: 10, LLy: 20, URx: 40, URy: 60}
	if diff := cmp.Diff(want, r.Bounds()); diff != "" {
		t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
	}
	if got := FromBounds(r.Bounds()); got != r {
		t.Errorf("FromBounds(Bounds()) = %v, want %v", got, r)
	}
}

func TestRectContains(t *testing.T) {
	r := R(0, 0, 10, 10)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Pt(5, 5), true},
		{"left edge", Pt(0, 5), true},
		{"right edge", Pt(10, 5), true},
		{"outside", Pt(11, 5), false},
		{"above", Pt(5, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectContainsX(t *testing.T) {
	r := R(100, 0, 50, 10)
	tests := []struct {
		x    float64
		want bool
	}{
		{99, false},
		{100, true},
		{125, true},
		{150, true},
		{151, false},
	}
	for _, tt := range tests {
		if got := r.ContainsX(tt.x); got != tt.want {
			t.Errorf("ContainsX(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestMatrixThen(t *testing.T) {
	m := Translate(10, 0).Then(Translate(0, -5)).Then(Scale(2, 2))
	got := m.Apply(Pt(1, 1))
	if want := Pt(12, -3); got != want {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
	if got := Identity.Apply(Pt(3, 4)); got != Pt(3, 4) {
		t.Errorf("Identity.Apply() = %v", got)
	}
	if got := m.ScaleY(); got != 2 {
		t.Errorf("ScaleY() = %v, want 2", got)
	}
}

func TestMatrixApplyRect(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want Rect
	}{
		{"translate", Translate(5, -5), R(6, -3, 10, 20)},
		{"scale", Scale(2, 2), R(2, 4, 20, 40)},
		{"flip", Scale(1, -1), R(1, -22, 10, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.ApplyRect(R(1, 2, 10, 20))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ApplyRect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
