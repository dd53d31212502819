package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFace(t *testing.T) {
	small, err := Face(DefaultSize)
	if err != nil {
		t.Fatalf("Face(%d): %v", DefaultSize, err)
	}
	large, err := Face(2 * DefaultSize)
	if err != nil {
		t.Fatalf("Face(%d): %v", 2*DefaultSize, err)
	}

	ws := font.MeasureString(small, "sandstone")
	wl := font.MeasureString(large, "sandstone")
	if ws <= 0 || wl <= ws {
		t.Errorf("advance at %d = %v, at %d = %v; want positive and growing", DefaultSize, ws, 2*DefaultSize, wl)
	}

	if _, err := Face(0); err != nil {
		t.Errorf("Face(0): %v", err)
	}
}

func TestTTF(t *testing.T) {
	if len(TTF()) == 0 {
		t.Error("TTF() is empty")
	}
}
