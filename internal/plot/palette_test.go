package plot

import "testing"

// Colors repeat with period 7, markers with period 21, and no two of the
// first 21 series share a (color, marker) pair.
func TestStyleAt_Cycling(t *testing.T) {
	for i := 0; i < 21; i++ {
		if StyleAt(i).Color != StyleAt(i+7).Color {
			t.Errorf("color at %d and %d differ; want period 7", i, i+7)
		}
		if StyleAt(i) != StyleAt(i+21) {
			t.Errorf("style at %d and %d differ; want period 21", i, i+21)
		}
	}

	seen := make(map[Style]int)
	for i := 0; i < 21; i++ {
		s := StyleAt(i)
		if prev, dup := seen[s]; dup {
			t.Errorf("series %d and %d share style %v/%v", prev, i, s.Color.Name, s.Marker)
		}
		seen[s] = i
	}
}

func TestStyleAt_MarkerAdvancesPerColorCycle(t *testing.T) {
	tests := []struct {
		index int
		want  Marker
	}{
		{0, MarkerCircle},
		{6, MarkerCircle},
		{7, MarkerSquare},
		{13, MarkerSquare},
		{14, MarkerTriangle},
		{20, MarkerTriangle},
	}

	for _, tt := range tests {
		if got := StyleAt(tt.index).Marker; got != tt.want {
			t.Errorf("StyleAt(%d).Marker = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestSetColors(t *testing.T) {
	original := Colors()
	t.Cleanup(func() { SetColors(original) })

	if SetColors([]Color{{Name: "only", Hex: "#123456"}}) {
		t.Error("SetColors() should reject a short palette")
	}

	override := make([]Color, 7)
	for i := range override {
		override[i] = Color{Name: "c", Hex: "#111111"}
	}
	if !SetColors(override) {
		t.Fatal("SetColors() should accept a 7-color palette")
	}
	if StyleAt(0).Color.Hex != "#111111" {
		t.Error("StyleAt() should reflect the override")
	}
}

func TestMarker_Rune(t *testing.T) {
	if MarkerCircle.Rune() != '●' || MarkerSquare.Rune() != '■' || MarkerTriangle.Rune() != '▲' {
		t.Error("marker runes changed; TUI canvas depends on these glyphs")
	}
}
