package render

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClipSegment(t *testing.T) {
	box := rect{xmin: 0, xmax: 10, ymin: 0, ymax: 10}

	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           [4]float64
		ok             bool
	}{
		{"inside", 1, 1, 2, 2, [4]float64{1, 1, 2, 2}, true},
		{"horizontal crossing", -5, 5, 15, 5, [4]float64{0, 5, 10, 5}, true},
		{"diagonal crossing", -1, -1, 11, 11, [4]float64{0, 0, 10, 10}, true},
		{"leaving top", 5, 5, 5, 20, [4]float64{5, 5, 5, 10}, true},
		{"reversed direction", 15, 5, 5, 5, [4]float64{10, 5, 5, 5}, true},
		{"outside right", 11, 0, 12, 5, [4]float64{}, false},
		{"parallel above", 0, 11, 10, 11, [4]float64{}, false},
		{"corner miss", -1, 9, 9, 21, [4]float64{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipSegment(box, tt.x0, tt.y0, tt.x1, tt.y1)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			got := [4]float64{x0, y0, x1, y1}
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Errorf("Expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}
