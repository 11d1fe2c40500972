package pricing

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name    string
		w, l, h float64
		weight  float64
		density float64
		method  Method
	}{
		{name: "dense box billed by weight", w: 50, l: 40, h: 30, weight: 80, density: 80.0 / 0.06, method: ByWeight},
		{name: "small box billed by weight", w: 10, l: 10, h: 10, weight: 0.5, density: 500, method: ByWeight},
		{name: "bulky box billed by density", w: 100, l: 100, h: 100, weight: 50, density: 50, method: ByDensity},
		{name: "boundary density bills by weight", w: 100, l: 100, h: 100, weight: 100, density: 100, method: ByWeight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			density, method := Estimate(tc.w, tc.l, tc.h, tc.weight)
			if math.Abs(density-tc.density) > 1e-9 {
				t.Fatalf("density = %v, expected %v", density, tc.density)
			}
			if method != tc.method {
				t.Fatalf("method = %v, expected %v", method, tc.method)
			}
		})
	}
}
