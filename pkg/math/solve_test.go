package math

import "testing"

func TestSolve2x2(t *testing.T) {
	tests := []struct {
		name         string
		a, b, c, d   float64
		e, f         float64
		wantX, wantY float64
		wantOK       bool
	}{
		{
			name: "identity",
			a:    1, b: 0, c: 0, d: 1,
			e: 3, f: 4,
			wantX: 3, wantY: 4, wantOK: true,
		},
		{
			// 2x + y = 5, x + 3y = 10
			name: "general",
			a:    2, b: 1, c: 1, d: 3,
			e: 5, f: 10,
			wantX: 1, wantY: 3, wantOK: true,
		},
		{
			name: "singular rows",
			a:    1, b: 2, c: 2, d: 4,
			e: 1, f: 2,
			wantOK: false,
		},
		{
			name:   "all zero",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := Solve2x2(tt.a, tt.b, tt.c, tt.d, tt.e, tt.f)
			if ok != tt.wantOK {
				t.Fatalf("Solve2x2() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Solve2x2() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSolve2x2NoTolerance(t *testing.T) {
	// Nearly singular but det != 0 still solves.
	_, _, ok := Solve2x2(1, 1, 1, 1+1e-12, 1, 1)
	if !ok {
		t.Error("expected near-singular system to be solved")
	}
}
