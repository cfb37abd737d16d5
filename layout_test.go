package pie

import (
	"math"
	"testing"
)

func records(values ...float64) []SliceRecord {
	out := make([]SliceRecord, len(values))
	for i, v := range values {
		out[i] = SliceRecord{Category: string(rune('A' + i)), Value: v, Index: i}
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLayoutAngles(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   [][2]float64
	}{
		{"two slices", []float64{10, 30}, [][2]float64{{0, math.Pi / 2}, {math.Pi / 2, FullTurn}}},
		{"single slice", []float64{5}, [][2]float64{{0, FullTurn}}},
		{"equal thirds", []float64{1, 1, 1}, [][2]float64{{0, FullTurn / 3}, {FullTurn / 3, 2 * FullTurn / 3}, {2 * FullTurn / 3, FullTurn}}},
		{"zero sum", []float64{0, 0}, [][2]float64{{0, 0}, {0, 0}}},
		{"zero in the middle", []float64{1, 0, 1}, [][2]float64{{0, math.Pi}, {math.Pi, math.Pi}, {math.Pi, FullTurn}}},
		{"empty", nil, [][2]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Layout(records(tt.values...))
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if !near(s.StartAngle, tt.want[i][0]) || !near(s.EndAngle, tt.want[i][1]) {
					t.Errorf("slice %d = [%v, %v], want %v", i, s.StartAngle, s.EndAngle, tt.want[i])
				}
				if s.Index != i || s.Data.Index != i {
					t.Errorf("slice %d index = %d", i, s.Index)
				}
			}
		})
	}
}

func TestLayoutContiguousAndClosed(t *testing.T) {
	got := Layout(records(0.1, 0.2, 0.3, 7, 11.5, 0.7))
	if got[0].StartAngle != 0 {
		t.Errorf("first start = %v, want 0", got[0].StartAngle)
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartAngle != got[i-1].EndAngle {
			t.Errorf("gap between slice %d and %d", i-1, i)
		}
	}
	if got[len(got)-1].EndAngle != FullTurn {
		t.Errorf("last end = %v, want exactly 2π", got[len(got)-1].EndAngle)
	}
}

func TestLayoutSpanProportional(t *testing.T) {
	got := Layout(records(1, 2, 5))
	for i, v := range []float64{1, 2, 5} {
		if want := v / 8 * FullTurn; !near(got[i].Span(), want) {
			t.Errorf("span %d = %v, want %v", i, got[i].Span(), want)
		}
	}
}

func TestLayoutAppendZeroKeepsAngles(t *testing.T) {
	before := Layout(records(3, 4, 5))
	after := Layout(records(3, 4, 5, 0))
	for i := range before {
		if !near(before[i].StartAngle, after[i].StartAngle) || !near(before[i].EndAngle, after[i].EndAngle) {
			t.Errorf("slice %d moved: %+v -> %+v", i, before[i], after[i])
		}
	}
	last := after[3]
	if last.Span() != 0 || !near(last.StartAngle, FullTurn) {
		t.Errorf("appended zero slice = [%v, %v]", last.StartAngle, last.EndAngle)
	}
}

func TestLayoutNegativeValueInvertsSpan(t *testing.T) {
	got := Layout(records(3, -1))
	if got[1].Span() >= 0 {
		t.Errorf("negative value span = %v, want < 0", got[1].Span())
	}
}

func TestLayoutSliceMidAngle(t *testing.T) {
	s := LayoutSlice{StartAngle: 1, EndAngle: 2}
	if s.MidAngle() != 1.5 || s.Span() != 1 {
		t.Errorf("mid = %v span = %v", s.MidAngle(), s.Span())
	}
}
