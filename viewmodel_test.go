package pie

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestBuildViewModel(t *testing.T) {
	palette := &fakePalette{colors: map[string]string{"A": "#ff0000", "B": "#00ff00"}}
	vm, err := BuildViewModel(categorical([]any{"A", "B"}, []any{10.0, 30}), palette, &fakeIDBuilder{})
	if err != nil {
		t.Fatal(err)
	}
	if len(vm.DataPoints) != 2 {
		t.Fatalf("len = %d, want 2", len(vm.DataPoints))
	}
	a, b := vm.DataPoints[0], vm.DataPoints[1]
	if a.Category != "A" || a.Value != 10 || a.Color != "#ff0000" || a.Index != 0 || a.Missing {
		t.Errorf("A = %+v", a)
	}
	if b.Category != "B" || b.Value != 30 || b.Color != "#00ff00" || b.Index != 1 {
		t.Errorf("B = %+v", b)
	}
	if !a.SelectionID.Equals(fakeID("row-0")) || a.SelectionID.Equals(b.SelectionID) {
		t.Errorf("selection ids = %v, %v", a.SelectionID, b.SelectionID)
	}
}

func TestBuildViewModelUnbound(t *testing.T) {
	tests := []struct {
		name  string
		views []DataView
	}{
		{"no views", nil},
		{"no categorical", []DataView{{}}},
		{"no category column", []DataView{{Categorical: &Categorical{Values: []ValueColumn{{}}}}}},
		{"no source", []DataView{{Categorical: &Categorical{Categories: []CategoryColumn{{}}, Values: []ValueColumn{{}}}}}},
		{"no value column", []DataView{{Categorical: &Categorical{Categories: []CategoryColumn{{Source: &ColumnSource{}}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette := &fakePalette{}
			vm, err := BuildViewModel(tt.views, palette, &fakeIDBuilder{})
			if err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if len(vm.DataPoints) != 0 {
				t.Errorf("len = %d, want 0", len(vm.DataPoints))
			}
			if palette.calls != 0 {
				t.Error("palette consulted for unbound input")
			}
		})
	}
}

func TestBuildViewModelLengthMismatch(t *testing.T) {
	tests := []struct {
		name       string
		categories []any
		values     []any
		want       []SliceRecord
	}{
		{
			"fewer values",
			[]any{"A", "B", "C"}, []any{1.0},
			[]SliceRecord{{Category: "A", Value: 1}, {Category: "B", Missing: true}, {Category: "C", Missing: true}},
		},
		{
			"fewer categories",
			[]any{"A"}, []any{1.0, 2.0},
			[]SliceRecord{{Category: "A", Value: 1}, {Category: "", Value: 2, Missing: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, err := BuildViewModel(categorical(tt.categories, tt.values), nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(vm.DataPoints) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(vm.DataPoints), len(tt.want))
			}
			for i, w := range tt.want {
				got := vm.DataPoints[i]
				if got.Category != w.Category || got.Value != w.Value || got.Missing != w.Missing {
					t.Errorf("row %d = %+v, want %+v", i, got, w)
				}
			}
		})
	}
}

func TestBuildViewModelCellCoercion(t *testing.T) {
	vm, err := BuildViewModel(categorical(
		[]any{"a", nil, 7, "d", "e", "f", "g"},
		[]any{json.Number("1.5"), int64(2), " 3 ", "x", nil, math.NaN(), float32(0.5)},
	), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		category string
		value    float64
		missing  bool
	}{
		{"a", 1.5, false},
		{"", 2, false},
		{"7", 3, false},
		{"d", 0, true},
		{"e", 0, true},
		{"f", 0, true},
		{"g", 0.5, false},
	}
	for i, w := range want {
		got := vm.DataPoints[i]
		if got.Category != w.category || got.Value != w.value || got.Missing != w.missing {
			t.Errorf("row %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestBuildViewModelColorMemo(t *testing.T) {
	palette := &fakePalette{colors: map[string]string{}}
	vm, err := BuildViewModel(categorical([]any{"A", "B", "A", "A"}, []any{1, 2, 3, 4}), palette, nil)
	if err != nil {
		t.Fatal(err)
	}
	if palette.calls != 2 {
		t.Errorf("palette calls = %d, want 2", palette.calls)
	}
	if vm.DataPoints[0].Color != vm.DataPoints[2].Color {
		t.Error("same category got different colors")
	}
}

func TestBuildViewModelResolverErrors(t *testing.T) {
	cause := errors.New("palette offline")
	tests := []struct {
		name    string
		palette Palette
		ids     SelectionIDBuilder
	}{
		{"palette", &fakePalette{err: cause}, &fakeIDBuilder{}},
		{"identity", &fakePalette{}, &fakeIDBuilder{failAt: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, err := BuildViewModel(categorical([]any{"A", "B"}, []any{1, 2}), tt.palette, tt.ids)
			if err == nil {
				t.Fatal("expected error")
			}
			if !Is(err, ErrCodeResolver) {
				t.Errorf("code = %q, want %q", ErrorCode(err), ErrCodeResolver)
			}
			if len(vm.DataPoints) != 0 {
				t.Error("partial view model returned on error")
			}
		})
	}
}
