package pie

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnSource is the metadata of a bound column.
type ColumnSource struct {
	DisplayName string
	QueryName   string
}

// CategoryColumn is a bound category column. Values are usually strings.
type CategoryColumn struct {
	Source *ColumnSource
	Values []any
}

// ValueColumn is a bound measure column. Values are usually numbers.
type ValueColumn struct {
	Source *ColumnSource
	Values []any
}

// Categorical is the categorical shape of a data view.
type Categorical struct {
	Categories []CategoryColumn
	Values     []ValueColumn
}

// DataView is one data view supplied by the host on update.
type DataView struct {
	Categorical *Categorical
}

// SliceRecord is one (category, value) row of the view model.
type SliceRecord struct {
	Category    string
	Value       float64
	Color       string
	SelectionID SelectionID

	// Index is the row the record was built from.
	Index int
	// Missing is set when the row had no usable category or value.
	Missing bool
}

// ViewModel is the normalized data for one update, in input row order.
type ViewModel struct {
	DataPoints []SliceRecord
}

// BuildViewModel converts the first data view's first category and value
// columns into slice records. Unbound or malformed input yields an empty
// view model and no error. A palette or identity failure aborts the whole
// build with an ErrCodeResolver error.
//
// Rows are iterated to the longer of the two columns. A row past the end of
// the value column gets value 0; a row past the end of the category column
// gets category "". Either way the record is marked Missing.
func BuildViewModel(dataViews []DataView, palette Palette, ids SelectionIDBuilder) (ViewModel, error) {
	var vm ViewModel
	if len(dataViews) == 0 {
		return vm, nil
	}
	cat := dataViews[0].Categorical
	if cat == nil || len(cat.Categories) == 0 || cat.Categories[0].Source == nil || len(cat.Values) == 0 {
		return vm, nil
	}
	category := cat.Categories[0]
	values := cat.Values[0]

	n := max(len(category.Values), len(values.Values))
	colors := make(map[string]string)
	vm.DataPoints = make([]SliceRecord, 0, n)

	for i := 0; i < n; i++ {
		rec := SliceRecord{Index: i}

		if i < len(category.Values) {
			rec.Category = categoryString(category.Values[i])
		} else {
			rec.Missing = true
		}
		if i < len(values.Values) {
			v, ok := toFloat(values.Values[i])
			rec.Value = v
			rec.Missing = rec.Missing || !ok
		} else {
			rec.Missing = true
		}

		color, ok := colors[rec.Category]
		if !ok && palette != nil {
			c, err := palette.Color(rec.Category)
			if err != nil {
				return ViewModel{}, Wrap(ErrCodeResolver, err, "color for category %q", rec.Category)
			}
			colors[rec.Category] = c
			color = c
		}
		rec.Color = color

		if ids != nil {
			id, err := ids.WithCategory(category, i).CreateSelectionID()
			if err != nil {
				return ViewModel{}, Wrap(ErrCodeResolver, err, "selection id for row %d", i)
			}
			rec.SelectionID = id
		}

		vm.DataPoints = append(vm.DataPoints, rec)
	}
	return vm, nil
}

// categoryString renders a category cell as text; nil becomes "".
func categoryString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	}
	return fmt.Sprint(v)
}

// toFloat coerces a value cell to a finite float64. ok is false for nil,
// non-numeric and non-finite cells, which read as 0.
func toFloat(v any) (f float64, ok bool) {
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
