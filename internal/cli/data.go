package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phanxgames/pie"
)

// Row is one input record.
type Row struct {
	Category string      `json:"category"`
	Value    json.Number `json:"value"`
}

// Dataset is a set of rows with the names of its two columns.
type Dataset struct {
	CategoryName string
	ValueName    string
	Rows         []Row
}

// LoadDataset reads a CSV or JSON file, chosen by extension. Anything that
// is not .json is read as CSV.
func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(bytes.NewReader(data))
	}
	return ReadCSV(bytes.NewReader(data))
}

// ReadCSV reads a header row naming the category and value columns followed
// by one row per record. Empty value cells are kept as missing values.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, pie.NewError(pie.ErrCodeInvalidData, "csv: missing header")
	}
	if err != nil {
		return Dataset{}, pie.Wrap(pie.ErrCodeInvalidData, err, "csv header")
	}
	if len(header) < 2 {
		return Dataset{}, pie.NewError(pie.ErrCodeInvalidData, "csv: header needs two columns, got %d", len(header))
	}
	ds := Dataset{CategoryName: header[0], ValueName: header[1]}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, pie.Wrap(pie.ErrCodeInvalidData, err, "csv line %d", line)
		}
		row := Row{Category: rec[0]}
		if len(rec) > 1 {
			v := strings.TrimSpace(rec[1])
			if v != "" {
				if _, err := strconv.ParseFloat(v, 64); err != nil {
					return Dataset{}, pie.Wrap(pie.ErrCodeInvalidData, err, "csv line %d: value", line)
				}
			}
			row.Value = json.Number(v)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// ReadJSON reads an array of {"category": ..., "value": ...} objects.
func ReadJSON(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return Dataset{}, pie.Wrap(pie.ErrCodeInvalidData, err, "json")
	}
	return Dataset{CategoryName: "category", ValueName: "value", Rows: rows}, nil
}

// DataView converts the dataset to the single-category, single-measure
// shape the visual consumes.
func (d Dataset) DataView() pie.DataView {
	cats := make([]any, len(d.Rows))
	vals := make([]any, len(d.Rows))
	for i, r := range d.Rows {
		cats[i] = r.Category
		if r.Value == "" {
			vals[i] = nil
		} else {
			vals[i] = r.Value
		}
	}
	return pie.DataView{Categorical: &pie.Categorical{
		Categories: []pie.CategoryColumn{{
			Source: &pie.ColumnSource{DisplayName: d.CategoryName, QueryName: d.CategoryName},
			Values: cats,
		}},
		Values: []pie.ValueColumn{{
			Source: &pie.ColumnSource{DisplayName: d.ValueName, QueryName: d.ValueName},
			Values: vals,
		}},
	}}
}

func (d Dataset) String() string {
	return fmt.Sprintf("%d rows (%s, %s)", len(d.Rows), d.CategoryName, d.ValueName)
}
