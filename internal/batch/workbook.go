package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/structura/structura/internal/analysis"
)

// ResultsSheet is the sheet name WriteWorkbook uses
const ResultsSheet = "Results"

var resultColumns = []string{
	"deflection_mm", "stress_mpa", "wind_pressure_kpa", "soil_pressure_kpa", "weight_kg", "status", "error",
}

// ReadFile loads parameter sets from an .xlsx workbook or a YAML/JSON list
func ReadFile(path string) ([]analysis.Parameters, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		return ReadWorkbook(f)
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read batch file: %w", err)
		}
		return ParseList(data)
	default:
		return nil, fmt.Errorf("unsupported batch file %q (want .xlsx, .yaml, .yml or .json)", path)
	}
}

// ParseList decodes a YAML (or JSON) list of parameter sets. Each entry
// starts from the defaults, so entries only need the fields they change.
func ParseList(data []byte) ([]analysis.Parameters, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("decode batch list: %w", err)
	}

	items := make([]analysis.Parameters, 0, len(nodes))
	for i := range nodes {
		p := analysis.DefaultParameters()
		if err := nodes[i].Decode(&p); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, p)
	}
	return items, nil
}

// ReadWorkbook reads parameter sets from the first sheet of a workbook. The
// first row names the columns (any of analysis.FieldNames, in any order);
// missing columns and blank cells keep their defaults, blank rows are
// skipped.
func ReadWorkbook(r io.Reader) ([]analysis.Parameters, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	header := rows[0]
	var items []analysis.Parameters
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blankRow(row) {
			continue
		}
		p, err := parseRow(header, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		items = append(items, p)
	}
	return items, nil
}

func parseRow(header, row []string) (analysis.Parameters, error) {
	p := analysis.DefaultParameters()
	for col, name := range header {
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		if err := p.SetField(name, row[col]); err != nil {
			var unknown *analysis.UnknownFieldError
			if errors.As(err, &unknown) {
				continue
			}
			return p, err
		}
	}
	return p, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// WriteWorkbook writes the outcomes as one row each: index, every input
// field, then the rounded results.
func WriteWorkbook(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return err
	}

	header := []interface{}{"index"}
	for _, name := range analysis.FieldNames {
		header = append(header, name)
	}
	for _, name := range resultColumns {
		header = append(header, name)
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := outcomeRow(o)
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

func outcomeRow(o Outcome) []interface{} {
	p := o.Parameters
	row := []interface{}{
		o.Index + 1,
		p.Span, p.Load, string(p.LoadType), p.MaterialID, p.Depth, p.Width,
		p.ShapeID, p.SafetyFactor, p.SeismicZone, p.WindSpeed, p.Height, p.FootingArea,
	}
	if !o.OK() {
		return append(row, "", "", "", "", "", "INVALID", o.Error)
	}
	r := o.Result.Rounded()
	return append(row,
		r.DeflectionMm, r.StressMPa, r.WindPressureKPa, r.SoilPressureKPa, r.WeightKg,
		r.Status(), "",
	)
}
