package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/featsel/pkg/errors"
)

// ReadCSV reads a frame from CSV with a header row. A column is numeric when
// every non-empty cell parses as a float; empty cells become NaN. Any other
// column is categorical.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset: failed to parse CSV")
	}
	if len(records) < 2 {
		return nil, errors.NewValueError("ReadCSV", "CSV must have a header row and at least one data row")
	}

	header, rows := records[0], records[1:]
	frame := NewFrame()
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = strconv.Itoa(j)
		}

		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = strings.TrimSpace(row[j])
		}

		if values, ok := parseNumeric(cells); ok {
			err = frame.AddNumeric(name, values)
		} else {
			err = frame.AddCategorical(name, cells)
		}
		if err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// LoadCSV reads a frame from a CSV file.
func LoadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: failed to open %s", path)
	}
	defer f.Close()

	frame, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: %s", path)
	}
	return frame, nil
}

func parseNumeric(cells []string) ([]float64, bool) {
	values := make([]float64, len(cells))
	seen := false
	for i, cell := range cells {
		if cell == "" || strings.EqualFold(cell, "nan") || strings.EqualFold(cell, "na") {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
		seen = true
	}
	return values, seen
}

// WriteCSV writes the frame with a header row. NaN is written as an empty cell.
func WriteCSV(w io.Writer, f *Frame) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(f.Names()); err != nil {
		return errors.Wrap(err, "dataset: failed to write CSV header")
	}

	rows, cols := f.Dims()
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c := f.Column(j)
			switch {
			case c.Kind == Categorical:
				record[j] = c.Labels[i]
			case math.IsNaN(c.Values[i]):
				record[j] = ""
			default:
				record[j] = strconv.FormatFloat(c.Values[i], 'g', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "dataset: failed to write row %d", i)
		}
	}
	writer.Flush()
	return writer.Error()
}
