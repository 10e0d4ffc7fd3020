package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional, detected when empty)
	ValueColumn string // Column name for values (detected when empty)
	IDColumn    string // Column name for a ticker/series ID (optional)
	IDFilter    string // Keep only rows whose ID column equals this value
	DateFormat  string // Preferred date layout (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// Header names recognised when no column is configured, in priority order.
var (
	valueHeaders = []string{"adj_close", "adj close", "adjclose", "close", "price", "return", "returns", "value", "y"}
	dateHeaders  = []string{"date", "ds", "timestamp", "time", "datetime"}
	idHeaders    = []string{"symbol", "ticker", "unique_id", "id"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

var missingTokens = map[string]bool{"": true, "NA": true, "NaN": true, "nan": true, "null": true, "-": true}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return s, nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = column
	return LoadCSV(filename, opts)
}

// LoadCSVFiltered loads the rows of one ticker from a long-format CSV file.
func LoadCSVFiltered(filename, idColumn, idValue, valueColumn string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.IDColumn = idColumn
	opts.IDFilter = idValue
	opts.ValueColumn = valueColumn
	return LoadCSV(filename, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader.
// Rows with missing or unparsable values are skipped.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	valueIdx, dateIdx, idIdx := 1, 0, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		valueIdx, dateIdx, idIdx = resolveColumns(header, opts)
		if valueIdx < 0 {
			return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
		}
	}

	var values []float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if opts.IDFilter != "" && idIdx >= 0 && idIdx < len(record) && clean(record[idIdx]) != opts.IDFilter {
			continue
		}
		if valueIdx >= len(record) {
			continue
		}

		raw := clean(record[valueIdx])
		if missingTokens[raw] {
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		values = append(values, val)

		if dateIdx >= 0 && dateIdx < len(record) {
			if ts, ok := parseDate(clean(record[dateIdx]), opts.DateFormat); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	if len(timestamps) == len(values) {
		return &Series{Timestamps: timestamps, Values: values}, nil
	}
	return New(values), nil
}

func resolveColumns(header []string, opts *CSVOptions) (valueIdx, dateIdx, idIdx int) {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.ToLower(clean(h))
	}

	find := func(want string, fallbacks []string) int {
		if want != "" {
			want = strings.ToLower(want)
			for i, n := range names {
				if n == want {
					return i
				}
			}
			return -1
		}
		for _, f := range fallbacks {
			for i, n := range names {
				if n == f {
					return i
				}
			}
		}
		return -1
	}

	valueIdx = find(opts.ValueColumn, valueHeaders)
	if valueIdx < 0 && opts.ValueColumn == "" {
		valueIdx = len(header) - 1
	}
	dateIdx = find(opts.DateColumn, dateHeaders)
	idIdx = find(opts.IDColumn, idHeaders)
	return valueIdx, dateIdx, idIdx
}

func parseDate(s, preferred string) (time.Time, bool) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

// SaveCSV writes a series to a CSV file with a "date,value" or "value" header.
func SaveCSV(series *Series, filename string, includeDates bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, series, includeDates)
}

// WriteCSV writes a series to w in the format produced by SaveCSV.
func WriteCSV(w io.Writer, series *Series, includeDates bool) error {
	buf := bufio.NewWriter(w)
	writer := csv.NewWriter(buf)

	withDates := includeDates && len(series.Timestamps) == len(series.Values)
	header := []string{"value"}
	if withDates {
		header = []string{"date", "value"}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, v := range series.Values {
		val := strconv.FormatFloat(v, 'f', -1, 64)
		row := []string{val}
		if withDates {
			row = []string{series.Timestamps[i].Format("2006-01-02"), val}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return buf.Flush()
}
