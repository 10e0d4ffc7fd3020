package timeseries

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `date,open,close
2024-01-02,99,100
2024-01-03,100,101
2024-01-04,101,102.5`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 101, 102.5}, series.Values)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.Timestamps[0])
}

func TestLoadCSVPrefersAdjustedClose(t *testing.T) {
	csvData := `Date,Close,Adj Close
2024-01-02,100,50
2024-01-03,101,50.5`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{50, 50.5}, series.Values)
}

func TestLoadCSVWithFilter(t *testing.T) {
	csvData := `symbol,date,close
SPY,2024-01-02,470
QQQ,2024-01-02,400
SPY,2024-01-03,472
QQQ,2024-01-03,401
SPY,2024-01-04,468`

	opts := DefaultCSVOptions()
	opts.IDColumn = "symbol"
	opts.IDFilter = "SPY"

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)

	assert.Equal(t, []float64{470, 472, 468}, series.Values)
}

func TestLoadCSVSkipsMissing(t *testing.T) {
	csvData := `date,close
2024-01-02,100
2024-01-03,NA
2024-01-04,
2024-01-05,bad
2024-01-08,103`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 103}, series.Values)
}

func TestLoadCSVErrors(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = "missing"
	_, err := LoadCSVFromReader(strings.NewReader("date,close\n2024-01-02,1\n"), opts)
	assert.Error(t, err)

	_, err = LoadCSVFromReader(strings.NewReader("date,close\n"), DefaultCSVOptions())
	assert.Error(t, err)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}

func TestSaveAndLoadCSV(t *testing.T) {
	ts := []time.Time{
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	s, err := NewWithTimestamps(ts, []float64{0.01, -0.005})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "returns.csv")
	require.NoError(t, SaveCSV(s, path, true))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,value\n2024-01-02,0.01\n2024-01-03,-0.005\n", string(raw))

	loaded, err := LoadCSVColumn(path, "value")
	require.NoError(t, err)
	assert.Equal(t, s.Values, loaded.Values)
	assert.Equal(t, ts, loaded.Timestamps)
}

func TestWriteCSVWithoutDates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, New([]float64{1.5, 2}), false))
	assert.Equal(t, "value\n1.5\n2\n", buf.String())
}
