package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"yolosplit/internal/logging"
	"yolosplit/internal/splitter"
)

func TestMain(m *testing.M) {
	var code int
	logging.WithNoopLogger(func() { code = m.Run() })
	os.Exit(code)
}

func sampleResult() *splitter.Result {
	return &splitter.Result{
		ImageDir:   "/data/images",
		LabelDir:   "/data/labels",
		OutputRoot: "/data/out",
		Fraction:   0.8,
		Seed:       splitter.Seed,
		Assignment: splitter.Assignment{
			Train: []string{"c.png", "a.jpg"},
			Val:   []string{"b.jpg"},
		},
		Stats: map[splitter.Bucket]splitter.BucketStats{
			splitter.Train: {Images: 2, Labels: 1},
			splitter.Val:   {Images: 1, Labels: 0},
		},
		Labeled: map[string]bool{"a.jpg": true},
	}
}

func TestBuild_Sheets(t *testing.T) {
	t.Parallel()

	f, err := Build(sampleResult(), Meta{RunID: "run-1", CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{SummarySheet, AssignmentSheet}, f.GetSheetList())

	rows, err := f.GetRows(AssignmentSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Bucket", "Image", "Label"}, rows[0])
	assert.Equal(t, []string{"train", "c.png"}, rows[1])
	assert.Equal(t, []string{"train", "a.jpg", "a.txt"}, rows[2])
	assert.Equal(t, []string{"val", "b.jpg"}, rows[3])

	runID, err := f.GetCellValue(SummarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", runID)

	total, err := f.GetCellValue(SummarySheet, "B13")
	require.NoError(t, err)
	assert.Equal(t, "3", total)
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "split.xlsx")
	require.NoError(t, WriteFile(path, sampleResult(), Meta{RunID: "run-2", CreatedAt: time.Now()}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SummarySheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Output root", v)
}

func TestBuild_NilResult(t *testing.T) {
	t.Parallel()

	_, err := Build(nil, Meta{})
	assert.Error(t, err)
}
