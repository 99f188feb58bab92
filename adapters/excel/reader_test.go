package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"homerange/domain/core"
	"homerange/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func csvFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monkeys.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func xlsxFixture(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "monkeys.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFileSource_LoadCSV(t *testing.T) {
	path := csvFixture(t, "id,sex,kernel95\n1,M,10\n2,F,5.5\n3,M,12\n")

	source := NewFileSource(ExcelConfig{FilePath: path})
	ds, err := source.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path, source.Name())
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []float64{10, 12}, ds.Values(dataset.Male))
	assert.Equal(t, []float64{5.5}, ds.Values(dataset.Female))
}

func TestFileSource_LoadXLSX(t *testing.T) {
	path := xlsxFixture(t, [][]interface{}{
		{"sex", "kernel95"},
		{"F", 200.5},
		{"M", 310},
		{"F", 180},
	})

	ds, err := NewFileSource(ExcelConfig{FilePath: path}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []dataset.GroupLabel{dataset.Female, dataset.Male}, ds.Groups())
	assert.Equal(t, []float64{200.5, 180}, ds.Values(dataset.Female))
}

func TestFileSource_CustomColumns(t *testing.T) {
	path := csvFixture(t, "gender,area\nM,1\nF,2\n")

	ds, err := NewFileSource(ExcelConfig{FilePath: path, GroupColumn: "gender", ValueColumn: "area"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestFileSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing value column", "sex,kernel50\nM,1\n", `missing required column "kernel95"`},
		{"blank group", "sex,kernel95\nM,1\n,2\n", "row 3: blank sex"},
		{"blank value", "sex,kernel95\nM,\n", "row 2: blank kernel95"},
		{"non numeric", "sex,kernel95\nM,big\n", `row 2: kernel95 "big" is not a number`},
		{"header only", "sex,kernel95\n", "at least a header row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource(ExcelConfig{FilePath: csvFixture(t, tt.content)}).Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFileSource_NonFiniteValue(t *testing.T) {
	path := csvFixture(t, "sex,kernel95\nM,NaN\n")

	_, err := NewFileSource(ExcelConfig{FilePath: path}).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRecord)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(ExcelConfig{FilePath: filepath.Join(t.TempDir(), "nope.csv")}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestFileSource_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource(ExcelConfig{FilePath: "unused.csv"}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
