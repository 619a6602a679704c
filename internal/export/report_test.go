package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lquispe/exam-renamer/constants"
	"github.com/lquispe/exam-renamer/internal/analyze"
	"github.com/lquispe/exam-renamer/internal/pipeline"
)

func TestReportXLSX(t *testing.T) {
	jobs := []pipeline.Job{
		{
			Path:   "/scans/examen.pdf",
			Method: "pdf-text",
			Result: analyze.Result{
				Success:       true,
				SuggestedName: "31.01.26 EMPO 76248882 HUAMAN POCCO.pdf",
				Defaults: map[constants.Field]string{
					constants.FieldIdentityNumber: "76248882",
					constants.FieldPersonName:     "HUAMAN POCCO",
					constants.FieldOrganization:   "G4S PERU SAC",
					constants.FieldExamType:       "PREOCUPACIONAL",
					constants.FieldDate:           "31-01-26",
				},
				DetectedFormat: constants.ConventionA,
			},
		},
		{
			Path: "/scans/ilegible.pdf",
			Result: analyze.Result{
				Success: false,
				Notes:   []string{"No se detectó DNI (requerido)."},
			},
		},
	}

	data, err := ReportXLSX(jobs, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { assert.NoError(t, f.Close()) }()

	assert.Equal(t, []string{"Renames"}, f.GetSheetList())

	rows, err := f.GetRows("Renames")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Original File", rows[0][0])
	assert.Equal(t, "Suggested Name", rows[0][1])

	assert.Equal(t, "examen.pdf", rows[1][0])
	assert.Equal(t, "31.01.26 EMPO 76248882 HUAMAN POCCO.pdf", rows[1][1])
	assert.Equal(t, "TRUE", rows[1][2])
	assert.Equal(t, "76248882", rows[1][3])
	assert.Equal(t, "G4S PERU SAC", rows[1][5])

	assert.Equal(t, "ilegible.pdf", rows[2][0])
	assert.Equal(t, "No se detectó DNI (requerido).", rows[2][9])
}

func TestReportXLSXEmptyBatch(t *testing.T) {
	data, err := ReportXLSX(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { assert.NoError(t, f.Close()) }()

	rows, err := f.GetRows("Renames")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
