package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/spreadsheet"
)

func TestExportWarranties(t *testing.T) {
	amount := decimal.RequireFromString("150000")
	items := []*entity.Warranty{
		{
			ID: 2, ClientName: "Luis", ProductType: "Nevera", Status: "Reparado",
			AssignedUser: "tecnico1", ChargedAmount: &amount,
			CreatedAt: time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC),
		},
		{
			ID: 1, ClientName: "Ana", ProductType: "Licuadora", Status: entity.StatusRecibido,
			CreatedAt: time.Date(2024, 3, 9, 13, 0, 0, 0, time.UTC),
		},
	}

	out, err := spreadsheet.NewExcelExporter().ExportWarranties(items)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(spreadsheet.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, spreadsheet.Headers, rows[0])

	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "Luis", rows[1][1])
	assert.Equal(t, "Reparado", rows[1][12])
	assert.Equal(t, "150000", rows[1][14])
	assert.Equal(t, "10/03/2024 10:30", rows[1][15])

	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "", rows[2][14])
}

func TestExportWarranties_SinFilas(t *testing.T) {
	out, err := spreadsheet.NewExcelExporter().ExportWarranties(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(spreadsheet.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
