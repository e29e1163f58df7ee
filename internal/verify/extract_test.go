package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSimpleLine(t *testing.T) {
	result := extractSimple("cantidad precio importe\n3 widget 10,00 30,00")

	require.Len(t, result.Lines, 1)
	line := result.Lines[0]
	assert.Equal(t, 3.0, line.Quantity)
	assert.Equal(t, 10.0, line.UnitPrice)
	assert.Equal(t, 30.0, line.Calculated)
	assert.Equal(t, 30.0, line.LineTotal)
	require.NotNil(t, line.Match)
	assert.True(t, *line.Match)

	require.NotNil(t, result.Totals)
	assert.Equal(t, 30.0, result.Totals.Calculated)
	assert.Nil(t, result.Totals.Reported)
}

func TestExtractSimpleMismatch(t *testing.T) {
	result := extractSimple("3 widget 10,00 31,00")

	require.Len(t, result.Lines, 1)
	require.NotNil(t, result.Lines[0].Match)
	assert.False(t, *result.Lines[0].Match, "diff 1.00 exceeds line tolerance 0.5")
}

func TestExtractUniversal(t *testing.T) {
	text := "articulos varios\n" +
		"bombilla 2 4 8,00\n" +
		"fecha 01/02/2024\n" + // metadata line, skipped
		"total: 8,00"

	result := extractUniversal(text)

	require.Len(t, result.Lines, 1)
	assert.Equal(t, 2.0, result.Lines[0].Quantity)
	assert.Equal(t, 4.0, result.Lines[0].UnitPrice)

	require.NotNil(t, result.Totals)
	assert.Equal(t, 8.0, result.Totals.Calculated)
	require.NotNil(t, result.Totals.Reported)
	assert.Equal(t, 8.0, *result.Totals.Reported)
	require.NotNil(t, result.Totals.Match)
	assert.True(t, *result.Totals.Match)
}

func TestExtractUniversalFalsePositiveGuard(t *testing.T) {
	// total > 1000 with qty < 10 and price < 100 is an invoice-level figure
	// leaking into a line, not a real item.
	result := extractUniversal("articulo 2 5 1500")
	assert.Empty(t, result.Lines)
	assert.Equal(t, 0.0, result.Totals.Calculated)
}

func TestExtractUniversalSkipsDateAndMetadataLines(t *testing.T) {
	text := "fecha: 11 22 33,00\n" +
		"factura 4 5 20,00\n" +
		"11/12/2023 2 3 6,00"

	result := extractUniversal(text)
	assert.Empty(t, result.Lines)
}

func TestExtractUniversalWithoutReportedTotal(t *testing.T) {
	result := extractUniversal("articulo 2 4 8,00")

	require.NotNil(t, result.Totals)
	assert.Equal(t, 8.0, result.Totals.Calculated)
	assert.Nil(t, result.Totals.Reported)
	assert.Nil(t, result.Totals.Match, "no verdict without a reported total")
}

func TestExtractValor(t *testing.T) {
	text := "cantidad precio neto valor neto iva valor total\n" +
		"2 tornillos 5,00 10,00 21% 12,10\n" +
		"1 tuercas 4,00 4,00 21% 4,84"

	result := extractValor(text)

	require.Len(t, result.Lines, 2)
	first := result.Lines[0]
	assert.Equal(t, 2.0, first.Quantity)
	assert.Equal(t, 5.0, first.UnitPrice)
	assert.Equal(t, 10.0, first.Calculated)
	require.NotNil(t, first.NetWorth)
	assert.Equal(t, 10.0, *first.NetWorth)
	require.NotNil(t, first.Tax)
	assert.InDelta(t, 2.10, *first.Tax, 1e-9)
	assert.Nil(t, first.Match, "valor layout has no per-line verdict")

	require.NotNil(t, result.Totals)
	assert.InDelta(t, 16.94, result.Totals.Calculated, 1e-9)
	assert.InDelta(t, 2.94, result.Totals.Tax, 1e-9)
}

func TestExtractEnglish(t *testing.T) {
	text := "invoice no 123\n" +
		"qty: 2\n" +
		"net price: 10.00\n" +
		"net worth: 20.00\n" +
		"vat 10 %\n" +
		"gross worth\n" +
		"22.00"

	result := extractEnglish(text)

	fields := result.English
	require.NotNil(t, fields)
	require.NotNil(t, fields.Qty)
	assert.Equal(t, 2.0, *fields.Qty)
	require.NotNil(t, fields.NetWorth)
	assert.Equal(t, 20.0, *fields.NetWorth)
	require.NotNil(t, fields.VATPercent)
	assert.Equal(t, 10.0, *fields.VATPercent)
	require.NotNil(t, fields.Gross)
	assert.Equal(t, 22.0, *fields.Gross)

	assert.Equal(t, 20.0, fields.CalcNet, "net worth beats qty x net price")
	assert.Equal(t, 2.0, fields.CalcVAT, "vat percent beats gross minus net")
	assert.Equal(t, 22.0, fields.CalcTotal)

	require.NotNil(t, result.Totals)
	require.NotNil(t, result.Totals.Match)
	assert.True(t, *result.Totals.Match)
}

func TestExtractEnglishLastMatchWins(t *testing.T) {
	text := "qty: 1\nqty: 5\nnet price: 3.00"

	result := extractEnglish(text)

	require.NotNil(t, result.English.Qty)
	assert.Equal(t, 5.0, *result.English.Qty)
	assert.Equal(t, 15.0, result.English.CalcNet)
	assert.Nil(t, result.Totals.Match, "no verdict without a gross figure")
}

func TestExtractEnglishGrossMinusNetFallback(t *testing.T) {
	text := "net worth: 50.00\ngross: 59.00"

	result := extractEnglish(text)

	assert.Equal(t, 50.0, result.English.CalcNet)
	assert.Equal(t, 9.0, result.English.CalcVAT)
	assert.Equal(t, 59.0, result.English.CalcTotal)
	require.NotNil(t, result.Totals.Match)
	assert.True(t, *result.Totals.Match)
}

func TestExtractEnglishZeroVATPercentFallsThrough(t *testing.T) {
	// A printed "0 %" rate must not zero out the VAT when the gross figure
	// implies one.
	text := "net worth: 50.00\nvat 0 %\ngross: 59.00"

	result := extractEnglish(text)

	require.NotNil(t, result.English.VATPercent)
	assert.Equal(t, 0.0, *result.English.VATPercent)
	assert.Equal(t, 50.0, result.English.CalcNet)
	assert.Equal(t, 9.0, result.English.CalcVAT, "zero rate defers to gross minus net")
	assert.Equal(t, 59.0, result.English.CalcTotal)
}

func TestExtractImpuestos(t *testing.T) {
	text := "base imponible: 100,00\n" +
		"iva: 21,00\n" +
		"irpf: -15,00\n" +
		"total: 106,00"

	result := extractImpuestos(text)

	taxes := result.Taxes
	require.NotNil(t, taxes)
	require.NotNil(t, taxes.Base)
	assert.Equal(t, 100.0, *taxes.Base)
	require.NotNil(t, taxes.IVA)
	assert.Equal(t, 21.0, *taxes.IVA)
	require.NotNil(t, taxes.IRPF)
	assert.Equal(t, -15.0, *taxes.IRPF)

	require.NotNil(t, taxes.Calculated)
	assert.Equal(t, 106.0, *taxes.Calculated)
	require.NotNil(t, taxes.Match)
	assert.True(t, *taxes.Match)

	require.NotNil(t, result.Totals)
	assert.Equal(t, 106.0, result.Totals.Calculated)
}

func TestExtractImpuestosWithoutBase(t *testing.T) {
	result := extractImpuestos("iva: 21,00\ntotal: 121,00")

	require.NotNil(t, result.Taxes)
	assert.Nil(t, result.Taxes.Base)
	assert.Nil(t, result.Taxes.Calculated, "void result without a base, not zero")
	assert.Nil(t, result.Totals)
}
