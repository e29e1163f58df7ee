package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindReportedTotalLastWins(t *testing.T) {
	text := "subtotal\ntotal: 100,00\ndesglose de iva\ntotal: 250,50\nfirma"

	got, ok := FindReportedTotal(text)
	require.True(t, ok)
	assert.Equal(t, 250.50, got)
}

func TestFindReportedTotal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plural label", "totales 1.234,56", 1234.56},
		// Mixed separators always read European: dots stripped, comma is
		// the decimal point, even for a comma-grouped token.
		{"comma-grouped reads european", "TOTAL $ 1,234.56", 1.23456},
		{"label noise before digits", "total a pagar ....... 99,95", 99.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindReportedTotal(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindReportedTotalAbsent(t *testing.T) {
	for _, text := range []string{"", "cantidad precio importe", "suma 100,00"} {
		_, ok := FindReportedTotal(text)
		assert.False(t, ok, "text %q", text)
	}
}
