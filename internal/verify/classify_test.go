package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Layout
	}{
		{"tax breakdown", "base imponible: 100,00\niva: 21,00", LayoutImpuestos},
		{"valor columns", "cantidad precio neto valor neto valor total", LayoutValor},
		{"simple columns", "cantidad precio importe", LayoutSimple},
		{"english qty", "qty net price net worth", LayoutEnglish},
		{"english net price only", "item net price 10.00", LayoutEnglish},
		{"no keywords", "lista de articulos\n2 4 8,00", LayoutUniversal},
		{"empty", "", LayoutUniversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

// The rule order is part of the contract: a tax breakdown that also carries
// cantidad/precio/importe columns must still classify as impuestos.
func TestClassifyPriorityOrder(t *testing.T) {
	text := "cantidad precio importe\nbase imponible: 100\niva: 21"
	assert.Equal(t, LayoutImpuestos, Classify(text))

	// Valor columns outrank the simple layout even though "precio" and
	// "cantidad" both appear.
	text = "cantidad precio neto valor neto importe"
	assert.Equal(t, LayoutValor, Classify(text))
}
