package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTableResolve(t *testing.T) {
	table := NewStatusTable("Hallenscan", 10)

	tests := []struct {
		name      string
		label     string
		wantLabel string
		wantCode  int
	}{
		{"exact", "Verladen", "Verladen", 30},
		{"case insensitive", "zUGESTELLT", "Zugestellt", 50},
		{"trimmed", "  Wareneingang ", "Wareneingang", 5},
		{"empty uses default label", "", "Hallenscan", 10},
		{"blank uses default label", "   ", "Hallenscan", 10},
		{"unknown keeps label", "Verschollen", "Verschollen", 10},
		{"damaged", "Beschaedigt", "Beschaedigt", 90},
		{"shortage", "Fehlmenge", "Fehlmenge", 91},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, code := table.Resolve(tt.label)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestStatusTableUnknownDefault(t *testing.T) {
	table := NewStatusTable("Eingelagert", 99)

	label, code := table.Resolve("")
	assert.Equal(t, "Eingelagert", label)
	assert.Equal(t, 15, code)

	_, code = table.Resolve("whatever")
	assert.Equal(t, 99, code)
}

func TestLabelForCode(t *testing.T) {
	assert.Equal(t, "Kommissioniert", LabelForCode(20))
	assert.Equal(t, "", LabelForCode(7))
}
