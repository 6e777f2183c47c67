package export

import (
	"strings"
)

// Status codes understood by the Soloplan SSCC import.
var statusCodes = map[string]int{
	"wareneingang":   5,
	"hallenscan":     10,
	"eingelagert":    15,
	"kommissioniert": 20,
	"verladen":       30,
	"ausgeliefert":   40,
	"zugestellt":     50,
	"beschaedigt":    90,
	"fehlmenge":      91,
}

var statusLabels = map[int]string{
	5:  "Wareneingang",
	10: "Hallenscan",
	15: "Eingelagert",
	20: "Kommissioniert",
	30: "Verladen",
	40: "Ausgeliefert",
	50: "Zugestellt",
	90: "Beschaedigt",
	91: "Fehlmenge",
}

type StatusTable struct {
	defaultLabel string
	defaultCode  int
}

func NewStatusTable(defaultLabel string, defaultCode int) *StatusTable {
	return &StatusTable{defaultLabel: defaultLabel, defaultCode: defaultCode}
}

// Resolve maps a status label to its code. Labels match case-insensitively,
// an empty label means the default label and an unknown label gets the
// default code.
func (s *StatusTable) Resolve(label string) (string, int) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = s.defaultLabel
	}
	if code, ok := statusCodes[strings.ToLower(label)]; ok {
		return statusLabels[code], code
	}
	return label, s.defaultCode
}

// LabelForCode returns the canonical label of a code, or "" for codes outside
// the table.
func LabelForCode(code int) string {
	return statusLabels[code]
}
