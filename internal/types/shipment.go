package types

import (
	"bytes"
	"encoding/json"
	"time"
)

type Field struct {
	Name  string
	Value any
}

// ShipmentRecord is a matched row projected onto the configured fields.
type ShipmentRecord struct {
	SSCC   string
	Fields []Field
}

// Get returns the value of a projected field.
func (r *ShipmentRecord) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

type ScanResult struct {
	Barcode string
	Found   bool
	Record  *ShipmentRecord
}

// MarshalJSON flattens the record fields next to found and barcode, keeping
// the configured field order.
func (s ScanResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"found":`)
	if s.Found {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}

	barcode, err := json.Marshal(s.Barcode)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"barcode":`)
	buf.Write(barcode)

	if s.Found && s.Record != nil {
		for _, f := range s.Record.Fields {
			key, err := json.Marshal(f.Name)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(',')
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type ScanEntry struct {
	Barcode   string    `json:"barcode"`
	Found     bool      `json:"found"`
	ScannedAt time.Time `json:"scanned_at"`
}
