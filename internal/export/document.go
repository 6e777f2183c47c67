package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/wellywell/ssccscan/internal/types"
)

const Namespace = "http://soloplan.de/ssccimport.v1"

type Document struct {
	XMLName xml.Name       `xml:"http://soloplan.de/ssccimport.v1 SsccImport"`
	Header  Header         `xml:"Header"`
	Records []StatusRecord `xml:"StatusRecords>StatusRecord"`
}

type Header struct {
	SendTimestamp   string `xml:"SendTimestamp"`
	ExportReference string `xml:"ExportReference"`
}

type StatusRecord struct {
	WorkflowReference string `xml:"WorkflowReference"`
	StatusTimestamp   string `xml:"StatusTimestamp"`
	Status            int    `xml:"Status"`
	SsccCode          string `xml:"SsccCode"`
	Location          string `xml:"Location,omitempty"`
	User              string `xml:"User,omitempty"`
}

// Build wraps a single status update into an import document.
func Build(update types.StatusUpdate, sentAt time.Time, reference uuid.UUID) *Document {
	return &Document{
		Header: Header{
			SendTimestamp:   formatTimestamp(sentAt),
			ExportReference: reference.String(),
		},
		Records: []StatusRecord{{
			WorkflowReference: update.WorkflowReference(),
			StatusTimestamp:   formatTimestamp(update.Timestamp()),
			Status:            update.Code(),
			SsccCode:          update.SSCC(),
			Location:          update.Location(),
			User:              update.User(),
		}},
	}
}

func (d *Document) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode status document %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := xml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode status document %w", err)
	}
	if d.XMLName.Space != Namespace {
		return nil, fmt.Errorf("unexpected namespace %q", d.XMLName.Space)
	}
	return &d, nil
}

// Update converts a decoded record back into a status update.
func (r StatusRecord) Update() (types.StatusUpdate, error) {
	ts, err := time.Parse(time.RFC3339, r.StatusTimestamp)
	if err != nil {
		return types.StatusUpdate{}, fmt.Errorf("bad status timestamp %w", err)
	}
	return types.NewStatusUpdate(r.SsccCode, LabelForCode(r.Status), r.Status, ts, r.User, r.Location, r.WorkflowReference), nil
}

func formatTimestamp(t time.Time) string {
	return t.Truncate(time.Second).Format(time.RFC3339)
}
