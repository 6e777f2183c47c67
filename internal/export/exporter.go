package export

import (
	"context"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/ssccscan/internal/config"
	"github.com/wellywell/ssccscan/internal/metrics"
	"github.com/wellywell/ssccscan/internal/types"
)

type ReferenceFinder interface {
	FindWorkflowReference(ctx context.Context, sscc string) (string, error)
}

type Publisher interface {
	PublishStatus(ctx context.Context, event types.StatusEvent)
}

type Request struct {
	SSCC     string
	Status   string
	User     string
	Location string
}

type Result struct {
	SSCC      string
	File      string
	Status    string
	Code      int
	Reference string
	Uploaded  bool
}

type Exporter struct {
	conf       *config.ExportConfig
	statuses   *StatusTable
	writer     *FileWriter
	references ReferenceFinder
	uploader   Uploader
	retrier    *Retrier
	publisher  Publisher
	now        func() time.Time
}

// NewExporter wires the export steps. references, uploader, retrier and
// publisher are optional and may be nil.
func NewExporter(conf *config.ExportConfig, references ReferenceFinder, uploader Uploader, retrier *Retrier, publisher Publisher) *Exporter {
	return &Exporter{
		conf:       conf,
		statuses:   NewStatusTable(conf.DefaultStatus, conf.DefaultCode),
		writer:     NewFileWriter(conf.OutputDir),
		references: references,
		uploader:   uploader,
		retrier:    retrier,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Export writes the status document of req and uploads it when an uploader
// is configured. On *UploadError the returned result is still valid and names
// the retained file.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	label, code := e.statuses.Resolve(req.Status)

	var reference string
	if e.conf.LookupReference && e.references != nil {
		ref, err := e.references.FindWorkflowReference(ctx, req.SSCC)
		if err != nil {
			logger.Warnf("Workflow reference lookup for %s failed: %s", req.SSCC, err)
		}
		reference = ref
	}

	now := e.now()
	update := types.NewStatusUpdate(req.SSCC, label, code, now, req.User, req.Location, reference)
	name := Filename(update.SSCC(), update.Timestamp(), e.conf.UniqueSuffix)

	data, err := Build(update, now, uuid.New()).Marshal()
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("write_failed").Inc()
		return nil, &WriteError{File: name, Err: err}
	}

	path, err := e.writer.Write(name, data)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("write_failed").Inc()
		logger.Errorf("Writing %s failed: %s", name, err)
		return nil, &WriteError{File: name, Err: err}
	}
	metrics.ExportsTotal.WithLabelValues("written").Inc()
	logger.Infof("Status %s (%d) for %s written to %s", label, code, req.SSCC, path)

	result := &Result{SSCC: req.SSCC, File: path, Status: label, Code: code, Reference: reference}

	if e.uploader != nil {
		if err := e.uploader.Upload(ctx, path); err != nil {
			metrics.ExportsTotal.WithLabelValues("upload_failed").Inc()
			logger.Errorf("Upload of %s failed: %s", path, err)
			if e.retrier != nil {
				e.retrier.Enqueue(path)
			}
			e.publish(ctx, result, now)
			return result, &UploadError{File: path, Err: err}
		}
		metrics.ExportsTotal.WithLabelValues("uploaded").Inc()
		result.Uploaded = true
	}

	e.publish(ctx, result, now)
	return result, nil
}

func (e *Exporter) publish(ctx context.Context, result *Result, at time.Time) {
	if e.publisher == nil {
		return
	}
	e.publisher.PublishStatus(ctx, types.StatusEvent{
		SSCC:       result.SSCC,
		Status:     result.Status,
		Code:       result.Code,
		File:       result.File,
		Uploaded:   result.Uploaded,
		ExportedAt: at,
	})
}
