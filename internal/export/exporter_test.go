package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"

	"github.com/wellywell/ssccscan/internal/config"
	"github.com/wellywell/ssccscan/internal/export/mocks"
	"github.com/wellywell/ssccscan/internal/types"
)

var fixedNow = time.Date(2024, 3, 1, 8, 30, 15, 500_000_000, time.UTC)

func newTestExporter(t *testing.T, dir string, refs ReferenceFinder, uploader Uploader, retrier *Retrier, publisher Publisher) *Exporter {
	t.Helper()

	conf := config.Defaults().Export
	conf.OutputDir = dir
	e := NewExporter(&conf, refs, uploader, retrier, publisher)
	e.now = func() time.Time { return fixedNow }
	return e
}

func readDocument(t *testing.T, path string) *Document {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := Decode(f)
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)
	return doc
}

func TestExportWritesFile(t *testing.T) {
	dir := fs.NewDir(t, "export")
	defer dir.Remove()

	refs := mocks.NewReferenceFinder(t)
	refs.EXPECT().FindWorkflowReference(mock.Anything, "00012345678905001").Return("A-100", nil).Once()

	publisher := mocks.NewPublisher(t)
	publisher.EXPECT().PublishStatus(mock.Anything, types.StatusEvent{
		SSCC:       "00012345678905001",
		Status:     "Verladen",
		Code:       30,
		File:       filepath.Join(dir.Path(), "00012345678905001_20240301083015.xml"),
		ExportedAt: fixedNow,
	}).Return().Once()

	e := newTestExporter(t, dir.Path(), refs, nil, nil, publisher)

	result, err := e.Export(context.Background(), Request{SSCC: "00012345678905001", Status: "verladen", User: "jdoe", Location: "Tor 3"})
	require.NoError(t, err)

	assert.Equal(t, "Verladen", result.Status)
	assert.Equal(t, 30, result.Code)
	assert.Equal(t, "A-100", result.Reference)
	assert.False(t, result.Uploaded)

	record := readDocument(t, result.File).Records[0]
	assert.Equal(t, "00012345678905001", record.SsccCode)
	assert.Equal(t, 30, record.Status)
	assert.Equal(t, "A-100", record.WorkflowReference)
	assert.Equal(t, "2024-03-01T08:30:15Z", record.StatusTimestamp)
	assert.Equal(t, "jdoe", record.User)
	assert.Equal(t, "Tor 3", record.Location)
}

func TestExportReferenceLookupFailure(t *testing.T) {
	dir := fs.NewDir(t, "export")
	defer dir.Remove()

	refs := mocks.NewReferenceFinder(t)
	refs.EXPECT().FindWorkflowReference(mock.Anything, "X").Return("", errors.New("database unavailable")).Once()

	e := newTestExporter(t, dir.Path(), refs, nil, nil, nil)

	result, err := e.Export(context.Background(), Request{SSCC: "X", Status: "Hallenscan"})
	require.NoError(t, err)
	assert.Equal(t, "", result.Reference)
	assert.Equal(t, "", readDocument(t, result.File).Records[0].WorkflowReference)
}

func TestExportReferenceLookupDisabled(t *testing.T) {
	dir := fs.NewDir(t, "export")
	defer dir.Remove()

	refs := mocks.NewReferenceFinder(t)
	e := newTestExporter(t, dir.Path(), refs, nil, nil, nil)
	e.conf.LookupReference = false

	_, err := e.Export(context.Background(), Request{SSCC: "X"})
	require.NoError(t, err)
	refs.AssertNotCalled(t, "FindWorkflowReference", mock.Anything, mock.Anything)
}

func TestExportDefaultStatus(t *testing.T) {
	dir := fs.NewDir(t, "export")
	defer dir.Remove()

	e := newTestExporter(t, dir.Path(), nil, nil, nil, nil)

	result, err := e.Export(context.Background(), Request{SSCC: "X"})
	require.NoError(t, err)
	assert.Equal(t, "Hallenscan", result.Status)
	assert.Equal(t, 10, result.Code)
}

func TestExportUpload(t *testing.T) {

	tests := []struct {
		name      string
		uploadErr error
	}{
		{"uploaded", nil},
		{"upload failed", errors.New("530 login incorrect")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := fs.NewDir(t, "export")
			defer dir.Remove()

			uploader := mocks.NewUploader(t)
			uploader.EXPECT().Upload(mock.Anything, filepath.Join(dir.Path(), "X_20240301083015.xml")).Return(tt.uploadErr).Once()

			retrier := NewRetrier(uploader, 3, time.Millisecond)
			e := newTestExporter(t, dir.Path(), nil, uploader, retrier, nil)

			result, err := e.Export(context.Background(), Request{SSCC: "X", Status: "Hallenscan"})
			require.NotNil(t, result)
			assert.FileExists(t, result.File)

			if tt.uploadErr == nil {
				assert.NoError(t, err)
				assert.True(t, result.Uploaded)
				assert.Len(t, retrier.tasks, 0)
				return
			}

			var uploadErr *UploadError
			require.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, result.File, uploadErr.File)
			assert.False(t, result.Uploaded)
			assert.Len(t, retrier.tasks, 1)
		})
	}
}

func TestExportWriteFailure(t *testing.T) {
	dir := fs.NewDir(t, "export", fs.WithFile("blocker", ""))
	defer dir.Remove()

	uploader := mocks.NewUploader(t)
	e := newTestExporter(t, filepath.Join(dir.Path(), "blocker"), nil, uploader, nil, nil)

	result, err := e.Export(context.Background(), Request{SSCC: "X", Status: "Hallenscan"})
	assert.Nil(t, result)

	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

// Two exports of one SSCC within the same second share a filename and the
// second replaces the first. This is a known gap unless the unique suffix
// is enabled.
func TestExportSameSecondCollision(t *testing.T) {

	tests := []struct {
		name      string
		unique    bool
		wantFiles int
	}{
		{"timestamp only", false, 1},
		{"unique suffix", true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := fs.NewDir(t, "export")
			defer dir.Remove()

			e := newTestExporter(t, dir.Path(), nil, nil, nil, nil)
			e.conf.UniqueSuffix = tt.unique

			first, err := e.Export(context.Background(), Request{SSCC: "X", Status: "Hallenscan"})
			require.NoError(t, err)
			second, err := e.Export(context.Background(), Request{SSCC: "X", Status: "Verladen"})
			require.NoError(t, err)

			entries, err := os.ReadDir(dir.Path())
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantFiles)

			if !tt.unique {
				assert.Equal(t, first.File, second.File)
				assert.Equal(t, 30, readDocument(t, first.File).Records[0].Status)
			}
		})
	}
}
