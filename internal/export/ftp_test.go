package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gotest.tools/v3/fs"

	"github.com/wellywell/ssccscan/internal/config"
)

func TestFTPUploaderErrors(t *testing.T) {
	dir := fs.NewDir(t, "export", fs.WithFile("X.xml", "<a/>"))
	defer dir.Remove()

	conf := config.Defaults().FTP
	conf.Host = "127.0.0.1"
	conf.Port = 1
	conf.Timeout = time.Second
	u := NewFTPUploader(&conf)

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir.Path(), "missing.xml")},
		{"unreachable server", filepath.Join(dir.Path(), "X.xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, u.Upload(context.Background(), tt.path))
		})
	}
}
