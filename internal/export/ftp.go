package export

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jlaffaye/ftp"
	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/ssccscan/internal/config"
)

type Uploader interface {
	Upload(ctx context.Context, path string) error
}

// FTPUploader delivers files over FTP with explicit TLS. Every upload uses
// its own session.
type FTPUploader struct {
	conf *config.FTPConfig
}

func NewFTPUploader(conf *config.FTPConfig) *FTPUploader {
	return &FTPUploader{conf: conf}
}

func (u *FTPUploader) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, u.conf.Timeout)
	defer cancel()

	addr := net.JoinHostPort(u.conf.Host, strconv.Itoa(u.conf.Port))
	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(u.conf.Timeout),
		ftp.DialWithExplicitTLS(&tls.Config{
			ServerName:         u.conf.Host,
			InsecureSkipVerify: u.conf.InsecureSkipVerify,
		}),
	)
	if err != nil {
		return fmt.Errorf("ftp dial %s: %w", addr, err)
	}
	defer func() {
		if err := conn.Quit(); err != nil {
			logger.Debugf("FTP quit: %s", err)
		}
	}()

	if err := conn.Login(u.conf.User, u.conf.Password); err != nil {
		return fmt.Errorf("ftp login: %w", err)
	}
	if u.conf.RemoteDir != "" {
		if err := conn.ChangeDir(u.conf.RemoteDir); err != nil {
			return fmt.Errorf("ftp cwd %s: %w", u.conf.RemoteDir, err)
		}
	}
	if err := conn.Stor(filepath.Base(path), f); err != nil {
		return fmt.Errorf("ftp stor: %w", err)
	}

	logger.Infof("Uploaded %s to %s%s", filepath.Base(path), addr, u.conf.RemoteDir)
	return nil
}
