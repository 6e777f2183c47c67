package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/ssccscan/internal/compress"
	"github.com/wellywell/ssccscan/internal/config"
	"github.com/wellywell/ssccscan/internal/db"
	"github.com/wellywell/ssccscan/internal/export"
	"github.com/wellywell/ssccscan/internal/handlers"
	"github.com/wellywell/ssccscan/internal/history"
	"github.com/wellywell/ssccscan/internal/notify"
	"github.com/wellywell/ssccscan/internal/router"
	"github.com/wellywell/ssccscan/internal/static"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logger.Fatal(err)
	}
	if err := conf.ConfigureLogger(); err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewDatabase(&conf.Database)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close()

	if err := database.Ping(ctx); err != nil {
		logger.Warnf("Database not reachable at startup, scans will fail until it is: %s", err)
	}

	publisher := notify.NewPublisher(&conf.Messaging)
	if err := publisher.Connect(); err != nil {
		logger.Errorf("Messaging disabled: %s", err)
	}
	defer publisher.Close()

	var (
		uploader    export.Uploader
		retrier     *export.Retrier
		retrierDone chan struct{}
	)
	if conf.FTP.Enabled {
		ftpUploader := export.NewFTPUploader(&conf.FTP)
		uploader = ftpUploader
		retrier = export.NewRetrier(ftpUploader, conf.FTP.RetryAttempts, conf.FTP.RetryInterval)
		retrierDone = retrier.Start(ctx)
	}

	exporter := export.NewExporter(&conf.Export, database, uploader, retrier, publisher)

	handlerSet, err := handlers.NewHandlerSet(conf, database, exporter, history.NewRecent(conf.Scan.RecentCapacity), publisher)
	if err != nil {
		logger.Fatal(err)
	}

	r := router.NewRouter(conf, handlerSet, static.NewHandler(conf.StaticDir), compress.RequestUngzipper{})

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := r.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Shutdown: %s", err)
		}
	}()

	logger.Infof("Listening on %s", conf.RunAddress)
	if err := r.ListenAndServe(); err != nil {
		logger.Fatal(err)
	}
	<-stopped

	if retrierDone != nil {
		<-retrierDone
	}
}
