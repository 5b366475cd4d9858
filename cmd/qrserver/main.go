// Command qrserver exposes the qrcode package over HTTP.
//
// Configuration is read from the environment (and a .env file when present):
// HTTP_* for the listener, QR_* for the codec, LOG_* for logging.
// QR_SOURCE_DIR or S3_BUCKET enable GET /decode/{path}.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrymomot/qrkit/pkg/config"
	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrhttp"
)

type appConfig struct {
	HTTP      qrhttp.Config
	QR        qrcode.Config
	Log       logger.Config
	S3        file.S3Config
	SourceDir string `env:"QR_SOURCE_DIR"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := logger.NewFromConfig(cfg.Log, logger.WithContextExtractors(qrhttp.LogRequestID))
	if err != nil {
		return err
	}

	svc := qrcode.NewServiceFromConfig(cfg.QR, qrcode.WithLogger(log.With(logger.Component("qrcode"))))
	opts := []qrhttp.Option{
		qrhttp.WithLogger(log.With(logger.Component("http"))),
		qrhttp.WithMaxUploadSize(cfg.HTTP.MaxUploadSize),
	}

	src, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	if src != nil {
		opts = append(opts, qrhttp.WithSource(src))
	}

	handler := qrhttp.NewHandler(svc, opts...)
	return qrhttp.NewServer(cfg.HTTP, handler.Routes(), log).Run(ctx)
}

// newSource returns nil when neither a directory nor a bucket is configured.
func newSource(ctx context.Context, cfg appConfig) (file.Source, error) {
	switch {
	case cfg.S3.Bucket != "":
		return file.NewS3Storage(ctx, cfg.S3)
	case cfg.SourceDir != "":
		return file.NewLocalStorage(cfg.SourceDir)
	}
	return nil, nil
}
