// Command qrsample renders a text in every output format and, when given an
// image, decodes it. It is a smoke test for the qrcode package.
//
//	QR_SAMPLE_TEXT="https://example.com" QR_SAMPLE_FILE=code.png qrsample
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/qrkit/pkg/config"
	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
)

type sampleConfig struct {
	Text string `env:"QR_SAMPLE_TEXT" envDefault:"https://example.com"`
	File string `env:"QR_SAMPLE_FILE"`
	Out  string `env:"QR_SAMPLE_OUT"`
	QR   qrcode.Config
	Log  logger.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg sampleConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	log, err := logger.NewFromConfig(cfg.Log)
	if err != nil {
		return err
	}
	svc := qrcode.NewServiceFromConfig(cfg.QR, qrcode.WithLogger(log))

	for _, format := range []string{qrcode.FormatGIF, qrcode.FormatSVG, qrcode.FormatASCII, qrcode.FormatRaw} {
		start := time.Now()
		res, err := svc.Encode(cfg.Text, qrcode.Options{qrcode.KeyAs: format})
		if err != nil {
			log.ErrorContext(ctx, "encode failed", logger.OutputFormat(format), logger.Error(err))
			continue
		}
		log.InfoContext(ctx, "encoded",
			logger.OutputFormat(format),
			logger.Duration(time.Since(start)),
		)

		switch format {
		case qrcode.FormatASCII:
			text, _ := res.Text()
			fmt.Println(text)
		case qrcode.FormatGIF:
			if cfg.Out == "" {
				continue
			}
			data, _ := res.Bytes()
			if err := os.WriteFile(cfg.Out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", cfg.Out, err)
			}
			if cfg.File == "" {
				cfg.File = cfg.Out
			}
		}
	}

	if cfg.File == "" {
		return nil
	}

	store, err := file.NewLocalStorage(filepath.Dir(cfg.File))
	if err != nil {
		return err
	}
	out, err := svc.Decode(ctx, store.Object(filepath.Base(cfg.File)))
	if err != nil {
		log.ErrorContext(ctx, "decode failed",
			logger.ErrorKind(string(qrcode.KindOf(err))),
			logger.Error(err),
		)
		return err
	}
	log.InfoContext(ctx, "decoded", "file", cfg.File, "data", out.Data)
	return nil
}
