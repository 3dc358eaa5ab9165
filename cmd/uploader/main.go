// Command uploader serves a small multipart upload API that shows the
// materializer, the request-scoped messages and the storage backends wired
// together.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/mvckit/pkg/config"
	"github.com/dmitrymomot/mvckit/pkg/httpserver"
	"github.com/dmitrymomot/mvckit/pkg/i18n"
	"github.com/dmitrymomot/mvckit/pkg/logger"
	"github.com/dmitrymomot/mvckit/pkg/storage"
	"github.com/dmitrymomot/mvckit/pkg/upload"
)

const serviceName = "uploader"

type appConfig struct {
	Log     logger.Config
	HTTP    httpserver.Config
	Upload  upload.Config
	Storage storageConfig

	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}

type storageConfig struct {
	// Driver is "local" or "s3".
	Driver  string `env:"STORAGE_DRIVER" envDefault:"local"`
	Dir     string `env:"STORAGE_DIR" envDefault:"./data/uploads"`
	BaseURL string `env:"STORAGE_BASE_URL" envDefault:"/files/"`
	S3      storage.S3Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg, config.WithOptionalEnvFiles(".env"))

	log := logger.New(append(
		logger.FromConfig(cfg.Log, serviceName),
		logger.WithContextExtractors(logger.ChiRequestID()),
	)...)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("uploader stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	translator, err := i18n.NewTranslator(ctx, i18n.DefaultAdapter(),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
	)
	if err != nil {
		return err
	}

	store, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := upload.NewPrometheusMetrics(reg)
	if err != nil {
		return err
	}

	materializer := upload.New(cfg.Upload,
		upload.WithLogger(log),
		upload.WithMetrics(metrics),
		upload.WithLimitResolver(upload.Overrides{
			"POST /documents": {FileSize: 10 << 20, Size: 12 << 20},
		}),
	)
	log.InfoContext(ctx, "upload limits",
		logger.Group("limits",
			slog.Int64("size", cfg.Upload.Limits().Size),
			slog.Int64("file_size", cfg.Upload.Limits().FileSize),
		),
		slog.String("temp_dir", cfg.Upload.TempDir()),
	)

	router := newRouter(routerDeps{
		log:          log,
		translator:   translator,
		materializer: materializer,
		store:        store,
		gatherer:     reg,
	})

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}

func newStorage(ctx context.Context, cfg storageConfig) (storage.Storage, error) {
	if cfg.Driver == "s3" {
		return storage.NewS3Storage(ctx, cfg.S3)
	}
	return storage.NewLocalStorage(cfg.Dir, cfg.BaseURL)
}
