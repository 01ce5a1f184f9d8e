package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"pixelpage/internal/config"
	"pixelpage/internal/models"
	"pixelpage/internal/modules/archive"
	"pixelpage/internal/modules/blobstore"
	"pixelpage/internal/modules/pipeline"
	"pixelpage/internal/modules/sources"
	"pixelpage/internal/modules/web"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	addr        string
	imageURL    string
	timeout     time.Duration
	blobTTL     time.Duration
	sourcesFile string
	archiveDir  string
)

var rootCmd = &cobra.Command{
	Use:   "pixelpage",
	Short: "Serve the visit counter page with random image fetch",
	Long:  `A web server that counts page visits in a cookie and fetches a random image from a remote endpoint on demand`,
}

// Execute now takes a context and logger
func Execute(ctx context.Context, logger *zap.Logger) {
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		run(ctx, cmd, args, logger)
	}
	if err := rootCmd.Execute(); err != nil {
		logger.Error("execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides ADDR)")
	rootCmd.Flags().StringVarP(&imageURL, "image-url", "u", "", "Random image endpoint (overrides IMAGE_URL)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Upstream fetch deadline, 0 for none (overrides IMAGE_TIMEOUT)")
	rootCmd.Flags().DurationVar(&blobTTL, "blob-ttl", 0, "Fetched image lifetime (overrides BLOB_TTL)")
	rootCmd.Flags().StringVar(&sourcesFile, "sources", "", "CSV file of image endpoints (overrides SOURCES_FILE)")
	rootCmd.Flags().StringVar(&archiveDir, "archive-dir", "", "Directory to archive fetched images (overrides ARCHIVE_DIR)")
	pflag.CommandLine.AddFlagSet(rootCmd.Flags())
}

// applyFlags overlays values from explicitly set flags onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("addr") {
		cfg.Addr = addr
	}
	if cmd.Flags().Changed("image-url") {
		cfg.ImageURL = imageURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.ImageTimeout = timeout
	}
	if cmd.Flags().Changed("blob-ttl") {
		cfg.BlobTTL = blobTTL
	}
	if cmd.Flags().Changed("sources") {
		cfg.SourcesFile = sourcesFile
	}
	if cmd.Flags().Changed("archive-dir") {
		cfg.ArchiveDir = archiveDir
	}
}

func run(ctx context.Context, cmd *cobra.Command, args []string, logger *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", zap.Error(err))
		os.Exit(1)
	}
	applyFlags(cmd, &cfg)

	logger.Info("starting page server",
		zap.String("addr", cfg.Addr),
		zap.String("image_url", cfg.ImageURL),
		zap.Duration("blob_ttl", cfg.BlobTTL))

	picker := sources.Fixed(cfg.ImageURL)
	if cfg.SourcesFile != "" {
		list, err := sources.Load(cfg.SourcesFile, logger)
		if err != nil {
			logger.Error("sources load failed", zap.String("path", cfg.SourcesFile), zap.Error(err))
			os.Exit(1)
		}
		picker = list
	}

	store := blobstore.New(cfg.BlobTTL)
	go store.Sweep(ctx, logger)

	var archiveChan chan models.ArchiveItem
	if cfg.ArchiveDir != "" {
		archiveChan = make(chan models.ArchiveItem, 50)
		p := pipeline.New(logger)
		p.AddStage(archive.NewWriter(cfg.ArchiveDir))
		p.AddStage(archive.NewManifest(cfg.ArchiveDir))
		go func() {
			logger.Debug("starting archive pipeline", zap.String("dir", cfg.ArchiveDir))
			if err := p.Run(ctx, archiveChan); err != nil {
				logger.Error("archive pipeline failed", zap.Error(err))
			}
		}()
	}

	router := web.NewRouter(web.Options{
		Logger:  logger,
		Client:  &http.Client{Timeout: cfg.ImageTimeout},
		Store:   store,
		Picker:  picker,
		Archive: archiveChan,
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
		// The archive channel is never closed: in-flight handlers may still
		// send, and the pipeline ends through ctx cancellation instead.
		logger.Info("server stopped")
	}
}
