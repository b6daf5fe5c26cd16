package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/jobs"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/notify"
	"github.com/portfolio/internal/router"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	cfg, logger := a.cfg, a.logger

	sentryEnabled, flush, err := logging.InitSentry(logger, logging.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising sentry")
	}
	defer flush()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	opts := handler.Options{
		DB:            a.db,
		Logger:        logger,
		Cache:         service.NewContentCache(cfg.CacheTTL),
		AdminEmail:    cfg.AdminEmail,
		AnalyticsSalt: cfg.SessionSecret,
		SecureCookies: cfg.Environment == "production",
	}

	// NewMailer 在 SMTP 未配置时返回 nil，不能把 nil 指针塞进接口
	if mailer := notify.NewMailer(cfg.SMTP, logger); mailer != nil {
		opts.Notifier = mailer
	}

	if cfg.S3.Enabled() {
		store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return eris.Wrap(err, "configuring s3 storage")
		}
		opts.Store = store
	} else {
		opts.Store = storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPath)
	}

	api := handler.NewAPI(opts)

	engine, err := router.SetupRouter(router.Options{
		API:           api,
		Logger:        logger,
		SessionSecret: cfg.SessionSecret,
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
		SecureCookies: opts.SecureCookies,
		Sentry:        sentryEnabled,
	})
	if err != nil {
		return eris.Wrap(err, "initialising router")
	}

	scheduler, err := jobs.NewScheduler(cfg.RollupSchedule, cfg.RollupRetention, api.Analytics(), logger)
	if err != nil {
		return eris.Wrap(err, "initialising analytics rollup")
	}
	scheduler.Start()

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: engine,
	}

	logger.WithFields(logrus.Fields{
		"addr":   httpServer.Addr,
		"driver": cfg.DatabaseDriver,
		"s3":     cfg.S3.Enabled(),
		"smtp":   cfg.SMTP.Enabled(),
	}).Info("starting http server")

	serverErrCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrCh:
		scheduler.Stop(context.Background())
		if err != nil {
			return eris.Wrap(err, "http server error")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutting down http server")
	}

	logger.Info("http server shut down cleanly")
	return nil
}
