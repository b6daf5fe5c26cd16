package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Personal portfolio site",
	Long: `server runs the portfolio web application and its maintenance tasks:
serving the site, importing content bundles and creating the admin account.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
	rootCmd.AddCommand(newServeCmd(), newSeedCmd(), newAdminCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// app 是各子命令共用的启动结果：配置、日志和已迁移的数据库。
type app struct {
	cfg    config.AppConfig
	logger *logrus.Logger
	db     *gorm.DB
}

func bootstrap() (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadFrom(viper.New(), cfgFile)
	if err != nil {
		return nil, eris.Wrap(err, "failure loading configuration")
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, eris.Wrap(err, "failure initialising logger")
	}

	gdb, err := db.Open(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseURL,
	})
	if err != nil {
		return nil, eris.Wrap(err, "opening database")
	}

	if err := db.Migrate(gdb); err != nil {
		_ = db.Close(gdb)
		return nil, eris.Wrap(err, "running migrations")
	}

	return &app{cfg: cfg, logger: logger, db: gdb}, nil
}

func (a *app) close() {
	if err := db.Close(a.db); err != nil {
		a.logger.WithError(err).Error("closing database")
	}
}
