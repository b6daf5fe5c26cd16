package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSQLite 使用本地 SQLite 文件存储。
	DriverSQLite = "sqlite"
	// DriverPostgres 使用托管的 Postgres 数据库。
	DriverPostgres = "postgres"
)

// Options controls how the database connection is initialised.
type Options struct {
	Driver      string
	Path        string
	DSN         string
	Logger      logger.Interface
	BusyTimeout time.Duration
}

// Open 打开数据库连接。Driver 为空时回退到 sqlite，Path 为空时回退到 portfolio.db。
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	gormLogger := opts.Logger
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, eris.Wrap(err, "opening database")
	}

	return gdb, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	switch driver {
	case "", DriverSQLite:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "portfolio.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, eris.Wrapf(err, "preparing database directory for %s", path)
		}

		busyTimeout := opts.BusyTimeout
		if busyTimeout <= 0 {
			busyTimeout = 5 * time.Second
		}
		dsn := path
		if !strings.HasPrefix(path, "file:") {
			dsn = fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=1", path, busyTimeout/time.Millisecond)
		}
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		dsn := strings.TrimSpace(opts.DSN)
		if dsn == "" {
			return nil, eris.New("postgres driver requires a DSN")
		}
		return postgres.Open(dsn), nil
	default:
		return nil, eris.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// Migrate 自动迁移站点内容相关的全部表。
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return eris.New("database not initialized")
	}

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return eris.Wrap(err, "auto-migrating schema")
	}
	return nil
}

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&Profile{},
		&UserRole{},
		&Project{},
		&Skill{},
		&ResumeEntry{},
		&Blog{},
		&AnalyticsRecord{},
		&ContactSubmission{},
		&NewsletterSubscriber{},
	}
}

// Close releases the underlying database resources.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return eris.Wrap(err, "retrieving sql.DB for close")
	}
	if err := sqlDB.Close(); err != nil {
		return eris.Wrap(err, "closing database connection")
	}
	return nil
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
