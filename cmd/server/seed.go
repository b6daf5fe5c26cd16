package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/portfolio/internal/content"
)

const seedDebounce = 500 * time.Millisecond

func newSeedCmd() *cobra.Command {
	var (
		file  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import projects, skills and resume entries",
		Long: `seed replaces the projects, skills and resume tables with the entries of a
YAML content bundle. Without --file the built-in sample content is imported.
With --watch the bundle is re-imported whenever the file changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch && file == "" {
				return eris.New("--watch requires --file")
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			if err := importBundle(cmd.Context(), a.db, a.logger, file); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchBundle(cmd.Context(), a.db, a.logger, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML content bundle to import")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-import when the bundle changes")
	return cmd
}

func importBundle(ctx context.Context, gdb *gorm.DB, logger *logrus.Logger, file string) error {
	bundle := content.DefaultBundle()
	if file != "" {
		loaded, err := content.LoadFile(file)
		if err != nil {
			return err
		}
		bundle = loaded
	}

	result, err := content.Import(ctx, gdb, bundle)
	if err != nil {
		return eris.Wrap(err, "importing content bundle")
	}

	logger.WithFields(logrus.Fields{
		"file":     file,
		"projects": result.Projects,
		"skills":   result.Skills,
		"resume":   result.Resume,
	}).Info("content imported")
	return nil
}

// watchBundle 监听内容包所在目录，文件变化后防抖重新导入，直到 ctx 结束。
// 监听目录而不是文件本身，编辑器保存时常常是替换文件。
func watchBundle(ctx context.Context, gdb *gorm.DB, logger *logrus.Logger, file string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return eris.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	target, err := filepath.Abs(file)
	if err != nil {
		return eris.Wrapf(err, "resolving %s", file)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return eris.Wrapf(err, "watching %s", filepath.Dir(target))
	}
	logger.WithField("file", target).Info("watching content bundle")

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			logger.WithField("op", event.Op.String()).Debug("content bundle changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(seedDebounce, func() {
				if err := importBundle(ctx, gdb, logger, file); err != nil {
					logger.WithError(err).Error("re-importing content bundle")
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("file watcher error")
		}
	}
}
