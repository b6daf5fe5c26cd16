package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// LocalStore 将图片保存到本地上传目录，由静态文件路由对外提供。
type LocalStore struct {
	dir     string
	urlPath string
	now     func() time.Time
}

// NewLocalStore creates a store writing under dir and serving from urlPath.
func NewLocalStore(dir, urlPath string) *LocalStore {
	return &LocalStore{dir: dir, urlPath: urlPath, now: time.Now}
}

// Save writes the content to a new uniquely named file.
func (s *LocalStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", eris.Wrap(err, "creating upload directory")
	}

	filename := objectName(formatFrom(name, contentType), s.now())
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", eris.Wrap(err, "creating upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", eris.Wrap(err, "writing upload file")
	}
	return joinURL(s.urlPath, filename), nil
}

func formatFrom(name, contentType string) string {
	if format, ok := strings.CutPrefix(contentType, "image/"); ok && format != "" {
		return format
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "bin"
	}
	return ext
}
