package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "golang.org/x/image/webp"
)

// MaxImageBytes 限制单张上传图片的大小。
const MaxImageBytes = 8 << 20

var (
	// ErrNotAnImage is returned when the upload cannot be decoded as a supported image.
	ErrNotAnImage = eris.New("file is not a supported image")
	// ErrImageTooLarge is returned when the upload exceeds MaxImageBytes.
	ErrImageTooLarge = eris.New("image exceeds size limit")
)

// Store persists uploaded files and returns the public URL they are served from.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// ImageInfo describes a validated image upload.
type ImageInfo struct {
	Format      string
	ContentType string
	Width       int
	Height      int
	Data        []byte
}

// ReadImage 读取上传内容并校验其为 png/jpeg/gif/webp 图片。
func ReadImage(r io.Reader) (ImageInfo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return ImageInfo{}, eris.Wrap(err, "reading upload")
	}
	if len(data) > MaxImageBytes {
		return ImageInfo{}, ErrImageTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, ErrNotAnImage
	}

	return ImageInfo{
		Format:      format,
		ContentType: "image/" + format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Data:        data,
	}, nil
}

// objectName builds a unique date-prefixed file name that keeps the extension of the decoded format.
func objectName(format string, now time.Time) string {
	ext := "." + strings.ToLower(format)
	if format == "jpeg" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s-%s%s", now.Format("20060102"), uuid.New().String(), ext)
}

func joinURL(base, name string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return path.Join("/", name)
	}
	return base + "/" + name
}
