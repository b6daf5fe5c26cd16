package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReadImage(t *testing.T) {
	info, err := ReadImage(bytes.NewReader(pngBytes(t, 4, 3)))
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, 4, info.Width)
	assert.Equal(t, 3, info.Height)

	_, err = ReadImage(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestReadImageRejectsOversizedUploads(t *testing.T) {
	_, err := ReadImage(bytes.NewReader(make([]byte, MaxImageBytes+10)))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestLocalStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewLocalStore(dir, "/static/uploads")
	store.now = func() time.Time { return time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) }

	data := pngBytes(t, 2, 2)
	url, err := store.Save(context.Background(), "photo.png", "image/png", bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/20240506-"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	written, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

type fakeUploader struct {
	input *s3.PutObjectInput
}

func (f *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	return &manager.UploadOutput{}, nil
}

func TestS3StoreSave(t *testing.T) {
	fake := &fakeUploader{}
	store := &S3Store{
		uploader:  fake,
		bucket:    "thumbs",
		publicURL: "https://cdn.example.com",
		prefix:    "uploads/",
		now:       func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) },
	}

	url, err := store.Save(context.Background(), "cover", "image/jpeg", strings.NewReader("x"))
	require.NoError(t, err)
	require.NotNil(t, fake.input)
	assert.Equal(t, "thumbs", *fake.input.Bucket)
	assert.Equal(t, "image/jpeg", *fake.input.ContentType)
	assert.True(t, strings.HasPrefix(*fake.input.Key, "uploads/20240102-"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+*fake.input.Key, url)
}
