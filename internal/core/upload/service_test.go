package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwizard/internal/apperr"
	"adwizard/internal/config"
)

func newTestService(t *testing.T, cfg config.Config) *Service {
	t.Helper()
	if cfg.UploadDir == "" {
		cfg.UploadDir = t.TempDir()
	}
	svc, err := New(cfg)
	require.NoError(t, err)
	return svc
}

var uploadURLRe = regexp.MustCompile(`/uploads/[0-9a-f]{32}\.[a-z]+$`)

func TestStoreNonImageByteIdentical(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, config.Config{UploadDir: dir})

	payload := []byte("not an image at all")
	url, err := svc.Store(context.Background(), payload, "notes.txt", "http://localhost:8080")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.Regexp(t, uploadURLRe, url)
	assert.True(t, strings.HasSuffix(url, ".txt"))

	name := url[strings.LastIndex(url, "/")+1:]
	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestStoreJPEGStripsMetadataKeepsDimensions(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, config.Config{UploadDir: dir})

	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	url, err := svc.Store(context.Background(), buf.Bytes(), "IMG_1234.JPG", "http://localhost:8080")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"), "extension is lowercased")

	name := url[strings.LastIndex(url, "/")+1:]
	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	decoded, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
}

func TestStoreInvalidImageFailsCleanly(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, config.Config{UploadDir: dir})

	_, err := svc.Store(context.Background(), []byte("garbage"), "broken.jpg", "http://localhost:8080")
	assert.ErrorIs(t, err, apperr.ErrUploadFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Name(), "."), "no file may become visible at a public name: %s", e.Name())
	}
}

func TestStoreUsesConfiguredBaseURL(t *testing.T) {
	svc := newTestService(t, config.Config{BaseURL: "https://ads.example.com/"})

	url, err := svc.Store(context.Background(), []byte("x"), "a.bin", "http://localhost:8080")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://ads.example.com/uploads/"))
}

func TestStoreForcesHTTPSOnProductionHost(t *testing.T) {
	svc := newTestService(t, config.Config{})

	url, err := svc.Store(context.Background(), []byte("x"), "a.bin", "http://turboinserat.kartenmitwirkung.de")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://turboinserat.kartenmitwirkung.de/uploads/"))
}
