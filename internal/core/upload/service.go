// Package upload accepts product photos, strips embedded metadata from raster
// images and stores them under a generated name, either on local disk (served
// under /uploads) or in a Supabase bucket when one is configured.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/antoineross/supabase-go"
	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"

	"adwizard/internal/apperr"
	"adwizard/internal/config"
	"adwizard/internal/logger"
)

// productionHost uploads under this domain must be reachable over https.
const productionHost = "kartenmitwirkung.de"

type Service struct {
	log *logger.Logger
	cfg config.Config

	supabaseClient *supabase.Client
}

func New(cfg config.Config) (*Service, error) {
	s := &Service{log: logger.New("UploadService"), cfg: cfg}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	if cfg.SupabaseURL != "" && cfg.SupabaseServiceKey != "" {
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
		if err != nil {
			if cfg.AppEnv == "production" {
				return nil, fmt.Errorf("failed to initialize Supabase client in production: %w", err)
			}
			s.log.LogWarnf("failed to initialize Supabase client: %v", err)
		} else {
			s.supabaseClient = client
		}
	}
	return s, nil
}

// Store persists an uploaded file and returns its public URL. Only the
// extension of the client-supplied filename is trusted; the stored name is a
// random token. origin is the inbound request origin, used when no BASE_URL
// is configured.
func (s *Service) Store(ctx context.Context, data []byte, originalName, origin string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	payload, err := s.sanitize(data, ext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUploadFailed, err)
	}

	if s.supabaseClient != nil && s.cfg.SupabaseBucket != "" {
		url, err := s.storeBucket(payload, name, ext)
		if err == nil {
			return url, nil
		}
		if s.cfg.AppEnv == "production" {
			return "", fmt.Errorf("%w: %v", apperr.ErrUploadFailed, err)
		}
		s.log.LogWarnf("Supabase upload failed, falling back to local storage: %v", err)
	}

	if err := s.storeLocal(payload, name); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUploadFailed, err)
	}
	return s.publicURL(origin) + "/uploads/" + name, nil
}

// sanitize re-encodes raster images so only pixel data survives; EXIF and
// other embedded metadata are dropped. Non-image payloads pass through
// byte-for-byte.
func (s *Service) sanitize(data []byte, ext string) ([]byte, error) {
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("re-encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// storeLocal writes to a temp file first and renames, so a failed write never
// leaves a partial file visible at the public name.
func (s *Service) storeLocal(data []byte, name string) error {
	tmp, err := os.CreateTemp(s.cfg.UploadDir, ".upload-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.cfg.UploadDir, name))
}

func (s *Service) storeBucket(data []byte, name, ext string) (string, error) {
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	reader := bytes.NewReader(data)
	if _, err := s.supabaseClient.Storage.UploadFile(s.cfg.SupabaseBucket, name, reader, storage_go.FileOptions{ContentType: &mimeType}); err != nil {
		return "", fmt.Errorf("bucket upload: %w", err)
	}

	return s.supabaseClient.Storage.GetPublicUrl(s.cfg.SupabaseBucket, name).SignedURL, nil
}

// publicURL picks the configured base URL over the request origin and forces
// https for the production hostname.
func (s *Service) publicURL(origin string) string {
	base := s.cfg.BaseURL
	if base == "" {
		base = origin
	}
	base = strings.TrimRight(base, "/")
	if strings.Contains(base, productionHost) {
		base = strings.Replace(base, "http://", "https://", 1)
	}
	return base
}
