// Package identify implements the product identification step: the first
// uploaded image is analyzed by a vision model and the parsed product
// attributes are written onto the process document.
package identify

import (
	"context"
	"fmt"
	"time"

	"adwizard/internal/apperr"
	"adwizard/internal/core/process"
	"adwizard/internal/logger"
	"adwizard/internal/utils/llmjson"
	"adwizard/prompts"
)

// VisionModel runs a prompt plus one image through a vision-capable model and
// returns the raw response text.
type VisionModel interface {
	AnalyzeImage(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error)
}

// ImageFetcher downloads an image URL and reports its mime type.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

type Service struct {
	store  process.Store
	vision VisionModel
	fetch  ImageFetcher
	log    *logger.Logger
}

func NewService(store process.Store, vision VisionModel, fetch ImageFetcher) *Service {
	return &Service{
		store:  store,
		vision: vision,
		fetch:  fetch,
		log:    logger.New("IdentifyService"),
	}
}

type Result struct {
	AdProcessID    string
	Identification map[string]any
}

// Identify runs the identification step. Without an id a new AdProcess is
// created; with one, the existing document is reset to PENDING and its image
// URLs overwritten. On any inference failure the document keeps a durable
// identification.status=ERROR marker before the error is surfaced.
func (s *Service) Identify(ctx context.Context, adProcessID, userID string, imageURLs []string) (*Result, error) {
	if len(imageURLs) == 0 {
		return nil, fmt.Errorf("%w: no image URLs provided", apperr.ErrBadRequest)
	}

	now := time.Now().UTC()
	id := adProcessID
	if id == "" {
		created := &process.AdProcess{
			UserID:      userID,
			CreatedAt:   now,
			WizardState: process.StateStarted,
			ImageURLs:   imageURLs,
			Identification: process.IdentificationStep{
				Status:    process.StatusPending,
				StartedAt: &now,
			},
		}
		var err error
		if id, err = s.store.Create(ctx, created); err != nil {
			return nil, err
		}
		s.log.LogInfof("created ad process %s", id)
	} else {
		if _, err := s.store.Get(ctx, id); err != nil {
			return nil, err
		}
		if err := s.store.Update(ctx, id, map[string]any{
			"identification.status":     process.StatusPending,
			"identification.started_at": now,
			"image_urls":                imageURLs,
		}); err != nil {
			return nil, err
		}
	}

	parsed, err := s.runInference(ctx, imageURLs[0])
	if err != nil {
		s.markError(ctx, id)
		return nil, err
	}

	if err := s.store.Update(ctx, id, map[string]any{
		"identification.data":        parsed,
		"identification.status":      process.StatusDone,
		"identification.finished_at": time.Now().UTC(),
		"wizard_state":               process.StateIdentified,
	}); err != nil {
		return nil, err
	}

	return &Result{AdProcessID: id, Identification: parsed}, nil
}

// runInference analyzes the first image only; additional URLs stay on the
// document but are not consumed.
func (s *Service) runInference(ctx context.Context, imageURL string) (map[string]any, error) {
	data, mimeType, err := s.fetch.Fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	raw, err := s.vision.AnalyzeImage(ctx, prompts.ProductIdentification, data, mimeType)
	if err != nil {
		return nil, err
	}

	return llmjson.Parse(raw)
}

// markError leaves a durable marker that clients can poll for even though the
// request itself failed synchronously.
func (s *Service) markError(ctx context.Context, id string) {
	if err := s.store.Update(ctx, id, map[string]any{
		"identification.status": process.StatusError,
	}); err != nil {
		s.log.LogErrorf("failed to record identification error on %s: %v", id, err)
	}
}

// Validate overwrites identification.data with client-corrected values,
// bypassing inference.
func (s *Service) Validate(ctx context.Context, adProcessID string, data map[string]any) error {
	return s.store.Update(ctx, adProcessID, map[string]any{
		"identification.data": data,
		"wizard_state":        process.StateIdentified,
	})
}
