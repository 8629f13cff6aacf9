// Package processtest provides an in-memory process.Store for service tests.
package processtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adwizard/internal/apperr"
	"adwizard/internal/core/process"
)

// Store keeps AdProcess documents in a map and mirrors the partial-merge
// update semantics of the Mongo implementation for the field paths the wizard
// services write.
type Store struct {
	mu   sync.Mutex
	Docs map[string]*process.AdProcess
}

func NewStore() *Store {
	return &Store{Docs: make(map[string]*process.AdProcess)}
}

func (s *Store) Create(_ context.Context, p *process.AdProcess) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = primitive.NewObjectID().Hex()
	s.Docs[p.ID] = p
	return p.ID, nil
}

func (s *Store) Get(_ context.Context, id string) (*process.AdProcess, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperr.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Docs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (s *Store) Update(_ context.Context, id string, fields map[string]any) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return apperr.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Docs[id]
	if !ok {
		return apperr.ErrNotFound
	}
	for k, v := range fields {
		applyField(p, k, v)
	}
	return nil
}

func (s *Store) ByUser(_ context.Context, userID string, limit int64) ([]process.AdProcess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []process.AdProcess
	for _, p := range s.Docs {
		if p.UserID == userID && int64(len(out)) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func applyField(p *process.AdProcess, key string, v any) {
	switch key {
	case "wizard_state":
		p.WizardState = v.(process.WizardState)
	case "image_urls":
		p.ImageURLs = v.([]string)
	case "identification.status":
		p.Identification.Status = v.(process.StepStatus)
	case "identification.started_at":
		t := v.(time.Time)
		p.Identification.StartedAt = &t
	case "identification.finished_at":
		t := v.(time.Time)
		p.Identification.FinishedAt = &t
	case "identification.data":
		p.Identification.Data = v.(map[string]any)
	case "identification.data.brand", "identification.data.model_or_type":
		if p.Identification.Data == nil {
			p.Identification.Data = map[string]any{}
		}
		p.Identification.Data[strings.TrimPrefix(key, "identification.data.")] = v
	case "price_data.comparables":
		if p.PriceData == nil {
			p.PriceData = &process.PriceData{}
		}
		p.PriceData.Comparables = v.([]process.Comparable)
	case "price_data.suggestion":
		if p.PriceData == nil {
			p.PriceData = &process.PriceData{}
		}
		p.PriceData.Suggestion = v.(map[string]any)
	case "listing":
		p.Listing = v.(map[string]any)
	default:
		panic(fmt.Sprintf("processtest: unsupported update path %q", key))
	}
}
