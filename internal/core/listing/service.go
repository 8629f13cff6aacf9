// Package listing implements the final wizard step (ad copy generation) and
// the read-only process projections.
package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adwizard/internal/apperr"
	"adwizard/internal/core/process"
	"adwizard/internal/logger"
	"adwizard/internal/utils/llmjson"
	"adwizard/internal/utils/priceutil"
	"adwizard/prompts"
)

// Disclaimer is the liability/warranty waiver appended to every generated
// description.
const Disclaimer = "Der Verkauf erfolgt unter Ausschluss jeglicher Sachmängelhaftung. " +
	"Die Haftung auf Schadenersatz wegen Verletzungen von Gesundheit, Körper oder Leben " +
	"und grob fahrlässiger und/oder vorsätzlicher Verletzungen meiner Pflichten als Verkäufer bleibt davon unberührt."

const listProcessesLimit = 100

// TextModel runs a system+user chat turn and returns the raw response text.
type TextModel interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	store process.Store
	model TextModel
	log   *logger.Logger
}

func NewService(store process.Store, model TextModel) *Service {
	return &Service{
		store: store,
		model: model,
		log:   logger.New("ListingService"),
	}
}

// Generate drafts the final ad copy from the identified product data and the
// suggested price, fills defaults for fields the model omitted, appends the
// legal disclaimer and persists the listing.
func (s *Service) Generate(ctx context.Context, adProcessID string) (map[string]any, error) {
	p, err := s.store.Get(ctx, adProcessID)
	if err != nil {
		return nil, err
	}

	features := p.IdentificationData()
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: product attributes missing", apperr.ErrBadRequest)
	}

	price := p.Suggestion()["suggested_price"]
	priceText := priceutil.Format(price)

	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("marshal product data: %w", err)
	}

	user := fmt.Sprintf("Produktdaten: %s\nPreis: %s", featuresJSON, priceText)
	raw, err := s.model.Generate(ctx, prompts.ListingGeneration, user)
	if err != nil {
		return nil, err
	}

	parsed, err := llmjson.Parse(raw)
	if err != nil {
		return nil, err
	}

	if _, ok := parsed["title"]; !ok {
		parsed["title"] = "Titel fehlt"
	}
	if _, ok := parsed["condition"]; !ok {
		parsed["condition"] = stringOr(features["condition"], "Unbekannt")
	}
	if _, ok := parsed["category"]; !ok {
		parsed["category"] = stringOr(features["category"], "Unbekannt")
	}
	if _, ok := parsed["price"]; !ok {
		if price != nil {
			parsed["price"] = price
		} else {
			parsed["price"] = priceutil.OnRequest
		}
	}

	description, ok := parsed["description"].(string)
	if !ok {
		description = "Keine Beschreibung generiert"
	}
	parsed["description"] = strings.TrimRight(description, " \t\n") + "\n\n" + Disclaimer

	err = s.store.Update(ctx, adProcessID, map[string]any{
		"listing":      parsed,
		"wizard_state": process.StateListingReady,
	})
	if err != nil {
		return nil, err
	}

	return parsed, nil
}

func stringOr(v any, def string) any {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// Projection is the read model returned for one process: wizard state plus the
// step outputs a client needs to render the wizard.
type Projection struct {
	ID          string              `json:"id"`
	WizardState process.WizardState `json:"wizard_state"`
	ProductData map[string]any      `json:"identification_data,omitempty"`
	Suggestion  map[string]any      `json:"price_suggestion,omitempty"`
	Listing     map[string]any      `json:"listing,omitempty"`
}

// GetProcess returns the projection of one process document.
func (s *Service) GetProcess(ctx context.Context, adProcessID string) (*Projection, error) {
	p, err := s.store.Get(ctx, adProcessID)
	if err != nil {
		return nil, err
	}
	return &Projection{
		ID:          p.ID,
		WizardState: p.WizardState,
		ProductData: p.IdentificationData(),
		Suggestion:  p.Suggestion(),
		Listing:     p.Listing,
	}, nil
}

// ListProcesses returns all processes owned by a user, capped.
func (s *Service) ListProcesses(ctx context.Context, userID string) ([]process.AdProcess, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", apperr.ErrBadRequest)
	}
	return s.store.ByUser(ctx, userID, listProcessesLimit)
}
