// Package price implements the comparables and price suggestion steps.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"adwizard/internal/apperr"
	"adwizard/internal/core/process"
	"adwizard/internal/logger"
	"adwizard/internal/platform/kleinanzeigen"
	"adwizard/internal/utils/llmjson"
	"adwizard/internal/utils/priceutil"
	"adwizard/prompts"
)

const comparablesLimit = 5

// SearchClient is the marketplace search surface consumed by this step.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]kleinanzeigen.SearchAd, error)
	SearchRaw(ctx context.Context, query string, limit int) (json.RawMessage, error)
}

// TextModel runs a system+user chat turn and returns the raw response text.
type TextModel interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	store  process.Store
	search SearchClient
	model  TextModel
	log    *logger.Logger
}

func NewService(store process.Store, search SearchClient, model TextModel) *Service {
	return &Service{
		store:  store,
		search: search,
		model:  model,
		log:    logger.New("PriceService"),
	}
}

// conditionRe matches the condition embedded in a search result's free-text
// details field, e.g. "Art: Kopfhörer | Zustand: Sehr Gut | Versand möglich".
var conditionRe = regexp.MustCompile(`Zustand:([^|]+)`)

// extractCondition pulls the condition out of a details text. No marker or an
// empty field yields nil.
func extractCondition(detailsText string) *string {
	if detailsText == "" {
		return nil
	}
	m := conditionRe.FindStringSubmatch(detailsText)
	if m == nil {
		return nil
	}
	condition := strings.TrimSpace(m[1])
	return &condition
}

// UpdateAttributes corrects the brand/model used for the comparables query and
// returns the stored values re-read from the document.
func (s *Service) UpdateAttributes(ctx context.Context, adProcessID, brand, modelOrType string) (string, string, error) {
	err := s.store.Update(ctx, adProcessID, map[string]any{
		"identification.data.brand":         brand,
		"identification.data.model_or_type": modelOrType,
	})
	if err != nil {
		return "", "", err
	}

	p, err := s.store.Get(ctx, adProcessID)
	if err != nil {
		return "", "", err
	}
	data := p.IdentificationData()
	storedBrand, _ := data["brand"].(string)
	storedModel, _ := data["model_or_type"].(string)
	return storedBrand, storedModel, nil
}

// SearchComparables is a stateless pass-through to the search API.
func (s *Service) SearchComparables(ctx context.Context, query string, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = comparablesLimit
	}
	return s.search.SearchRaw(ctx, query, limit)
}

type ComparablesResult struct {
	Query string
	Count int
}

// FetchAndStoreComparables queries the marketplace for "{brand} {model}" and
// persists the reduced results.
func (s *Service) FetchAndStoreComparables(ctx context.Context, adProcessID string) (*ComparablesResult, error) {
	p, err := s.store.Get(ctx, adProcessID)
	if err != nil {
		return nil, err
	}

	data := p.IdentificationData()
	brand, _ := data["brand"].(string)
	model, _ := data["model_or_type"].(string)
	if brand == "" || model == "" {
		return nil, fmt.Errorf("%w: product data incomplete for comparables search", apperr.ErrBadRequest)
	}

	query := fmt.Sprintf("%s %s", brand, model)
	ads, err := s.search.Search(ctx, query, comparablesLimit)
	if err != nil {
		return nil, err
	}

	comparables := make([]process.Comparable, 0, len(ads))
	for _, ad := range ads {
		comparables = append(comparables, process.Comparable{
			Title:       ad.Title,
			Description: ad.Description,
			Price:       ad.Price,
			Condition:   extractCondition(ad.Metadata.DetailsText),
		})
	}

	err = s.store.Update(ctx, adProcessID, map[string]any{
		"price_data.comparables": comparables,
		"wizard_state":           process.StateComparablesRetrieved,
	})
	if err != nil {
		return nil, err
	}

	return &ComparablesResult{Query: query, Count: len(comparables)}, nil
}

// Suggest sends product data and comparables to the model and persists the
// parsed suggestion with the price already in display form.
func (s *Service) Suggest(ctx context.Context, adProcessID string) (map[string]any, error) {
	p, err := s.store.Get(ctx, adProcessID)
	if err != nil {
		return nil, err
	}

	features := p.IdentificationData()
	comparables := p.Comparables()
	if len(features) == 0 || len(comparables) == 0 {
		return nil, fmt.Errorf("%w: required data missing for price analysis", apperr.ErrBadRequest)
	}

	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("marshal product data: %w", err)
	}
	comparablesJSON, err := json.Marshal(comparables)
	if err != nil {
		return nil, fmt.Errorf("marshal comparables: %w", err)
	}

	user := fmt.Sprintf("Produktdaten: %s\nVergleichsanzeigen: %s", featuresJSON, comparablesJSON)
	raw, err := s.model.Generate(ctx, prompts.PriceSuggestion, user)
	if err != nil {
		return nil, err
	}

	parsed, err := llmjson.Parse(raw)
	if err != nil {
		return nil, err
	}

	if suggested, ok := parsed["suggested_price"]; ok {
		parsed["suggested_price"] = priceutil.Format(suggested)
	}

	err = s.store.Update(ctx, adProcessID, map[string]any{
		"price_data.suggestion": parsed,
		"wizard_state":          process.StatePriceSuggested,
	})
	if err != nil {
		return nil, err
	}

	return parsed, nil
}
