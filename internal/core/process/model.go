// Package process holds the AdProcess aggregate: the single persisted document
// that tracks one ad-creation wizard run from photo upload through listing
// generation.
package process

import "time"

type StepStatus string

const (
	StatusPending StepStatus = "PENDING"
	StatusDone    StepStatus = "DONE"
	StatusError   StepStatus = "ERROR"
)

// WizardState is a coarse progress marker advanced by successful step
// completion. It is informational for clients, not a guard: steps validate
// their own preconditions and may be re-run regardless of the current state.
type WizardState string

const (
	StateStarted              WizardState = "STARTED"
	StateUploaded             WizardState = "UPLOADED"
	StateIdentified           WizardState = "IDENTIFIED"
	StateComparablesRetrieved WizardState = "COMPARABLES_RETRIEVED"
	StatePriceSuggested       WizardState = "PRICE_SUGGESTED"
	StateListingReady         WizardState = "LISTING_READY"
)

// IdentificationStep tracks the vision identification of the product.
// Data holds the parsed LLM answer (brand, model_or_type, category, color,
// condition, special_notes) and is kept as a raw map: the model output is
// untrusted and the validate endpoint lets clients overwrite it freely.
type IdentificationStep struct {
	Status     StepStatus     `bson:"status" json:"status"`
	StartedAt  *time.Time     `bson:"started_at,omitempty" json:"started_at,omitempty"`
	FinishedAt *time.Time     `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
	Data       map[string]any `bson:"data,omitempty" json:"data,omitempty"`
}

// Comparable is one marketplace search result reduced to the fields relevant
// for pricing. Price is kept as returned by the search API (number or string).
// Condition is nil when the source listing did not state one.
type Comparable struct {
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Price       any     `bson:"price" json:"price"`
	Condition   *string `bson:"condition" json:"condition"`
}

// PriceData groups the pricing step outputs. Comparables and Suggestion are
// written independently by their own steps.
type PriceData struct {
	Comparables []Comparable   `bson:"comparables,omitempty" json:"comparables,omitempty"`
	Suggestion  map[string]any `bson:"suggestion,omitempty" json:"suggestion,omitempty"`
}

// AdProcess is the persisted aggregate, one document per wizard run.
type AdProcess struct {
	ID             string             `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	WizardState    WizardState        `bson:"wizard_state" json:"wizard_state"`
	ImageURLs      []string           `bson:"image_urls,omitempty" json:"image_urls,omitempty"`
	Identification IdentificationStep `bson:"identification" json:"identification"`
	PriceData      *PriceData         `bson:"price_data,omitempty" json:"price_data,omitempty"`
	Listing        map[string]any     `bson:"listing,omitempty" json:"listing,omitempty"`
}

// IdentificationData returns identification.data, or nil when the product has
// not been identified yet.
func (p *AdProcess) IdentificationData() map[string]any {
	return p.Identification.Data
}

// Comparables returns the stored comparables, or nil when the comparables step
// has not run.
func (p *AdProcess) Comparables() []Comparable {
	if p.PriceData == nil {
		return nil
	}
	return p.PriceData.Comparables
}

// Suggestion returns the stored price suggestion, or nil.
func (p *AdProcess) Suggestion() map[string]any {
	if p.PriceData == nil {
		return nil
	}
	return p.PriceData.Suggestion
}
