package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/adxsetup/core"
)

type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Features       []string  `json:"features"`
	WhatsappNumber string    `json:"whatsapp_number"`
	Price          string    `json:"price"` // free-text currency label, e.g. "₦10,000"
	CreatedAt      time.Time `json:"created_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Features       []string `json:"features"`
	WhatsappNumber string   `json:"whatsapp_number"`
	Price          string   `json:"price" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.WhatsappNumber = core.CleanString(nc.WhatsappNumber)
	nc.Price = core.CleanString(nc.Price)
	nc.Features = cleanFeatures(nc.Features)
	return validate.Struct(nc)
}

// UpdateCourse replaces a course's editable fields wholesale; there is no
// partial patch. The admin form pre-fills from the existing record and writes
// back whatever the operator leaves in place.
type UpdateCourse struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Features       []string `json:"features"`
	WhatsappNumber string   `json:"whatsapp_number"`
	Price          string   `json:"price" validate:"required"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	uc.WhatsappNumber = core.CleanString(uc.WhatsappNumber)
	uc.Price = core.CleanString(uc.Price)
	uc.Features = cleanFeatures(uc.Features)
	return validate.Struct(uc)
}

// cleanFeatures drops blank entries, preserving order.
func cleanFeatures(features []string) []string {
	cleaned := make([]string, 0, len(features))
	for _, f := range features {
		if f = core.CleanString(f); f != "" {
			cleaned = append(cleaned, f)
		}
	}
	return cleaned
}

// Dedupe collapses duplicate ids to one entry, keeping first-seen. This is a
// defensive measure against read anomalies, not an expected steady state.
func Dedupe(courses []Course) []Course {
	seen := make(map[string]struct{}, len(courses))
	unique := make([]Course, 0, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// DefaultCourses is the hardcoded fallback catalog presented when the store is
// empty or unreachable. It is never persisted.
func DefaultCourses() []Course {
	return []Course{
		{
			ID:          "normal",
			Title:       "Normal Setup",
			Description: "Basic ADX integration and standard optimization with WhatsApp support.",
			Features: []string{
				"Basic ADX integration",
				"Standard optimization",
				"WhatsApp support",
			},
			Price: "₦10,000",
		},
		{
			ID:          "premium",
			Title:       "Premium Setup",
			Description: "All features in Normal Setup plus lazy loading, less unfilleds, and better eCPM.",
			Features: []string{
				"Everything in normal setup",
				"Lazy loading (optional)",
				"Less Unfilleds",
				"Better eCPM",
			},
			Price: "₦15,000",
		},
		{
			ID:          "high",
			Title:       "High eCPM Setup",
			Description: "All features in Premium Setup plus best eCPM, no unfilleds, inventory optimization, fast setup, 24/7 WhatsApp support, and a small guide on ADX.",
			Features: []string{
				"Everything in premium setup",
				"Best eCPM",
				"No unfilleds",
				"Inventory optimization",
				"Fast setup",
				"247 WhatsApp support",
				"Small Guide on adx",
			},
			Price: "₦20,000",
		},
	}
}
