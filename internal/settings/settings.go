// Package settings provides agency-wide configuration managed from the
// admin portal.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Settings holds agency display and billing configuration.
type Settings struct {
	AgencyName   string `json:"agency_name"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Address      string `json:"address,omitempty"`
	// Timezone the agency schedules visits in, e.g. "America/New_York".
	Timezone string `json:"timezone"`
	// BillingDay is the day of month invoices are generated (1-28).
	BillingDay int `json:"billing_day"`
	// AcceptingApplications gates the public job application form.
	AcceptingApplications bool `json:"accepting_applications"`
	// AcceptingRequests gates the patient service request form.
	AcceptingRequests bool `json:"accepting_requests"`
}

// DefaultSettings returns the configuration used before an admin has saved
// anything.
func DefaultSettings() *Settings {
	return &Settings{
		AgencyName:            "CareBridge Home Care",
		Timezone:              "America/New_York",
		BillingDay:            1,
		AcceptingApplications: true,
		AcceptingRequests:     true,
	}
}

// Validate checks admin-supplied settings.
func (s *Settings) Validate() error {
	if s.AgencyName == "" {
		return ErrMissingAgencyName
	}
	if s.BillingDay < 1 || s.BillingDay > 28 {
		return ErrInvalidBillingDay
	}
	return nil
}

const settingsKey = "agency:settings"

// Store persists agency settings as a JSON blob in redis.
type Store struct {
	redis *redis.Client
}

// NewStore creates a settings store.
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

// Get retrieves settings, returning defaults if none were saved yet.
func (s *Store) Get(ctx context.Context) (*Settings, error) {
	data, err := s.redis.Get(ctx, settingsKey).Bytes()
	if err == redis.Nil {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: get: %w", err)
	}

	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("settings: unmarshal: %w", err)
	}
	return &out, nil
}

// Set saves settings.
func (s *Store) Set(ctx context.Context, cfg *Settings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := s.redis.Set(ctx, settingsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("settings: set: %w", err)
	}
	return nil
}
