// Package vapi owns the voice assistant integration: the settings record,
// credential masking, and pushing the menu and tool definition to the
// provider.
package vapi

import (
	"context"
	"errors"

	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"
)

type Store interface {
	GetSettings(ctx context.Context) (models.VapiSettings, error)
	SaveSettings(ctx context.Context, settings models.VapiSettings) error
	GetMenu(ctx context.Context) ([]models.MenuItem, error)
}

// ErrNotConfigured is returned by Sync before any external call when the
// credential or assistant id is missing.
var ErrNotConfigured = errors.New("VAPI API Key and Assistant ID are required. Configure them first.")

type Service struct {
	store  Store
	client *Client
	logger *logger.Logger
}

func NewService(st Store, client *Client, log *logger.Logger) *Service {
	return &Service{
		store:  st,
		client: client,
		logger: log,
	}
}

// Settings returns the record with the credential masked for display.
func (s *Service) Settings(ctx context.Context) (models.VapiSettings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.VapiSettings{}, err
	}
	settings.APIKey = MaskAPIKey(settings.APIKey)
	return settings, nil
}

// UpdateRequest carries a partial settings write; nil fields are kept.
type UpdateRequest struct {
	APIKey      *string `json:"apiKey"`
	AssistantID *string `json:"assistantId"`
	ServerURL   *string `json:"serverUrl"`
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) error {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return err
	}

	if req.APIKey != nil {
		settings.APIKey = *req.APIKey
	}
	if req.AssistantID != nil {
		settings.AssistantID = *req.AssistantID
	}
	if req.ServerURL != nil {
		settings.ServerURL = *req.ServerURL
	}

	return s.store.SaveSettings(ctx, settings)
}

// MaskAPIKey keeps the first 8 and last 4 characters visible. Keys too
// short for that to hide anything are masked entirely.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 12 {
		return "..."
	}
	return key[:8] + "..." + key[len(key)-4:]
}
