package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"voice-orders/pkg/models"

	"github.com/jackc/pgx/v5"
)

const settingsKey = "vapi_settings"

// GetSettings returns the singleton settings record. An absent row is the
// zero settings value, not an error.
func (s *Store) GetSettings(ctx context.Context) (models.VapiSettings, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `
        SELECT value FROM settings WHERE key = $1
    `, settingsKey).Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.VapiSettings{}, nil
		}
		return models.VapiSettings{}, fmt.Errorf("query settings: %w", err)
	}

	var settings models.VapiSettings
	if err := json.Unmarshal(value, &settings); err != nil {
		return models.VapiSettings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings models.VapiSettings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        INSERT INTO settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
    `, settingsKey, value)

	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
