package vapi

import (
	"context"
	"fmt"
	"time"

	"voice-orders/pkg/models"
)

// Sync pushes the current menu and the order-submission tool to the
// assistant provider: tool upsert first, then assistant update. There is
// no rollback; a tool registered before a failed assistant update stays
// persisted so the next attempt reuses it instead of registering twice.
func (s *Service) Sync(ctx context.Context, defaultServerURL string) (models.SyncResult, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.SyncResult{}, err
	}
	if settings.APIKey == "" || settings.AssistantID == "" {
		return models.SyncResult{}, ErrNotConfigured
	}

	menu, err := s.store.GetMenu(ctx)
	if err != nil {
		return models.SyncResult{}, err
	}

	available := []models.MenuItem{}
	for _, item := range menu {
		if item.Available {
			available = append(available, item)
		}
	}

	payload := toolPayload()

	toolID := settings.ToolID
	if toolID != "" {
		notFound, err := s.client.UpdateTool(ctx, settings.APIKey, toolID, payload)
		if err != nil {
			return models.SyncResult{}, err
		}
		if notFound {
			toolID = ""
		}
	}

	if toolID == "" {
		toolID, err = s.client.CreateTool(ctx, settings.APIKey, payload)
		if err != nil {
			return models.SyncResult{}, err
		}
		settings.ToolID = toolID
		// Persist immediately: if the assistant update below fails we must
		// not register a duplicate tool on retry.
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return models.SyncResult{}, err
		}
		s.logger.Info("", "tool_registered", fmt.Sprintf("Registered order tool %s", toolID))
	}

	serverURL := settings.ServerURL
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	assistantPayload := map[string]any{
		"model": map[string]any{
			"provider": "openai",
			"model":    "gpt-4o",
			"messages": []map[string]any{
				{"role": "system", "content": systemPrompt(available)},
			},
			"toolIds": []string{toolID},
		},
		"serverUrl": serverURL,
	}

	if err := s.client.UpdateAssistant(ctx, settings.APIKey, settings.AssistantID, assistantPayload); err != nil {
		return models.SyncResult{}, err
	}

	settings.LastSyncAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return models.SyncResult{}, err
	}

	s.logger.Info("", "assistant_synced",
		fmt.Sprintf("Assistant synced with %d menu items", len(available)))

	return models.SyncResult{
		Success:         true,
		Message:         "VAPI assistant synced successfully",
		MenuItemsSynced: len(available),
		ToolID:          toolID,
		LastSyncAt:      settings.LastSyncAt,
	}, nil
}
