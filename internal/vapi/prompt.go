package vapi

import (
	"fmt"
	"strings"

	"voice-orders/pkg/models"
)

const promptTemplate = `You are a friendly and efficient AI phone ordering assistant for a restaurant. Your job is to take customer orders over the phone.

## Restaurant Menu
Here are the items currently available:

%s

## Your Instructions
1. Greet the customer warmly.
2. Ask what they would like to order.
3. If they request an item NOT on the menu, politely let them know it's unavailable and suggest similar items from the menu.
4. Confirm each item, including quantity and any special requests (e.g., "extra cheese", "no onions").
5. Ask for the customer's name, phone number, and delivery address.
6. Repeat the full order back to the customer for confirmation.
7. Once confirmed, use the submit_order tool to place the order.
8. Let the customer know their order has been placed and the restaurant will review it shortly.

## Important Rules
- Only accept items that are on the menu above.
- Be patient and helpful.
- If the customer wants to modify or cancel during the call, accommodate them before submitting.
- Always collect: customer name, phone number, delivery address, and order items with quantities.`

// RenderMenuText lists available items one per line, deterministically in
// the order given.
func RenderMenuText(items []models.MenuItem) string {
	if len(items) == 0 {
		return "(No menu items configured yet)"
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := fmt.Sprintf("- %s (%s) — $%.2f", item.Name, item.Category, item.Price)
		if item.Description != "" {
			line += ": " + item.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func systemPrompt(items []models.MenuItem) string {
	return fmt.Sprintf(promptTemplate, RenderMenuText(items))
}

// toolPayload is the fixed order-submission tool definition registered
// with the assistant provider.
func toolPayload() map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        models.SubmitOrderTool,
			"description": "Submit a customer order to the restaurant dashboard. Call this after confirming the complete order with the customer.",
			"parameters": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"customerName":    map[string]any{"type": "string", "description": "Full name of the customer"},
					"customerPhone":   map[string]any{"type": "string", "description": "Customer phone number"},
					"customerAddress": map[string]any{"type": "string", "description": "Delivery address"},
					"items": map[string]any{
						"type":        "array",
						"description": "List of ordered items",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"name":     map[string]any{"type": "string", "description": "Menu item name"},
								"quantity": map[string]any{"type": "number", "description": "Quantity ordered"},
								"notes":    map[string]any{"type": "string", "description": "Special notes for this item"},
							},
							"required": []string{"name", "quantity"},
						},
					},
					"specialInstructions": map[string]any{"type": "string", "description": "Overall special instructions for the order"},
				},
				"required": []string{"customerName", "customerPhone", "customerAddress", "items"},
			},
		},
	}
}
