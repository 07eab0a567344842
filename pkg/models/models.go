package models

import (
	"time"
)

// SubmitOrderTool is the callable the voice assistant invokes to place an
// order; the webhook recognizes it and the sync registers it.
const SubmitOrderTool = "submit_order"

// Order statuses. Every order starts as StatusNew; Delivered and Rejected
// are terminal.
const (
	StatusNew       = "new"
	StatusPreparing = "preparing"
	StatusDelivered = "delivered"
	StatusRejected  = "rejected"
)

type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type Order struct {
	ID                  string      `json:"id"`
	CustomerName        string      `json:"customerName"`
	CustomerPhone       string      `json:"customerPhone"`
	CustomerAddress     string      `json:"customerAddress"`
	Items               []OrderItem `json:"items"`
	SpecialInstructions string      `json:"specialInstructions"`
	Status              string      `json:"status"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
}

// VapiSettings is the single per-deployment configuration record for the
// external voice assistant. The zero value means "not configured yet".
type VapiSettings struct {
	APIKey      string `json:"apiKey,omitempty"`
	AssistantID string `json:"assistantId,omitempty"`
	ServerURL   string `json:"serverUrl,omitempty"`
	ToolID      string `json:"toolId,omitempty"`
	LastSyncAt  string `json:"lastSyncAt,omitempty"`
}

// OrderRow is the row-oriented shape of an order as it crosses the event
// bus: snake_case field names matching the orders table columns.
type OrderRow struct {
	ID                  string      `json:"id"`
	CustomerName        string      `json:"customer_name"`
	CustomerPhone       string      `json:"customer_phone"`
	CustomerAddress     string      `json:"customer_address"`
	Items               []OrderItem `json:"items"`
	SpecialInstructions string      `json:"special_instructions"`
	Status              string      `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (r OrderRow) ToOrder() Order {
	return Order{
		ID:                  r.ID,
		CustomerName:        r.CustomerName,
		CustomerPhone:       r.CustomerPhone,
		CustomerAddress:     r.CustomerAddress,
		Items:               r.Items,
		SpecialInstructions: r.SpecialInstructions,
		Status:              r.Status,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func RowFromOrder(o Order) OrderRow {
	return OrderRow{
		ID:                  o.ID,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		CustomerAddress:     o.CustomerAddress,
		Items:               o.Items,
		SpecialInstructions: o.SpecialInstructions,
		Status:              o.Status,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

// Order change event types carried on the orders fanout exchange.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
)

type OrderEvent struct {
	Type   string   `json:"type"`
	Record OrderRow `json:"record"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Total    int        `json:"total"`
	Items    []MenuItem `json:"items"`
}

// ToolCallResult correlates one webhook tool call with its outcome; the
// assistant matches results to requests by toolCallId.
type ToolCallResult struct {
	Name       string `json:"name"`
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}

type SyncResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	MenuItemsSynced int    `json:"menuItemsSynced"`
	ToolID          string `json:"toolId"`
	LastSyncAt      string `json:"lastSyncAt"`
}
