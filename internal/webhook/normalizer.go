// Package webhook ingests the voice assistant's webhook calls. The
// provider has shipped several payload shapes over time; the normalizer is
// an ordered cascade of shape recognizers, not a strict schema.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"

	"github.com/google/uuid"
)

type OrderStore interface {
	SaveOrder(ctx context.Context, order *models.Order) error
}

type Publisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

type Normalizer struct {
	store     OrderStore
	publisher Publisher
	logger    *logger.Logger
	now       func() time.Time
	newID     func() string
}

func NewNormalizer(store OrderStore, publisher Publisher, log *logger.Logger) *Normalizer {
	return &Normalizer{
		store:     store,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
		newID:     func() string { return "ord_" + uuid.NewString() },
	}
}

// Response is what the webhook handler writes back: a status code and a
// JSON body whose shape depends on which payload variant matched.
type Response struct {
	StatusCode int
	Body       any
}

type toolFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type toolCall struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Function   *toolFunction   `json:"function"`
	Parameters json.RawMessage `json:"parameters"`
}

type functionCall struct {
	Name       string          `json:"name"`
	Parameters json.RawMessage `json:"parameters"`
}

type inboundMessage struct {
	Type          string        `json:"type"`
	ToolCallList  []toolCall    `json:"toolCallList"`
	ToolCalls     []toolCall    `json:"toolCalls"`
	ToolCallsLegacy []toolCall    `json:"tool_calls"`
	FunctionCall  *functionCall `json:"functionCall"`
}

type inboundPayload struct {
	Message *inboundMessage `json:"message"`

	// Direct-creation form: order fields at the top level, no envelope.
	CustomerName        string             `json:"customerName"`
	CustomerPhone       string             `json:"customerPhone"`
	CustomerAddress     string             `json:"customerAddress"`
	Items               []models.OrderItem `json:"items"`
	SpecialInstructions string             `json:"specialInstructions"`
}

type orderParams struct {
	CustomerName        string             `json:"customerName"`
	CustomerPhone       string             `json:"customerPhone"`
	CustomerAddress     string             `json:"customerAddress"`
	Items               []models.OrderItem `json:"items"`
	SpecialInstructions string             `json:"specialInstructions"`
}

// Handle runs the shape cascade over one webhook body and returns the
// response to write. A top-level decode failure is the only hard error.
func (n *Normalizer) Handle(ctx context.Context, requestID string, body []byte) (*Response, error) {
	var payload inboundPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}

	msg := payload.Message

	if msg != nil && msg.Type == "tool-calls" {
		return n.handleToolCalls(ctx, requestID, msg)
	}

	if msg != nil && msg.Type == "function-call" {
		resp, err := n.handleFunctionCall(ctx, requestID, msg)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
		// Unmatched function name falls through to the neutral ack.
	}

	if msg == nil && payload.CustomerName != "" && payload.Items != nil {
		return n.handleDirect(ctx, requestID, &payload)
	}

	// Status updates, transcripts and other lifecycle events.
	return &Response{StatusCode: 200, Body: map[string]any{"received": true}}, nil
}

func (n *Normalizer) handleToolCalls(ctx context.Context, requestID string, msg *inboundMessage) (*Response, error) {
	calls := msg.ToolCallList
	if calls == nil {
		calls = msg.ToolCalls
	}
	if calls == nil {
		calls = msg.ToolCallsLegacy
	}

	results := []models.ToolCallResult{}
	for _, call := range calls {
		name := call.Name
		args := call.Parameters
		if call.Function != nil {
			if call.Function.Name != "" {
				name = call.Function.Name
			}
			if call.Function.Arguments != nil {
				args = call.Function.Arguments
			}
		}

		if name != models.SubmitOrderTool {
			raw, _ := json.Marshal(map[string]any{"error": "Unknown tool", "receivedName": name})
			results = append(results, models.ToolCallResult{
				Name:       name,
				ToolCallID: call.ID,
				Result:     string(raw),
			})
			continue
		}

		params := n.parseParams(requestID, args)
		order, err := n.createOrder(ctx, requestID, params)
		if err != nil {
			return nil, err
		}

		raw, _ := json.Marshal(map[string]any{
			"success": true,
			"orderId": order.ID,
			"message": fmt.Sprintf("Order placed successfully. Order ID: %s. The restaurant will review your order shortly.", order.ID),
		})
		results = append(results, models.ToolCallResult{
			Name:       name,
			ToolCallID: call.ID,
			Result:     string(raw),
		})
	}

	return &Response{StatusCode: 200, Body: map[string]any{"results": results}}, nil
}

func (n *Normalizer) handleFunctionCall(ctx context.Context, requestID string, msg *inboundMessage) (*Response, error) {
	fc := msg.FunctionCall
	if fc == nil || fc.Name != models.SubmitOrderTool {
		return nil, nil
	}

	params := n.parseParams(requestID, fc.Parameters)
	order, err := n.createOrder(ctx, requestID, params)
	if err != nil {
		return nil, err
	}

	raw, _ := json.Marshal(map[string]any{
		"success": true,
		"orderId": order.ID,
		"message": fmt.Sprintf("Order placed successfully. Order ID: %s.", order.ID),
	})
	return &Response{StatusCode: 200, Body: map[string]any{"result": string(raw)}}, nil
}

func (n *Normalizer) handleDirect(ctx context.Context, requestID string, payload *inboundPayload) (*Response, error) {
	order, err := n.createOrder(ctx, requestID, orderParams{
		CustomerName:        payload.CustomerName,
		CustomerPhone:       payload.CustomerPhone,
		CustomerAddress:     payload.CustomerAddress,
		Items:               payload.Items,
		SpecialInstructions: payload.SpecialInstructions,
	})
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: 201, Body: order}, nil
}

// parseParams decodes tool arguments that arrive either as a JSON object
// or as a JSON-encoded string of one (the OpenAI convention). Any parse
// failure degrades to empty params rather than failing the batch.
func (n *Normalizer) parseParams(requestID string, raw json.RawMessage) orderParams {
	var params orderParams
	if len(raw) == 0 {
		return params
	}

	data := []byte(raw)
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			n.logger.Error(requestID, "args_parse_failed", "Failed to decode tool argument string", err)
			return orderParams{}
		}
		data = []byte(encoded)
	}

	if err := json.Unmarshal(data, &params); err != nil {
		n.logger.Error(requestID, "args_parse_failed", "Failed to parse tool arguments", err)
		return orderParams{}
	}
	return params
}

func (n *Normalizer) createOrder(ctx context.Context, requestID string, params orderParams) (models.Order, error) {
	now := n.now()
	order := models.Order{
		ID:                  n.newID(),
		CustomerName:        params.CustomerName,
		CustomerPhone:       params.CustomerPhone,
		CustomerAddress:     params.CustomerAddress,
		Items:               params.Items,
		SpecialInstructions: params.SpecialInstructions,
		Status:              models.StatusNew,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if order.CustomerName == "" {
		order.CustomerName = "Unknown Customer"
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}

	if err := n.store.SaveOrder(ctx, &order); err != nil {
		n.logger.Error(requestID, "order_save_failed", "Failed to save order", err)
		return models.Order{}, err
	}

	n.logger.Info(requestID, "order_created",
		fmt.Sprintf("Order %s created for %s", order.ID, order.CustomerName))

	if err := n.publisher.PublishOrderEvent(models.OrderEvent{
		Type:   models.EventInsert,
		Record: models.RowFromOrder(order),
	}); err != nil {
		// The order is already durable; dashboards catch up on next fetch.
		n.logger.Error(requestID, "event_publish_failed", "Failed to publish order event", err)
	}

	return order, nil
}
