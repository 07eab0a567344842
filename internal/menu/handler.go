package menu

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"voice-orders/internal/store"
	"voice-orders/pkg/logger"
)

type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// HandleCollection serves /api/menu: list, single create, or file import.
func (h *Handler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		if strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			h.importFile(w, r)
		} else {
			h.create(w, r)
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleItem serves /api/menu/{id}: partial update or delete.
func (h *Handler) HandleItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/menu/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("", "menu_list_failed", "Failed to list menu", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type createMenuItemRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := h.service.Create(r.Context(), req.Name, req.Category, decodePrice(req.Price), req.Description)
	if err != nil {
		h.logger.Error("", "menu_create_failed", "Failed to create menu item", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	result, err := h.service.Import(r.Context(), file)
	if err != nil {
		// A broken workbook is the caller's problem; storage trouble is ours.
		h.logger.Error("", "menu_import_failed", "Failed to import menu file", err)
		if strings.Contains(err.Error(), "failed to parse file") || errors.Is(err, ErrNoSheets) {
			writeError(w, http.StatusBadRequest, "Failed to parse file: "+err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type updateMenuItemRequest struct {
	Name        *string         `json:"name"`
	Category    *string         `json:"category"`
	Price       json.RawMessage `json:"price"`
	Description *string         `json:"description"`
	Available   *bool           `json:"available"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := UpdateRequest{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Available:   req.Available,
	}
	if req.Price != nil {
		price := decodePrice(req.Price)
		update.Price = &price
	}

	item, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, store.ErrMenuItemNotFound) {
			writeError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		h.logger.Error("", "menu_update_failed", "Failed to update menu item", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrMenuItemNotFound) {
			writeError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		h.logger.Error("", "menu_delete_failed", "Failed to delete menu item", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// decodePrice accepts a JSON number or a numeric string ("$12.50").
func decodePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return ParsePrice(str)
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
