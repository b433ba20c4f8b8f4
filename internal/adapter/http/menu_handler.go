package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/shopspring/decimal"
)

const maxUploadSize = 8 << 20

type MenuHandler struct {
	service interfaces.MenuBackend
	logger  logger.Logger
}

func NewMenuHandler(service interfaces.MenuBackend, logger logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

type UpdateMenuItemRequest struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Available domain.Flag     `json:"available"`
}

type ImportRequest struct {
	Template string `json:"template"`
}

type ImportResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		h.fail(w, r, "menu_list_failed", err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Add accepts multipart form data: name, price, category and an image file.
// Only the image file name is kept.
func (h *MenuHandler) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	if err != nil {
		respondError(w, "Invalid price", http.StatusBadRequest)
		return
	}

	var image string
	if file, header, err := r.FormFile("image"); err == nil {
		_, _ = io.Copy(io.Discard, file)
		file.Close()
		image = filepath.Base(header.Filename)
	}

	item, err := h.service.AddMenuItem(r.Context(), r.FormValue("name"), price, r.FormValue("category"), image)
	if err != nil {
		h.fail(w, r, "menu_add_failed", err)
		return
	}
	h.logger.Info("menu_item_added", fmt.Sprintf("Added %s", item.Name), RequestID(r.Context()), nil)
	respondJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, "Invalid menu item id", http.StatusBadRequest)
		return
	}
	var req UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.UpdateMenuItem(r.Context(), interfaces.UpdateMenuItemCommand{
		ID:        id,
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Available: bool(req.Available),
	})
	if err != nil {
		h.fail(w, r, "menu_update_failed", err)
		return
	}
	respondOK(w)
}

func (h *MenuHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, "Invalid menu item id", http.StatusBadRequest)
		return
	}
	if err := h.service.ToggleMenuItem(r.Context(), id); err != nil {
		h.fail(w, r, "menu_toggle_failed", err)
		return
	}
	respondOK(w)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, "Invalid menu item id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteMenuItem(r.Context(), id); err != nil {
		h.fail(w, r, "menu_delete_failed", err)
		return
	}
	respondOK(w)
}

func (h *MenuHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	n, err := h.service.ImportTemplate(r.Context(), req.Template)
	if err != nil {
		h.fail(w, r, "menu_import_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, ImportResponse{Success: true, Imported: n})
}

func (h *MenuHandler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	code := errorStatus(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(action, "Request failed", RequestID(r.Context()), nil, err)
		respondError(w, "Internal server error", code)
		return
	}
	h.logger.Debug(action, err.Error(), RequestID(r.Context()), nil)
	respondError(w, err.Error(), code)
}
