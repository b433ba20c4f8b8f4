package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	service interfaces.OrderBackend
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderBackend, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

type PlaceOrderRequest struct {
	Table tableNumber        `json:"table"`
	Items []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

type PlaceOrderResponse struct {
	Success bool `json:"success"`
	OrderID int  `json:"order_id"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type AddItemRequest struct {
	ItemID int `json:"item_id"`
	Qty    int `json:"qty"`
}

type AddItemResponse struct {
	Success    bool `json:"success"`
	AdditionID int  `json:"addition_id"`
}

// tableNumber accepts the table as a number or as a numeric string; the
// customer page forwards it straight from the query string.
type tableNumber int

func (t *tableNumber) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid table number %s", data)
	}
	*t = tableNumber(n)
	return nil
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd := interfaces.PlaceOrderCommand{TableNo: int(req.Table)}
	for _, it := range req.Items {
		cmd.Items = append(cmd.Items, interfaces.PlaceOrderItemCommand{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	order, err := h.service.PlaceOrder(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, "order_creation_failed", err)
		return
	}

	h.logger.Info("order_placed", fmt.Sprintf("Order %d placed for table %d", order.ID, order.TableNo), RequestID(r.Context()), nil)
	respondJSON(w, http.StatusCreated, PlaceOrderResponse{Success: true, OrderID: order.ID})
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, "Invalid order id", http.StatusBadRequest)
		return
	}
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.fail(w, r, "status_update_failed", err)
		return
	}
	respondOK(w)
}

func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, "Invalid order id", http.StatusBadRequest)
		return
	}
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	addition, err := h.service.AddItem(r.Context(), id, req.ItemID, req.Qty)
	if err != nil {
		h.fail(w, r, "add_item_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, AddItemResponse{Success: true, AdditionID: addition.ID})
}

func (h *OrderHandler) Bill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	bill, err := h.service.Bill(r.Context(), id)
	if err != nil {
		h.fail(w, r, "bill_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, bill)
}

func (h *OrderHandler) ListAdditions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.PendingAdditions(r.Context())
	if err != nil {
		h.fail(w, r, "additions_failed", err)
		return
	}
	if list == nil {
		respondJSON(w, http.StatusOK, []struct{}{})
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *OrderHandler) UpdateAdditionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, "Invalid addition id", http.StatusBadRequest)
		return
	}
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateAdditionStatus(r.Context(), id, req.Status); err != nil {
		h.fail(w, r, "addition_update_failed", err)
		return
	}
	respondOK(w)
}

func (h *OrderHandler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	code := errorStatus(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(action, "Request failed", RequestID(r.Context()), nil, err)
		respondError(w, "Internal server error", code)
		return
	}
	h.logger.Debug(action, err.Error(), RequestID(r.Context()), nil)
	respondError(w, err.Error(), code)
}
