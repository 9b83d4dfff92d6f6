package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/affirmed-honey/dulin2/internal/domain"
	"github.com/affirmed-honey/dulin2/internal/service"
	apperrors "github.com/affirmed-honey/dulin2/pkg/errors"
	"github.com/affirmed-honey/dulin2/pkg/httputil"
	"github.com/affirmed-honey/dulin2/pkg/middleware"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// PlaceOrderItemRequest is one requested line. ProductID is kept raw so a
// malformed reference is reported as a batch rejection rather than a decode
// failure.
type PlaceOrderItemRequest struct {
	ProductID json.RawMessage `json:"productId"`
	Quantity  int             `json:"quantity"`
}

// PlaceOrderRequest is the JSON request body for placing an order.
type PlaceOrderRequest struct {
	Name  string                  `json:"name"`
	Email string                  `json:"email" validate:"omitempty,email"`
	Items []PlaceOrderItemRequest `json:"items"`
}

// parseProductID extracts an integer product reference from a raw JSON
// value, accepting numbers and numeric strings. Anything else yields zero,
// which no catalog entry ever has.
func parseProductID(raw json.RawMessage) int64 {
	token := bytes.Trim(bytes.TrimSpace(raw), `"`)
	id, err := strconv.ParseInt(string(token), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// --- Handlers ---

// PlaceOrder handles POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	items := make([]service.PlaceOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PlaceOrderItemInput{
			ProductID: parseProductID(item.ProductID),
			Quantity:  item.Quantity,
		}
	}

	input := service.PlaceOrderInput{
		Email: req.Email,
		Name:  req.Name,
		Items: items,
	}
	if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
		input.UserID = &uid
	}

	_, receipt, err := h.service.PlaceOrder(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: receipt})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// An order linked to an account is only visible to that account.
	if order.UserID != nil {
		uid, authed := middleware.UserIDFromContext(r.Context())
		if !authed || uid != *order.UserID {
			httputil.WriteError(w, r, apperrors.NotFound("order", chi.URLParam(r, "id")), h.logger)
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// ListMyOrders handles GET /api/orders/mine
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	orders, err := h.service.ListMyOrders(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}
