package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/service"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	orderSvc service.OrderService
}

func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

type createOrderRequest struct {
	EquipmentID string `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: "no actor"}})
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "bad_request", Message: "malformed JSON body"}})
		return
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), actor.ID, req.EquipmentID, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: "no actor"}})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "bad_request", Message: "malformed JSON body"}})
		return
	}
	if !req.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "bad_request", Message: "unknown status"}})
		return
	}

	order, err := h.orderSvc.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: "no actor"}})
		return
	}

	order, err := h.orderSvc.GetOrder(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type listOrdersResponse struct {
	Orders   []domain.Order `json:"orders"`
	Total    int32          `json:"total"`
	Page     int32          `json:"page"`
	PageSize int32          `json:"page_size"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: "no actor"}})
		return
	}

	q := r.URL.Query()
	f := repository.OrderFilter{
		Status:      domain.OrderStatus(q.Get("status")),
		EquipmentID: q.Get("equipment_id"),
		Page:        parseInt32(q.Get("page"), 1),
		PageSize:    parseInt32(q.Get("page_size"), 20),
	}
	if f.Status != "" && !f.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "bad_request", Message: "unknown status filter"}})
		return
	}

	orders, total, err := h.orderSvc.ListOrders(r.Context(), f, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, listOrdersResponse{
		Orders:   orders,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}

type paymentCompletedRequest struct {
	OrderID string `json:"order_id"`
}

// PaymentCompleted consumes the payment collaborator's completion callback.
// Deliveries are at-least-once; MarkPaid absorbs the duplicates.
func (h *OrderHandler) PaymentCompleted(w http.ResponseWriter, r *http.Request) {
	var req paymentCompletedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "bad_request", Message: "order_id is required"}})
		return
	}

	order, err := h.orderSvc.MarkPaid(r.Context(), req.OrderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
