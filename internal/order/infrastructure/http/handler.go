package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/printeez/backend/internal/auth"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
	"github.com/printeez/backend/internal/money"
	"github.com/printeez/backend/internal/order/application"
	"github.com/printeez/backend/internal/order/domain"
	"github.com/printeez/backend/pkg/tracing"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID, email, address string, items []application.LineItemRequest, traceparent string) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type Handler struct {
	log     *slog.Logger
	service OrderService
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service OrderService) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

// Routes returns the user-facing order routes; admin routes are registered
// separately so the router can wrap them in the admin guard.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.placeOrder)
	r.Get("/", h.listOwn)
	r.Get("/{id}", h.getOrder)

	return r
}

func (h *Handler) AdminRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listAll)
	r.Put("/{id}/status", h.updateStatus)

	return r
}

type lineItemReq struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

type placeOrderReq struct {
	Items   []lineItemReq `json:"items"`
	Address string        `json:"address"`
}

type orderItemResp struct {
	ProductID   uuid.UUID   `json:"product_id"`
	ProductName string      `json:"product_name"`
	Size        string      `json:"size"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unit_price"`
}

type orderResp struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	Items     []orderItemResp `json:"items"`
	Total     money.Money     `json:"total"`
	Address   string          `json:"address"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func toOrderResp(o domain.Order) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResp{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return orderResp{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Total:     o.Total,
		Address:   o.Address,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	id, ok := auth.FromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	items := make([]application.LineItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, application.LineItemRequest{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	o, err := h.service.PlaceOrder(ctx, id.UserID, id.Email, req.Address, items, tracing.Traceparent(ctx))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResp(o))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetOrder")
	defer span.End()

	id, ok := auth.FromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	// Owners see their own orders, admins see everything.
	if o.UserID != id.UserID && !id.Admin {
		writeError(w, http.StatusNotFound, domain.ErrOrderNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, toOrderResp(o))
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListOwnOrders")
	defer span.End()

	id, ok := auth.FromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	orders, err := h.service.ListByUser(ctx, id.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrdersResp(orders))
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListAllOrders")
	defer span.End()

	orders, err := h.service.ListAll(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrdersResp(orders))
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderStatus")
	defer span.End()

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	o, err := h.service.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResp(o))
}

func toOrdersResp(orders []domain.Order) []orderResp {
	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResp(o))
	}
	return out
}

// writeServiceError maps the error taxonomy onto status codes: caller-input
// errors are 400, unknown ids are 404, everything else is a logged 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, catalogdomain.ErrSizeUnavailable),
		errors.Is(err, catalogdomain.ErrInsufficientStock),
		errors.Is(err, application.ErrEmptyOrder),
		errors.Is(err, application.ErrInvalidQuantity),
		errors.Is(err, application.ErrInvalidAddress),
		errors.Is(err, money.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error("order request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
