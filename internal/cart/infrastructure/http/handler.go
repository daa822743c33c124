package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printeez/backend/internal/auth"
	"github.com/printeez/backend/internal/cart/application"
	"github.com/printeez/backend/internal/cart/domain"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
	"github.com/printeez/backend/internal/money"
)

type CartService interface {
	Get(ctx context.Context, ownerID string) (domain.Cart, error)
	AddItem(ctx context.Context, ownerID string, productID uuid.UUID, size string, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID, size string) (bool, error)
	Clear(ctx context.Context, ownerID string) error
}

type Handler struct {
	log     *slog.Logger
	service CartService
}

func NewHandler(log *slog.Logger, service CartService) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.getCart)
	r.Post("/items", h.addItem)
	r.Delete("/items/{productID}/{size}", h.removeItem)
	r.Delete("/", h.clear)

	return r
}

type cartItemResp struct {
	ProductID   uuid.UUID   `json:"product_id"`
	ProductName string      `json:"product_name"`
	Size        string      `json:"size"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unit_price"`
	Subtotal    money.Money `json:"subtotal"`
}

type cartResp struct {
	Items []cartItemResp `json:"items"`
}

func toCartResp(c domain.Cart) cartResp {
	items := make([]cartItemResp, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, cartItemResp{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}
	return cartResp{Items: items}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	cart, err := h.service.Get(r.Context(), id.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResp(cart))
}

type addItemReq struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	cart, err := h.service.AddItem(r.Context(), id.UserID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResp(cart))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	removed, err := h.service.RemoveItem(r.Context(), id.UserID, productID, chi.URLParam(r, "size"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "item not in cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if err := h.service.Clear(r.Context(), id.UserID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, catalogdomain.ErrSizeUnavailable),
		errors.Is(err, application.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("cart request failed", "method", r.Method, "path", r.URL.Path, "err", err)
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
