package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printeez/backend/internal/auth"
	"github.com/printeez/backend/internal/wishlist/domain"
)

type WishlistRepository interface {
	Add(ctx context.Context, ownerID string, productID uuid.UUID) error
	Remove(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error)
	List(ctx context.Context, ownerID string) ([]domain.Item, error)
}

type Handler struct {
	log  *slog.Logger
	repo WishlistRepository
}

func NewHandler(log *slog.Logger, repo WishlistRepository) *Handler {
	return &Handler{log: log, repo: repo}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Put("/{productID}", h.add)
	r.Delete("/{productID}", h.remove)

	return r
}

type itemResp struct {
	ProductID uuid.UUID `json:"product_id"`
	AddedAt   string    `json:"added_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	items, err := h.repo.List(r.Context(), id.UserID)
	if err != nil {
		h.log.Error("wishlist list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]itemResp, 0, len(items))
	for _, item := range items {
		out = append(out, itemResp{ProductID: item.ProductID, AddedAt: item.CreatedAt.Format(time.RFC3339Nano)})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
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

	if err := h.repo.Add(r.Context(), id.UserID, productID); err != nil {
		h.log.Error("wishlist add failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
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

	removed, err := h.repo.Remove(r.Context(), id.UserID, productID)
	if err != nil {
		h.log.Error("wishlist remove failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not in wishlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
