package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printeez/backend/internal/catalog/application"
	"github.com/printeez/backend/internal/catalog/domain"
	"github.com/printeez/backend/internal/money"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Restock(ctx context.Context, productID uuid.UUID, size string, delta int) (domain.Product, error)
}

type Handler struct {
	log     *slog.Logger
	service CatalogService
}

func NewHandler(log *slog.Logger, service CatalogService) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listProducts)
	r.Get("/{id}", h.getProduct)

	return r
}

func (h *Handler) AdminRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.createProduct)
	r.Post("/{id}/stock", h.restock)

	return r
}

type sizeStockReq struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type createProductReq struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Sizes    []sizeStockReq  `json:"sizes"`
}

type productResp struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Price      money.Money    `json:"price"`
	Sizes      []sizeStockReq `json:"sizes"`
	SalesCount int64          `json:"sales_count"`
}

func toProductResp(p domain.Product) productResp {
	sizes := make([]sizeStockReq, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, sizeStockReq{Size: s.Size, Stock: s.Stock})
	}

	return productResp{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Sizes:      sizes,
		SalesCount: p.SalesCount,
	}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	price, err := money.New(req.Price, req.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency")
		return
	}

	sizes := make([]domain.SizeStock, 0, len(req.Sizes))
	for _, s := range req.Sizes {
		sizes = append(sizes, domain.SizeStock{Size: s.Size, Stock: s.Stock})
	}

	product, err := h.service.CreateProduct(r.Context(), domain.Product{
		Name:  req.Name,
		Price: price,
		Sizes: sizes,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResp(product))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResp(product))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]productResp, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResp(p))
	}

	writeJSON(w, http.StatusOK, out)
}

type restockReq struct {
	Size  string `json:"size"`
	Delta int    `json:"delta"`
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req restockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	product, err := h.service.Restock(r.Context(), productID, req.Size, req.Delta)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResp(product))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrInvalidProduct):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("catalog request failed", "method", r.Method, "path", r.URL.Path, "err", err)
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
