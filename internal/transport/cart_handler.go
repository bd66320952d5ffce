package transport

import (
	"net/http"

	"greenshop/internal/middleware"
	"greenshop/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest is the payload for putting a product into the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// QuantityRequest is the payload for setting a cart row quantity.
// Zero or negative removes the row.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CountResponse reports the sum of quantities across the cart.
type CountResponse struct {
	Count int `json:"count"`
}

// CartHandler handles HTTP requests for the cart.
type CartHandler struct {
	cart    repository.CartRepository
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart repository.CartRepository, catalog repository.CatalogRepository, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, logger: logger}
}

// RegisterRoutes registers all cart routes.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/items", h.List)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.SetQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Get("/count", h.Count)
		r.Delete("/", h.Clear)
	})
}

// List returns all cart rows.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.cart.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// AddItem resolves the product and merges it into the cart. A missing
// quantity defaults to one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to resolve product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	for _, product := range products {
		if product.ID == req.ProductID {
			items, err := h.cart.AddItem(r.Context(), product, req.Quantity)
			if err != nil {
				h.logger.Error("Failed to add item", zap.Error(err))
				middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
				return
			}

			h.logger.Info("Item added to cart",
				zap.String("product_id", req.ProductID),
				zap.Int("quantity", req.Quantity),
			)
			middleware.RespondWithJSON(w, http.StatusOK, items)
			return
		}
	}

	middleware.RespondWithError(w, http.StatusNotFound, "product not found")
}

// SetQuantity sets the quantity of the row matching the path id.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req QuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Quantity decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.cart.SetQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		h.logger.Error("Failed to set quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set quantity")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// RemoveItem drops the row matching the path id.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := h.cart.RemoveItem(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to remove item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// Clear empties the whole cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

// Count returns the sum of quantities across all rows, used by badge
// counters.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.cart.Count(r.Context())
	if err != nil {
		h.logger.Error("Failed to count cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to count cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CountResponse{Count: count})
}
