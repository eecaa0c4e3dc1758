package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/saree-catalog-api/internal/app/dto"
	"github.com/mrops-br/saree-catalog-api/internal/app/service"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/response"
)

var (
	listProductsErrors = response.Messages{
		BadRequest: "Invalid query parameters",
		Internal:   "Failed to fetch products",
	}
	getProductErrors = response.Messages{
		BadRequest: "Invalid product ID",
		NotFound:   "Product not found",
		Internal:   "Failed to fetch product",
	}
	productsByCategoryErrors = response.Messages{
		BadRequest: "Invalid category parameter",
		Internal:   "Failed to fetch products by category",
	}
	collectionErrors = response.Messages{
		BadRequest: "Invalid collection type",
		Internal:   "Failed to fetch collection products",
	}
	collectionLimitErrors = response.Messages{BadRequest: "Invalid limit parameter"}
	searchErrors          = response.Messages{
		BadRequest: "Search query is required",
		Internal:   "Failed to search products",
	}
)

// ProductHandler handles HTTP requests for products, collections and search
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	search, err := dto.ParseProductSearch(r.URL.Query())
	if err != nil {
		writeError(w, r, h.logger, err, listProductsErrors)
		return
	}

	products, err := h.service.ListProducts(r.Context(), search)
	if err != nil {
		writeError(w, r, h.logger, err, listProductsErrors)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err, getProductErrors)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// ListProductsByCategory handles GET /products/category/{category}
func (h *ProductHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProductsByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, r, h.logger, err, productsByCategoryErrors)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// ListCollection handles GET /collections/{collectionType}?limit=N
func (h *ProductHandler) ListCollection(w http.ResponseWriter, r *http.Request) {
	limit, err := dto.ParseCollectionLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, r, h.logger, err, collectionLimitErrors)
		return
	}

	products, err := h.service.ListProductsByCollection(r.Context(), chi.URLParam(r, "collectionType"), limit)
	if err != nil {
		writeError(w, r, h.logger, err, collectionErrors)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// Search handles GET /search?q=term
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, h.logger, err, searchErrors)
		return
	}

	response.JSON(w, http.StatusOK, products)
}
