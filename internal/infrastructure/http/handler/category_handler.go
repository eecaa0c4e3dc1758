package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/saree-catalog-api/internal/app/service"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/response"
)

var (
	listCategoriesErrors = response.Messages{Internal: "Failed to fetch categories"}
	getCategoryErrors    = response.Messages{
		BadRequest: "Invalid slug parameter",
		NotFound:   "Category not found",
		Internal:   "Failed to fetch category",
	}
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

func NewCategoryHandler(service *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err, listCategoriesErrors)
		return
	}

	response.JSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /categories/{slug}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err, getCategoryErrors)
		return
	}

	response.JSON(w, http.StatusOK, category)
}
