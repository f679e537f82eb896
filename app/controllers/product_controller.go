package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inbasree/weddingvista/app/services"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/response"
)

// maxUploadBytes caps a multipart product submission (image included).
const maxUploadBytes = 10 << 20

type ProductController struct {
	service *services.CatalogService
}

func NewProductController(service *services.CatalogService) *ProductController {
	return &ProductController{service: service}
}

// parseProductForm reads the multipart fields shared by create and update.
// The returned image is nil when no file was attached.
func parseProductForm(r *http.Request) (name, description, category string, price float64, img *services.ImageUpload, errMsg string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", "", "", 0, nil, "Invalid multipart form"
	}

	name = r.FormValue("name")
	description = r.FormValue("description")
	category = r.FormValue("category")
	if name == "" {
		return "", "", "", 0, nil, "The name field is required."
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return "", "", "", 0, nil, "The price field must be a number."
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		img = &services.ImageUpload{Filename: header.Filename, Content: file}
	} else if err != http.ErrMissingFile {
		return "", "", "", 0, nil, "Could not read image upload"
	}
	return name, description, category, price, img, ""
}

// List handles GET /products?category= (public).
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// Get handles GET /products/{id} (public).
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, product)
	case err == services.ErrNotFound:
		response.StatusError(w, http.StatusNotFound, "Product not found")
	default:
		logger.WithCtx(r.Context()).Error("get product failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// Create handles POST /admin/products (admin, multipart).
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	name, description, category, price, img, errMsg := parseProductForm(r)
	if errMsg != "" {
		response.StatusError(w, http.StatusBadRequest, errMsg)
		return
	}

	product, err := c.service.Create(r.Context(), services.CreateProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Image:       img,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, product)
	case services.IsValidation(err):
		response.StatusError(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("create product failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// Update handles PUT /admin/products/{id} (admin, multipart).
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	name, description, category, price, img, errMsg := parseProductForm(r)
	if errMsg != "" {
		response.StatusError(w, http.StatusBadRequest, errMsg)
		return
	}

	product, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), services.UpdateProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Image:       img,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, product)
	case err == services.ErrNotFound:
		response.StatusError(w, http.StatusNotFound, "Product not found")
	case services.IsValidation(err):
		response.StatusError(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("update product failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// Delete handles DELETE /admin/products/{id} (admin).
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	err := c.service.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		response.Status(w, http.StatusOK, "Product deleted", nil)
	case err == services.ErrNotFound:
		response.StatusError(w, http.StatusNotFound, "Product not found")
	default:
		logger.WithCtx(r.Context()).Error("delete product failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
