package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/storage"
)

// ProductStore is the slice of ProductRepository CatalogService needs.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context, category string) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

// CatalogService manages the admin product catalog, including the image
// files the products reference.
type CatalogService struct {
	products ProductStore
	disk     storage.Disk
}

func NewCatalogService(products ProductStore, disk storage.Disk) *CatalogService {
	return &CatalogService{products: products, disk: disk}
}

// ImageUpload is one incoming multipart image file.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// unsafeFilenameChars strips anything outside the filename whitelist.
var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// storeImage writes the upload under a timestamped, sanitized name and
// returns the public path ("/uploads/<name>") stored on the product.
func (s *CatalogService) storeImage(img *ImageUpload) (string, error) {
	base := unsafeFilenameChars.ReplaceAllString(path.Base(img.Filename), "_")
	if base == "" || base == "." {
		base = "image"
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
	if err := s.disk.PutStream(name, img.Content); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// removeImage deletes a stored image by its public path. Missing files are
// fine; cleanup has to stay idempotent under replays.
func (s *CatalogService) removeImage(imageURL string) {
	if !strings.HasPrefix(imageURL, "/uploads/") {
		return
	}
	name := strings.TrimPrefix(imageURL, "/uploads/")
	if name == "" {
		return
	}
	if err := s.disk.Delete(name); err != nil {
		logger.Warn("catalog: image cleanup failed", "image", imageURL, "error", err)
	}
}

// CreateProductInput is a validated product submission.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       *ImageUpload
}

// Create stores a new product, persisting the image first so a failed
// insert never leaves a product pointing at nothing.
func (s *CatalogService) Create(ctx context.Context, in CreateProductInput) (models.Product, error) {
	if in.Price <= 0 {
		return models.Product{}, Validation("price must be greater than zero")
	}

	p := models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
	}
	if in.Image != nil {
		url, err := s.storeImage(in.Image)
		if err != nil {
			return models.Product{}, fmt.Errorf("store image: %w", err)
		}
		p.ImageURL = url
	}

	if err := s.products.Create(ctx, &p); err != nil {
		if p.ImageURL != "" {
			s.removeImage(p.ImageURL)
		}
		return models.Product{}, err
	}
	return p, nil
}

// List returns the catalog, optionally filtered by exact category
// (case-insensitive). Public.
func (s *CatalogService) List(ctx context.Context, category string) ([]models.Product, error) {
	return s.products.List(ctx, strings.TrimSpace(category))
}

// Get returns one product.
func (s *CatalogService) Get(ctx context.Context, id string) (models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

// UpdateProductInput carries the replacement fields for a product. Nil
// Image keeps the current one.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       *ImageUpload
}

// Update replaces a product's fields. A new image replaces and then
// deletes the old file; deleting an already-missing file is a no-op.
func (s *CatalogService) Update(ctx context.Context, id string, in UpdateProductInput) (models.Product, error) {
	if in.Price <= 0 {
		return models.Product{}, Validation("price must be greater than zero")
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	oldImage := p.ImageURL
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	p.Category = strings.TrimSpace(in.Category)

	if in.Image != nil {
		url, err := s.storeImage(in.Image)
		if err != nil {
			return models.Product{}, fmt.Errorf("store image: %w", err)
		}
		p.ImageURL = url
	}

	if err := s.products.Update(ctx, &p); err != nil {
		if in.Image != nil && p.ImageURL != oldImage {
			s.removeImage(p.ImageURL)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	if in.Image != nil && oldImage != "" && oldImage != p.ImageURL {
		s.removeImage(oldImage)
	}
	return p, nil
}

// Delete removes a product and its image file.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.ImageURL != "" {
		s.removeImage(p.ImageURL)
	}
	return nil
}
