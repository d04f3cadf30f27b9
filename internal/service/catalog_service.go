package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/storage"

	"github.com/google/uuid"
)

// ImageUpload carries an uploaded product image towards the object store
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreateProductInput holds the fields for a new catalog entry
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Image       *ImageUpload
}

// CatalogService implements product catalog management. The stored image
// reference is an opaque string; only this service's storage collaborator
// ever interprets it.
type CatalogService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, offset, limit int) ([]*domain.Product, int, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	AttachImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (string, error)
}

type catalogService struct {
	productRepo   repository.ProductRepository
	store         storage.ObjectStore // nil when object storage is disabled
	presignExpiry time.Duration
}

// NewCatalogService creates a new instance of CatalogService. store may be
// nil, in which case image references pass through untouched.
func NewCatalogService(productRepo repository.ProductRepository, store storage.ObjectStore, presignExpiry time.Duration) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		store:         store,
		presignExpiry: presignExpiry,
	}
}

// CreateProduct persists a new product, uploading its image first when one
// was provided
func (s *catalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	imageURL := ""
	if input.Image != nil && s.store != nil {
		key := fmt.Sprintf("products/%s_%s", uuid.New(), input.Image.Filename)
		url, err := s.store.Upload(ctx, key, input.Image.Content, input.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
		imageURL = url
	}

	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product, replacing its stored image reference with
// a time-limited access URL when object storage is configured
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.presignImage(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts retrieves a catalog page with presigned image URLs
func (s *catalogService) ListProducts(ctx context.Context, offset, limit int) ([]*domain.Product, int, error) {
	products, total, err := s.productRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	for _, product := range products {
		if err := s.presignImage(ctx, product); err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

// UpdateProduct replaces all mutable fields of a product
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error) {
	return s.productRepo.Update(ctx, id, update)
}

// DeleteProduct removes a product from the catalog and returns the removed
// record. Historical order items keep their reference to the deleted id.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.Delete(ctx, id)
}

// AttachImage uploads an image for an existing product and stores the new
// reference, leaving every other field unchanged
func (s *catalogService) AttachImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("products/%s/%s", id, upload.Filename)
	url, err := s.store.Upload(ctx, key, upload.Content, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload product image: %w", err)
	}

	_, err = s.productRepo.Update(ctx, id, domain.ProductUpdate{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURL:    url,
	})
	if err != nil {
		return "", err
	}

	return url, nil
}

func (s *catalogService) presignImage(ctx context.Context, product *domain.Product) error {
	if s.store == nil || product.ImageURL == "" {
		return nil
	}

	key := storage.ObjectKeyFromRef(product.ImageURL)
	url, err := s.store.PresignGet(ctx, key, s.presignExpiry)
	if err != nil {
		return fmt.Errorf("failed to presign image URL: %w", err)
	}

	product.ImageURL = url
	return nil
}
