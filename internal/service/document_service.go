package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

// DocumentInput carries uploaded document metadata. The binary itself is
// stored externally; StorageURL references it.
type DocumentInput struct {
	Name        string
	ContentType string
	SizeBytes   int64
	StorageURL  string
	OrderID     *uint
	CustomerID  *uint
}

// DocumentService handles document metadata for the admin area.
type DocumentService interface {
	Create(ctx context.Context, input DocumentInput, actor *auth.Session) (*model.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Document, error)
	List(ctx context.Context) ([]model.Document, error)
	ListByOrder(ctx context.Context, orderID uint) ([]model.Document, error)
}

type documentService struct {
	documentRepo repository.DocumentRepository
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo repository.DocumentRepository) DocumentService {
	return &documentService{documentRepo: documentRepo}
}

// Create records a document's metadata.
func (s *documentService) Create(ctx context.Context, input DocumentInput, actor *auth.Session) (*model.Document, error) {
	if input.Name == "" || input.StorageURL == "" {
		return nil, fmt.Errorf("%w: name and storage_url are required", apperrors.ErrValidation)
	}

	doc := &model.Document{
		Name:        input.Name,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		StorageURL:  input.StorageURL,
		OrderID:     input.OrderID,
		CustomerID:  input.CustomerID,
		UploadedBy:  actor.Name,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// Delete removes a document record.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return asNotFound(err)
	}
	return nil
}

// Get returns a document by id.
func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	doc, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return doc, nil
}

// List lists all documents.
func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	return s.documentRepo.List(ctx)
}

// ListByOrder lists documents attached to an order.
func (s *documentService) ListByOrder(ctx context.Context, orderID uint) ([]model.Document, error) {
	return s.documentRepo.ListByOrder(ctx, orderID)
}
