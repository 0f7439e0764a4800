package services

import (
	"context"
	"errors"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/utils/listquery"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Page[T any] struct {
	Results    int                  `json:"results"`
	Pagination listquery.Pagination `json:"paginationResult"`
	Data       []T                  `json:"data"`
}

// Outcome carries the document a write produced plus the uploaded files
// that are no longer referenced and should be removed from disk.
type Outcome[T any] struct {
	Doc     *T
	Discard []string
}

type ResourceService[T any] struct {
	repo repositories.ResourceRepository[T]
}

func NewResourceService[T any](repo repositories.ResourceRepository[T]) *ResourceService[T] {
	return &ResourceService[T]{repo: repo}
}

func (s *ResourceService[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, storageError(err)
	}
	return doc, nil
}

func (s *ResourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, helpers.DocumentNotFound(id)
	}
	return doc, nil
}

func (s *ResourceService[T]) List(ctx context.Context, base repositories.Scope, q listquery.Query) (*Page[T], error) {
	docs, total, err := s.repo.List(ctx, base, q)
	if err != nil {
		return nil, err
	}
	return &Page[T]{Results: len(docs), Pagination: q.Paginate(total), Data: docs}, nil
}

// Update applies changes. uploaded lists files stored for this request; they
// are handed back for removal when the document does not exist.
func (s *ResourceService[T]) Update(ctx context.Context, id string, changes map[string]any, uploaded []string) (Outcome[T], error) {
	if err := s.checkPrices(ctx, id, changes); err != nil {
		return Outcome[T]{Discard: uploaded}, err
	}
	before, after, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return Outcome[T]{Discard: uploaded}, storageError(err)
	}
	if before == nil {
		return Outcome[T]{Discard: uploaded}, helpers.DocumentNotFound(id)
	}
	return Outcome[T]{Doc: after, Discard: models.StaleImages(imagesOf(before), imagesOf(after))}, nil
}

func (s *ResourceService[T]) Delete(ctx context.Context, id string) (Outcome[T], error) {
	doc, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Outcome[T]{}, err
	}
	if doc == nil {
		return Outcome[T]{}, helpers.DocumentNotFound(id)
	}
	return Outcome[T]{Doc: doc, Discard: models.StaleImages(imagesOf(doc), nil)}, nil
}

type discountChecker interface {
	DiscountAbovePrice(changes map[string]any) (decimal.Decimal, bool)
}

// checkPrices rejects a partial price update that would leave the stored
// discounted price above the regular price.
func (s *ResourceService[T]) checkPrices(ctx context.Context, id string, changes map[string]any) error {
	_, price := changes["price"]
	_, discounted := changes["price_after_discount"]
	if !price && !discounted {
		return nil
	}
	stored, err := s.repo.FindByID(ctx, id)
	if err != nil || stored == nil {
		return err
	}
	checker, ok := any(stored).(discountChecker)
	if !ok {
		return nil
	}
	if value, above := checker.DiscountAbovePrice(changes); above {
		verr := &helpers.ValidationError{}
		verr.Add("priceAfterDiscount", models.DiscountPriceMsg, value.String())
		return verr
	}
	return nil
}

func imagesOf(doc any) models.ImageHolder {
	if h, ok := doc.(models.ImageHolder); ok && h != nil {
		return h
	}
	return nil
}

func storageError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return helpers.Conflict("Duplicate field value, please use another value")
	}
	return err
}
