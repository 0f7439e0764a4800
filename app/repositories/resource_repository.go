package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/storefront-api/app/utils/listquery"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a query, e.g. to a parent resource or the caller's own rows.
type Scope = func(*gorm.DB) *gorm.DB

// WhereEq scopes a query to rows whose column equals value.
func WhereEq(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
}

// Preload names an association to load on reads, optionally limited to columns.
type Preload struct {
	Field   string
	Columns []string
}

type ResourceRepository[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, base Scope, q listquery.Query) ([]T, int64, error)
	Update(ctx context.Context, id string, changes map[string]any) (before *T, after *T, err error)
	Delete(ctx context.Context, id string) (*T, error)
}

type resourceRepository[T any] struct {
	db       *gorm.DB
	preloads []Preload
}

func NewResourceRepository[T any](db *gorm.DB, preloads ...Preload) ResourceRepository[T] {
	return &resourceRepository[T]{db: db, preloads: preloads}
}

func (r *resourceRepository[T]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		if len(p.Columns) == 0 {
			db = db.Preload(p.Field)
			continue
		}
		cols := p.Columns
		db = db.Preload(p.Field, func(tx *gorm.DB) *gorm.DB {
			return tx.Select(cols)
		})
	}
	return db
}

func (r *resourceRepository[T]) Create(ctx context.Context, doc *T) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("create %T: %w", doc, err)
	}
	return nil
}

func (r *resourceRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.findByID(ctx, r.db, id)
}

func (r *resourceRepository[T]) findByID(ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var doc T
	err := r.withPreloads(db.WithContext(ctx)).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find %T %s: %w", doc, id, err)
	}
	return &doc, nil
}

func (r *resourceRepository[T]) List(ctx context.Context, base Scope, q listquery.Query) ([]T, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{q.Where}
	if base != nil {
		scopes = append([]func(*gorm.DB) *gorm.DB{base}, scopes...)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %T: %w", new(T), err)
	}

	docs := []T{}
	err := r.withPreloads(r.db.WithContext(ctx)).
		Scopes(scopes...).
		Scopes(q.Window).
		Find(&docs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list %T: %w", new(T), err)
	}
	return docs, total, nil
}

func (r *resourceRepository[T]) Update(ctx context.Context, id string, changes map[string]any) (*T, *T, error) {
	var before, after *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		before, err = r.findByID(ctx, tx, id)
		if err != nil || before == nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(new(T)).Where("id = ?", id).Updates(changes).Error; err != nil {
				return fmt.Errorf("update %T %s: %w", before, id, err)
			}
		}
		after, err = r.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func (r *resourceRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	var doc *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		doc, err = r.findByID(ctx, tx, id)
		if err != nil || doc == nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(new(T)).Error; err != nil {
			return fmt.Errorf("delete %T %s: %w", doc, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
