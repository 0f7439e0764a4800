package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// LookupRepository answers the storage-backed questions input validation asks.
type LookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) Taken(ctx context.Context, table, column, value, exceptID string) (bool, error) {
	q := r.db.WithContext(ctx).Table(table).Where(column+" = ?", value)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}

func (r *LookupRepository) Exists(ctx context.Context, table, id string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check %s %s: %w", table, id, err)
	}
	return n > 0, nil
}

// ParentsOf maps every known subcategory id to its category id.
func (r *LookupRepository) ParentsOf(ctx context.Context, subcategoryIDs []string) (map[string]string, error) {
	parents := make(map[string]string, len(subcategoryIDs))
	if len(subcategoryIDs) == 0 {
		return parents, nil
	}
	var rows []struct {
		ID         string
		CategoryID string
	}
	err := r.db.WithContext(ctx).Table("subcategories").
		Select("id, category_id").
		Where("id IN ?", subcategoryIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load subcategory parents: %w", err)
	}
	for _, row := range rows {
		parents[row.ID] = row.CategoryID
	}
	return parents, nil
}

func (r *LookupRepository) AliasTaken(ctx context.Context, userID, alias, exceptID string) (bool, error) {
	q := r.db.WithContext(ctx).Table("addresses").Where("user_id = ? AND alias = ?", userID, alias)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check alias %s: %w", alias, err)
	}
	return n > 0, nil
}
