package collection

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormCollection stores one collection per table. Match keys are used as
// column names.
type GormCollection[T Record] struct {
	db      *gorm.DB
	orderBy string
}

// NewGormCollection returns a collection over T's table. orderBy must
// reproduce insertion order, e.g. a time-sortable id or created_at.
func NewGormCollection[T Record](db *gorm.DB, orderBy string) *GormCollection[T] {
	if orderBy == "" {
		orderBy = "id"
	}
	return &GormCollection[T]{db: db, orderBy: orderBy}
}

func (c *GormCollection[T]) Append(ctx context.Context, rec T) error {
	if err := c.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (c *GormCollection[T]) AppendUnique(ctx context.Context, rec T, unique Match) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(T)).Where(columns(unique)).Count(&count).Error; err != nil {
			return fmt.Errorf("check uniqueness: %w", err)
		}
		if count > 0 {
			return ErrConflict
		}
		if err := tx.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return fmt.Errorf("insert record: %w", err)
		}
		return nil
	})
	return err
}

func (c *GormCollection[T]) List(ctx context.Context, m Match) ([]T, error) {
	records := []T{}
	query := c.db.WithContext(ctx).Model(new(T))
	if len(m) > 0 {
		query = query.Where(columns(m))
	}
	if err := query.Order(c.orderBy).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (c *GormCollection[T]) FindOne(ctx context.Context, m Match) (T, error) {
	var rec T
	query := c.db.WithContext(ctx).Model(new(T))
	if len(m) > 0 {
		query = query.Where(columns(m))
	}
	if err := query.Order(c.orderBy).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("find record: %w", err)
	}
	return rec, nil
}

func (c *GormCollection[T]) Update(ctx context.Context, id string, mutate func(*T) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec T
		if err := tx.Where("id = ?", id).Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load record: %w", err)
		}
		if err := mutate(&rec); err != nil {
			return err
		}
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("save record: %w", err)
		}
		return nil
	})
}

func columns(m Match) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
