package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/myhaircut/internal/model"
)

// ErrNotFound — ключ отсутствует в хранилище.
var ErrNotFound = errors.New("key not found")

// KVRepository — долговременное хранилище строк по строковым ключам.
type KVRepository interface {
	// Получить значение; для отсутствующего ключа ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Записать set и удалить del одной операцией.
	WriteBatch(ctx context.Context, set map[string]string, del []string) error
}

// Реализация на GORM.
type GormKVRepository struct {
	db *gorm.DB
}

func NewGormKVRepository(db *gorm.DB) *GormKVRepository {
	return &GormKVRepository{db: db}
}

func (r *GormKVRepository) Get(ctx context.Context, key string) (string, error) {
	var e model.Entry
	res := r.db.WithContext(ctx).Where(map[string]any{"key": key}).Limit(1).Find(&e)
	if res.Error != nil {
		return "", fmt.Errorf("kv get %s: %w", key, res.Error)
	}
	// Find вместо First: отсутствующий ключ не пишется в лог GORM как ошибка
	if res.RowsAffected == 0 {
		return "", ErrNotFound
	}
	return e.Value, nil
}

func (r *GormKVRepository) WriteBatch(ctx context.Context, set map[string]string, del []string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(set) > 0 {
			entries := make([]model.Entry, 0, len(set))
			for k, v := range set {
				entries = append(entries, model.Entry{Key: k, Value: v, UpdatedAt: now})
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entries).Error
			if err != nil {
				return fmt.Errorf("kv upsert: %w", err)
			}
		}
		if len(del) > 0 {
			if err := tx.Where(map[string]any{"key": del}).Delete(&model.Entry{}).Error; err != nil {
				return fmt.Errorf("kv delete: %w", err)
			}
		}
		return nil
	})
}
