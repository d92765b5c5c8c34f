package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/myhaircut/internal/model"
)

type EventRepository interface {
	// Сохранить событие журнала.
	Create(ctx context.Context, event *model.Event) error
	// События по участнику (actor или subject), новые первыми.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Event, error) {
	var events []model.Event
	q := r.db.WithContext(ctx).
		Where("actor_id = ? OR subject_id = ?", accountID, accountID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
