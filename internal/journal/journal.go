// Package journal записывает доменные события в структурированный лог
// и, если задан репозиторий, в таблицу events.
package journal

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Leganyst/myhaircut/internal/model"
	"github.com/Leganyst/myhaircut/internal/repository"
)

// Entry — событие до сохранения.
type Entry struct {
	Type      model.EventType
	ActorID   string
	SubjectID string
	BookingID string
	Details   map[string]any
}

type Journal struct {
	repo repository.EventRepository
	log  *zap.Logger
	now  func() time.Time
}

// New создаёт журнал. С repo == nil события только логируются.
func New(repo repository.EventRepository, log *zap.Logger) *Journal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Journal{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Record пишет события. Ошибки хранилища логируются и не возвращаются.
// nil-журнал ничего не делает.
func (j *Journal) Record(ctx context.Context, entries ...Entry) {
	if j == nil {
		return
	}
	for _, e := range entries {
		j.logEntry(e)
		if j.repo == nil {
			continue
		}
		ev := &model.Event{
			EventType: e.Type,
			CreatedAt: j.now(),
			ActorID:   e.ActorID,
			SubjectID: e.SubjectID,
			BookingID: e.BookingID,
		}
		if len(e.Details) > 0 {
			raw, err := json.Marshal(e.Details)
			if err != nil {
				j.log.Warn("journal: encode details", zap.String("event_type", string(e.Type)), zap.Error(err))
			} else {
				ev.Details = datatypes.JSON(raw)
			}
		}
		if err := j.repo.Create(ctx, ev); err != nil {
			j.log.Warn("journal: persist event", zap.String("event_type", string(e.Type)), zap.Error(err))
		}
	}
}

func (j *Journal) logEntry(e Entry) {
	fields := []zap.Field{
		zap.String("event_type", string(e.Type)),
	}
	if e.ActorID != "" {
		fields = append(fields, zap.String("actor_id", e.ActorID))
	}
	if e.SubjectID != "" {
		fields = append(fields, zap.String("subject_id", e.SubjectID))
	}
	if e.BookingID != "" {
		fields = append(fields, zap.String("booking_id", e.BookingID))
	}
	for k, v := range e.Details {
		fields = append(fields, zap.Any("detail_"+k, v))
	}

	if e.Type == model.EventTypeLoginRejected {
		j.log.Warn("domain event", fields...)
		return
	}
	j.log.Info("domain event", fields...)
}
