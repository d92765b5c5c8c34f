// Package report периодически пишет в лог сводку по платформе.
package report

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Leganyst/myhaircut/internal/marketplace"
	"github.com/Leganyst/myhaircut/internal/model"
)

// Source: то, что отчёт читает из маркетплейса.
type Source interface {
	PlatformStats() marketplace.Stats
	Providers() []model.Account
	ProviderStats(providerID string) marketplace.ProviderStats
}

type Reporter struct {
	src  Source
	log  *zap.Logger
	cron *cron.Cron
}

func NewReporter(src Source, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{src: src, log: log.Named("report")}
}

// Start запускает отчёт по расписанию schedule (cron-выражение или @hourly и т.п.).
func (r *Reporter) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, r.Report); err != nil {
		return fmt.Errorf("add report job %q: %w", schedule, err)
	}
	c.Start()
	r.cron = c
	r.log.Info("report scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущего запуска.
func (r *Reporter) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// Report пишет одну сводку. Мастера с отрицательным балансом идут отдельным предупреждением.
func (r *Reporter) Report() {
	st := r.src.PlatformStats()
	r.log.Info("platform stats",
		zap.Int("members", st.Members),
		zap.Int("bookings", st.Bookings),
		zap.String("revenue", st.Revenue.StringFixed(2)),
		zap.String("platform_earnings", st.PlatformEarnings.StringFixed(2)),
	)

	for _, p := range r.src.Providers() {
		ps := r.src.ProviderStats(p.ID)
		if !ps.InDebt {
			continue
		}
		r.log.Warn("provider wallet in debt",
			zap.String("provider_id", p.ID),
			zap.String("provider_name", p.Name),
			zap.String("wallet_balance", ps.WalletBalance.StringFixed(2)),
		)
	}
}
