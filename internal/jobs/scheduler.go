package jobs

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/umutcano/staffhub-backend/internal/apps/attendance"
	"github.com/umutcano/staffhub-backend/internal/apps/leaves"
	"gorm.io/gorm"
)

// Scheduler runs the recurring HR jobs: closing yesterday's attendance and
// the monthly earned-leave accrual.
type Scheduler struct {
	cron       *cron.Cron
	attendance *attendance.Service
	leaves     *leaves.Service
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		attendance: attendance.NewService(db),
		leaves:     leaves.NewService(db),
	}
}

func (s *Scheduler) Start() error {
	// 00:30 daily: mark absentees for the previous day.
	if _, err := s.cron.AddFunc("30 0 * * *", s.closeYesterday); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@monthly", s.accrueLeave); err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("job scheduler started")
	return nil
}

// Stop waits for running jobs to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		slog.Warn("job scheduler stop timed out")
	}
}

func (s *Scheduler) closeYesterday() {
	yesterday := time.Now().AddDate(0, 0, -1)
	if err := s.attendance.CloseDay(yesterday); err != nil {
		slog.Error("attendance close failed", "action", "close_day", "error", err.Error())
	}
}

func (s *Scheduler) accrueLeave() {
	if err := s.leaves.AccrueMonthly(); err != nil {
		slog.Error("leave accrual failed", "action", "accrue_monthly", "error", err.Error())
	}
}
