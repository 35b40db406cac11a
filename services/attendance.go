package services

import (
	"context"
	"errors"
	"time"

	"dayflow/domain"
	"dayflow/models"
	"dayflow/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyCheckedIn = errors.New("attendance: an open record for today already exists")
	ErrNotCheckedIn     = errors.New("attendance: no open record for today")
)

// AttendanceService drives the per-user per-day check-in/check-out state
// machine: NoRecord -> CheckedIn -> CheckedOut, terminal for the day.
type AttendanceService struct {
	repo repository.AttendanceRepository
	now  func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{repo: repo, now: time.Now}
}

// CheckIn creates today's record. A second check-in while an open record
// exists is rejected rather than creating a duplicate row.
func (s *AttendanceService) CheckIn(ctx context.Context, user *domain.User) (*domain.AttendanceRecord, error) {
	now := s.now().UTC()
	today := domain.DateOnly(now)

	open, err := s.repo.GetOpenByUserAndDate(ctx, user.ID, today)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrAlreadyCheckedIn
	}

	row := domain.AttendanceToRow(&domain.AttendanceRecord{
		UserID:  user.ID,
		Date:    today,
		CheckIn: &now,
		Status:  domain.AttendancePresent,
	})
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return domain.AttendanceFromRow(row)
}

// CheckOut completes today's open record. Without an open record, or when
// today's record is already checked out, nothing is written: the update is
// conditional on a null check_out both here and in the store.
func (s *AttendanceService) CheckOut(ctx context.Context, user *domain.User) (*domain.AttendanceRecord, error) {
	now := s.now().UTC()
	today := domain.DateOnly(now)

	open, err := s.repo.GetOpenByUserAndDate(ctx, user.ID, today)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNotCheckedIn
	}

	affected, err := s.repo.Complete(ctx, user.ID, today, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Raced with another check-out; the record is already complete.
		return nil, ErrNotCheckedIn
	}

	open.CheckOut = &now
	return domain.AttendanceFromRow(open)
}

// ListFor returns the records a user may see: admins the full set,
// employees their own. Rows that fail to map are logged and skipped.
func (s *AttendanceService) ListFor(ctx context.Context, user *domain.User) ([]domain.AttendanceRecord, error) {
	var rows []models.Attendance
	var err error
	if user.IsAdmin() {
		rows, err = s.repo.List(ctx)
	} else {
		rows, err = s.repo.ListByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	records := make([]domain.AttendanceRecord, 0, len(rows))
	for i := range rows {
		rec, err := domain.AttendanceFromRow(&rows[i])
		if err != nil {
			logrus.WithError(err).WithField("record_id", rows[i].ID).Warn("Skipping unmappable attendance row")
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

// onTimeCutoff is the display convention for the on-time aggregate.
var onTimeCutoff = 9*time.Hour + 15*time.Minute

type AttendanceStats struct {
	DaysPresent   int     `json:"days_present"`
	AvgHours      float64 `json:"avg_hours"`
	OnTimePercent float64 `json:"on_time_percent"`
}

// ComputeStats derives the display-only figures from a loaded record set.
// They are recomputed on every request and never persisted.
func ComputeStats(records []domain.AttendanceRecord) AttendanceStats {
	var stats AttendanceStats
	var completed int
	var totalHours float64
	var withCheckIn, onTime int

	for _, r := range records {
		if r.Status == domain.AttendancePresent {
			stats.DaysPresent++
		}
		if r.CheckIn == nil {
			continue
		}
		withCheckIn++
		sinceMidnight := r.CheckIn.Sub(domain.DateOnly(*r.CheckIn))
		if sinceMidnight <= onTimeCutoff {
			onTime++
		}
		if r.CheckOut != nil {
			completed++
			totalHours += r.CheckOut.Sub(*r.CheckIn).Hours()
		}
	}

	if completed > 0 {
		stats.AvgHours = totalHours / float64(completed)
	}
	if withCheckIn > 0 {
		stats.OnTimePercent = 100 * float64(onTime) / float64(withCheckIn)
	}
	return stats
}
