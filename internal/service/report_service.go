package service

import (
	"context"
	"time"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
	"github.com/oncoliving/checkin-api/internal/domain/repository"
)

// streakScanWindow bounds how many distinct dates the streak computation
// loads; a streak longer than a year is reported as its true length anyway
// because consecutive days cannot outnumber loaded rows.
const streakScanWindow = 366

// CheckinStats is the aggregate view consumed by the patient dashboard.
type CheckinStats struct {
	TotalCheckins int64      `json:"total_checkins"`
	CurrentStreak int        `json:"current_streak"`
	LastCheckin   *time.Time `json:"last_checkin,omitempty"`
}

// ReportService is the read-only history/aggregation surface. No business
// logic beyond ordering, limiting and streak counting.
type ReportService struct {
	responseRepo repository.ResponseRepository
	location     *time.Location
}

func NewReportService(responseRepo repository.ResponseRepository, location *time.Location) *ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportService{
		responseRepo: responseRepo,
		location:     location,
	}
}

// GetHistory returns a user's responses, newest first. Used both for the
// patient's own history and, by administrative callers, for a patient they
// follow.
func (s *ReportService) GetHistory(ctx context.Context, userID uint, limit int) ([]entity.Response, error) {
	if limit <= 0 || limit > 365 {
		limit = defaultHistoryLimit
	}
	return s.responseRepo.GetHistory(userID, limit)
}

// GetStats computes totals and the current consecutive-day streak. A streak
// is alive when the most recent check-in is today or yesterday in the
// configured timezone.
func (s *ReportService) GetStats(ctx context.Context, userID uint) (*CheckinStats, error) {
	total, err := s.responseRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &CheckinStats{TotalCheckins: total}
	if total == 0 {
		return stats, nil
	}

	dates, err := s.responseRepo.GetResponseDates(userID, streakScanWindow)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return stats, nil
	}

	last := dates[0]
	stats.LastCheckin = &last
	stats.CurrentStreak = currentStreak(dates, s.todayDate())
	return stats, nil
}

// currentStreak counts consecutive calendar days in dates (newest first,
// date-truncated) ending at today or yesterday.
func currentStreak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	head := truncateDate(dates[0])
	gap := int(today.Sub(head).Hours() / 24)
	if gap > 1 {
		// Streak already broken: last check-in is older than yesterday.
		return 0
	}

	streak := 1
	prev := head
	for _, d := range dates[1:] {
		day := truncateDate(d)
		if prev.Sub(day) != 24*time.Hour {
			break
		}
		streak++
		prev = day
	}
	return streak
}

func (s *ReportService) todayDate() time.Time {
	now := time.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
