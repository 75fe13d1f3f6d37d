package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

func day(offset int) time.Time {
	now := time.Now().UTC()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, offset)
}

func TestCurrentStreak(t *testing.T) {
	today := day(0)

	cases := []struct {
		name     string
		dates    []time.Time
		expected int
	}{
		{"no dates", nil, 0},
		{"single check-in today", []time.Time{day(0)}, 1},
		{"single check-in yesterday", []time.Time{day(-1)}, 1},
		{"broken two days ago", []time.Time{day(-2), day(-3)}, 0},
		{"three consecutive days ending today", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"three consecutive days ending yesterday", []time.Time{day(-1), day(-2), day(-3)}, 3},
		{"gap inside the run", []time.Time{day(0), day(-1), day(-3), day(-4)}, 2},
		{"long run", []time.Time{day(0), day(-1), day(-2), day(-3), day(-4), day(-5), day(-6)}, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, currentStreak(tc.dates, today))
		})
	}
}

func TestReportService_GetStats(t *testing.T) {
	// Arrange
	mockResponseRepo := new(MockResponseRepo)
	mockResponseRepo.On("CountByUser", uint(42)).Return(int64(12), nil)
	mockResponseRepo.On("GetResponseDates", uint(42), streakScanWindow).
		Return([]time.Time{day(0), day(-1), day(-2), day(-4)}, nil)

	svc := NewReportService(mockResponseRepo, time.UTC)

	// Act
	stats, err := svc.GetStats(context.Background(), 42)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalCheckins)
	assert.Equal(t, 3, stats.CurrentStreak)
	require.NotNil(t, stats.LastCheckin)
	assert.Equal(t, day(0), *stats.LastCheckin)
}

func TestReportService_GetStats_NoCheckins(t *testing.T) {
	mockResponseRepo := new(MockResponseRepo)
	mockResponseRepo.On("CountByUser", uint(42)).Return(int64(0), nil)

	svc := NewReportService(mockResponseRepo, time.UTC)

	stats, err := svc.GetStats(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalCheckins)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Nil(t, stats.LastCheckin)
	mockResponseRepo.AssertNotCalled(t, "GetResponseDates", uint(42), streakScanWindow)
}

func TestReportService_GetHistory_ClampsLimit(t *testing.T) {
	mockResponseRepo := new(MockResponseRepo)
	mockResponseRepo.On("GetHistory", uint(42), defaultHistoryLimit).
		Return([]entity.Response{{ID: 1}}, nil)

	svc := NewReportService(mockResponseRepo, time.UTC)

	for _, limit := range []int{0, -5, 10_000} {
		responses, err := svc.GetHistory(context.Background(), 42, limit)
		require.NoError(t, err)
		assert.Len(t, responses, 1)
	}
	mockResponseRepo.AssertExpectations(t)
}
