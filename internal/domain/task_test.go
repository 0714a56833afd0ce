package domain

import (
	"testing"
	"time"
)

func TestPeriodStartDaily(t *testing.T) {
	now := time.Date(2025, 3, 12, 17, 45, 3, 0, time.UTC)
	got := TaskTypeDaily.PeriodStart(now)
	want := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("daily period start = %v, want %v", got, want)
	}
}

func TestPeriodStartWeekly(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		// 2025-03-12 is a Wednesday; the week began Monday the 10th
		{"midweek", time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"monday itself", time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		// Sunday belongs to the week that started the previous Monday
		{"sunday", time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		// week start can cross a month boundary
		{"month crossing", time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TaskTypeWeekly.PeriodStart(tc.now); !got.Equal(tc.want) {
				t.Errorf("weekly period start(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestPeriodStartMonthly(t *testing.T) {
	now := time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC)
	got := TaskTypeMonthly.PeriodStart(now)
	want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("monthly period start = %v, want %v", got, want)
	}
}

func TestPeriodStartDistinctAcrossBoundary(t *testing.T) {
	before := time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC)
	after := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	if TaskTypeDaily.PeriodStart(before).Equal(TaskTypeDaily.PeriodStart(after)) {
		t.Error("consecutive days must map to different period keys")
	}
}

func TestCanClaim(t *testing.T) {
	task := &Task{ID: "t", RequiredCount: 3, RewardPoints: 100}

	ut := &UserTask{Progress: 2}
	if ut.CanClaim(task) {
		t.Error("incomplete task must not be claimable")
	}

	ut.Progress = 3
	if !ut.CanClaim(task) {
		t.Error("completed unclaimed task must be claimable")
	}

	ut.IsClaimed = true
	if ut.CanClaim(task) {
		t.Error("claimed task must not be claimable again")
	}
}
