package domain

import "testing"

func TestStreakRewardPoints(t *testing.T) {
	cases := []struct {
		day  int
		want int64
	}{
		{1, 100},
		{3, 200},
		{7, 500},
		{8, 500},   // between milestones pays the day-7 amount
		{14, 1000},
		{15, 500},
		{30, 3000},
		{100, 10000},
		{101, 500},
		{0, 100}, // clamped to day 1
	}
	for _, tc := range cases {
		if got := StreakRewardPoints(tc.day); got != tc.want {
			t.Errorf("StreakRewardPoints(%d) = %d, want %d", tc.day, got, tc.want)
		}
	}
}

func TestAddExp(t *testing.T) {
	u := &User{VIPLevel: 1, Exp: 900, MaxExp: 1000}

	if gained := u.AddExp(50); gained != 0 {
		t.Errorf("no level-up expected, got %d levels", gained)
	}
	if u.Exp != 950 || u.VIPLevel != 1 {
		t.Errorf("exp = %d level = %d after partial gain", u.Exp, u.VIPLevel)
	}

	if gained := u.AddExp(100); gained != 1 {
		t.Errorf("expected 1 level gained, got %d", gained)
	}
	if u.VIPLevel != 2 {
		t.Errorf("level = %d, want 2", u.VIPLevel)
	}
	if u.Exp != 50 {
		t.Errorf("leftover exp = %d, want 50", u.Exp)
	}
	if u.MaxExp != 1250 {
		t.Errorf("max exp = %d, want 1250", u.MaxExp)
	}
}

func TestAddExpMultipleLevels(t *testing.T) {
	u := &User{VIPLevel: 1, Exp: 0, MaxExp: 100}
	if gained := u.AddExp(300); gained < 2 {
		t.Errorf("large gain should roll several levels, got %d", gained)
	}
	if u.Exp >= u.MaxExp {
		t.Errorf("exp %d must end below the cap %d", u.Exp, u.MaxExp)
	}
}
