package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/repository"
	"github.com/Gbothemy/crypto-earning/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	service.InitJWT("integration-test-secret")
	return db
}

func newTestUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	auth := service.NewAuthService(db)
	username := fmt.Sprintf("it-user-%d", time.Now().UnixNano())
	user, token, err := auth.Login(context.Background(), username, "", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if token == "" {
		t.Fatal("login returned empty token")
	}
	return user
}

func grantPoints(t *testing.T, db *pgxpool.Pool, userID, points int64) {
	t.Helper()
	if _, err := repository.NewUserRepository(db).AddPoints(context.Background(), userID, points); err != nil {
		t.Fatalf("grant points: %v", err)
	}
}

func TestConversionFlow(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := newTestUser(t, db)
	grantPoints(t, db, user.ID, 25000)

	conversions := service.NewConversionService(db)

	// below the conversion minimum
	if _, err := conversions.Convert(ctx, user.ID, 500, domain.CurrencySOL); !errors.Is(err, service.ErrBelowMinimum) {
		t.Fatalf("expected ErrBelowMinimum, got %v", err)
	}

	// more than the user holds: nothing must change
	if _, err := conversions.Convert(ctx, user.ID, 50000, domain.CurrencySOL); !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	after, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.Points != 25000 {
		t.Fatalf("failed conversion changed points: %d", after.Points)
	}

	// happy path at the level-1 (base) rate
	conv, err := conversions.Convert(ctx, user.ID, 10000, domain.CurrencySOL)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if conv.ConversionRate != domain.BaseConversionRate {
		t.Errorf("rate = %d, want %d", conv.ConversionRate, domain.BaseConversionRate)
	}
	if conv.AmountReceived != 1.0 {
		t.Errorf("amount = %v, want 1.0", conv.AmountReceived)
	}

	after, _ = repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if after.Points != 15000 {
		t.Errorf("points = %d, want 15000", after.Points)
	}
	balance, err := repository.NewBalanceRepository(db).GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.SOL != 1.0 {
		t.Errorf("sol balance = %v, want 1.0", balance.SOL)
	}

	history, err := conversions.History(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history))
	}
}

func TestWithdrawalRejectRefundsBalance(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := newTestUser(t, db)

	balances := repository.NewBalanceRepository(db)
	if err := balances.Set(ctx, user.ID, domain.CurrencySOL, 5.0); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	withdrawals := service.NewWithdrawalService(db, nil)
	req, err := withdrawals.Request(ctx, user.ID, domain.CurrencySOL, 2.0,
		"7EYnhQoR9YM3N7UoaKRoA44Uy8JeaZV3qyouov87awMs", "Solana Mainnet", "")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Status != domain.WithdrawalStatusPending {
		t.Fatalf("status = %s, want pending", req.Status)
	}

	balance, _ := balances.GetByUserID(ctx, user.ID)
	if balance.SOL != 3.0 {
		t.Fatalf("balance after request = %v, want 3.0", balance.SOL)
	}

	// rejection refunds the full debited amount
	resolved, err := withdrawals.Resolve(ctx, req.ID, domain.WithdrawalStatusRejected, "ops")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != domain.WithdrawalStatusRejected {
		t.Errorf("status = %s, want rejected", resolved.Status)
	}

	balance, _ = balances.GetByUserID(ctx, user.ID)
	if balance.SOL != 5.0 {
		t.Errorf("balance after reject = %v, want 5.0 (refund)", balance.SOL)
	}

	// exactly one notification for the decision
	notifications, err := repository.NewNotificationRepository(db).GetByUserID(ctx, user.ID, false)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	count := 0
	for _, n := range notifications {
		if n.NotificationType == domain.NotificationTypeWithdrawal {
			count++
		}
	}
	if count != 1 {
		t.Errorf("withdrawal notifications = %d, want 1", count)
	}

	// a resolved request can never be resolved again
	if _, err := withdrawals.Resolve(ctx, req.ID, domain.WithdrawalStatusApproved, "ops"); !errors.Is(err, service.ErrAlreadyResolved) {
		t.Errorf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestWithdrawalApproveAndComplete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := newTestUser(t, db)

	balances := repository.NewBalanceRepository(db)
	if err := balances.Set(ctx, user.ID, domain.CurrencyUSDT, 100); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	withdrawals := service.NewWithdrawalService(db, nil)
	req, err := withdrawals.Request(ctx, user.ID, domain.CurrencyUSDT, 50,
		"TJRabPrwbZy45sbavfcjinPJC18kjpRTv8", "TRC20 (Tron)", "")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.NetworkFee != 1.0 {
		t.Errorf("fee = %v, want 1.0", req.NetworkFee)
	}
	if req.NetAmount != 49 {
		t.Errorf("net = %v, want 49", req.NetAmount)
	}

	approved, err := withdrawals.Resolve(ctx, req.ID, domain.WithdrawalStatusApproved, "ops")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.ProcessedBy != "ops" || approved.ProcessedDate == nil {
		t.Error("approval must stamp processed_by and processed_date")
	}

	// approval does not refund
	balance, _ := balances.GetByUserID(ctx, user.ID)
	if balance.USDT != 50 {
		t.Errorf("balance after approve = %v, want 50", balance.USDT)
	}

	completed, err := withdrawals.Complete(ctx, req.ID, "0xabc123")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.WithdrawalStatusCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}
	if completed.TransactionHash != "0xabc123" {
		t.Errorf("hash = %q", completed.TransactionHash)
	}
}

func TestWithdrawalValidation(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := newTestUser(t, db)

	balances := repository.NewBalanceRepository(db)
	if err := balances.Set(ctx, user.ID, domain.CurrencySOL, 1.0); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	withdrawals := service.NewWithdrawalService(db, nil)
	cases := []struct {
		name    string
		amount  float64
		address string
		network string
		wantErr error
	}{
		{"below minimum", 0.001, "7EYnhQoR9YM3N7UoaKRoA44Uy8JeaZV3qyouov87awMs", "Solana Mainnet", service.ErrBelowMinimum},
		{"negative amount", -1, "7EYnhQoR9YM3N7UoaKRoA44Uy8JeaZV3qyouov87awMs", "Solana Mainnet", service.ErrInvalidAmount},
		{"wrong network", 0.5, "7EYnhQoR9YM3N7UoaKRoA44Uy8JeaZV3qyouov87awMs", "Ethereum Mainnet", service.ErrInvalidNetwork},
		{"bad address", 0.5, "not-an-address", "Solana Mainnet", service.ErrInvalidAddress},
		{"insufficient", 0.9999, "7EYnhQoR9YM3N7UoaKRoA44Uy8JeaZV3qyouov87awMs", "Solana Mainnet", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := withdrawals.Request(ctx, user.ID, domain.CurrencySOL, tc.amount, tc.address, tc.network, "")
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			// rejected validation must not touch the balance
			balance, _ := balances.GetByUserID(ctx, user.ID)
			if balance.SOL != 1.0 {
				t.Fatalf("balance changed to %v on failed validation", balance.SOL)
			}
		})
	}
}

func TestTaskProgressAndClaim(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := newTestUser(t, db)

	tasks := service.NewTaskService(db)

	// the seeded daily check-in requires one progress tick
	if _, err := tasks.Claim(ctx, user.ID, "daily-login"); !errors.Is(err, service.ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted before progress, got %v", err)
	}

	if _, err := tasks.AddProgress(ctx, user.ID, "daily-login", 1); err != nil {
		t.Fatalf("progress: %v", err)
	}

	claimed, err := tasks.Claim(ctx, user.ID, "daily-login")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Points != user.Points+100 {
		t.Errorf("points = %d, want %d", claimed.Points, user.Points+100)
	}
	if claimed.CompletedTasks != user.CompletedTasks+1 {
		t.Errorf("completed tasks = %d, want %d", claimed.CompletedTasks, user.CompletedTasks+1)
	}

	// claiming twice in the same period must fail
	if _, err := tasks.Claim(ctx, user.ID, "daily-login"); !errors.Is(err, service.ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}

	// merged listing shows the claim
	list, err := tasks.List(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, item := range list {
		if item.ID == "daily-login" {
			found = true
			if !item.IsClaimed {
				t.Error("daily-login should show as claimed")
			}
		}
	}
	if !found {
		t.Error("daily-login missing from merged task list")
	}
}

func TestDailyClaimOncePerDay(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := newTestUser(t, db)

	rewards := service.NewRewardService(db)
	result, err := rewards.ClaimDaily(ctx, user.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if result.StreakDay != 1 {
		t.Errorf("streak day = %d, want 1", result.StreakDay)
	}
	// random 200-700 plus the day-1 streak bonus of 100
	if result.PointsEarned < 300 || result.PointsEarned > 800 {
		t.Errorf("points earned = %d, outside expected range", result.PointsEarned)
	}
	if result.User.DayStreak != 1 {
		t.Errorf("user streak = %d, want 1", result.User.DayStreak)
	}

	if _, err := rewards.ClaimDaily(ctx, user.ID); !errors.Is(err, service.ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed on same-day claim, got %v", err)
	}
}

func TestAchievementUnlocksOnce(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := newTestUser(t, db)
	grantPoints(t, db, user.ID, 15000)

	conversions := service.NewConversionService(db)
	if _, err := conversions.Convert(ctx, user.ID, 1000, domain.CurrencyETH); err != nil {
		t.Fatalf("convert: %v", err)
	}

	achievements := service.NewAchievementService(db)
	unlocked, err := achievements.CheckAndUnlock(ctx, user.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	foundConvert := false
	for _, a := range unlocked {
		if a.ID == "first-convert" {
			foundConvert = true
		}
	}
	if !foundConvert {
		t.Error("first conversion should unlock first-convert")
	}

	// a second pass must not unlock (or pay) the same achievement again
	again, err := achievements.CheckAndUnlock(ctx, user.ID)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	for _, a := range again {
		if a.ID == "first-convert" {
			t.Error("first-convert unlocked twice")
		}
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	rich := newTestUser(t, db)
	poor := newTestUser(t, db)
	grantPoints(t, db, rich.ID, 1_000_000)
	grantPoints(t, db, poor.ID, 10)

	boards := service.NewLeaderboardService(db, nil)
	entries, err := boards.Get(ctx, service.BoardPoints, 100)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}

	richRank, poorRank := -1, -1
	for i, e := range entries {
		if e.UserID == rich.ID {
			richRank = i
		}
		if e.UserID == poor.ID {
			poorRank = i
		}
	}
	if richRank == -1 {
		t.Fatal("high scorer missing from leaderboard")
	}
	if poorRank != -1 && richRank > poorRank {
		t.Error("leaderboard not ordered by points descending")
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Points < entries[i].Points {
			t.Fatalf("entries out of order at %d", i)
		}
	}
}
