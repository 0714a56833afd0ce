package service

import (
	"errors"
	"testing"

	"github.com/Gbothemy/crypto-earning/internal/domain"
)

func TestWithdrawalEstimate(t *testing.T) {
	s := NewWithdrawalService(nil, nil)

	cases := []struct {
		name     string
		currency domain.Currency
		amount   float64
		network  string
		wantFee  float64
		wantNet  float64
		wantErr  error
	}{
		{"sol ok", domain.CurrencySOL, 1.0, "Solana Mainnet", 0.000005, 1.0 - 0.000005, nil},
		{"usdt tron ok", domain.CurrencyUSDT, 50, "TRC20 (Tron)", 1.0, 49, nil},
		{"zero amount", domain.CurrencySOL, 0, "Solana Mainnet", 0, 0, ErrInvalidAmount},
		{"negative amount", domain.CurrencyETH, -2, "Ethereum Mainnet", 0, 0, ErrInvalidAmount},
		{"below minimum", domain.CurrencyUSDT, 5, "TRC20 (Tron)", 0, 0, ErrBelowMinimum},
		{"unsupported network", domain.CurrencySOL, 1.0, "Ethereum Mainnet", 0, 0, ErrInvalidNetwork},
		{"fee swallows amount", domain.CurrencyETH, 0.001, "Ethereum Mainnet", 0, 0, ErrBelowMinimum},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fee, net, err := s.Estimate(tc.currency, tc.amount, tc.network)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fee != tc.wantFee {
				t.Errorf("fee = %v, want %v", fee, tc.wantFee)
			}
			if net != tc.wantNet {
				t.Errorf("net = %v, want %v", net, tc.wantNet)
			}
		})
	}
}
