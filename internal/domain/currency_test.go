package domain

import "testing"

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{"sol", CurrencySOL, false},
		{"SOL", CurrencySOL, false},
		{" eth ", CurrencyETH, false},
		{"usdt", CurrencyUSDT, false},
		{"usdc", CurrencyUSDC, false},
		{"btc", "", true},
		{"", "", true},
		{"dogecoin", "", true},
	}

	for _, tc := range cases {
		got, err := ParseCurrency(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCurrency(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCurrency(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCurrency(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMinWithdraw(t *testing.T) {
	cases := map[Currency]float64{
		CurrencySOL:  0.01,
		CurrencyETH:  0.001,
		CurrencyUSDT: 10,
		CurrencyUSDC: 10,
	}
	for c, want := range cases {
		if got := c.MinWithdraw(); got != want {
			t.Errorf("%s.MinWithdraw() = %v, want %v", c, got, want)
		}
	}
}

func TestSupportsNetwork(t *testing.T) {
	if !CurrencySOL.SupportsNetwork("Solana Mainnet") {
		t.Error("SOL should support Solana Mainnet")
	}
	if CurrencySOL.SupportsNetwork("Ethereum Mainnet") {
		t.Error("SOL should not support Ethereum Mainnet")
	}
	if !CurrencyUSDT.SupportsNetwork("TRC20 (Tron)") {
		t.Error("USDT should support TRC20 (Tron)")
	}
}

func TestNetworkFee(t *testing.T) {
	if got := NetworkFee("Ethereum Mainnet"); got != 5.0 {
		t.Errorf("Ethereum Mainnet fee = %v, want 5.0", got)
	}
	if got := NetworkFee("Solana Mainnet"); got != 0.000005 {
		t.Errorf("Solana Mainnet fee = %v, want 0.000005", got)
	}
	// unknown networks carry no fee rather than erroring
	if got := NetworkFee("no such network"); got != 0 {
		t.Errorf("unknown network fee = %v, want 0", got)
	}
}

func TestValidWalletAddress(t *testing.T) {
	cases := []struct {
		name    string
		address string
		network string
		want    bool
	}{
		{"solana ok", "7EYnhQoR9YM3N7UoaKRoA44Uy8JeaZV3qyouov87awMs", "Solana Mainnet", true},
		{"solana too short", "abc", "Solana Mainnet", false},
		{"solana bad chars", "0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl", "Solana (SPL)", false},
		{"evm ok", "0x52908400098527886E0F7030069857D2E4169EE7", "Ethereum Mainnet", true},
		{"evm missing prefix", "52908400098527886E0F7030069857D2E4169EE7", "Ethereum Mainnet", false},
		{"evm short", "0x1234", "Arbitrum", false},
		{"evm on polygon", "0x52908400098527886E0F7030069857D2E4169EE7", "Polygon", true},
		{"tron ok", "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8", "TRC20 (Tron)", true},
		{"tron wrong prefix", "XJRabPrwbZy45sbavfcjinPJC18kjpRTv8", "TRC20 (Tron)", false},
		{"unknown network long enough", "someaddress123", "Lightning", true},
		{"unknown network too short", "abc", "Lightning", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidWalletAddress(tc.address, tc.network); got != tc.want {
				t.Errorf("ValidWalletAddress(%q, %q) = %v, want %v", tc.address, tc.network, got, tc.want)
			}
		})
	}
}
