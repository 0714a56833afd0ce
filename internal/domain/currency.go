package domain

import (
	"errors"
	"regexp"
	"strings"
)

// Currency is a supported payout currency.
type Currency string

const (
	CurrencySOL  Currency = "sol"
	CurrencyETH  Currency = "eth"
	CurrencyUSDT Currency = "usdt"
	CurrencyUSDC Currency = "usdc"
)

var ErrInvalidCurrency = errors.New("invalid currency")

// Currencies lists all supported currencies in display order.
var Currencies = []Currency{CurrencySOL, CurrencyETH, CurrencyUSDT, CurrencyUSDC}

// ParseCurrency normalizes a currency symbol, rejecting anything outside the enum.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToLower(strings.TrimSpace(s))) {
	case CurrencySOL:
		return CurrencySOL, nil
	case CurrencyETH:
		return CurrencyETH, nil
	case CurrencyUSDT:
		return CurrencyUSDT, nil
	case CurrencyUSDC:
		return CurrencyUSDC, nil
	}
	return "", ErrInvalidCurrency
}

func (c Currency) String() string { return string(c) }

// Symbol returns the uppercase display symbol.
func (c Currency) Symbol() string { return strings.ToUpper(string(c)) }

// MinWithdraw returns the minimum withdrawable amount for the currency.
func (c Currency) MinWithdraw() float64 {
	return minWithdraw[c]
}

// Networks returns the networks a currency can be withdrawn over.
func (c Currency) Networks() []string {
	return networkOptions[c]
}

// SupportsNetwork reports whether the currency can be withdrawn over network.
func (c Currency) SupportsNetwork(network string) bool {
	for _, n := range networkOptions[c] {
		if n == network {
			return true
		}
	}
	return false
}

var minWithdraw = map[Currency]float64{
	CurrencySOL:  0.01,
	CurrencyETH:  0.001,
	CurrencyUSDT: 10,
	CurrencyUSDC: 10,
}

var networkOptions = map[Currency][]string{
	CurrencySOL:  {"Solana Mainnet"},
	CurrencyETH:  {"Ethereum Mainnet", "Arbitrum", "Optimism", "Polygon", "BSC (BEP20)"},
	CurrencyUSDT: {"TRC20 (Tron)", "ERC20 (Ethereum)", "BEP20 (BSC)", "Polygon", "Solana", "Arbitrum"},
	CurrencyUSDC: {"Ethereum Mainnet", "Solana (SPL)", "Polygon", "Arbitrum", "Optimism", "BSC (BEP20)"},
}

var networkFees = map[string]float64{
	"Solana Mainnet":   0.000005,
	"Solana (SPL)":     0.01,
	"Solana":           0.01,
	"Ethereum Mainnet": 5.0,
	"Arbitrum":         0.5,
	"Optimism":         0.1,
	"Polygon":          0.1,
	"BSC (BEP20)":      0.8,
	"BEP20 (BSC)":      0.8,
	"TRC20 (Tron)":     1.0,
	"ERC20 (Ethereum)": 5.0,
}

// NetworkFee returns the flat fee charged for a withdrawal over network.
// Unknown networks cost nothing.
func NetworkFee(network string) float64 {
	return networkFees[network]
}

var (
	base58Re = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]+$`)
	evmRe    = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
)

// ValidWalletAddress is a best-effort format check, not cryptographic address
// verification. Solana-style networks expect Base58 of 32-44 chars, EVM-style
// 0x plus 40 hex chars, Tron a T-prefixed 34-char string. Unrecognized
// networks only require a plausible length.
func ValidWalletAddress(address, network string) bool {
	if len(address) < 10 {
		return false
	}
	switch {
	case strings.Contains(network, "Solana") || strings.Contains(network, "SPL"):
		return len(address) >= 32 && len(address) <= 44 && base58Re.MatchString(address)
	case strings.Contains(network, "Ethereum") || strings.Contains(network, "BEP20") ||
		strings.Contains(network, "Arbitrum") || strings.Contains(network, "Optimism") ||
		strings.Contains(network, "Polygon"):
		return evmRe.MatchString(address)
	case strings.Contains(network, "TRC20"):
		return strings.HasPrefix(address, "T") && len(address) == 34
	}
	return true
}
