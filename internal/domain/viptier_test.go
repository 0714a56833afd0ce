package domain

import "testing"

func TestTierContains(t *testing.T) {
	tier := &VIPTier{TierName: "Silver", MinLevel: 6, MaxLevel: 15, ConversionRate: 9500}

	if tier.Contains(5) {
		t.Error("level 5 is below the tier")
	}
	if !tier.Contains(6) || !tier.Contains(15) {
		t.Error("boundary levels belong to the tier")
	}
	if tier.Contains(16) {
		t.Error("level 16 is above the tier")
	}
}

func TestFallbackTier(t *testing.T) {
	tier := FallbackTier()
	if tier.ConversionRate != BaseConversionRate {
		t.Errorf("fallback rate = %d, want %d", tier.ConversionRate, BaseConversionRate)
	}
	if !tier.Contains(1) {
		t.Error("fallback tier must cover level 1")
	}
}
