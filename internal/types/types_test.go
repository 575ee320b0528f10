package types

import "testing"

func TestRiskOrdering(t *testing.T) {
	order := []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Fatalf("expected %s < %s", order[i-1], order[i])
		}
	}
}

func TestParseRisk(t *testing.T) {
	if _, err := ParseRisk("medium"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseRisk("severe"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestMaxRisk(t *testing.T) {
	if got := MaxRisk(RiskLow, RiskCritical); got != RiskCritical {
		t.Fatalf("got %s", got)
	}
	if got := MaxRisk(RiskHigh, RiskMedium); got != RiskHigh {
		t.Fatalf("got %s", got)
	}
}
