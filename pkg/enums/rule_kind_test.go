package enums

import "testing"

func TestParseRuleKind(t *testing.T) {
	t.Parallel()
	for _, value := range []string{"N_FOR_N_DEAL", "BULK_DISCOUNT", "FREEBIE", "PROMO_CODE"} {
		kind, err := ParseRuleKind(value)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", value, err)
		}
		if !kind.IsValid() {
			t.Fatalf("parsed kind %q should be valid", kind)
		}
	}
	if _, err := ParseRuleKind("X_FOR_X_DEAL"); err == nil {
		t.Fatal("expected unknown kind to fail")
	}
}

func TestNonPromoRuleKindsOrder(t *testing.T) {
	t.Parallel()
	kinds := NonPromoRuleKinds()
	want := []RuleKind{RuleKindBundleDeal, RuleKindBulkDiscount, RuleKindFreebie}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d kinds, got %d", len(want), len(kinds))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected fixed order %v, got %v", want, kinds)
		}
	}
}
