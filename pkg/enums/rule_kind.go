package enums

import "fmt"

// RuleKind identifies the discount strategy a pricing rule implements.
// The wire names match the rule records the host feeds in.
type RuleKind string

const (
	RuleKindBundleDeal   RuleKind = "N_FOR_N_DEAL"
	RuleKindBulkDiscount RuleKind = "BULK_DISCOUNT"
	RuleKindFreebie      RuleKind = "FREEBIE"
	RuleKindPromoCode    RuleKind = "PROMO_CODE"
)

var validRuleKinds = []RuleKind{
	RuleKindBundleDeal,
	RuleKindBulkDiscount,
	RuleKindFreebie,
	RuleKindPromoCode,
}

// NonPromoRuleKinds returns the fixed order in which quantity-based rule
// kinds are applied during resolution.
func NonPromoRuleKinds() []RuleKind {
	return []RuleKind{RuleKindBundleDeal, RuleKindBulkDiscount, RuleKindFreebie}
}

// String implements fmt.Stringer.
func (r RuleKind) String() string {
	return string(r)
}

// IsValid reports whether the value is known.
func (r RuleKind) IsValid() bool {
	for _, candidate := range validRuleKinds {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRuleKind converts raw input into a RuleKind.
func ParseRuleKind(value string) (RuleKind, error) {
	for _, candidate := range validRuleKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rule kind %q", value)
}
