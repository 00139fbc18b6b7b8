// Package rules models discount rule records and the rule set bookkeeping
// the pricing engine reads.
package rules

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/candelariomtz/simcart/pkg/enums"
	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
)

// QuantityRequirement is a minimum quantity of a product that must be in
// the cart for a rule to trigger. Duplicate entries for the same product
// accumulate when applicability is checked.
type QuantityRequirement struct {
	ProductCode string
	MinQuantity int
}

// QuantityIncentive grants units of a product: a price deduction for bundle
// deals, free units for freebies.
type QuantityIncentive struct {
	ProductCode string
	Quantity    int
}

// PriceOverrideIncentive replaces the unit price for the entire remaining
// quantity of a product.
type PriceOverrideIncentive struct {
	ProductCode string
	NewPrice    decimal.Decimal
}

// PromoDiscount is a percentage off the listed products, expressed as a
// proportion of 1.
type PromoDiscount struct {
	ProductCodes []string
	Percentage   decimal.Decimal
}

// Metadata carries the kind-specific payload of a rule. Only the fields
// matching the rule's kind may be populated; ValidateForKind enforces the
// shape at the rule-set boundary.
type Metadata struct {
	Requirements   []QuantityRequirement
	Incentives     []QuantityIncentive
	PriceOverrides []PriceOverrideIncentive
	PromoCode      string
	Discounts      []PromoDiscount
}

// ValidateForKind checks that the metadata matches the declared rule kind.
// All violations are reported together.
func (m Metadata) ValidateForKind(kind enums.RuleKind) error {
	var err error
	switch kind {
	case enums.RuleKindBundleDeal, enums.RuleKindFreebie:
		err = multierr.Append(err, m.validateRequirements())
		if len(m.Incentives) == 0 {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "at least one incentive required"))
		}
		for _, incentive := range m.Incentives {
			if strings.TrimSpace(incentive.ProductCode) == "" {
				err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "incentive product code required"))
			}
			if incentive.Quantity <= 0 {
				err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "incentive quantity must be positive"))
			}
		}
	case enums.RuleKindBulkDiscount:
		err = multierr.Append(err, m.validateRequirements())
		if len(m.PriceOverrides) == 0 {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "at least one price override required"))
		}
		for _, override := range m.PriceOverrides {
			if strings.TrimSpace(override.ProductCode) == "" {
				err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "price override product code required"))
			}
			if override.NewPrice.IsNegative() {
				err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "override price must not be negative"))
			}
		}
	case enums.RuleKindPromoCode:
		if strings.TrimSpace(m.PromoCode) == "" {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "promo code required"))
		}
		if len(m.Discounts) == 0 {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "at least one discount entry required"))
		}
		for _, discount := range m.Discounts {
			if len(discount.ProductCodes) == 0 {
				err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "discount entry needs product codes"))
			}
			if discount.Percentage.IsNegative() || discount.Percentage.GreaterThan(decimal.NewFromInt(1)) {
				err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be within [0,1]"))
			}
		}
	default:
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "unrecognized rule kind"))
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule metadata")
	}
	return nil
}

func (m Metadata) validateRequirements() error {
	var err error
	if len(m.Requirements) == 0 {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "at least one requirement required"))
	}
	for _, requirement := range m.Requirements {
		if strings.TrimSpace(requirement.ProductCode) == "" {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "requirement product code required"))
		}
		if requirement.MinQuantity <= 0 {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "requirement quantity must be positive"))
		}
	}
	return err
}
