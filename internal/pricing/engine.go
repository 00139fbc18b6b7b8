// Package pricing implements the rule-matching and price-resolution engine.
// The engine owns no state: every Resolve call is a pure function of the
// cart snapshot, the rule set and the catalog.
package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/candelariomtz/simcart/internal/catalog"
	"github.com/candelariomtz/simcart/internal/rules"
	"github.com/candelariomtz/simcart/pkg/enums"
	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
	"github.com/candelariomtz/simcart/pkg/money"
)

// Snapshot maps product codes to purchased quantities.
type Snapshot map[string]int

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	cloned := make(Snapshot, len(s))
	for code, quantity := range s {
		cloned[code] = quantity
	}
	return cloned
}

// Quote is the engine output: the rounded total and the final line items,
// original quantities plus any free units granted by freebie rules.
type Quote struct {
	Total     decimal.Decimal
	LineItems map[string]int
}

// Engine resolves cart snapshots against a rule set and a catalog. Both
// collaborators are read-only to the engine.
type Engine struct {
	catalog *catalog.Catalog
	rules   *rules.Set
}

// NewEngine builds an engine over the provided catalog and rule set.
func NewEngine(cat *catalog.Catalog, set *rules.Set) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if set == nil {
		return nil, fmt.Errorf("rule set required")
	}
	return &Engine{catalog: cat, rules: set}, nil
}

// Resolve computes the checkout total and final line items.
//
// Quantity-based rule kinds are applied in the fixed order bundle deal,
// bulk discount, freebie; within a kind the applicable rule with the
// highest requirement weight wins, ties broken by the lowest incentive
// weight, and application repeats until no rule of the kind matches the
// remaining quantities. Promo codes do not stack: the activated code with
// the largest discount over the original cart quantities is subtracted,
// but only while the running total is still positive. The discount itself
// is not clamped, so the total may go negative when the chosen promo
// discount exceeds what is left.
//
// A product code unknown to the catalog, referenced by the cart or by an
// evaluated rule, aborts resolution with an amount-unresolved error; no
// partial result is returned.
func (e *Engine) Resolve(snapshot Snapshot, activatedPromoCodes []string) (*Quote, error) {
	total := money.Zero
	for code, quantity := range snapshot {
		product, err := e.catalog.Get(code)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeAmountUnresolved, err, "cart references unknown product "+code)
		}
		total = total.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	}

	freeProducts := map[string]int{}
	for _, kind := range enums.NonPromoRuleKinds() {
		deduction, err := e.applyKind(kind, snapshot.Clone(), freeProducts)
		if err != nil {
			return nil, err
		}
		total = total.Sub(deduction)
	}

	promoDiscount, err := e.bestPromoDiscount(snapshot, activatedPromoCodes)
	if err != nil {
		return nil, err
	}
	if promoDiscount != nil && total.IsPositive() {
		total = total.Sub(*promoDiscount)
	}

	lineItems := snapshot.Clone()
	for code, quantity := range freeProducts {
		lineItems[code] += quantity
	}

	return &Quote{
		Total:     money.RoundCents(total),
		LineItems: lineItems,
	}, nil
}

// applyKind repeatedly applies the best applicable rule of one kind against
// the working remaining-quantity map, accumulating granted freebies, and
// returns the kind's accumulated price deduction.
func (e *Engine) applyKind(kind enums.RuleKind, remaining Snapshot, freeProducts map[string]int) (decimal.Decimal, error) {
	deduction := money.Zero
	for {
		candidates, err := e.applicableRules(kind, remaining)
		if err != nil {
			return money.Zero, err
		}
		if len(candidates) == 0 {
			return deduction, nil
		}
		applied, changed, err := e.applyRule(candidates[0], remaining, freeProducts)
		if err != nil {
			return money.Zero, err
		}
		deduction = deduction.Add(applied)
		if !changed {
			// A bulk override whose products are already depleted would
			// match forever without shrinking anything.
			return deduction, nil
		}
	}
}

type weightedRule struct {
	rule              *rules.Rule
	requirementWeight decimal.Decimal
	incentiveWeight   decimal.Decimal
}

// applicableRules filters the kind's rules against the remaining quantities
// and sorts them by descending requirement weight, ties ascending by
// incentive weight. The bulk-discount incentive weight is computed against
// the remaining quantities, not the original cart.
func (e *Engine) applicableRules(kind enums.RuleKind, remaining Snapshot) ([]*rules.Rule, error) {
	var weighted []weightedRule
	for _, rule := range e.rules.ByKind(kind) {
		applicable, err := meetsRequirements(rule, remaining)
		if err != nil {
			return nil, err
		}
		if !applicable {
			continue
		}
		requirementWeight, err := e.requirementWeight(rule)
		if err != nil {
			return nil, err
		}
		incentiveWeight, err := e.incentiveWeight(rule, remaining)
		if err != nil {
			return nil, err
		}
		weighted = append(weighted, weightedRule{
			rule:              rule,
			requirementWeight: requirementWeight,
			incentiveWeight:   incentiveWeight,
		})
	}
	sort.SliceStable(weighted, func(i, j int) bool {
		if !weighted[i].requirementWeight.Equal(weighted[j].requirementWeight) {
			return weighted[i].requirementWeight.GreaterThan(weighted[j].requirementWeight)
		}
		return weighted[i].incentiveWeight.LessThan(weighted[j].incentiveWeight)
	})
	ordered := make([]*rules.Rule, 0, len(weighted))
	for _, entry := range weighted {
		ordered = append(ordered, entry.rule)
	}
	return ordered, nil
}

// meetsRequirements reports whether every required product has enough
// remaining quantity, accumulating duplicate requirement entries per
// product.
func meetsRequirements(rule *rules.Rule, remaining Snapshot) (bool, error) {
	meta := rule.Metadata()
	if len(meta.Requirements) == 0 {
		return false, pkgerrors.New(pkgerrors.CodeAmountUnresolved, "rule "+rule.ID()+" has no requirements")
	}
	required := map[string]int{}
	for _, requirement := range meta.Requirements {
		required[requirement.ProductCode] += requirement.MinQuantity
	}
	for code, minimum := range required {
		if remaining[code] < minimum {
			return false, nil
		}
	}
	return true, nil
}

// requirementWeight is the monetary value of the rule's trigger basket.
func (e *Engine) requirementWeight(rule *rules.Rule) (decimal.Decimal, error) {
	weight := money.Zero
	for _, requirement := range rule.Metadata().Requirements {
		product, err := e.catalog.Get(requirement.ProductCode)
		if err != nil {
			return money.Zero, pkgerrors.Wrap(pkgerrors.CodeAmountUnresolved, err,
				"rule "+rule.ID()+" requires unknown product "+requirement.ProductCode)
		}
		weight = weight.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(requirement.MinQuantity))))
	}
	return weight, nil
}

// incentiveWeight is the monetary value of the rule's granted benefit. For
// bulk discounts the first override entry per product wins and the weight
// is the override price over the remaining quantity.
func (e *Engine) incentiveWeight(rule *rules.Rule, remaining Snapshot) (decimal.Decimal, error) {
	meta := rule.Metadata()
	weight := money.Zero
	if rule.Kind() == enums.RuleKindBulkDiscount {
		seen := map[string]struct{}{}
		for _, override := range meta.PriceOverrides {
			if _, dup := seen[override.ProductCode]; dup {
				continue
			}
			seen[override.ProductCode] = struct{}{}
			weight = weight.Add(override.NewPrice.Mul(decimal.NewFromInt(int64(remaining[override.ProductCode]))))
		}
		return weight, nil
	}
	for _, incentive := range meta.Incentives {
		product, err := e.catalog.Get(incentive.ProductCode)
		if err != nil {
			return money.Zero, pkgerrors.Wrap(pkgerrors.CodeAmountUnresolved, err,
				"rule "+rule.ID()+" grants unknown product "+incentive.ProductCode)
		}
		weight = weight.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(incentive.Quantity))))
	}
	return weight, nil
}

// applyRule mutates the remaining quantities for one application of the
// rule and returns the resulting price deduction. The changed flag reports
// whether any remaining quantity actually shrank.
func (e *Engine) applyRule(rule *rules.Rule, remaining Snapshot, freeProducts map[string]int) (decimal.Decimal, bool, error) {
	meta := rule.Metadata()
	switch rule.Kind() {
	case enums.RuleKindBundleDeal:
		for _, requirement := range meta.Requirements {
			remaining[requirement.ProductCode] -= requirement.MinQuantity
		}
		deduction, err := e.incentiveWeight(rule, remaining)
		if err != nil {
			return money.Zero, false, err
		}
		return deduction, true, nil

	case enums.RuleKindBulkDiscount:
		deduction := money.Zero
		changed := false
		seen := map[string]struct{}{}
		for _, override := range meta.PriceOverrides {
			if _, dup := seen[override.ProductCode]; dup {
				continue
			}
			seen[override.ProductCode] = struct{}{}
			product, err := e.catalog.Get(override.ProductCode)
			if err != nil {
				return money.Zero, false, pkgerrors.Wrap(pkgerrors.CodeAmountUnresolved, err,
					"rule "+rule.ID()+" overrides unknown product "+override.ProductCode)
			}
			quantity := remaining[override.ProductCode]
			if quantity > 0 {
				changed = true
			}
			deduction = deduction.Add(
				product.UnitPrice.Sub(override.NewPrice).Mul(decimal.NewFromInt(int64(quantity))))
			remaining[override.ProductCode] = 0
		}
		return deduction, changed, nil

	case enums.RuleKindFreebie:
		for _, requirement := range meta.Requirements {
			remaining[requirement.ProductCode] -= requirement.MinQuantity
		}
		for _, incentive := range meta.Incentives {
			freeProducts[incentive.ProductCode] += incentive.Quantity
		}
		return money.Zero, true, nil
	}
	return money.Zero, false, pkgerrors.New(pkgerrors.CodeAmountUnresolved, "rule "+rule.ID()+" has unsupported kind")
}

// bestPromoDiscount evaluates every activated promo rule against the
// original cart quantities and returns the largest discount, first seen
// winning exact ties. Activated codes that no longer resolve to a rule are
// ignored.
func (e *Engine) bestPromoDiscount(snapshot Snapshot, activatedPromoCodes []string) (*decimal.Decimal, error) {
	var chosen *decimal.Decimal
	for _, code := range activatedPromoCodes {
		rule := e.rules.ByPromoCode(code)
		if rule == nil {
			continue
		}
		meta := rule.Metadata()
		if len(meta.Discounts) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeAmountUnresolved, "promo rule "+rule.ID()+" has no discounts")
		}
		discount := money.Zero
		for _, entry := range meta.Discounts {
			for _, productCode := range entry.ProductCodes {
				quantity := snapshot[productCode]
				if quantity <= 0 {
					continue
				}
				product, err := e.catalog.Get(productCode)
				if err != nil {
					return nil, pkgerrors.Wrap(pkgerrors.CodeAmountUnresolved, err,
						"promo rule "+rule.ID()+" discounts unknown product "+productCode)
				}
				discount = discount.Add(
					entry.Percentage.Mul(product.UnitPrice).Mul(decimal.NewFromInt(int64(quantity))))
			}
		}
		if chosen == nil || discount.GreaterThan(*chosen) {
			value := discount
			chosen = &value
		}
	}
	return chosen, nil
}
