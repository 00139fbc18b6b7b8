// Package cart holds the mutable shopping cart aggregate. The cart owns
// its quantities and activated promo codes and delegates every price
// computation to the pricing engine.
package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/candelariomtz/simcart/internal/catalog"
	"github.com/candelariomtz/simcart/internal/pricing"
	"github.com/candelariomtz/simcart/internal/rules"
	"github.com/candelariomtz/simcart/pkg/enums"
	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
	"github.com/candelariomtz/simcart/pkg/logger"
)

// RuleRecord is the ingestion shape for a discount rule.
type RuleRecord struct {
	ID       string `validate:"required"`
	RuleCode string `validate:"required"`
	Metadata rules.Metadata
}

// Cart is a single shopper's cart. Not safe for concurrent use; the host
// serializes access per instance.
type Cart struct {
	catalog  *catalog.Catalog
	rules    *rules.Set
	engine   *pricing.Engine
	log      *logger.Logger
	validate *validator.Validate

	quantities pricing.Snapshot
	activated  []string
}

// NewCart wires a cart over the provided catalog and rule set.
func NewCart(cat *catalog.Catalog, set *rules.Set, log *logger.Logger) (*Cart, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if set == nil {
		return nil, fmt.Errorf("rule set required")
	}
	engine, err := pricing.NewEngine(cat, set)
	if err != nil {
		return nil, err
	}
	return &Cart{
		catalog:    cat,
		rules:      set,
		engine:     engine,
		log:        log,
		validate:   validator.New(),
		quantities: pricing.Snapshot{},
	}, nil
}

// AddItem increments the quantity of a known product by one. Unknown codes
// are a silent no-op.
func (c *Cart) AddItem(ctx context.Context, code string) {
	code = strings.TrimSpace(code)
	if _, err := c.catalog.Get(code); err != nil {
		if c.log != nil {
			c.log.Debug(c.log.WithProductCode(ctx, code), "ignoring unknown product")
		}
		return
	}
	c.quantities[code]++
}

// ActivatePromoCode marks a promo code as active for the current cart.
// Unknown or already-active codes are a no-op. Multiple codes may be
// activated; resolution picks a single winner.
func (c *Cart) ActivatePromoCode(ctx context.Context, code string) {
	code = strings.TrimSpace(code)
	if c.rules.ByPromoCode(code) == nil {
		if c.log != nil {
			c.log.Debug(ctx, "ignoring unknown promo code")
		}
		return
	}
	for _, active := range c.activated {
		if active == code {
			return
		}
	}
	c.activated = append(c.activated, code)
}

// AddRule validates the record and registers the rule with the rule set.
func (c *Cart) AddRule(record RuleRecord) (*rules.Rule, error) {
	if err := c.validate.Struct(record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule record")
	}
	kind, err := enums.ParseRuleKind(strings.TrimSpace(record.RuleCode))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule record")
	}
	rule, err := rules.NewRule(record.ID, kind, record.Metadata)
	if err != nil {
		return nil, err
	}
	if err := c.rules.Add(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateRule patches an existing rule.
func (c *Cart) UpdateRule(id string, patch rules.Patch) (*rules.Rule, error) {
	return c.rules.Update(id, patch)
}

// RemoveRule deletes a rule and returns it, or nil for an unknown id.
func (c *Cart) RemoveRule(id string) *rules.Rule {
	return c.rules.Remove(id)
}

// PriceQuote resolves the current snapshot. Safe to call repeatedly; the
// cart is not mutated.
func (c *Cart) PriceQuote() (*pricing.Quote, error) {
	activated := make([]string, len(c.activated))
	copy(activated, c.activated)
	return c.engine.Resolve(c.quantities.Clone(), activated)
}

// Checkout finalizes the cart: it resolves the quote, then clears the
// quantities and activated promo codes. The cart is left untouched when
// resolution fails.
func (c *Cart) Checkout() (*pricing.Quote, error) {
	quote, err := c.PriceQuote()
	if err != nil {
		return nil, err
	}
	c.quantities = pricing.Snapshot{}
	c.activated = nil
	return quote, nil
}
