package rules

import (
	"strings"

	"github.com/candelariomtz/simcart/pkg/enums"
	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
)

// Set is an ordered collection of rules with id and promo-code uniqueness
// bookkeeping. Not safe for concurrent use.
type Set struct {
	rules []*Rule
}

// NewSet builds an empty rule set.
func NewSet() *Set {
	return &Set{}
}

// Add appends the rule, rejecting duplicate ids and duplicate promo codes
// across PROMO_CODE rules.
func (s *Set) Add(rule *Rule) error {
	if rule == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule required")
	}
	if s.Get(rule.ID()) != nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "rule id already registered")
	}
	if code := rule.PromoCode(); code != "" && s.ByPromoCode(code) != nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "promo code already registered")
	}
	s.rules = append(s.rules, rule)
	return nil
}

// Get returns the rule with the given id, or nil.
func (s *Set) Get(id string) *Rule {
	for _, rule := range s.rules {
		if rule.ID() == id {
			return rule
		}
	}
	return nil
}

// Update patches the rule with the given id. A patch that would duplicate
// another rule's promo code is rejected.
func (s *Set) Update(id string, patch Patch) (*Rule, error) {
	rule := s.Get(id)
	if rule == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rule not found")
	}
	if patch.Metadata != nil {
		if code := strings.TrimSpace(patch.Metadata.PromoCode); code != "" {
			if existing := s.ByPromoCode(code); existing != nil && existing.ID() != id {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "promo code already registered")
			}
		}
	}
	if err := rule.Update(patch); err != nil {
		return nil, err
	}
	return rule, nil
}

// Remove deletes the rule with the given id and returns it, or nil when
// the id is unknown.
func (s *Set) Remove(id string) *Rule {
	for i, rule := range s.rules {
		if rule.ID() == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return rule
		}
	}
	return nil
}

// ByKind returns the rules of the given kind in insertion order.
func (s *Set) ByKind(kind enums.RuleKind) []*Rule {
	var matched []*Rule
	for _, rule := range s.rules {
		if rule.Kind() == kind {
			matched = append(matched, rule)
		}
	}
	return matched
}

// ByPromoCode returns the PROMO_CODE rule carrying the given code, or nil.
func (s *Set) ByPromoCode(code string) *Rule {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	for _, rule := range s.rules {
		if rule.Kind() == enums.RuleKindPromoCode && rule.PromoCode() == code {
			return rule
		}
	}
	return nil
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}
