package rules

import (
	"strings"

	"github.com/candelariomtz/simcart/pkg/enums"
	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
)

// Rule is one discount rule. The id is unique within a rule set and the
// kind is immutable after creation unless an update replaces it with
// another recognized kind.
type Rule struct {
	id   string
	kind enums.RuleKind
	meta Metadata
}

// Patch updates a rule in place. A nil field is a no-op; metadata is
// replaced wholesale when present.
type Patch struct {
	Kind     *enums.RuleKind
	Metadata *Metadata
}

// NewRule validates the metadata against the declared kind and builds the
// rule. Shape checking happens here, at the boundary, rather than at
// evaluation time.
func NewRule(id string, kind enums.RuleKind, meta Metadata) (*Rule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule id required")
	}
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unrecognized rule kind")
	}
	if err := meta.ValidateForKind(kind); err != nil {
		return nil, err
	}
	return &Rule{id: id, kind: kind, meta: meta}, nil
}

// ID returns the rule identifier.
func (r *Rule) ID() string {
	return r.id
}

// Kind returns the rule kind.
func (r *Rule) Kind() enums.RuleKind {
	return r.kind
}

// Metadata returns the rule payload.
func (r *Rule) Metadata() Metadata {
	return r.meta
}

// PromoCode returns the promo code for PROMO_CODE rules, empty otherwise.
func (r *Rule) PromoCode() string {
	if r.kind != enums.RuleKindPromoCode {
		return ""
	}
	return strings.TrimSpace(r.meta.PromoCode)
}

// Update applies the patch. An unrecognized kind leaves the current kind in
// place; the patched result is re-validated and the rule is left untouched
// when validation fails.
func (r *Rule) Update(patch Patch) error {
	kind := r.kind
	if patch.Kind != nil && patch.Kind.IsValid() {
		kind = *patch.Kind
	}
	meta := r.meta
	if patch.Metadata != nil {
		meta = *patch.Metadata
	}
	if err := meta.ValidateForKind(kind); err != nil {
		return err
	}
	r.kind = kind
	r.meta = meta
	return nil
}
