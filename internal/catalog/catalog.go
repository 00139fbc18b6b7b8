// Package catalog owns the product records the pricing engine reads.
// Products are created at bootstrap, corrected via explicit updates and
// never deleted.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
	"github.com/candelariomtz/simcart/pkg/logger"
	"github.com/candelariomtz/simcart/pkg/money"
)

// Product is a priced catalog entry. The unit price is immutable after
// creation; code and name may be corrected through Update.
type Product struct {
	Code      string
	Name      string
	UnitPrice decimal.Decimal
}

// ProductRecord is the bootstrap/ingestion shape for a product.
type ProductRecord struct {
	ProductCode string  `validate:"required"`
	ProductName string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
}

// ProductPatch corrects a product post-creation. Empty fields are ignored.
type ProductPatch struct {
	ProductCode string
	ProductName string
}

// Catalog maps product codes to priced products. It is not safe for
// concurrent use; the embedding host serializes access.
type Catalog struct {
	products []*Product
	byCode   map[string]*Product
	validate *validator.Validate
	log      *logger.Logger
}

// NewCatalog builds an empty catalog.
func NewCatalog(log *logger.Logger) *Catalog {
	return &Catalog{
		byCode:   map[string]*Product{},
		validate: validator.New(),
		log:      log,
	}
}

// Bootstrap loads an ordered list of product records, skipping records that
// fail validation or collide with an existing code.
func (c *Catalog) Bootstrap(ctx context.Context, records []ProductRecord) {
	for _, record := range records {
		if _, err := c.Add(record); err != nil {
			if c.log != nil {
				c.log.Warn(c.log.WithProductCode(ctx, record.ProductCode), "skipping invalid product record")
			}
		}
	}
}

// Add validates and stores a new product. Malformed records are rejected
// with a validation error; duplicate codes with a conflict.
func (c *Catalog) Add(record ProductRecord) (*Product, error) {
	record.ProductCode = strings.TrimSpace(record.ProductCode)
	record.ProductName = strings.TrimSpace(record.ProductName)
	if err := c.validate.Struct(record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product record")
	}
	price, err := money.FromPrice(record.Price)
	if err != nil {
		return nil, err
	}
	if _, exists := c.byCode[record.ProductCode]; exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already registered")
	}

	product := &Product{
		Code:      record.ProductCode,
		Name:      record.ProductName,
		UnitPrice: price,
	}
	c.products = append(c.products, product)
	c.byCode[product.Code] = product

	copied := *product
	return &copied, nil
}

// Get returns a copy of the product with the given code.
func (c *Catalog) Get(code string) (*Product, error) {
	product, ok := c.byCode[code]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	copied := *product
	return &copied, nil
}

// Update corrects a product's code and/or name. Empty patch fields are
// ignored; a code change must not collide with another product.
func (c *Catalog) Update(code string, patch ProductPatch) (*Product, error) {
	product, ok := c.byCode[code]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	newCode := strings.TrimSpace(patch.ProductCode)
	if newCode != "" && newCode != product.Code {
		if _, exists := c.byCode[newCode]; exists {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already registered")
		}
		delete(c.byCode, product.Code)
		product.Code = newCode
		c.byCode[newCode] = product
	}
	if name := strings.TrimSpace(patch.ProductName); name != "" {
		product.Name = name
	}
	copied := *product
	return &copied, nil
}

// ListByPriceAscending returns product codes ordered by unit price, cheapest
// first. Equal prices keep insertion order.
func (c *Catalog) ListByPriceAscending() []string {
	ordered := make([]*Product, len(c.products))
	copy(ordered, c.products)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].UnitPrice.LessThan(ordered[j].UnitPrice)
	})
	codes := make([]string, 0, len(ordered))
	for _, product := range ordered {
		codes = append(codes, product.Code)
	}
	return codes
}
