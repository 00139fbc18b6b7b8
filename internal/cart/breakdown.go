package cart

import (
	"fmt"
	"strings"
)

// Breakdown renders the quoted line items as "N x Product Name" lines
// ordered by ascending unit price, skipping zero-quantity lines. This is a
// plain formatting pass over the engine output.
func (c *Cart) Breakdown() (string, error) {
	quote, err := c.PriceQuote()
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	for _, code := range c.catalog.ListByPriceAscending() {
		quantity := quote.LineItems[code]
		if quantity == 0 {
			continue
		}
		product, err := c.catalog.Get(code)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&builder, "%d x %s\n", quantity, product.Name)
	}
	return builder.String(), nil
}
