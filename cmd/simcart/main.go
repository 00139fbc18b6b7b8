package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/candelariomtz/simcart/internal/cart"
	"github.com/candelariomtz/simcart/internal/catalog"
	"github.com/candelariomtz/simcart/internal/rules"
	"github.com/candelariomtz/simcart/pkg/config"
	"github.com/candelariomtz/simcart/pkg/enums"
	"github.com/candelariomtz/simcart/pkg/logger"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "simcart"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "simcart",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	cat := catalog.NewCatalog(logg)
	cat.Bootstrap(ctx, seedProducts())

	set := rules.NewSet()
	if err := seedRules(cat, set, logg); err != nil {
		logg.Error(ctx, "failed to seed rules", err)
		os.Exit(1)
	}
	logg.Info(ctx, "catalog and rules seeded")

	scenarios := []struct {
		name  string
		items []string
		promo string
	}{
		{name: "three small bundles plus a large", items: []string{"ult_small", "ult_small", "ult_small", "ult_large"}},
		{name: "bulk large pack", items: []string{"ult_small", "ult_small", "ult_large", "ult_large", "ult_large", "ult_large"}},
		{name: "mediums with free data-packs", items: []string{"ult_small", "ult_medium", "ult_medium"}},
		{name: "promo code applied", items: []string{"ult_small", "1gb"}, promo: "I<3AMAYSIM"},
	}

	for _, scenario := range scenarios {
		if err := runScenario(ctx, cat, set, logg, scenario.name, scenario.items, scenario.promo); err != nil {
			logg.Error(ctx, "scenario failed", err)
			os.Exit(1)
		}
	}
}

func runScenario(ctx context.Context, cat *catalog.Catalog, set *rules.Set, logg *logger.Logger, name string, items []string, promo string) error {
	shoppingCart, err := cart.NewCart(cat, set, logg)
	if err != nil {
		return err
	}
	for _, item := range items {
		shoppingCart.AddItem(ctx, item)
	}
	if promo != "" {
		shoppingCart.ActivatePromoCode(ctx, promo)
	}
	breakdown, err := shoppingCart.Breakdown()
	if err != nil {
		return err
	}
	quote, err := shoppingCart.Checkout()
	if err != nil {
		return err
	}
	fmt.Printf("=== %s ===\n%stotal: $%s\n\n", name, breakdown, quote.Total.StringFixed(2))
	return nil
}

func seedProducts() []catalog.ProductRecord {
	return []catalog.ProductRecord{
		{ProductCode: "ult_small", ProductName: "Unlimited 1GB", Price: 24.90},
		{ProductCode: "ult_medium", ProductName: "Unlimited 2GB", Price: 29.90},
		{ProductCode: "ult_large", ProductName: "Unlimited 5GB", Price: 44.90},
		{ProductCode: "1gb", ProductName: "1 GB Data-pack", Price: 9.90},
	}
}

func seedRules(cat *catalog.Catalog, set *rules.Set, logg *logger.Logger) error {
	admin, err := cart.NewCart(cat, set, logg)
	if err != nil {
		return err
	}
	records := []cart.RuleRecord{
		{
			ID:       uuid.NewString(),
			RuleCode: enums.RuleKindBundleDeal.String(),
			Metadata: rules.Metadata{
				Requirements: []rules.QuantityRequirement{{ProductCode: "ult_small", MinQuantity: 3}},
				Incentives:   []rules.QuantityIncentive{{ProductCode: "ult_small", Quantity: 1}},
			},
		},
		{
			ID:       uuid.NewString(),
			RuleCode: enums.RuleKindBulkDiscount.String(),
			Metadata: rules.Metadata{
				Requirements:   []rules.QuantityRequirement{{ProductCode: "ult_large", MinQuantity: 4}},
				PriceOverrides: []rules.PriceOverrideIncentive{{ProductCode: "ult_large", NewPrice: decimal.RequireFromString("39.90")}},
			},
		},
		{
			ID:       uuid.NewString(),
			RuleCode: enums.RuleKindFreebie.String(),
			Metadata: rules.Metadata{
				Requirements: []rules.QuantityRequirement{{ProductCode: "ult_medium", MinQuantity: 1}},
				Incentives:   []rules.QuantityIncentive{{ProductCode: "1gb", Quantity: 1}},
			},
		},
		{
			ID:       uuid.NewString(),
			RuleCode: enums.RuleKindPromoCode.String(),
			Metadata: rules.Metadata{
				PromoCode: "I<3AMAYSIM",
				Discounts: []rules.PromoDiscount{{
					ProductCodes: []string{"ult_small", "ult_medium", "ult_large", "1gb"},
					Percentage:   decimal.RequireFromString("0.1"),
				}},
			},
		},
	}
	for _, record := range records {
		if _, err := admin.AddRule(record); err != nil {
			return err
		}
	}
	return nil
}
