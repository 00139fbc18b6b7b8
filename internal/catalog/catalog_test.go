package catalog

import (
	"context"
	"math"
	"testing"

	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
)

func TestAddAndGet(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)

	product, err := cat.Add(ProductRecord{ProductCode: "ult_small", ProductName: "Unlimited 1GB", Price: 24.90})
	if err != nil {
		t.Fatalf("expected add to succeed, got %v", err)
	}
	if product.Code != "ult_small" || product.Name != "Unlimited 1GB" {
		t.Fatalf("unexpected product: %+v", product)
	}

	fetched, err := cat.Get("ult_small")
	if err != nil {
		t.Fatalf("expected get to succeed, got %v", err)
	}
	if !fetched.UnitPrice.Equal(product.UnitPrice) {
		t.Fatalf("expected matching price, got %s vs %s", fetched.UnitPrice, product.UnitPrice)
	}
}

func TestAddRejectsMalformedRecords(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)

	cases := []ProductRecord{
		{ProductCode: "", ProductName: "name", Price: 1},
		{ProductCode: "   ", ProductName: "name", Price: 1},
		{ProductCode: "code", ProductName: "", Price: 1},
		{ProductCode: "code", ProductName: "name", Price: -1},
		{ProductCode: "code", ProductName: "name", Price: math.NaN()},
		{ProductCode: "code", ProductName: "name", Price: math.Inf(1)},
	}
	for _, record := range cases {
		if _, err := cat.Add(record); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %+v, got %v", record, err)
		}
	}
}

func TestAddRejectsDuplicateCode(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)
	if _, err := cat.Add(ProductRecord{ProductCode: "1gb", ProductName: "1 GB Data-pack", Price: 9.90}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := cat.Add(ProductRecord{ProductCode: "1gb", ProductName: "other", Price: 1}); !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetMissReturnsNotFound(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)
	if _, err := cat.Get("nope"); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateCorrectsCodeAndName(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)
	if _, err := cat.Add(ProductRecord{ProductCode: "old", ProductName: "Old Name", Price: 5}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	updated, err := cat.Update("old", ProductPatch{ProductCode: "new", ProductName: "New Name"})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if updated.Code != "new" || updated.Name != "New Name" {
		t.Fatalf("unexpected product after update: %+v", updated)
	}
	if _, err := cat.Get("old"); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("old code should be gone, got %v", err)
	}
	if _, err := cat.Get("new"); err != nil {
		t.Fatalf("new code should resolve, got %v", err)
	}
}

func TestUpdateRejectsCodeCollision(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)
	if _, err := cat.Add(ProductRecord{ProductCode: "a", ProductName: "A", Price: 1}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := cat.Add(ProductRecord{ProductCode: "b", ProductName: "B", Price: 2}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := cat.Update("a", ProductPatch{ProductCode: "b"}); !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListByPriceAscending(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)
	seed := []ProductRecord{
		{ProductCode: "ult_small", ProductName: "Unlimited 1GB", Price: 24.90},
		{ProductCode: "ult_medium", ProductName: "Unlimited 2GB", Price: 29.90},
		{ProductCode: "ult_large", ProductName: "Unlimited 5GB", Price: 44.90},
		{ProductCode: "1gb", ProductName: "1 GB Data-pack", Price: 9.90},
	}
	for _, record := range seed {
		if _, err := cat.Add(record); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	got := cat.ListByPriceAscending()
	want := []string{"1gb", "ult_small", "ult_medium", "ult_large"}
	if len(got) != len(want) {
		t.Fatalf("expected %d codes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestBootstrapSkipsInvalidRecords(t *testing.T) {
	t.Parallel()
	cat := NewCatalog(nil)
	cat.Bootstrap(context.Background(), []ProductRecord{
		{ProductCode: "ok", ProductName: "OK", Price: 1},
		{ProductCode: "", ProductName: "broken", Price: 1},
		{ProductCode: "ok", ProductName: "duplicate", Price: 2},
	})

	if _, err := cat.Get("ok"); err != nil {
		t.Fatalf("valid record should load, got %v", err)
	}
	if got := cat.ListByPriceAscending(); len(got) != 1 {
		t.Fatalf("expected one product, got %v", got)
	}
}
