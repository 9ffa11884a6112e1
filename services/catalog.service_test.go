package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store/memstore"
)

func TestCreateProductStrictValidation(t *testing.T) {
	catalog := NewCatalogService(memstore.New(), time.Second)
	ctx := context.Background()

	price, stock := 100000.0, 5
	valid := models.ProductInput{Name: "Sight Pin", Price: &price, Stock: &stock, Image: "https://img/pin.png"}

	cases := []struct {
		name   string
		mutate func(in *models.ProductInput)
	}{
		{"blank name", func(in *models.ProductInput) { in.Name = "   " }},
		{"missing price", func(in *models.ProductInput) { in.Price = nil }},
		{"negative price", func(in *models.ProductInput) { in.Price = ptr(-1.0) }},
		{"missing stock", func(in *models.ProductInput) { in.Stock = nil }},
		{"negative stock", func(in *models.ProductInput) { in.Stock = ptr(-2) }},
		{"stock over limit", func(in *models.ProductInput) { in.Stock = ptr(models.MaxStock + 1) }},
		{"blank image", func(in *models.ProductInput) { in.Image = " " }},
	}
	for _, tc := range cases {
		in := valid
		tc.mutate(&in)
		if _, err := catalog.CreateProduct(ctx, in); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", tc.name, err)
		}
	}

	in := valid
	in.Name = "  Sight Pin  "
	p, err := catalog.CreateProduct(ctx, in)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.ID == 0 || p.Name != "Sight Pin" || p.Stock != 5 {
		t.Fatalf("unexpected product %+v", p)
	}
	if _, err := catalog.CreateProduct(ctx, valid); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate: err = %v, want ErrAlreadyExists", err)
	}
}

func TestProductUpdateDelete(t *testing.T) {
	s := memstore.New()
	p := seedProduct(t, s, "plunger", 35000, 4)
	catalog := NewCatalogService(s, time.Second)
	ctx := context.Background()

	price, stock := 40000.0, 9
	updated, err := catalog.UpdateProduct(ctx, p.ID, models.ProductInput{Name: "plunger v2", Price: &price, Stock: &stock, Image: p.Image})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Name != "plunger v2" || updated.Stock != 9 || updated.Price.String() != "40000" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if _, err := catalog.UpdateProduct(ctx, 999, models.ProductInput{Name: "x", Price: &price, Stock: &stock, Image: "i"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update unknown: err = %v", err)
	}

	if err := catalog.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := catalog.GetProduct(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get deleted: err = %v", err)
	}
	if err := catalog.DeleteProduct(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete twice: err = %v", err)
	}
}
