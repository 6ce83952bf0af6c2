package service

import (
	"context"
	"testing"
	"wings_cafe/internal/common"
	"wings_cafe/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ---- fake product repository ----

type fakeProductRepo struct {
	nextID   int64
	products map[int64]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*model.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	r.nextID++
	p.ID = r.nextID
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return common.ErrNotFound
	}
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	found := *p
	return &found, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]model.Product, error) {
	var products []model.Product
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) DecrementQuantity(_ context.Context, id int64, amount int) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.Quantity < amount {
		return nil, common.ErrNotFound
	}
	p.Quantity -= amount
	updated := *p
	return &updated, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// ---- helpers ----

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sconeRequest() ProductRequest {
	return ProductRequest{
		Name:        "Scone",
		Description: strPtr("Baked"),
		Category:    "Bakery",
		Price:       decPtr("3.50"),
		Quantity:    intPtr(10),
	}
}

// ---- tests ----

func TestCreateValidation(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	for name, req := range map[string]ProductRequest{
		"missing name":        {Description: strPtr("d"), Category: "c", Price: decPtr("1"), Quantity: intPtr(1)},
		"missing description": {Name: "n", Category: "c", Price: decPtr("1"), Quantity: intPtr(1)},
		"missing category":    {Name: "n", Description: strPtr("d"), Price: decPtr("1"), Quantity: intPtr(1)},
		"missing price":       {Name: "n", Description: strPtr("d"), Category: "c", Quantity: intPtr(1)},
		"missing quantity":    {Name: "n", Description: strPtr("d"), Category: "c", Price: decPtr("1")},
		"negative price":      {Name: "n", Description: strPtr("d"), Category: "c", Price: decPtr("-1"), Quantity: intPtr(1)},
		"negative quantity":   {Name: "n", Description: strPtr("d"), Category: "c", Price: decPtr("1"), Quantity: intPtr(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestCreateAssignsID(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	product, err := svc.Create(context.Background(), sconeRequest())
	require.NoError(t, err)
	require.Equal(t, int64(1), product.ID)
	require.Equal(t, "Scone", product.Name)
	require.Equal(t, 10, product.Quantity)
	require.True(t, product.Price.Equal(decimal.RequireFromString("3.50")))
}

func TestUpdate(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	created, err := svc.Create(context.Background(), sconeRequest())
	require.NoError(t, err)

	req := sconeRequest()
	req.Quantity = intPtr(25)
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, 25, updated.Quantity)

	_, err = svc.Update(context.Background(), 999, sconeRequest())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSellScenario(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewInventoryService(repo, nil)

	created, err := svc.Create(context.Background(), sconeRequest())
	require.NoError(t, err)
	require.Equal(t, 10, created.Quantity)

	sold, err := svc.Sell(context.Background(), created.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 7, sold.Quantity)
	require.Equal(t, "Scone", sold.Name)

	// Overselling is rejected and leaves the quantity untouched
	_, err = svc.Sell(context.Background(), created.ID, 20)
	require.ErrorIs(t, err, common.ErrOutOfStock)

	current, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 7, current.Quantity)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	for _, p := range products {
		require.NotEqual(t, created.ID, p.ID)
	}
}

func TestSellUnknownProduct(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	_, err := svc.Sell(context.Background(), 999, 1)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSellInvalidAmount(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	_, err := svc.Sell(context.Background(), 1, 0)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestSellExactStock(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	req := sconeRequest()
	req.Quantity = intPtr(3)
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	sold, err := svc.Sell(context.Background(), created.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 0, sold.Quantity)

	// Quantity 0 means every further sell is out of stock
	_, err = svc.Sell(context.Background(), created.ID, 1)
	require.ErrorIs(t, err, common.ErrOutOfStock)
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	err := svc.Delete(context.Background(), 999)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestListEmpty(t *testing.T) {
	svc := NewInventoryService(newFakeProductRepo(), nil)

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, products)
}
