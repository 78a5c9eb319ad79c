package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/internal/testdb"
	"github.com/shashiranjanraj/stockroom/pkg/apperr"
	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/cache"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/event"
)

func ptr[T any](v T) *T { return &v }

func productInput(sku string, stock int) services.ProductModel {
	return services.ProductModel{
		Name:       ptr("Widget"),
		Category:   ptr("Parts"),
		Price:      ptr(9.5),
		Stock:      ptr(stock),
		SKU:        ptr(sku),
		SupplierID: ptr(1),
		Status:     ptr("active"),
	}
}

func supplierInput(name string) services.SupplierModel {
	return services.SupplierModel{
		Name:        ptr(name),
		ContactInfo: ptr("x"),
		Address:     ptr("y"),
		PhoneNumber: ptr("1"),
		Email:       ptr("a@b.com"),
	}
}

type fixture struct {
	store     *database.Store
	cache     *cache.Memory
	bus       *event.Bus
	events    []event.Event
	products  *services.ProductService
	suppliers *services.SupplierService
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{store: testdb.Open(t), cache: cache.NewMemory(), bus: event.NewBus()}
	f.bus.Listen(event.Wildcard, func(e event.Event) { f.events = append(f.events, e) })
	f.products = services.NewProductService(f.store, f.cache, time.Minute, f.bus)
	f.suppliers = services.NewSupplierService(f.store, f.cache, time.Minute, f.bus)
	return f
}

func (f *fixture) productCount(t *testing.T) int64 {
	var n int64
	require.NoError(t, f.store.DB(context.Background()).Model(&models.Product{}).Count(&n).Error)
	return n
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewManager("secret", time.Minute)
	svc := services.NewAuthService(testdb.Open(t), tokens)

	user, err := svc.Register(ctx, services.RegisterInput{Email: ptr("a@b.com"), Password: ptr("pw")})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "pw", user.HashedPassword)

	_, err = svc.Register(ctx, services.RegisterInput{Email: ptr("a@b.com"), Password: ptr("other")})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInternal))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.com", users[0].Email)

	tok, err := svc.Login(ctx, services.LoginInput{Username: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	subject, err := tokens.CurrentUser(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", subject)

	_, err = svc.Login(ctx, services.LoginInput{Username: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Login(ctx, services.LoginInput{Username: "nobody@b.com", Password: "pw"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUsersEmptyIsNotNil(t *testing.T) {
	svc := services.NewAuthService(testdb.Open(t), auth.NewManager("s", time.Minute))
	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.products.Create(ctx, productInput("SKU-1", 500))
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	require.NotNil(t, p.SupplierID)
	assert.Equal(t, uint(1), *p.SupplierID)
	other, err := f.products.Create(ctx, productInput("SKU-2", 3))
	require.NoError(t, err)

	updated, err := f.products.Update(ctx, p.ID, services.ProductUpdate{Stock: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Row.Stock)
	assert.Equal(t, "Widget", updated.Row.Name)
	require.Len(t, updated.Rows, 2)
	assert.Equal(t, 7, updated.Rows[0].Stock)
	assert.Equal(t, other.ID, updated.Rows[1].ID)

	stored, err := f.products.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Stock)
	assert.Equal(t, "SKU-1", stored.SKU)

	deleted, err := f.products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.Row.ID)
	require.Len(t, deleted.Rows, 1)
	assert.Equal(t, other.ID, deleted.Rows[0].ID)

	_, err = f.products.Find(ctx, p.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	names := make([]string, len(f.events))
	for i, e := range f.events {
		names[i] = e.Name
	}
	assert.Equal(t, []string{
		services.ProductCreated, services.ProductCreated, services.ProductUpdated, services.ProductDeleted,
	}, names)
}

func TestProductMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.products.Create(ctx, productInput("SKU-1", 5))
	require.NoError(t, err)

	_, err = f.products.Update(ctx, 99999, services.ProductUpdate{Name: ptr("x")})
	require.Error(t, err)
	assert.Equal(t, "Product not found", apperr.From(err).Message)

	_, err = f.products.Delete(ctx, 99999)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.Equal(t, int64(1), f.productCount(t))
}

func TestDuplicateSKURollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.products.Create(ctx, productInput("DUP", 5))
	require.NoError(t, err)
	_, err = f.products.Create(ctx, productInput("DUP", 6))
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeInternal))
	assert.Equal(t, int64(1), f.productCount(t))
	assert.Len(t, f.events, 1)
}

func TestListIsCachedUntilExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	empty, err := f.products.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.products.Create(ctx, productInput("SKU-1", 5))
	require.NoError(t, err)

	stale, err := f.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale, "writes do not invalidate the list cache")

	require.NoError(t, f.cache.Delete(ctx, "products"))
	fresh, err := f.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "SKU-1", fresh[0].SKU)
}

func TestSupplierDeleteDetachesProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.suppliers.Create(ctx, supplierInput("Acme"))
	require.NoError(t, err)
	sup := created.Row
	in := productInput("SKU-1", 5)
	in.SupplierID = ptr(int(sup.ID))
	p, err := f.products.Create(ctx, in)
	require.NoError(t, err)

	updated, err := f.suppliers.Update(ctx, sup.ID, services.SupplierUpdate{Address: ptr("z")})
	require.NoError(t, err)
	assert.Equal(t, "z", updated.Row.Address)
	assert.Equal(t, "Acme", updated.Row.Name)
	require.Len(t, updated.Rows, 1)
	assert.Equal(t, "z", updated.Rows[0].Address)

	deleted, err := f.suppliers.Delete(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, "z", deleted.Row.Address)
	assert.NotNil(t, deleted.Rows)
	assert.Empty(t, deleted.Rows)

	after, err := f.products.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, after.SupplierID)

	_, err = f.suppliers.Find(ctx, sup.ID)
	assert.Equal(t, "Supplier not found", apperr.From(err).Message)
	_, err = f.suppliers.Delete(ctx, sup.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestSupplierList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.suppliers.Create(ctx, supplierInput("Acme"))
	require.NoError(t, err)
	second, err := f.suppliers.Create(ctx, supplierInput("Globex"))
	require.NoError(t, err)
	require.Len(t, second.Rows, 2, "create returns the whole table")
	assert.Equal(t, "Acme", second.Rows[0].Name)

	list, err := f.suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "Globex", list[1].Name)
}
