package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcraft/printcraft-api/internal/model"
)

func TestUserRepo_CreateAndGetByEmail(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "cart_items", "carts", "project_versions", "projects", "users")

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Email: "test@example.com", Password: "hashed",
		FirstName: "John", LastName: "Doe", Role: model.RoleUser,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
}

func TestProductRepo_CRUD(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "cart_items", "carts", "project_versions", "projects", "products")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	product := &model.Product{
		Name: "Classic Tee", Description: "Desc", Category: "tshirt",
		Price: decimal.NewFromFloat(15.99), Sizes: []string{"S", "M", "L"}, Stock: 100, Active: true,
	}
	require.NoError(t, repo.Create(ctx, product))
	assert.NotEqual(t, uuid.Nil, product.ID)

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", found.Name)
	assert.True(t, product.Price.Equal(found.Price))

	product.Name = "Updated Tee"
	require.NoError(t, repo.Update(ctx, product))

	found, _ = repo.GetByID(ctx, product.ID)
	assert.Equal(t, "Updated Tee", found.Name)

	products, total, err := repo.List(ctx, 10, 0, "updated", "tshirt", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)

	require.NoError(t, repo.Delete(ctx, product.ID))
	found, _ = repo.GetByID(ctx, product.ID)
	assert.Nil(t, found)
}

func TestCartRepo_SaveRoundTrip(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "cart_items", "carts", "products", "users")

	userRepo := NewUserRepository(testPool)
	productRepo := NewProductRepository(testPool)
	cartRepo := NewCartRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Email: "cart@example.com", Password: "h", FirstName: "C", LastName: "U", Role: model.RoleUser,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	product := &model.Product{
		Name: "P", Description: "D", Category: "mug",
		Price: decimal.NewFromFloat(15.99), Stock: 10, Active: true,
	}
	require.NoError(t, productRepo.Create(ctx, product))

	cart, err := cartRepo.GetOrCreateByUser(ctx, user.ID)
	require.NoError(t, err)

	cart.Items = append(cart.Items, model.CartItem{
		ProductID: product.ID, Quantity: 2, Size: "M",
		Customization: model.Customization{
			Kind: model.CustomizationText,
			Text: &model.TextOverlay{Text: "hello", X: 10, Y: 20},
		},
		UnitPrice:  product.Price,
		TotalPrice: decimal.NewFromFloat(31.98),
	})
	cart.Subtotal = decimal.NewFromFloat(31.98)
	require.NoError(t, cartRepo.Save(ctx, cart))

	reloaded, err := cartRepo.GetOrCreateByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 2, reloaded.Items[0].Quantity)
	require.NotNil(t, reloaded.Items[0].Customization.Text)
	assert.Equal(t, "hello", reloaded.Items[0].Customization.Text.Text)
}

func TestCartRepo_LineOrderStableAcrossSaves(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "cart_items", "carts", "products", "users")

	userRepo := NewUserRepository(testPool)
	productRepo := NewProductRepository(testPool)
	cartRepo := NewCartRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Email: "order@example.com", Password: "h", FirstName: "O", LastName: "U", Role: model.RoleUser,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	sizes := []string{"S", "M", "L"}
	var productID uuid.UUID
	{
		product := &model.Product{
			Name: "P", Description: "D", Category: "tshirt",
			Price: decimal.NewFromFloat(9.99), Stock: 10, Active: true,
		}
		require.NoError(t, productRepo.Create(ctx, product))
		productID = product.ID
	}

	cart, err := cartRepo.GetOrCreateByUser(ctx, user.ID)
	require.NoError(t, err)
	for _, size := range sizes {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: productID, Quantity: 1, Size: size,
			UnitPrice: decimal.NewFromFloat(9.99), TotalPrice: decimal.NewFromFloat(9.99),
		})
	}
	require.NoError(t, cartRepo.Save(ctx, cart))

	// Every reinsert inside a transaction shares one NOW(); only the
	// position column keeps the read order deterministic.
	for i := 0; i < 3; i++ {
		cart, err = cartRepo.GetOrCreateByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, len(sizes))
		for j, size := range sizes {
			assert.Equal(t, size, cart.Items[j].Size)
		}
		require.NoError(t, cartRepo.Save(ctx, cart))
	}
}

func TestCartRepo_SaveVersionConflict(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "cart_items", "carts", "users")

	userRepo := NewUserRepository(testPool)
	cartRepo := NewCartRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Email: "race@example.com", Password: "h", FirstName: "R", LastName: "U", Role: model.RoleUser,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	first, err := cartRepo.GetOrCreateByUser(ctx, user.ID)
	require.NoError(t, err)
	second, err := cartRepo.GetOrCreateByUser(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, cartRepo.Save(ctx, first))

	// the second copy still carries the old lock_version
	err = cartRepo.Save(ctx, second)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestProjectRepo_VersionsAndMetadata(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "project_versions", "projects", "products", "users")

	userRepo := NewUserRepository(testPool)
	productRepo := NewProductRepository(testPool)
	projectRepo := NewProjectRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Email: "proj@example.com", Password: "h", FirstName: "P", LastName: "U", Role: model.RoleUser,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	product := &model.Product{
		Name: "Tee", Description: "D", Category: "tshirt",
		Price: decimal.NewFromFloat(15.99), Stock: 10, Active: true,
	}
	require.NoError(t, productRepo.Create(ctx, product))

	project := &model.Project{
		UserID: user.ID, Name: "Poster", ProductID: product.ID,
		Elements: []model.DesignElement{
			{ID: uuid.New(), Kind: model.ElementText, Style: map[string]string{"color": "red"}},
		},
	}
	require.NoError(t, projectRepo.Create(ctx, project))

	found, err := projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, found.Metadata.TotalElements)
	assert.True(t, found.Metadata.HasText)
	assert.Equal(t, model.ComplexitySimple, found.Metadata.Complexity)

	version := &model.ProjectVersion{
		ProjectID: project.ID, VersionNumber: 1,
		Elements: model.CloneElements(project.Elements), Note: "first",
	}
	require.NoError(t, projectRepo.CreateVersion(ctx, version))

	got, err := projectRepo.GetVersion(ctx, project.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Note)
	require.Len(t, got.Elements, 1)
	assert.Equal(t, "red", got.Elements[0].Style["color"])

	missing, err := projectRepo.GetVersion(ctx, project.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)

	found.CurrentVersion = 1
	require.NoError(t, projectRepo.Save(ctx, found))

	// a stale copy must not win
	project.Name = "Stale"
	err = projectRepo.Save(ctx, project)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestOrderRepo_CreateAndGet(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "products", "users")

	userRepo := NewUserRepository(testPool)
	productRepo := NewProductRepository(testPool)
	orderRepo := NewOrderRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Email: "order@example.com", Password: "h", FirstName: "O", LastName: "U", Role: model.RoleUser,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	product := &model.Product{
		Name: "Mug", Description: "D", Category: "mug",
		Price: decimal.NewFromFloat(12.50), Stock: 10, Active: true,
	}
	require.NoError(t, productRepo.Create(ctx, product))

	order := &model.Order{
		UserID: user.ID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: 2,
				UnitPrice: product.Price, TotalPrice: decimal.NewFromFloat(25)},
		},
		Subtotal: decimal.NewFromFloat(25), Total: decimal.NewFromFloat(32.99),
		ShippingAddress: model.Address{Line1: "1 Main St", City: "Springfield", Country: "US"},
	}
	require.NoError(t, orderRepo.Create(ctx, order))
	assert.NotEqual(t, uuid.Nil, order.ID)

	found, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, model.OrderStatusPending, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Mug", found.Items[0].ProductName)
}
