package category

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/category"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"
)

type categoryFixture struct {
	service      *ApplicationService
	categoryRepo *memory.CategoryRepository
	catalogRepo  *memory.CatalogRepository
}

func newCategoryFixture() *categoryFixture {
	categoryRepo := memory.NewCategoryRepository()
	catalogRepo := memory.NewCatalogRepository()
	return &categoryFixture{
		service:      NewApplicationService(categoryRepo, catalogRepo),
		categoryRepo: categoryRepo,
		catalogRepo:  catalogRepo,
	}
}

func (f *categoryFixture) seedProduct(t *testing.T, name, categoryName string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, categoryName, *shared.NewMoney(45000, shared.DefaultCurrency))
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if err := f.catalogRepo.Save(context.Background(), p); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return p
}

func TestCreateCategory(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	resp, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{
		Name:        "coffee",
		Description: "hot and iced coffee drinks",
	})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if resp.ID == "" {
		t.Error("created category should have an ID")
	}

	// Admin gate
	_, err = f.service.CreateCategory(ctx, shared.NewIdentity("u-1"), CreateCategoryRequest{Name: "tea"})
	if !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("non-admin create: expected ErrForbidden, got %v", err)
	}
	_, err = f.service.CreateCategory(ctx, shared.Identity{}, CreateCategoryRequest{Name: "tea"})
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("anonymous create: expected ErrUnauthorized, got %v", err)
	}

	// Blank names are rejected
	_, err = f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "   "})
	if !errors.Is(err, category.ErrInvalidCategoryName) {
		t.Errorf("blank name: expected ErrInvalidCategoryName, got %v", err)
	}
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	if _, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "coffee"}); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	_, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "coffee"})
	if !errors.Is(err, category.ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestUpdateCategory(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	created, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "coffee"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	name := "specialty coffee"
	desc := "single origin beans"
	updated, err := f.service.UpdateCategory(ctx, admin, created.ID, UpdateCategoryRequest{
		Name:        &name,
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if updated.Name != name {
		t.Errorf("expected renamed category, got %s", updated.Name)
	}
	if updated.Description != desc {
		t.Errorf("expected new description, got %s", updated.Description)
	}

	// Renaming onto another category's name is a conflict
	if _, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "tea"}); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	taken := "tea"
	_, err = f.service.UpdateCategory(ctx, admin, created.ID, UpdateCategoryRequest{Name: &taken})
	if !errors.Is(err, category.ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}

	// Keeping the same name is not a conflict
	if _, err := f.service.UpdateCategory(ctx, admin, created.ID, UpdateCategoryRequest{Name: &name}); err != nil {
		t.Errorf("self-rename should succeed, got %v", err)
	}

	_, err = f.service.UpdateCategory(ctx, admin, "missing", UpdateCategoryRequest{Name: &name})
	if !errors.Is(err, category.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestRemoveCategoryRefusedWhileInUse(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	created, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "coffee"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	product := f.seedProduct(t, "Latte", "coffee")

	err = f.service.RemoveCategory(ctx, admin, created.ID)
	if !errors.Is(err, category.ErrCategoryInUse) {
		t.Errorf("expected ErrCategoryInUse, got %v", err)
	}

	// Retagging the product frees the category
	product.Recategorize("tea")
	if err := f.catalogRepo.Save(ctx, product); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := f.service.RemoveCategory(ctx, admin, created.ID); err != nil {
		t.Fatalf("RemoveCategory failed: %v", err)
	}

	_, err = f.service.GetCategory(ctx, created.ID)
	if !errors.Is(err, category.ErrCategoryNotFound) {
		t.Errorf("removed category should be gone, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	admin := shared.NewAdminIdentity("admin-1")

	if _, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "coffee", Description: "espresso based"}); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if _, err := f.service.CreateCategory(ctx, admin, CreateCategoryRequest{Name: "tea", Description: "loose leaf"}); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	page, err := f.service.ListCategories(ctx, ListCategoriesRequest{})
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("expected 2 categories, got %d", page.Total)
	}

	// The keyword matches descriptions too
	page, err = f.service.ListCategories(ctx, ListCategoriesRequest{Keyword: "loose"})
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if page.Total != 1 || page.Categories[0].Name != "tea" {
		t.Errorf("expected the tea category, got %+v", page.Categories)
	}
}
