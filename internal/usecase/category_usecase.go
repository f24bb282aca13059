package usecase

import (
	"context"
	"net/http"
	"strings"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	list, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, errDB()
	}
	return list, nil
}

func (u *CategoryUsecase) AdminCreate(ctx context.Context, adminID int64, name string) (model.Category, error) {
	if adminID <= 0 {
		return model.Category{}, errUnauthorized()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if err == repo.ErrDuplicate {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
	}
	if err != nil {
		return model.Category{}, errDB()
	}
	return c, nil
}

// 商品が紐づいている間は削除不可（409）。
func (u *CategoryUsecase) AdminDelete(ctx context.Context, adminID int64, categoryID int64) error {
	if adminID <= 0 {
		return errUnauthorized()
	}
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	has, err := u.categoryRepo.HasProducts(ctx, categoryID)
	if err != nil {
		return errDB()
	}
	if has {
		return NewHTTPError(http.StatusConflict, "category has products")
	}

	err = u.categoryRepo.Delete(ctx, categoryID)
	if err == repo.ErrNotFound {
		return errNotFound()
	}
	if err != nil {
		return errDB()
	}
	return nil
}
