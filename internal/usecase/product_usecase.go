package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          strings.TrimSpace(in.Q),
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return ProductListOutput{}, errDB()
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, errNotFound()
	}
	if err != nil {
		return model.Product{}, errDB()
	}
	return p, nil
}

type AdminProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	CategoryID  int64
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminID int64, in AdminProductInput) (int64, error) {
	if adminID <= 0 {
		return 0, errUnauthorized()
	}
	if err := validateProductInput(in); err != nil {
		return 0, err
	}

	//カテゴリの存在チェック
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if err == repo.ErrNotFound {
			return 0, NewHTTPError(http.StatusBadRequest, "category not found")
		}
		return 0, errDB()
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return 0, errDB()
	}
	return p.ID, nil
}

// 在庫はここでは更新しない（Restock経由のみ）。
func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminID int64, productID int64, in AdminProductInput) error {
	if adminID <= 0 {
		return errUnauthorized()
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return err
	}

	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "category not found")
		}
		return errDB()
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	})
	if err == repo.ErrNotFound {
		return errNotFound()
	}
	if err != nil {
		return errDB()
	}
	return nil
}

// 過去の注文から参照されている商品は削除不可（409）。
func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminID int64, productID int64) error {
	if adminID <= 0 {
		return errUnauthorized()
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	referenced, err := u.productRepo.IsReferencedByOrderItem(ctx, productID)
	if err != nil {
		return errDB()
	}
	if referenced {
		return NewHTTPError(http.StatusConflict, "product referenced by orders")
	}

	err = u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return errNotFound()
	}
	if err != nil {
		return errDB()
	}
	return nil
}

// AdminRestock は在庫を補充する（上限なし、履歴と監査ログを残す）。
func (u *ProductUsecase) AdminRestock(ctx context.Context, adminID int64, productID int64, qty int64, reason string) error {
	if adminID <= 0 {
		return errUnauthorized()
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if qty <= 0 {
		return NewHTTPError(http.StatusBadRequest, "qty must be > 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	//変更前の在庫（before）
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return errNotFound()
	}
	if err != nil {
		return errDB()
	}

	if err := u.inventoryRepo.IncreaseStock(ctx, productID, qty); err != nil {
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		return errDB()
	}

	if err := u.inventoryRepo.CreateAdjustment(ctx, model.InventoryAdjustment{
		ProductID:       productID,
		AdminCustomerID: adminID,
		Delta:           qty,
		Reason:          strings.TrimSpace(reason),
	}); err != nil {
		return errDB()
	}

	//監査ログ（失敗しても補充自体は戻さない）
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorCustomerID: adminID,
		Action:          model.AuditActionRestock,
		ResourceType:    model.AuditResourceProduct,
		ResourceID:      productID,
		BeforeJSON:      fmt.Sprintf(`{"stock":%d}`, p.Stock),
		AfterJSON:       fmt.Sprintf(`{"stock":%d}`, p.Stock+qty),
	})

	return nil
}

func validateProductInput(in AdminProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	return nil
}
