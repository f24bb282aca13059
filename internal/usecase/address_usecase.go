package usecase

import (
	"context"
	"net/http"
	"strings"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
)

type AddressInput struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type AddressUsecase struct {
	addressRepo  repo.AddressRepository
	customerRepo repo.CustomerRepository
}

func NewAddressUsecase(addressRepo repo.AddressRepository, customerRepo repo.CustomerRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo, customerRepo: customerRepo}
}

func (u *AddressUsecase) List(ctx context.Context, customerID int64) ([]model.Address, error) {
	if customerID <= 0 {
		return nil, errUnauthorized()
	}

	list, err := u.addressRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, errDB()
	}
	return list, nil
}

func (u *AddressUsecase) Create(ctx context.Context, customerID int64, in AddressInput) (model.Address, error) {
	if customerID <= 0 {
		return model.Address{}, errUnauthorized()
	}
	if err := validateAddressInput(in); err != nil {
		return model.Address{}, err
	}

	a, err := u.addressRepo.Create(ctx, model.Address{
		CustomerID: customerID,
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
	})
	if err != nil {
		return model.Address{}, errDB()
	}
	return a, nil
}

// 注文から参照済みの住所は編集不可（履歴が変わってしまうため）。
func (u *AddressUsecase) Update(ctx context.Context, customerID int64, addressID int64, in AddressInput) error {
	if customerID <= 0 {
		return errUnauthorized()
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateAddressInput(in); err != nil {
		return err
	}

	owned, err := u.addressRepo.IsOwnedByCustomer(ctx, addressID, customerID)
	if err != nil {
		return errDB()
	}
	if !owned {
		return errNotFound()
	}

	referenced, err := u.addressRepo.IsReferencedByOrder(ctx, addressID)
	if err != nil {
		return errDB()
	}
	if referenced {
		return NewHTTPError(http.StatusConflict, "address referenced by orders")
	}

	err = u.addressRepo.Update(ctx, model.Address{
		ID:         addressID,
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
	})
	if err == repo.ErrNotFound {
		return errNotFound()
	}
	if err != nil {
		return errDB()
	}
	return nil
}

func (u *AddressUsecase) Delete(ctx context.Context, customerID int64, addressID int64) error {
	if customerID <= 0 {
		return errUnauthorized()
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.addressRepo.IsOwnedByCustomer(ctx, addressID, customerID)
	if err != nil {
		return errDB()
	}
	if !owned {
		return errNotFound()
	}

	referenced, err := u.addressRepo.IsReferencedByOrder(ctx, addressID)
	if err != nil {
		return errDB()
	}
	if referenced {
		return NewHTTPError(http.StatusConflict, "address referenced by orders")
	}

	err = u.addressRepo.DeleteByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return errNotFound()
	}
	if err != nil {
		return errDB()
	}
	return nil
}

// SetDefault はデフォルト住所（billing / shipping）を付け替える。
func (u *AddressUsecase) SetDefault(ctx context.Context, customerID int64, addressID int64, kind string) error {
	if customerID <= 0 {
		return errUnauthorized()
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.addressRepo.IsOwnedByCustomer(ctx, addressID, customerID)
	if err != nil {
		return errDB()
	}
	if !owned {
		return errNotFound()
	}

	switch kind {
	case "billing":
		err = u.customerRepo.SetDefaultBillingAddress(ctx, customerID, addressID)
	case "shipping":
		err = u.customerRepo.SetDefaultShippingAddress(ctx, customerID, addressID)
	default:
		return NewHTTPError(http.StatusBadRequest, "kind must be billing or shipping")
	}

	if err == repo.ErrNotFound {
		return errNotFound()
	}
	if err != nil {
		return errDB()
	}
	return nil
}

func validateAddressInput(in AddressInput) error {
	if strings.TrimSpace(in.Street) == "" || strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.PostalCode) == "" || strings.TrimSpace(in.Country) == "" {
		return NewHTTPError(http.StatusBadRequest, "street, city, postal_code, country required")
	}
	return nil
}
