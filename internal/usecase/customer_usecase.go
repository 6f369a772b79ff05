package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

type CustomerUsecase struct {
	customers repo.CustomerRepository
	log       *zap.Logger
}

func NewCustomerUsecase(customers repo.CustomerRepository, log *zap.Logger) *CustomerUsecase {
	return &CustomerUsecase{customers: customers, log: log}
}

type ListCustomersInput struct {
	Search       string
	ShowArchived bool
}

type CustomerInput struct {
	Name         string
	Phone        string
	City         string
	State        string
	Pincode      string
	MapLocation  string
	Street       string
	OwnerName    string
	ContactType  string
	CustomerType string
	CustomerSize string
	GST          string
}

func (in CustomerInput) apply(c *model.Customer) {
	c.Name = in.Name
	c.Phone = in.Phone
	c.City = in.City
	c.State = in.State
	c.Pincode = in.Pincode
	c.MapLocation = in.MapLocation
	c.Street = in.Street
	c.OwnerName = in.OwnerName
	c.ContactType = in.ContactType
	c.CustomerType = in.CustomerType
	c.CustomerSize = in.CustomerSize
	c.GST = in.GST
}

func (u *CustomerUsecase) ListCustomers(ctx context.Context, in ListCustomersInput) ([]model.Customer, error) {
	items, err := u.customers.List(ctx, repo.CustomerListQuery{
		Search:       strings.TrimSpace(in.Search),
		ShowArchived: in.ShowArchived,
	})
	if err != nil {
		return []model.Customer{}, repoError(u.log, "list customers", err, "", "")
	}
	return items, nil
}

func (u *CustomerUsecase) CreateCustomer(ctx context.Context, in CustomerInput) (int64, error) {
	var c model.Customer
	in.apply(&c)

	created, err := u.customers.Create(ctx, c)
	if err != nil {
		return 0, repoError(u.log, "create customer", err, "", "invalid customer")
	}
	return created.ID, nil
}

func (u *CustomerUsecase) UpdateCustomer(ctx context.Context, customerID int64, in CustomerInput) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return repoError(u.log, "find customer", err, "Customer not found", "")
	}
	in.apply(&c)

	err = u.customers.Update(ctx, c)
	return repoError(u.log, "update customer", err, "Customer not found", "invalid customer")
}

func (u *CustomerUsecase) DeleteCustomer(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.customers.Delete(ctx, customerID)
	return repoError(u.log, "delete customer", err, "Customer not found", "customer is referenced by orders")
}

func (u *CustomerUsecase) SetArchived(ctx context.Context, customerID int64, archived bool) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.customers.SetArchived(ctx, customerID, archived)
	return repoError(u.log, "archive customer", err, "Customer not found", "")
}
