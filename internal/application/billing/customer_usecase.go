package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/dto"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/zatca"
)

// CustomerUseCase handles buyer CRUD.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

func (uc *CustomerUseCase) Create(req *dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomerRequest(req); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		Name:           req.Name,
		VATNumber:      req.VATNumber,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Country:        countryOrDefault(req.Country),
		BuildingNumber: req.BuildingNumber,
		StreetName:     req.StreetName,
		District:       req.District,
		Email:          req.Email,
		Phone:          req.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) List(page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	customers, err := uc.customerRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) Update(id string, req *dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomerRequest(req); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	customer.Name = req.Name
	customer.VATNumber = req.VATNumber
	customer.Address = req.Address
	customer.City = req.City
	customer.PostalCode = req.PostalCode
	customer.Country = countryOrDefault(req.Country)
	customer.BuildingNumber = req.BuildingNumber
	customer.StreetName = req.StreetName
	customer.District = req.District
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Delete(id)
}

func validateCustomerRequest(req *dto.CustomerRequest) error {
	if req.Name == "" || req.Address == "" || req.City == "" {
		return domain.ErrInvalidInput
	}
	// Buyer VAT is optional on simplified invoices, validate only if present.
	if req.VATNumber != "" {
		if err := zatca.ValidateVATNumber(req.VATNumber); err != nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		VATNumber:      c.VATNumber,
		Address:        c.Address,
		City:           c.City,
		PostalCode:     c.PostalCode,
		Country:        c.Country,
		BuildingNumber: c.BuildingNumber,
		StreetName:     c.StreetName,
		District:       c.District,
		Email:          c.Email,
		Phone:          c.Phone,
	}
}
