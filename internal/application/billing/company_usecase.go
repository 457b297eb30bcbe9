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

// CompanyUseCase handles seller CRUD.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

func (uc *CompanyUseCase) Create(req *dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := validateCompanyRequest(req); err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           req.Name,
		VATNumber:      req.VATNumber,
		CRNumber:       req.CRNumber,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Country:        countryOrDefault(req.Country),
		BuildingNumber: req.BuildingNumber,
		StreetName:     req.StreetName,
		District:       req.District,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) Get(id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) List(page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	companies, err := uc.companyRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

func (uc *CompanyUseCase) Update(id string, req *dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := validateCompanyRequest(req); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.Name = req.Name
	company.VATNumber = req.VATNumber
	company.CRNumber = req.CRNumber
	company.Address = req.Address
	company.City = req.City
	company.PostalCode = req.PostalCode
	company.Country = countryOrDefault(req.Country)
	company.BuildingNumber = req.BuildingNumber
	company.StreetName = req.StreetName
	company.District = req.District
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) Delete(id string) error {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.companyRepo.Delete(id)
}

func validateCompanyRequest(req *dto.CompanyRequest) error {
	if req.Name == "" || req.Address == "" || req.City == "" {
		return domain.ErrInvalidInput
	}
	if err := zatca.ValidateVATNumber(req.VATNumber); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func countryOrDefault(country string) string {
	if country == "" {
		return "SA"
	}
	return country
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		VATNumber:      c.VATNumber,
		CRNumber:       c.CRNumber,
		Address:        c.Address,
		City:           c.City,
		PostalCode:     c.PostalCode,
		Country:        c.Country,
		BuildingNumber: c.BuildingNumber,
		StreetName:     c.StreetName,
		District:       c.District,
	}
}
