package repository

import "github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"

// CompanyRepository is the persistence port for Company (seller).
// The implementation lives in infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByVATNumber(vatNumber string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
	// Delete fails with domain.ErrReferenced while any invoice points at the company.
	Delete(id string) error
}
