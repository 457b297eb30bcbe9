package repository

import "github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"

// CustomerRepository is the persistence port for Customer (buyer).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// Delete fails with domain.ErrReferenced while any invoice points at the customer.
	Delete(id string) error
}
