package dto

// CustomerRequest body for POST/PUT /api/customers.
// Only name, address and city are required; ZATCA relaxes the rest for
// simplified invoices.
type CustomerRequest struct {
	Name           string `json:"name"`
	VATNumber      string `json:"vat_number,omitempty"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code,omitempty"`
	Country        string `json:"country,omitempty"` // default "SA"
	BuildingNumber string `json:"building_number,omitempty"`
	StreetName     string `json:"street_name,omitempty"`
	District       string `json:"district,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// CustomerResponse customer in responses.
type CustomerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	VATNumber      string `json:"vat_number,omitempty"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code,omitempty"`
	Country        string `json:"country"`
	BuildingNumber string `json:"building_number,omitempty"`
	StreetName     string `json:"street_name,omitempty"`
	District       string `json:"district,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
}
