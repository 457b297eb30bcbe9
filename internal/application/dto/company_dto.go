package dto

// CompanyRequest body for POST/PUT /api/companies.
type CompanyRequest struct {
	Name           string `json:"name"`
	VATNumber      string `json:"vat_number"`
	CRNumber       string `json:"cr_number"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country,omitempty"` // default "SA"
	BuildingNumber string `json:"building_number"`
	StreetName     string `json:"street_name"`
	District       string `json:"district"`
}

// CompanyResponse company in responses.
type CompanyResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	VATNumber      string `json:"vat_number"`
	CRNumber       string `json:"cr_number"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
	BuildingNumber string `json:"building_number"`
	StreetName     string `json:"street_name"`
	District       string `json:"district"`
}
