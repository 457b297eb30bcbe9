package zatca

import "github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"

// BuildInvoicePayload serializes the invoice aggregate into the shape the
// ZATCA submission endpoint expects. Optional buyer fields become empty
// strings so the payload shape is stable regardless of how sparse the
// customer record is.
func BuildInvoicePayload(
	inv *entity.Invoice,
	company *entity.Company,
	customer *entity.Customer,
	items []*entity.InvoiceItem,
) *InvoicePayload {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			VATRate:     it.VATRate,
			VATAmount:   it.VATAmount,
			Discount:    it.Discount,
			LineTotal:   it.Total,
		})
	}

	return &InvoicePayload{
		InvoiceNumber: inv.Number,
		InvoiceType:   inv.Type,
		IssueDate:     inv.IssueDate.Format("2006-01-02"),
		IssueTime:     inv.IssueTime,
		Seller: Seller{
			Name:      company.Name,
			VATNumber: company.VATNumber,
			CRNumber:  company.CRNumber,
			Address: Address{
				Street:         company.StreetName,
				BuildingNumber: company.BuildingNumber,
				District:       company.District,
				City:           company.City,
				PostalCode:     company.PostalCode,
				Country:        company.Country,
			},
		},
		Buyer: Buyer{
			Name:      customer.Name,
			VATNumber: customer.VATNumber,
			Address: Address{
				Street:         customer.StreetName,
				BuildingNumber: customer.BuildingNumber,
				District:       customer.District,
				City:           customer.City,
				PostalCode:     customer.PostalCode,
				Country:        customer.Country,
			},
		},
		InvoiceLines: lines,
		Totals: Totals{
			Subtotal:  inv.Subtotal,
			VATAmount: inv.VATAmount,
			Discount:  inv.Discount,
			Total:     inv.Total,
		},
	}
}
