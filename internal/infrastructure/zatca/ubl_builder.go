package zatca

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	domainzatca "github.com/AfaqKhan6007007/zatca-full/internal/domain/zatca"
)

// UBL 2.1 namespaces.
const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// UBLBuilder renders an invoice aggregate as a UBL 2.1 Invoice document, the
// machine-readable export counterpart of the printable PDF.
type UBLBuilder struct{}

// NewUBLBuilder creates the builder.
func NewUBLBuilder() *UBLBuilder { return &UBLBuilder{} }

// Build returns the UBL XML document for the invoice.
func (b *UBLBuilder) Build(
	inv *entity.Invoice,
	company *entity.Company,
	customer *entity.Customer,
	items []*entity.InvoiceItem,
) ([]byte, error) {
	if inv == nil || company == nil || customer == nil {
		return nil, fmt.Errorf("zatca: invoice, company and customer are required")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cac", nsCac)
	root.CreateAttr("xmlns:cbc", nsCbc)

	root.CreateElement("cbc:UBLVersionID").SetText("2.1")
	root.CreateElement("cbc:ProfileID").SetText("reporting:1.0")
	root.CreateElement("cbc:ID").SetText(inv.Number)
	if inv.UUID != "" {
		root.CreateElement("cbc:UUID").SetText(inv.UUID)
	}
	root.CreateElement("cbc:IssueDate").SetText(inv.IssueDate.Format("2006-01-02"))
	root.CreateElement("cbc:IssueTime").SetText(inv.IssueTime)

	code, subtype, ok := domainzatca.InvoiceTypeCode(inv.Type)
	if !ok {
		return nil, fmt.Errorf("zatca: unknown invoice type %q", inv.Type)
	}
	typeCode := root.CreateElement("cbc:InvoiceTypeCode")
	typeCode.CreateAttr("name", subtype)
	typeCode.SetText(code)

	if inv.Notes != "" {
		root.CreateElement("cbc:Note").SetText(inv.Notes)
	}
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(domainzatca.CurrencySAR)
	root.CreateElement("cbc:TaxCurrencyCode").SetText(domainzatca.CurrencySAR)

	b.writeSupplier(root, company)
	b.writeCustomer(root, customer)

	taxTotal := root.CreateElement("cac:TaxTotal")
	amount(taxTotal, "cbc:TaxAmount", inv.VATAmount)

	legal := root.CreateElement("cac:LegalMonetaryTotal")
	amount(legal, "cbc:LineExtensionAmount", inv.Subtotal)
	amount(legal, "cbc:TaxExclusiveAmount", inv.Subtotal.Sub(inv.Discount))
	amount(legal, "cbc:TaxInclusiveAmount", inv.Total)
	amount(legal, "cbc:AllowanceTotalAmount", inv.Discount)
	amount(legal, "cbc:PayableAmount", inv.Total)

	for i, it := range items {
		line := root.CreateElement("cac:InvoiceLine")
		line.CreateElement("cbc:ID").SetText(strconv.Itoa(i + 1))

		qty := line.CreateElement("cbc:InvoicedQuantity")
		qty.CreateAttr("unitCode", "PCE")
		qty.SetText(it.Quantity.String())

		amount(line, "cbc:LineExtensionAmount", it.Total)

		lineTax := line.CreateElement("cac:TaxTotal")
		amount(lineTax, "cbc:TaxAmount", it.VATAmount)

		item := line.CreateElement("cac:Item")
		item.CreateElement("cbc:Name").SetText(it.Description)
		scheme := item.CreateElement("cac:ClassifiedTaxCategory")
		scheme.CreateElement("cbc:ID").SetText("S")
		scheme.CreateElement("cbc:Percent").SetText(it.VATRate.StringFixed(2))
		scheme.CreateElement("cac:TaxScheme").CreateElement("cbc:ID").SetText("VAT")

		price := line.CreateElement("cac:Price")
		amount(price, "cbc:PriceAmount", it.UnitPrice)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// Hash canonicalizes the document and returns the base64 SHA-256 digest. The
// value is what ZATCA calls the invoice hash and what chained invoices carry
// as their previous-invoice hash.
func (b *UBLBuilder) Hash(xmlBytes []byte) (string, error) {
	canonical, err := canonicalize(xmlBytes)
	if err != nil {
		// Hash the raw bytes when the canonicalizer cannot handle the doc.
		canonical = xmlBytes
	}
	digest := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(digest[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func (b *UBLBuilder) writeSupplier(root *etree.Element, company *entity.Company) {
	party := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")

	ident := party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID")
	ident.CreateAttr("schemeID", "CRN")
	ident.SetText(company.CRNumber)

	b.writeAddress(party, company.StreetName, company.BuildingNumber, company.District,
		company.City, company.PostalCode, company.Country)

	taxScheme := party.CreateElement("cac:PartyTaxScheme")
	taxScheme.CreateElement("cbc:CompanyID").SetText(company.VATNumber)
	taxScheme.CreateElement("cac:TaxScheme").CreateElement("cbc:ID").SetText("VAT")

	party.CreateElement("cac:PartyLegalEntity").
		CreateElement("cbc:RegistrationName").SetText(company.Name)
}

func (b *UBLBuilder) writeCustomer(root *etree.Element, customer *entity.Customer) {
	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")

	b.writeAddress(party, customer.StreetName, customer.BuildingNumber, customer.District,
		customer.City, customer.PostalCode, customer.Country)

	if customer.VATNumber != "" {
		taxScheme := party.CreateElement("cac:PartyTaxScheme")
		taxScheme.CreateElement("cbc:CompanyID").SetText(customer.VATNumber)
		taxScheme.CreateElement("cac:TaxScheme").CreateElement("cbc:ID").SetText("VAT")
	}

	party.CreateElement("cac:PartyLegalEntity").
		CreateElement("cbc:RegistrationName").SetText(customer.Name)
}

func (b *UBLBuilder) writeAddress(party *etree.Element, street, building, district, city, postal, country string) {
	addr := party.CreateElement("cac:PostalAddress")
	addr.CreateElement("cbc:StreetName").SetText(street)
	addr.CreateElement("cbc:BuildingNumber").SetText(building)
	addr.CreateElement("cbc:District").SetText(district)
	addr.CreateElement("cbc:CityName").SetText(city)
	addr.CreateElement("cbc:PostalZone").SetText(postal)
	addr.CreateElement("cac:Country").CreateElement("cbc:IdentificationCode").SetText(country)
}

func amount(parent *etree.Element, tag string, value decimal.Decimal) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", domainzatca.CurrencySAR)
	el.SetText(value.StringFixed(2))
}
