package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/billing"
	"github.com/AfaqKhan6007007/zatca-full/internal/application/dto"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
)

type invoiceFixture struct {
	uc   *billing.InvoiceUseCase
	repo *fakeInvoiceRepo
	logs *fakeLogRepo
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	repo := newFakeInvoiceRepo()
	logs := &fakeLogRepo{}
	uc := billing.NewInvoiceUseCase(
		&fakeTxRunner{repo: repo},
		repo,
		newFakeCompanyRepo(testCompany()),
		newFakeCustomerRepo(testCustomer()),
		logs,
	)
	return &invoiceFixture{uc: uc, repo: repo, logs: logs}
}

func validRequest() dto.InvoiceRequest {
	return dto.InvoiceRequest{
		Number:     "INV-100",
		IssueDate:  "2024-06-01",
		IssueTime:  "09:30:00",
		CompanyID:  "company-1",
		CustomerID: "customer-1",
		Items: []dto.InvoiceItemRequest{
			{Description: "Widget", Quantity: dec("2"), UnitPrice: dec("100.00")},
			{Description: "Gadget", Quantity: dec("1"), UnitPrice: dec("50.00")},
		},
	}
}

func TestCreateInvoice_DerivesTotalsFromItems(t *testing.T) {
	f := newInvoiceFixture(t)

	resp, err := f.uc.Create(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	// 2x100 + 1x50 = 250 subtotal, 15% VAT = 37.5, total 287.5
	assert.True(t, resp.Subtotal.Equal(dec("250")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.VATAmount.Equal(dec("37.5")), "vat: %s", resp.VATAmount)
	assert.True(t, resp.Total.Equal(dec("287.5")), "total: %s", resp.Total)
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, entity.TypeStandard, resp.Type)
	require.Len(t, resp.Items, 2)

	// Items persisted under the invoice.
	items, _ := f.repo.GetItemsByInvoiceID(resp.ID)
	assert.Len(t, items, 2)
}

func TestCreateInvoice_DefaultVATRateIs15(t *testing.T) {
	f := newInvoiceFixture(t)

	resp, err := f.uc.Create(context.Background(), "user-1", validRequest())
	require.NoError(t, err)
	for _, it := range resp.Items {
		assert.True(t, it.VATRate.Equal(dec("15")))
	}
}

func TestCreateInvoice_ExplicitVATRateAndDiscounts(t *testing.T) {
	f := newInvoiceFixture(t)
	zero := dec("0")
	req := validRequest()
	req.Discount = dec("10")
	req.Items = []dto.InvoiceItemRequest{
		{Description: "Zero-rated export", Quantity: dec("1"), UnitPrice: dec("200.00"), VATRate: &zero},
	}

	resp, err := f.uc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("200")))
	assert.True(t, resp.VATAmount.Equal(dec("0")))
	// total = subtotal + vat - invoice discount
	assert.True(t, resp.Total.Equal(dec("190")), "total: %s", resp.Total)
}

func TestCreateInvoice_Validation(t *testing.T) {
	f := newInvoiceFixture(t)

	cases := map[string]func(*dto.InvoiceRequest){
		"missing number":    func(r *dto.InvoiceRequest) { r.Number = "" },
		"missing company":   func(r *dto.InvoiceRequest) { r.CompanyID = "" },
		"missing customer":  func(r *dto.InvoiceRequest) { r.CustomerID = "" },
		"no items":          func(r *dto.InvoiceRequest) { r.Items = nil },
		"bad type":          func(r *dto.InvoiceRequest) { r.Type = "proforma" },
		"bad date":          func(r *dto.InvoiceRequest) { r.IssueDate = "01/06/2024" },
		"bad time":          func(r *dto.InvoiceRequest) { r.IssueTime = "9am" },
		"negative discount": func(r *dto.InvoiceRequest) { r.Discount = dec("-1") },
		"zero quantity":     func(r *dto.InvoiceRequest) { r.Items[0].Quantity = decimal.Zero },
		"negative price":    func(r *dto.InvoiceRequest) { r.Items[0].UnitPrice = dec("-5") },
		"empty description": func(r *dto.InvoiceRequest) { r.Items[0].Description = "" },
	}
	for name, mutate := range cases {
		req := validRequest()
		mutate(&req)
		_, err := f.uc.Create(context.Background(), "user-1", req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestCreateInvoice_UnknownPartyFails(t *testing.T) {
	f := newInvoiceFixture(t)
	req := validRequest()
	req.CompanyID = "no-such-company"

	_, err := f.uc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateInvoice_ReplacesItemsAndRecomputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)
	created, err := f.uc.Create(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Items = []dto.InvoiceItemRequest{
		{Description: "Single item", Quantity: dec("1"), UnitPrice: dec("100.00")},
	}
	updated, err := f.uc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)

	assert.True(t, updated.Subtotal.Equal(dec("100")))
	assert.True(t, updated.Total.Equal(dec("115")))
	items, _ := f.repo.GetItemsByInvoiceID(created.ID)
	assert.Len(t, items, 1, "old items must be replaced, not appended")
}

func TestUpdateInvoice_NonDraftRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	created, err := f.uc.Create(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	inv, _ := f.repo.GetByID(created.ID)
	inv.Status = entity.StatusSubmitted
	require.NoError(t, f.repo.Update(inv))

	_, err = f.uc.Update(context.Background(), created.ID, validRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteInvoice_DraftOnly(t *testing.T) {
	f := newInvoiceFixture(t)
	created, err := f.uc.Create(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))
	gone, _ := f.repo.GetByID(created.ID)
	assert.Nil(t, gone)
	items, _ := f.repo.GetItemsByInvoiceID(created.ID)
	assert.Empty(t, items)
}

func TestDeleteInvoice_SubmittedRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	created, err := f.uc.Create(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	inv, _ := f.repo.GetByID(created.ID)
	inv.Status = entity.StatusSubmitted
	require.NoError(t, f.repo.Update(inv))

	err = f.uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestListInvoices_InvalidStatusRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	_, err := f.uc.List(context.Background(), "pending", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_CountsByStatus(t *testing.T) {
	f := newInvoiceFixture(t)
	first, err := f.uc.Create(context.Background(), "user-1", validRequest())
	require.NoError(t, err)
	second := validRequest()
	second.Number = "INV-101"
	_, err = f.uc.Create(context.Background(), "user-1", second)
	require.NoError(t, err)

	inv, _ := f.repo.GetByID(first.ID)
	inv.Status = entity.StatusSubmitted
	require.NoError(t, f.repo.Update(inv))

	resp, err := f.uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalInvoices)
	assert.Equal(t, 1, resp.DraftInvoices)
	assert.Equal(t, 1, resp.SubmittedInvoices)
}

func TestLogs_UnknownInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	_, err := f.uc.Logs(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
