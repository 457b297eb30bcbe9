package billing_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/billing"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/infrastructure/zatca"
	"github.com/AfaqKhan6007007/zatca-full/pkg/logger"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testCompany() *entity.Company {
	return &entity.Company{
		ID:        "company-1",
		Name:      "Acme Co",
		VATNumber: "123456789012345",
		Address:   "King Fahd Rd",
		City:      "Riyadh",
		Country:   "SA",
	}
}

func testCustomer() *entity.Customer {
	return &entity.Customer{
		ID:      "customer-1",
		Name:    "Buyer LLC",
		Address: "Olaya St",
		City:    "Riyadh",
		Country: "SA",
	}
}

func testInvoice(status entity.Status) *entity.Invoice {
	return &entity.Invoice{
		ID:         "invoice-1",
		Number:     "INV-001",
		Type:       entity.TypeStandard,
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IssueTime:  "10:00:00",
		CompanyID:  "company-1",
		CustomerID: "customer-1",
		Subtotal:   dec("100.00"),
		VATAmount:  dec("15.00"),
		Discount:   decimal.Zero,
		Total:      dec("115.00"),
		Status:     status,
	}
}

func testItem() *entity.InvoiceItem {
	return &entity.InvoiceItem{
		ID:          "item-1",
		InvoiceID:   "invoice-1",
		Description: "Widget",
		Quantity:    dec("1"),
		UnitPrice:   dec("100.00"),
		VATRate:     dec("15"),
		VATAmount:   dec("15.00"),
		Total:       dec("100.00"),
	}
}

type zatcaFixture struct {
	uc      *billing.ZATCAUseCase
	repo    *fakeInvoiceRepo
	logs    *fakeLogRepo
	client  *fakeZATCAClient
	invoice *entity.Invoice
}

func newZATCAFixture(t *testing.T, status entity.Status, client *fakeZATCAClient) *zatcaFixture {
	t.Helper()
	repo := newFakeInvoiceRepo()
	inv := testInvoice(status)
	require.NoError(t, repo.Create(inv))
	require.NoError(t, repo.CreateItem(testItem()))
	logs := &fakeLogRepo{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := billing.NewZATCAUseCase(repo,
		newFakeCompanyRepo(testCompany()),
		newFakeCustomerRepo(testCustomer()),
		logs, client, log)
	return &zatcaFixture{uc: uc, repo: repo, logs: logs, client: client, invoice: inv}
}

func okSubmit(body string) *zatca.Result {
	return &zatca.Result{
		Success:    true,
		StatusCode: 200,
		Body:       body,
		Data:       json.RawMessage(body),
	}
}

func failResult(code int, message string) *zatca.Result {
	return &zatca.Result{
		Success:    false,
		Message:    message,
		StatusCode: code,
		Body:       `{"error":"x"}`,
		Data:       json.RawMessage(`{}`),
	}
}

func TestSubmitInvoice_SuccessTransitionsAndStoresAuthorityData(t *testing.T) {
	client := &fakeZATCAClient{submitResult: okSubmit(`{"uuid":"z-uuid-1","qrCode":"UVJDT0RF"}`)}
	f := newZATCAFixture(t, entity.StatusDraft, client)

	result, err := f.uc.SubmitInvoice(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.True(t, result.Success)

	saved, _ := f.repo.GetByID("invoice-1")
	assert.Equal(t, entity.StatusSubmitted, saved.Status)
	assert.Equal(t, "z-uuid-1", saved.UUID)
	assert.Equal(t, "UVJDT0RF", saved.QRCode)
	assert.NotEmpty(t, saved.ZATCAResponse)

	// One audit row: submit action, finalized with success.
	logs, _ := f.logs.ListByInvoiceID("invoice-1")
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionSubmitInvoice, logs[0].Action)
	assert.True(t, logs[0].Success)
	require.NotNil(t, logs[0].StatusCode)
	assert.Equal(t, 200, *logs[0].StatusCode)
	assert.NotEmpty(t, logs[0].RequestData)
	assert.NotEmpty(t, logs[0].ResponseData)
}

func TestSubmitInvoice_GeneratesQRLocallyWhenAuthorityOmitsIt(t *testing.T) {
	client := &fakeZATCAClient{submitResult: okSubmit(`{"uuid":"z-uuid-1"}`)}
	f := newZATCAFixture(t, entity.StatusDraft, client)

	result, err := f.uc.SubmitInvoice(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.True(t, result.Success)

	saved, _ := f.repo.GetByID("invoice-1")
	assert.NotEmpty(t, saved.QRCode, "QR must be generated locally when the response has none")
}

func TestSubmitInvoice_FailureKeepsDraftAndRecordsAudit(t *testing.T) {
	client := &fakeZATCAClient{submitResult: failResult(500, "ZATCA API Error: 500")}
	f := newZATCAFixture(t, entity.StatusDraft, client)

	result, err := f.uc.SubmitInvoice(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "ZATCA API Error: 500", result.Message)
	assert.JSONEq(t, `{}`, string(result.Data))

	saved, _ := f.repo.GetByID("invoice-1")
	assert.Equal(t, entity.StatusDraft, saved.Status, "a failed submission must not change the status")
	assert.Empty(t, saved.UUID)

	logs, _ := f.logs.ListByInvoiceID("invoice-1")
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
	require.NotNil(t, logs[0].StatusCode)
	assert.Equal(t, 500, *logs[0].StatusCode)
}

func TestSubmitInvoice_MissingUUIDOn200IsFailure(t *testing.T) {
	client := &fakeZATCAClient{submitResult: okSubmit(`{"status":"ok"}`)}
	f := newZATCAFixture(t, entity.StatusDraft, client)

	result, err := f.uc.SubmitInvoice(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.False(t, result.Success)

	saved, _ := f.repo.GetByID("invoice-1")
	assert.Equal(t, entity.StatusDraft, saved.Status)
}

func TestSubmitInvoice_NonDraftRejectedBeforeNetwork(t *testing.T) {
	for _, status := range []entity.Status{entity.StatusSubmitted, entity.StatusApproved, entity.StatusRejected, entity.StatusCancelled} {
		client := &fakeZATCAClient{submitResult: okSubmit(`{"uuid":"x"}`)}
		f := newZATCAFixture(t, status, client)

		_, err := f.uc.SubmitInvoice(context.Background(), "invoice-1")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "status %s", status)
		assert.Zero(t, client.submitCalls, "no network call for status %s", status)

		logs, _ := f.logs.ListByInvoiceID("invoice-1")
		assert.Empty(t, logs, "no audit row for rejected precondition, status %s", status)
	}
}

func TestSubmitInvoice_UnknownInvoice(t *testing.T) {
	client := &fakeZATCAClient{}
	f := newZATCAFixture(t, entity.StatusDraft, client)

	_, err := f.uc.SubmitInvoice(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitInvoice_PayloadCarriesPartiesAndTotals(t *testing.T) {
	client := &fakeZATCAClient{submitResult: okSubmit(`{"uuid":"z"}`)}
	f := newZATCAFixture(t, entity.StatusDraft, client)

	_, err := f.uc.SubmitInvoice(context.Background(), "invoice-1")
	require.NoError(t, err)

	p := client.lastSubmitPayload
	require.NotNil(t, p)
	assert.Equal(t, "INV-001", p.InvoiceNumber)
	assert.Equal(t, "Acme Co", p.Seller.Name)
	assert.Equal(t, "123456789012345", p.Seller.VATNumber)
	assert.Equal(t, "Buyer LLC", p.Buyer.Name)
	require.Len(t, p.InvoiceLines, 1)
	assert.True(t, p.Totals.Total.Equal(dec("115.00")))
}

func TestCheckStatus_WithoutUUIDFailsWithoutNetworkCall(t *testing.T) {
	client := &fakeZATCAClient{statusResult: okSubmit(`{"status":"approved"}`)}
	f := newZATCAFixture(t, entity.StatusDraft, client)

	result, err := f.uc.CheckStatus(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Invoice not yet submitted to ZATCA", result.Message)
	assert.JSONEq(t, `{}`, string(result.Data))
	assert.Zero(t, client.statusCalls)
}

func TestCheckStatus_DoesNotMutateLocalStatus(t *testing.T) {
	client := &fakeZATCAClient{statusResult: okSubmit(`{"uuid":"z-uuid-1","status":"approved"}`)}
	f := newZATCAFixture(t, entity.StatusSubmitted, client)
	f.invoice.UUID = "z-uuid-1"
	require.NoError(t, f.repo.Update(f.invoice))

	result, err := f.uc.CheckStatus(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, client.statusCalls)

	saved, _ := f.repo.GetByID("invoice-1")
	assert.Equal(t, entity.StatusSubmitted, saved.Status, "authority status must not sync into the local invoice")
}

func TestCancelInvoice_SuccessTransitions(t *testing.T) {
	client := &fakeZATCAClient{cancelResult: okSubmit(`{"status":"cancelled"}`)}
	f := newZATCAFixture(t, entity.StatusSubmitted, client)
	f.invoice.UUID = "z-uuid-1"
	require.NoError(t, f.repo.Update(f.invoice))

	result, err := f.uc.CancelInvoice(context.Background(), "invoice-1", "duplicate")
	require.NoError(t, err)
	assert.True(t, result.Success)

	saved, _ := f.repo.GetByID("invoice-1")
	assert.Equal(t, entity.StatusCancelled, saved.Status)

	require.NotNil(t, client.lastCancelPayload)
	assert.Equal(t, "z-uuid-1", client.lastCancelPayload.UUID)
	assert.Equal(t, "duplicate", client.lastCancelPayload.Reason)

	logs, _ := f.logs.ListByInvoiceID("invoice-1")
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionCancelInvoice, logs[0].Action)
}

func TestCancelInvoice_DefaultReason(t *testing.T) {
	client := &fakeZATCAClient{cancelResult: okSubmit(`{"status":"cancelled"}`)}
	f := newZATCAFixture(t, entity.StatusApproved, client)
	f.invoice.UUID = "z-uuid-1"
	require.NoError(t, f.repo.Update(f.invoice))

	_, err := f.uc.CancelInvoice(context.Background(), "invoice-1", "")
	require.NoError(t, err)
	assert.Equal(t, billing.DefaultCancelReason, client.lastCancelPayload.Reason)
}

func TestCancelInvoice_FailureKeepsStatus(t *testing.T) {
	client := &fakeZATCAClient{cancelResult: failResult(422, "ZATCA API Error: 422")}
	f := newZATCAFixture(t, entity.StatusSubmitted, client)
	f.invoice.UUID = "z-uuid-1"
	require.NoError(t, f.repo.Update(f.invoice))

	result, err := f.uc.CancelInvoice(context.Background(), "invoice-1", "dup")
	require.NoError(t, err)
	assert.False(t, result.Success)

	saved, _ := f.repo.GetByID("invoice-1")
	assert.Equal(t, entity.StatusSubmitted, saved.Status)
}

func TestCancelInvoice_DraftAndTerminalRejectedBeforeNetwork(t *testing.T) {
	for _, status := range []entity.Status{entity.StatusDraft, entity.StatusRejected, entity.StatusCancelled} {
		client := &fakeZATCAClient{cancelResult: okSubmit(`{}`)}
		f := newZATCAFixture(t, status, client)

		_, err := f.uc.CancelInvoice(context.Background(), "invoice-1", "x")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "status %s", status)
		assert.Zero(t, client.cancelCalls, "no network call for status %s", status)
	}
}
