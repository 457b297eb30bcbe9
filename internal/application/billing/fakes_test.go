package billing_test

import (
	"context"
	"sync"

	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
	"github.com/AfaqKhan6007007/zatca-full/internal/infrastructure/zatca"
)

// In-memory repositories shared by the billing use case tests.

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		items:    make(map[string][]*entity.InvoiceItem),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(it *entity.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *it
	r.items[it.InvoiceID] = append(r.items[it.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) DeleteItems(invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.Number == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.InvoiceItem, 0, len(r.items[invoiceID]))
	for _, it := range r.items[invoiceID] {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) List(status entity.Status, limit, offset int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if status != "" && inv.Status != status {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) CountByStatus() (map[entity.Status]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[entity.Status]int)
	for _, inv := range r.invoices {
		counts[inv.Status]++
	}
	return counts, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	m := make(map[string]*entity.Company)
	for _, c := range companies {
		m[c.ID] = c
	}
	return &fakeCompanyRepo{companies: m}
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) GetByVATNumber(vat string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.VATNumber == vat {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeCompanyRepo) Update(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) Delete(id string) error         { delete(r.companies, id); return nil }

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	m := make(map[string]*entity.Customer)
	for _, c := range customers {
		m[c.ID] = c
	}
	return &fakeCustomerRepo{customers: m}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) Delete(id string) error          { delete(r.customers, id); return nil }

type fakeLogRepo struct {
	mu   sync.Mutex
	logs []*entity.ZATCALog
}

func (r *fakeLogRepo) Create(l *entity.ZATCALog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *fakeLogRepo) Finalize(l *entity.ZATCALog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.logs {
		if existing.ID == l.ID {
			cp := *l
			r.logs[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeLogRepo) ListByInvoiceID(invoiceID string) ([]*entity.ZATCALog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ZATCALog
	for _, l := range r.logs {
		if l.InvoiceID == invoiceID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner runs the callback against the same in-memory repository, no
// transaction semantics.
type fakeTxRunner struct {
	repo repository.InvoiceRepository
}

func (r *fakeTxRunner) RunInvoice(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(r.repo)
}

// fakeZATCAClient returns scripted results and records every call.
type fakeZATCAClient struct {
	submitResult *zatca.Result
	statusResult *zatca.Result
	cancelResult *zatca.Result

	submitCalls int
	statusCalls int
	cancelCalls int

	lastSubmitPayload *zatca.InvoicePayload
	lastCancelPayload *zatca.CancelPayload
}

func (c *fakeZATCAClient) SubmitInvoice(_ context.Context, payload *zatca.InvoicePayload) *zatca.Result {
	c.submitCalls++
	c.lastSubmitPayload = payload
	return c.submitResult
}

func (c *fakeZATCAClient) CheckStatus(_ context.Context, uuid string) *zatca.Result {
	c.statusCalls++
	return c.statusResult
}

func (c *fakeZATCAClient) CancelInvoice(_ context.Context, payload *zatca.CancelPayload) *zatca.Result {
	c.cancelCalls++
	c.lastCancelPayload = payload
	return c.cancelResult
}
