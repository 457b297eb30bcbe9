package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/dto"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
)

const issueTimeLayout = "15:04:05"

// InvoiceUseCase covers the invoice CRUD surface: create with recomputed
// totals, edit and delete restricted to drafts, list/detail, and the
// dashboard counts.
type InvoiceUseCase struct {
	txRunner     TxRunner
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	logRepo      repository.ZATCALogRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	logRepo repository.ZATCALogRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		logRepo:      logRepo,
	}
}

// Create validates the request, derives every monetary field from the line
// items and persists invoice plus items in one transaction.
func (uc *InvoiceUseCase) Create(ctx context.Context, createdBy string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, items, err := uc.buildAggregate(in)
	if err != nil {
		return nil, err
	}
	inv.ID = uuid.New().String()
	inv.Status = entity.StatusDraft
	inv.CreatedBy = createdBy
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	for _, it := range items {
		it.ID = uuid.New().String()
		it.InvoiceID = inv.ID
	}

	company, customer, err := uc.fetchParties(inv.CompanyID, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, it := range items {
			if err := invoiceRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, company.Name, customer.Name, items), nil
}

// Update replaces the invoice fields and line items. Only drafts are
// editable; totals are recomputed from the new items.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	existing, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if !existing.IsDraft() {
		return nil, domain.ErrInvalidTransition
	}

	inv, items, err := uc.buildAggregate(in)
	if err != nil {
		return nil, err
	}
	inv.ID = existing.ID
	inv.Status = existing.Status
	inv.CreatedBy = existing.CreatedBy
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = time.Now()
	for _, it := range items {
		it.ID = uuid.New().String()
		it.InvoiceID = inv.ID
	}

	company, customer, err := uc.fetchParties(inv.CompanyID, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.DeleteItems(inv.ID); err != nil {
			return err
		}
		for _, it := range items {
			if err := invoiceRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, company.Name, customer.Name, items), nil
}

// Delete removes a draft invoice and its items.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if !inv.IsDraft() {
		return domain.ErrInvalidTransition
	}
	return uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.DeleteItems(id); err != nil {
			return err
		}
		return invoiceRepo.Delete(id)
	})
}

// Get returns the full invoice with its items.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	companyName, customerName := "", ""
	if company, _ := uc.companyRepo.GetByID(inv.CompanyID); company != nil {
		companyName = company.Name
	}
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, companyName, customerName, items), nil
}

// List returns invoices newest first, optionally filtered by status.
func (uc *InvoiceUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if status != "" && !validStatus(entity.Status(status)) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.List(entity.Status(status), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, "", "", nil))
	}
	return out, nil
}

// Logs returns the invoice's authority audit trail, newest first.
func (uc *InvoiceUseCase) Logs(ctx context.Context, invoiceID string) ([]*dto.ZATCALogResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	logs, err := uc.logRepo.ListByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ZATCALogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogResponse(l))
	}
	return out, nil
}

// Dashboard returns invoice counts by status plus the five most recent.
func (uc *InvoiceUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := uc.invoiceRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	recent, err := uc.invoiceRepo.List("", 5, 0)
	if err != nil {
		return nil, err
	}
	resp := &dto.DashboardResponse{
		DraftInvoices:     counts[entity.StatusDraft],
		SubmittedInvoices: counts[entity.StatusSubmitted],
		ApprovedInvoices:  counts[entity.StatusApproved],
		RejectedInvoices:  counts[entity.StatusRejected],
		CancelledInvoices: counts[entity.StatusCancelled],
		RecentInvoices:    make([]dto.InvoiceResponse, 0, len(recent)),
	}
	for _, n := range counts {
		resp.TotalInvoices += n
	}
	for _, inv := range recent {
		resp.RecentInvoices = append(resp.RecentInvoices, *toInvoiceResponse(inv, "", "", nil))
	}
	return resp, nil
}

// buildAggregate validates the request and produces the invoice with totals
// already derived from recalculated items.
func (uc *InvoiceUseCase) buildAggregate(in dto.InvoiceRequest) (*entity.Invoice, []*entity.InvoiceItem, error) {
	if in.Number == "" || in.CompanyID == "" || in.CustomerID == "" || len(in.Items) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	invType := in.Type
	if invType == "" {
		invType = entity.TypeStandard
	}
	if !validType(invType) {
		return nil, nil, domain.ErrInvalidInput
	}
	issueDate, err := time.Parse("2006-01-02", in.IssueDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: issue_date", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(issueTimeLayout, in.IssueTime); err != nil {
		return nil, nil, fmt.Errorf("%w: issue_time", domain.ErrInvalidInput)
	}
	if in.Discount.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}

	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Description == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.IsNegative() || it.Discount.IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		rate := entity.DefaultVATRate
		if it.VATRate != nil {
			if it.VATRate.IsNegative() {
				return nil, nil, domain.ErrInvalidInput
			}
			rate = *it.VATRate
		}
		item := &entity.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			VATRate:     rate,
			Discount:    it.Discount,
		}
		item.Recalculate()
		items = append(items, item)
	}

	inv := &entity.Invoice{
		Number:     in.Number,
		Type:       invType,
		IssueDate:  issueDate,
		IssueTime:  in.IssueTime,
		CompanyID:  in.CompanyID,
		CustomerID: in.CustomerID,
		Discount:   in.Discount,
		Notes:      in.Notes,
	}
	inv.CalculateTotals(items)
	return inv, items, nil
}

func (uc *InvoiceUseCase) fetchParties(companyID, customerID string) (*entity.Company, *entity.Customer, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, nil, domain.ErrNotFound
	}
	return company, customer, nil
}

func validType(t string) bool {
	switch t {
	case entity.TypeStandard, entity.TypeSimplified, entity.TypeDebit, entity.TypeCredit:
		return true
	}
	return false
}

func validStatus(s entity.Status) bool {
	switch s {
	case entity.StatusDraft, entity.StatusSubmitted, entity.StatusApproved, entity.StatusRejected, entity.StatusCancelled:
		return true
	}
	return false
}

func toInvoiceResponse(inv *entity.Invoice, companyName, customerName string, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		Type:         inv.Type,
		IssueDate:    inv.IssueDate.Format("2006-01-02"),
		IssueTime:    inv.IssueTime,
		CompanyID:    inv.CompanyID,
		CompanyName:  companyName,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		Subtotal:     inv.Subtotal,
		VATAmount:    inv.VATAmount,
		Discount:     inv.Discount,
		Total:        inv.Total,
		UUID:         inv.UUID,
		QRCode:       inv.QRCode,
		Status:       string(inv.Status),
		Notes:        inv.Notes,
		Items:        make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			VATRate:     it.VATRate,
			Discount:    it.Discount,
			VATAmount:   it.VATAmount,
			Total:       it.Total,
		})
	}
	return resp
}

func toLogResponse(l *entity.ZATCALog) *dto.ZATCALogResponse {
	resp := &dto.ZATCALogResponse{
		ID:           l.ID,
		Action:       l.Action,
		RequestData:  rawOrNull(l.RequestData),
		StatusCode:   l.StatusCode,
		Success:      l.Success,
		ErrorMessage: l.ErrorMessage,
		Timestamp:    l.Timestamp.Format(time.RFC3339),
	}
	if l.ResponseData != "" {
		resp.ResponseData = rawOrNull(l.ResponseData)
	}
	return resp
}

func rawOrNull(s string) []byte {
	if s == "" {
		return []byte("null")
	}
	return []byte(s)
}
