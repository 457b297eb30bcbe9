package billing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/dto"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
	domainzatca "github.com/AfaqKhan6007007/zatca-full/internal/domain/zatca"
	infrazatca "github.com/AfaqKhan6007007/zatca-full/internal/infrastructure/zatca"
	"github.com/AfaqKhan6007007/zatca-full/pkg/logger"
)

// DefaultCancelReason is used when a cancellation request carries no reason.
const DefaultCancelReason = "Cancelled by user"

// ZATCAUseCase orchestrates the authority flow:
//
//	serialize → audit (request) → HTTP call → audit (response) → update invoice
//
// Status preconditions are checked here, through the entity state machine,
// before any network call. Authority failures never mutate the invoice; they
// only finalize the audit row and surface as Success=false results.
type ZATCAUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	logRepo      repository.ZATCALogRepository
	client       infrazatca.Client
	log          *logger.Logger
}

// NewZATCAUseCase builds the use case.
func NewZATCAUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	logRepo repository.ZATCALogRepository,
	client infrazatca.Client,
	log *logger.Logger,
) *ZATCAUseCase {
	return &ZATCAUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		logRepo:      logRepo,
		client:       client,
		log:          log,
	}
}

// SubmitInvoice sends a draft invoice to ZATCA. On 200 it stores the
// authority uuid, the QR payload and the raw response, and transitions the
// invoice to submitted. On any failure the invoice stays in draft.
func (uc *ZATCAUseCase) SubmitInvoice(ctx context.Context, invoiceID string) (*dto.ZATCAResult, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	// Precondition before any serialization or network traffic.
	if !inv.CanTransition(entity.StatusSubmitted) {
		return nil, domain.ErrInvalidTransition
	}

	company, err := uc.companyRepo.GetByID(inv.CompanyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	payload := infrazatca.BuildInvoicePayload(inv, company, customer, items)
	auditLog, err := uc.createAuditLog(inv.ID, entity.ActionSubmitInvoice, payload)
	if err != nil {
		return nil, err
	}

	result := uc.client.SubmitInvoice(ctx, payload)
	uc.finalizeAuditLog(auditLog, result)

	if !result.Success {
		uc.log.Warn().Str("invoice_id", inv.ID).Int("status_code", result.StatusCode).
			Str("error", result.Message).Msg("zatca submission failed")
		return toZATCAResult(result), nil
	}

	var parsed infrazatca.SubmitResponse
	if err := json.Unmarshal(result.Data, &parsed); err != nil || parsed.UUID == "" {
		// A 200 without a usable identifier is a failure; leave the draft alone.
		result.Success = false
		result.Message = "Error: response missing uuid"
		uc.log.Warn().Str("invoice_id", inv.ID).Msg("zatca response missing uuid")
		return toZATCAResult(result), nil
	}

	inv.UUID = parsed.UUID
	inv.QRCode = parsed.QRCode
	if inv.QRCode == "" {
		// The authority usually returns the QR; when it does not, generate
		// the TLV payload locally. A QR failure is "QR unavailable", never
		// a submission failure.
		if qr, qrErr := domainzatca.EncodeQR(domainzatca.QRFields{
			SellerName: company.Name,
			VATNumber:  company.VATNumber,
			Timestamp:  inv.QRTimestamp(),
			Total:      inv.Total.StringFixed(2),
			VATAmount:  inv.VATAmount.StringFixed(2),
		}); qrErr == nil {
			inv.QRCode = qr
		} else {
			uc.log.Warn().Str("invoice_id", inv.ID).Err(qrErr).Msg("local qr generation failed")
		}
	}
	inv.ZATCAResponse = result.Body
	if err := inv.Transition(entity.StatusSubmitted); err != nil {
		return nil, err
	}
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_id", inv.ID).Str("uuid", inv.UUID).Msg("invoice submitted to zatca")
	return toZATCAResult(result), nil
}

// CheckStatus queries the authority for the invoice's current state. An
// invoice without an authority uuid fails immediately, with no network call.
// The local status is never synchronized from the response.
func (uc *ZATCAUseCase) CheckStatus(ctx context.Context, invoiceID string) (*dto.ZATCAResult, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.UUID == "" {
		return &dto.ZATCAResult{
			Success: false,
			Message: "Invoice not yet submitted to ZATCA",
			Data:    json.RawMessage(`{}`),
		}, nil
	}
	return toZATCAResult(uc.client.CheckStatus(ctx, inv.UUID)), nil
}

// CancelInvoice cancels a submitted or approved invoice at the authority.
// On 200 the invoice transitions to cancelled; on failure it is untouched.
func (uc *ZATCAUseCase) CancelInvoice(ctx context.Context, invoiceID, reason string) (*dto.ZATCAResult, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !inv.CanTransition(entity.StatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}
	if inv.UUID == "" {
		return nil, domain.ErrInvalidTransition
	}
	if reason == "" {
		reason = DefaultCancelReason
	}

	payload := &infrazatca.CancelPayload{UUID: inv.UUID, Reason: reason}
	auditLog, err := uc.createAuditLog(inv.ID, entity.ActionCancelInvoice, payload)
	if err != nil {
		return nil, err
	}

	result := uc.client.CancelInvoice(ctx, payload)
	uc.finalizeAuditLog(auditLog, result)

	if !result.Success {
		uc.log.Warn().Str("invoice_id", inv.ID).Int("status_code", result.StatusCode).
			Str("error", result.Message).Msg("zatca cancellation failed")
		return toZATCAResult(result), nil
	}

	if err := inv.Transition(entity.StatusCancelled); err != nil {
		return nil, err
	}
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_id", inv.ID).Str("uuid", inv.UUID).Msg("invoice cancelled at zatca")
	return toZATCAResult(result), nil
}

// createAuditLog writes the audit row with the outgoing payload before the
// network call, so an attempted call leaves a trace even if it never returns.
func (uc *ZATCAUseCase) createAuditLog(invoiceID, action string, payload interface{}) (*entity.ZATCALog, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	l := &entity.ZATCALog{
		ID:          uuid.New().String(),
		InvoiceID:   invoiceID,
		Action:      action,
		RequestData: string(raw),
		Timestamp:   time.Now(),
	}
	if err := uc.logRepo.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}

// finalizeAuditLog attaches the outcome to the row created before the call.
// A failure to persist the audit result is logged, not propagated: the
// authority outcome has already happened and must reach the caller.
func (uc *ZATCAUseCase) finalizeAuditLog(l *entity.ZATCALog, result *infrazatca.Result) {
	l.ResponseData = result.Body
	if result.StatusCode != 0 {
		code := result.StatusCode
		l.StatusCode = &code
	}
	l.Success = result.Success
	if !result.Success {
		l.ErrorMessage = result.Message
	}
	if err := uc.logRepo.Finalize(l); err != nil {
		uc.log.Error().Str("log_id", l.ID).Err(err).Msg("finalize audit log")
	}
}

func toZATCAResult(r *infrazatca.Result) *dto.ZATCAResult {
	return &dto.ZATCAResult{
		Success: r.Success,
		Message: r.Message,
		Data:    r.Data,
	}
}
