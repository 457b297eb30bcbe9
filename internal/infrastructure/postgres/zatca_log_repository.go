package postgres

import (
	"context"
	"fmt"

	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
)

var _ repository.ZATCALogRepository = (*ZATCALogRepo)(nil)

// ZATCALogRepo implements ZATCALogRepository.
type ZATCALogRepo struct {
	q Querier
}

// NewZATCALogRepository builds the adapter. Pass a pool or tx (Querier).
func NewZATCALogRepository(q Querier) *ZATCALogRepo {
	return &ZATCALogRepo{q: q}
}

// Create inserts the audit row with the outgoing payload. Called before the
// network request so an attempted call leaves a trace.
func (r *ZATCALogRepo) Create(log *entity.ZATCALog) error {
	query := `
		INSERT INTO zatca_logs (id, invoice_id, action, request_data, response_data, status_code, success, error_message, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.InvoiceID, log.Action,
		log.RequestData, nullIfEmpty(log.ResponseData), log.StatusCode,
		log.Success, nullIfEmpty(log.ErrorMessage), log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert zatca log: %w", err)
	}
	return nil
}

// Finalize attaches the response fields to the previously created row. The
// one permitted mutation.
func (r *ZATCALogRepo) Finalize(log *entity.ZATCALog) error {
	query := `
		UPDATE zatca_logs
		SET response_data = $2,
		    status_code   = $3,
		    success       = $4,
		    error_message = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, nullIfEmpty(log.ResponseData), log.StatusCode,
		log.Success, nullIfEmpty(log.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("finalize zatca log: %w", err)
	}
	return nil
}

// ListByInvoiceID returns the invoice's audit trail, newest first.
func (r *ZATCALogRepo) ListByInvoiceID(invoiceID string) ([]*entity.ZATCALog, error) {
	query := `
		SELECT id, invoice_id, action, request_data, response_data, status_code, success, error_message, timestamp
		FROM zatca_logs WHERE invoice_id = $1 ORDER BY timestamp DESC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list zatca logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ZATCALog
	for rows.Next() {
		var l entity.ZATCALog
		var responseData, errorMessage *string
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Action, &l.RequestData,
			&responseData, &l.StatusCode, &l.Success, &errorMessage, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan zatca log: %w", err)
		}
		l.ResponseData = derefStr(responseData)
		l.ErrorMessage = derefStr(errorMessage)
		list = append(list, &l)
	}
	return list, rows.Err()
}
