package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/azirkitai/utamaHR-sub001/internal/approval"
	"github.com/azirkitai/utamaHR-sub001/internal/events"
	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
	payrollerrors "github.com/azirkitai/utamaHR-sub001/internal/payroll/errors"
	"github.com/azirkitai/utamaHR-sub001/internal/policy"
	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/response"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorUserID string, req CreateDocumentRequest) (DocumentResponse, error)
	Get(ctx context.Context, id string) (DocumentDetailResponse, error)
	List(ctx context.Context, page, limit int) ([]DocumentResponse, *response.PaginationMeta, error)

	// Generate mengisi item payslip untuk semua pekerja yang mempunyai
	// konfigurasi gaji. Kegagalan per pekerja dikumpul, bukan membatalkan
	// keseluruhan batch.
	Generate(ctx context.Context, id, actorUserID string) (GenerateResponse, error)
	// Refresh menjana semula dokumen yang masih boleh diubah dan menambah
	// entri audit RECALCULATED pada item sedia ada.
	Refresh(ctx context.Context, id, actorUserID string) (GenerateResponse, error)

	Submit(ctx context.Context, id, actorUserID string) (DocumentResponse, error)
	Approve(ctx context.Context, id, actorUserID, actorEmployeeID string) (DocumentResponse, error)
	Reject(ctx context.Context, id, actorUserID, reason string) (DocumentResponse, error)
	Delete(ctx context.Context, id string) error
	// Close dipanggil oleh consumer event pelaksanaan pembayaran.
	Close(ctx context.Context, id string) error
}

type service struct {
	db         *sql.DB
	docs       DocumentRepository
	items      ItemRepository
	aggregator *Aggregator
	source     SourceDataRepository
	salaries   salary.Service
	policies   policy.Service
	approvals  approval.Controller
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	docs DocumentRepository,
	items ItemRepository,
	aggregator *Aggregator,
	source SourceDataRepository,
	salaries salary.Service,
	policies policy.Service,
	approvals approval.Controller,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		docs:       docs,
		items:      items,
		aggregator: aggregator,
		source:     source,
		salaries:   salaries,
		policies:   policies,
		approvals:  approvals,
		outbox:     outbox,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actorUserID string, req CreateDocumentRequest) (DocumentResponse, error) {
	if req.Month < 1 || req.Month > 12 {
		return DocumentResponse{}, payrollerrors.ErrInvalidPeriod
	}

	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return DocumentResponse{}, payrollerrors.ErrInvalidActor
	}

	doc := &PayrollDocument{
		ID:                 uuid.New(),
		Year:               req.Year,
		Month:              req.Month,
		Remarks:            req.Remarks,
		IncludeClaims:      boolOr(req.IncludeClaims, true),
		IncludeOvertime:    boolOr(req.IncludeOvertime, true),
		IncludeUnpaidLeave: boolOr(req.IncludeUnpaidLeave, true),
		IncludeLateness:    boolOr(req.IncludeLateness, true),
		Status:             StatusPreparing,
		CreatedBy:          actor,
	}

	if req.PaymentDate != "" {
		paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return DocumentResponse{}, payrollerrors.ErrInvalidPeriod
		}
		doc.PaymentDate = &paymentDate
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return DocumentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("payroll document created",
		zap.String("document_id", doc.ID.String()),
		zap.Int("year", doc.Year),
		zap.Int("month", doc.Month),
	)
	return mapDocumentToResponse(*doc), nil
}

func (s *service) Get(ctx context.Context, id string) (DocumentDetailResponse, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return DocumentDetailResponse{}, err
	}

	items, err := s.items.FindByDocument(ctx, id)
	if err != nil {
		return DocumentDetailResponse{}, err
	}

	resp := DocumentDetailResponse{
		Document: mapDocumentToResponse(*doc),
		Items:    make([]ItemResponse, len(items)),
	}
	for i, item := range items {
		resp.Items[i] = mapItemToResponse(item)
	}
	return resp, nil
}

func (s *service) List(ctx context.Context, page, limit int) ([]DocumentResponse, *response.PaginationMeta, error) {
	docs, total, err := s.docs.List(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		resp[i] = mapDocumentToResponse(d)
	}
	meta := response.NewPaginationMeta(total, page, limit)
	return resp, &meta, nil
}

func (s *service) Generate(ctx context.Context, id, actorUserID string) (GenerateResponse, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return GenerateResponse{}, err
	}
	if !doc.IsEditable() {
		return GenerateResponse{}, payrollerrors.ErrDocumentNotEditable.WithDetails(map[string]any{
			"current_status": doc.Status,
		})
	}

	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return GenerateResponse{}, payrollerrors.ErrInvalidActor
	}

	_, periodEnd := doc.PeriodRange()
	rates, err := s.policies.GetStatutoryRatesAt(ctx, periodEnd)
	if err != nil {
		return GenerateResponse{}, err
	}

	employeeIDs, err := s.salaries.ListEmployeeIDs(ctx)
	if err != nil {
		return GenerateResponse{}, err
	}

	result := GenerateResponse{DocumentID: doc.ID.String()}
	now := time.Now().UTC()

	for _, employeeID := range employeeIDs {
		if err := s.generateItem(ctx, *doc, employeeID, rates, actor, now); err != nil {
			// Kegagalan seorang pekerja tidak membatalkan batch.
			result.Exclusions = append(result.Exclusions, ExcludedEmployee{
				EmployeeID: employeeID,
				Reason:     err.Error(),
			})
			continue
		}
		result.GeneratedCount++
	}

	// Penjanaan semula selepas penolakan mengembalikan dokumen ke PREPARING.
	if doc.Status == StatusRejected {
		if _, err := s.docs.TransitionStatus(ctx, id, StatusRejected, StatusPreparing, nil); err != nil {
			return GenerateResponse{}, err
		}
	}

	s.logger.Info("payroll generated",
		zap.String("document_id", id),
		zap.Int("generated", result.GeneratedCount),
		zap.Int("excluded", len(result.Exclusions)),
	)
	return result, nil
}

func (s *service) generateItem(
	ctx context.Context,
	doc PayrollDocument,
	employeeID string,
	rates policy.StatutoryRates,
	actor uuid.UUID,
	now time.Time,
) error {
	snap, err := s.salaries.ResolveAt(ctx, employeeID, endOfPeriod(doc))
	if err != nil {
		return err
	}

	action := AuditActionGenerated
	var trail AuditTrail
	existing, err := s.items.FindByDocumentAndEmployee(ctx, doc.ID.String(), employeeID)
	if err == nil {
		if existing.Locked {
			return payrollerrors.ErrItemLocked
		}
		action = AuditActionRecalculated
		trail = existing.AuditLog
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	agg, err := s.aggregator.Collect(ctx, doc, employeeID, snap)
	if err != nil {
		return err
	}

	// Nama dibekukan bersama snapshot gaji; payslip tidak merujuk data induk.
	employeeName, err := s.source.EmployeeName(ctx, employeeID)
	if err != nil {
		return err
	}

	values := Calculate(snap, rates, agg)

	item := &PayrollItem{
		ID:                uuid.New(),
		DocumentID:        doc.ID,
		EmployeeID:        snap.EmployeeID,
		EmployeeName:      employeeName,
		SalarySnapshot:    snap,
		GrossPay:          values.GrossPay,
		OvertimeAmount:    values.OvertimeAmount,
		ClaimsAmount:      values.ClaimsAmount,
		UnpaidLeaveAmount: values.UnpaidLeaveAmount,
		LatenessAmount:    values.LatenessAmount,
		Deductions:        values.Deductions,
		Contributions:     values.Contributions,
		TotalDeductions:   values.TotalDeductions,
		NetPay:            values.NetPay,
		AuditLog: trail.Append(AuditEntry{
			Action:  action,
			ActorID: actor,
			At:      now,
		}),
	}

	return s.items.Upsert(ctx, item)
}

func (s *service) Refresh(ctx context.Context, id, actorUserID string) (GenerateResponse, error) {
	return s.Generate(ctx, id, actorUserID)
}

func (s *service) Submit(ctx context.Context, id, actorUserID string) (DocumentResponse, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	items, err := s.items.FindByDocument(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	if len(items) == 0 {
		return DocumentResponse{}, payrollerrors.ErrNoItemsToSubmit
	}

	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return DocumentResponse{}, payrollerrors.ErrInvalidActor
	}

	rows, err := s.docs.TransitionStatus(ctx, id, StatusPreparing, StatusPendingApproval, map[string]any{
		"submitted_by": actor,
		"submitted_at": time.Now().UTC(),
	})
	if err != nil {
		return DocumentResponse{}, err
	}
	if rows == 0 {
		return DocumentResponse{}, payrollerrors.ErrStatusConflict.WithDetails(map[string]any{
			"current_status": doc.Status,
		})
	}

	s.logger.Info("payroll document submitted", zap.String("document_id", id))
	return s.getDocumentResponse(ctx, id)
}

// Approve mengesahkan pelulus aliran kerja pembayaran, mengunci semua item,
// dan menulis event outbox dalam transaksi yang sama dengan peralihan status.
// Mana-mana pelulus pembayaran yang dikonfigurasi boleh meluluskan, tidak kira
// peringkat.
func (s *service) Approve(ctx context.Context, id, actorUserID, actorEmployeeID string) (DocumentResponse, error) {
	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return DocumentResponse{}, payrollerrors.ErrInvalidActor
	}

	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	if err := s.approvals.AuthorizeAnyLevel(ctx, approval.WorkflowPayment, actorUserID, actorEmployeeID); err != nil {
		return DocumentResponse{}, err
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qdocs := s.docs.WithTx(tx)
	qitems := s.items.WithTx(tx)
	qoutbox := s.outbox.WithTx(tx)

	rows, err := qdocs.TransitionStatus(ctx, id, StatusPendingApproval, StatusApproved, map[string]any{
		"approved_by": actor,
		"approved_at": now,
	})
	if err != nil {
		return DocumentResponse{}, err
	}
	if rows == 0 {
		return DocumentResponse{}, payrollerrors.ErrStatusConflict
	}

	lockedCount, err := qitems.LockByDocument(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	msg, err := kafka.NewOutboxMessage(events.TopicPayrollDocumentApproved, id, events.PayrollDocumentApproved{
		DocumentID: doc.ID,
		Year:       doc.Year,
		Month:      doc.Month,
		ApprovedBy: actor,
		ApprovedAt: now,
		ItemCount:  lockedCount,
	})
	if err != nil {
		return DocumentResponse{}, err
	}
	if err := qoutbox.Insert(ctx, msg); err != nil {
		return DocumentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DocumentResponse{}, err
	}

	s.logger.Info("payroll document approved",
		zap.String("document_id", id),
		zap.Int64("locked_items", lockedCount),
	)
	return s.getDocumentResponse(ctx, id)
}

func (s *service) Reject(ctx context.Context, id, actorUserID, reason string) (DocumentResponse, error) {
	actor, err := uuid.Parse(actorUserID)
	if err != nil {
		return DocumentResponse{}, payrollerrors.ErrInvalidActor
	}

	rows, err := s.docs.TransitionStatus(ctx, id, StatusPendingApproval, StatusRejected, map[string]any{
		"rejected_by":      actor,
		"rejected_at":      time.Now().UTC(),
		"rejection_reason": reason,
	})
	if err != nil {
		return DocumentResponse{}, err
	}
	if rows == 0 {
		return DocumentResponse{}, payrollerrors.ErrStatusConflict
	}

	s.logger.Info("payroll document rejected",
		zap.String("document_id", id),
		zap.String("reason", reason),
	)
	return s.getDocumentResponse(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return err
	}
	if doc.Status == StatusApproved || doc.Status == StatusClosed {
		return payrollerrors.ErrDocumentNotDeletable.WithDetails(map[string]any{
			"current_status": doc.Status,
		})
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("payroll document deleted", zap.String("document_id", id))
	return nil
}

func (s *service) Close(ctx context.Context, id string) error {
	rows, err := s.docs.TransitionStatus(ctx, id, StatusApproved, StatusClosed, map[string]any{
		"closed_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return payrollerrors.ErrStatusConflict
	}

	s.logger.Info("payroll document closed", zap.String("document_id", id))
	return nil
}

func (s *service) findDocument(ctx context.Context, id string) (*PayrollDocument, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *service) getDocumentResponse(ctx context.Context, id string) (DocumentResponse, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	return mapDocumentToResponse(*doc), nil
}

func endOfPeriod(doc PayrollDocument) time.Time {
	_, end := doc.PeriodRange()
	return end
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func mapDocumentToResponse(d PayrollDocument) DocumentResponse {
	return DocumentResponse{
		ID:                 d.ID.String(),
		Year:               d.Year,
		Month:              d.Month,
		PaymentDate:        datePtrToString(d.PaymentDate),
		Remarks:            d.Remarks,
		IncludeClaims:      d.IncludeClaims,
		IncludeOvertime:    d.IncludeOvertime,
		IncludeUnpaidLeave: d.IncludeUnpaidLeave,
		IncludeLateness:    d.IncludeLateness,
		Status:             d.Status,
		CreatedBy:          d.CreatedBy.String(),
		SubmittedBy:        uuidPtrToString(d.SubmittedBy),
		SubmittedAt:        timePtrToString(d.SubmittedAt),
		ApprovedBy:         uuidPtrToString(d.ApprovedBy),
		ApprovedAt:         timePtrToString(d.ApprovedAt),
		RejectedBy:         uuidPtrToString(d.RejectedBy),
		RejectedAt:         timePtrToString(d.RejectedAt),
		RejectionReason:    d.RejectionReason,
		ClosedAt:           timePtrToString(d.ClosedAt),
	}
}

func mapItemToResponse(item PayrollItem) ItemResponse {
	return ItemResponse{
		ID:                item.ID.String(),
		DocumentID:        item.DocumentID.String(),
		EmployeeID:        item.EmployeeID.String(),
		EmployeeName:      item.EmployeeName,
		SalarySnapshot:    item.SalarySnapshot,
		GrossPay:          item.GrossPay,
		OvertimeAmount:    item.OvertimeAmount,
		ClaimsAmount:      item.ClaimsAmount,
		UnpaidLeaveAmount: item.UnpaidLeaveAmount,
		LatenessAmount:    item.LatenessAmount,
		Deductions:        item.Deductions,
		Contributions:     item.Contributions,
		TotalDeductions:   item.TotalDeductions,
		NetPay:            item.NetPay,
		Locked:            item.Locked,
		AuditLog:          item.AuditLog,
	}
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
