package consumer

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/azirkitai/utamaHR-sub001/internal/events"
	"github.com/azirkitai/utamaHR-sub001/internal/payroll"
	payrollerrors "github.com/azirkitai/utamaHR-sub001/internal/payroll/errors"
)

// ConsumePaymentExecuted menutup dokumen gaji apabila sistem pembayaran
// luaran melaporkan pelaksanaan. Event ulangan untuk dokumen yang sudah
// tertutup dikomit tanpa bising.
func ConsumePaymentExecuted(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payment_executed")
	log.Info("payment executed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payment executed consumer stopped")
				return
			}
			log.Error("fetch payment executed message failed", zap.Error(err))
			continue
		}

		var event events.PaymentExecuted
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payment executed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := payrollService.Close(ctx, event.DocumentID.String()); err != nil {
			if errors.Is(err, payrollerrors.ErrStatusConflict) {
				log.Warn("payroll document already closed, skipping",
					zap.String("document_id", event.DocumentID.String()),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("close payroll document failed",
				zap.String("document_id", event.DocumentID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payment executed message failed", zap.Error(err))
			continue
		}

		log.Info("payroll document closed from payment executed event",
			zap.String("document_id", event.DocumentID.String()),
			zap.String("reference", event.Reference),
		)
	}
}
