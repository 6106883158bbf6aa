package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leavehub/internal/domain"
	"go-leavehub/internal/events"
	"go-leavehub/internal/leavebalance"
)

// ConsumeBalancePopulateRequested processes population requests staged
// by HR. Population is idempotent, so redelivery of a message is
// harmless.
func ConsumeBalancePopulateRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	balanceService leavebalance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.balance_populate")
	log.Info("balance populate consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("balance populate consumer stopped")
				return
			}
			log.Error("fetch balance populate message failed", zap.Error(err))
			continue
		}

		var event events.BalancePopulateRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode balance populate event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		actor := domain.Actor{UserID: event.RequestedBy, Role: domain.RoleHR}
		result, err := balanceService.PopulateForYear(ctx, actor, event.Year)
		if err != nil {
			log.Error("populate balances failed",
				zap.Int("year", event.Year),
				zap.String("requested_by", event.RequestedBy),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit balance populate message failed", zap.Error(err))
			continue
		}

		log.Info("balances populated from populate_requested event",
			zap.Int("year", event.Year),
			zap.Int("employees_processed", result.EmployeesProcessed),
			zap.Int("rows_upserted", result.RowsUpserted),
		)
	}
}
