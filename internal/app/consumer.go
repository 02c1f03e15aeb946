package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/azirkitai/utamaHR-sub001/internal/approval"
	"github.com/azirkitai/utamaHR-sub001/internal/claim"
	"github.com/azirkitai/utamaHR-sub001/internal/events"
	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka"
	"github.com/azirkitai/utamaHR-sub001/internal/messaging/kafka/consumer"
	"github.com/azirkitai/utamaHR-sub001/internal/payroll"
	"github.com/azirkitai/utamaHR-sub001/internal/policy"
	"github.com/azirkitai/utamaHR-sub001/internal/salary"
	"github.com/azirkitai/utamaHR-sub001/internal/shared/connection"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	policyService := policy.NewService(sqlDB, policy.NewRepository(gormDB))
	salaryService := salary.NewService(sqlDB, salary.NewRepository(gormDB))
	sourceRepo := payroll.NewSourceDataRepository(gormDB)
	payrollService := payroll.NewService(
		sqlDB,
		payroll.NewDocumentRepository(gormDB),
		payroll.NewItemRepository(gormDB),
		payroll.NewAggregator(claim.NewRepository(gormDB), sourceRepo),
		sourceRepo,
		salaryService,
		policyService,
		approval.NewController(sqlDB, approval.NewRepository(gormDB)),
		kafka.NewOutboxRepository(gormDB),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.TopicPaymentExecuted,
		GroupID:        "utamahr-payroll-close",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePaymentExecuted(ctx, reader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
