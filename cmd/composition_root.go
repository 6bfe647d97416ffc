package cmd

import (
	"log/slog"
	"time"

	inkafka "github.com/srCochayuyo/censudex-orders-service/internal/adapters/in/kafka"
	outkafka "github.com/srCochayuyo/censudex-orders-service/internal/adapters/out/kafka"
	"github.com/srCochayuyo/censudex-orders-service/internal/adapters/out/postgres"
	"github.com/srCochayuyo/censudex-orders-service/internal/adapters/out/sendgrid"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/commands"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/queries"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/services"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/ports"
	"github.com/srCochayuyo/censudex-orders-service/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	aggregator *services.ValidationAggregator
	publisher  *outkafka.OrderCreatedPublisher
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	// The aggregator counts lines outside any transaction, so a plain
	// repository bound to the shared connection is enough.
	aggregator := services.NewValidationAggregator(uowFactory.Create().OrderRepository())

	publisher := outkafka.NewOrderCreatedPublisher(
		[]string{config.KafkaHost},
		config.KafkaOrderCreatedTopic,
		logger,
	)

	notifier := sendgrid.NewNotifier(
		config.SendGridAPIKey,
		config.SendGridFromName,
		config.SendGridFromEmail,
		logger,
	)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		aggregator: aggregator,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStateCommandHandler() commands.ChangeOrderStateCommandHandler {
	return commands.NewChangeOrderStateCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRecordStockValidationCommandHandler() commands.RecordStockValidationCommandHandler {
	return commands.NewRecordStockValidationCommandHandler(c.orderUoWFactory(), c.aggregator, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrderStateQueryHandler() queries.GetOrderStateQueryHandler {
	return queries.NewGetOrderStateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateStockValidationConsumer() *inkafka.StockValidationConsumer {
	handler := c.CreateRecordStockValidationCommandHandler()
	return inkafka.NewStockValidationConsumer(
		[]string{c.config.KafkaHost},
		c.config.KafkaConsumerGroup,
		c.config.KafkaStockValidationTopic,
		c.config.KafkaConsumerWorkers,
		&handler,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	timeout := time.Duration(c.config.ValidationTimeoutMinutes) * time.Minute
	return jobs.NewJobManager(c.aggregator, c.CreateCancelOrderCommandHandler(), timeout, c.logger)
}

// ClosePublisher flushes and closes the Kafka writer during shutdown.
func (c *CompositionRoot) ClosePublisher() error {
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
