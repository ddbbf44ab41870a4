package routes

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	_ "fieldservice/docs" // generated by swag init
	"fieldservice/internal/adapter/automation"
	"fieldservice/internal/adapter/http/handlers"
	"fieldservice/internal/adapter/persistence/gormstore"
	"fieldservice/internal/adapter/persistence/memstore"
	"fieldservice/internal/adapter/persistence/repository"
	"fieldservice/internal/config"
	"fieldservice/internal/infrastructure/database"
	"fieldservice/internal/infrastructure/payments"
	"fieldservice/internal/logger"
	"fieldservice/internal/usecase"
	"fieldservice/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run wires the service for cfg and serves HTTP until ctx is cancelled or the
// server fails. Cancellation drains in-flight requests before the automation
// bus is stopped.
func Run(ctx context.Context, cfg *config.Config) error {
	busCtx, stopBus := context.WithCancel(context.Background())
	defer stopBus()

	bus := automation.NewBus(cfg.AutomationBuffer)
	automation.RegisterDefaults(bus)
	bus.Start(busCtx)

	h, err := buildHandlers(ctx, cfg, bus)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to start the application: %w", err)
	}

	srv := &http.Server{Handler: NewRouter(h), ReadHeaderTimeout: 10 * time.Second}
	logger.Infof("[http][routes] listening addr=%s backend=%s", ln.Addr(), cfg.StoreBackend)
	return Serve(ctx, srv, ln, func() {
		stopBus()
		bus.Wait()
	})
}

// Serve runs srv on ln until ctx ends, then shuts it down and calls drain.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, drain func()) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		drain()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start the application: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("[http][routes] shutting down timeout=%s", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	drain()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// NewRouter mounts every route on a fresh engine.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	secured := v1.Group("")
	secured.Use(handlers.ActorMiddleware())
	addWorkflowRoutes(secured, h)
	return router
}

func buildHandlers(ctx context.Context, cfg *config.Config, sink interfaces.IAutomationSink) (Handlers, error) {
	store, paymentRepo, err := buildStores(ctx, cfg)
	if err != nil {
		return Handlers{}, err
	}

	var gateway interfaces.IPaymentGateway
	if !cfg.PaymentGatewayMock {
		mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
		if err != nil {
			logger.Warnf("[http][routes] Mercado Pago gateway not configured err=%v", err)
		} else {
			gateway = mpGateway
		}
	}

	engine := usecase.NewWorkflowUseCase(store, sink, usecase.WithPaymentTerms(cfg.PaymentTerms))
	estimates := usecase.NewEstimateUseCase(store)
	conversion := usecase.NewConversionUseCase(store, sink)
	visits := usecase.NewVisitUseCase(store, sink)
	invoicePayments := usecase.NewInvoicePaymentUseCase(store, paymentRepo, gateway, engine, sink, cfg.PaymentGatewayMock)

	return Handlers{
		Workflow: handlers.NewWorkflowHandler(engine),
		Estimate: handlers.NewEstimateHandler(estimates, conversion),
		Visit:    handlers.NewVisitHandler(visits),
		Payment:  handlers.NewInvoicePaymentHandler(invoicePayments),
	}, nil
}

func buildStores(ctx context.Context, cfg *config.Config) (interfaces.IWorkflowStore, interfaces.IInvoicePaymentRepository, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Warnf("[http][routes] using in-memory store; data is lost on restart")
		return memstore.New(), memstore.NewPaymentRepository(), nil
	case config.BackendPostgres:
		db, err := database.ConnectPostgres(cfg.Database, database.Options{AutoMigrate: true})
		if err != nil {
			return nil, nil, err
		}
		return gormstore.NewStore(db), gormstore.NewPaymentRepository(db), nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		return repository.NewWorkflowDynamoStore(ddb), repository.NewInvoicePaymentDynamoRepository(ddb), nil
	}
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf("[http][routes] recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
