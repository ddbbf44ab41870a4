package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "fieldservice/docs"
	"fieldservice/internal/adapter/http/routes"
	"fieldservice/internal/config"
	"fieldservice/internal/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Field Service Workflow API
// @version         1.0
// @description     Jobs, visits, estimates and invoices with role-checked status transitions.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID

// @securityDefinitions.apikey AccountID
// @in header
// @name X-Account-ID

// @securityDefinitions.apikey Role
// @in header
// @name X-Role
// @description One of owner, admin or tech.

func main() {
	logger.InitializeAndConfigure()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("[api][main] invalid configuration err=%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg); err != nil {
		logger.Errorf("[api][main] server stopped err=%v", err)
		stop()
		os.Exit(1)
	}
}
