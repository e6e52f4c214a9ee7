package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/mycompta/internal/pkg/config"
	"github.com/piresc/mycompta/internal/pkg/health"
	"github.com/piresc/mycompta/internal/pkg/jwt"
	"github.com/piresc/mycompta/internal/pkg/logger"
	"github.com/piresc/mycompta/internal/pkg/middleware"
	"github.com/piresc/mycompta/internal/pkg/models"
	nrpkg "github.com/piresc/mycompta/internal/pkg/newrelic"
	"github.com/piresc/mycompta/internal/pkg/server"
	"github.com/piresc/mycompta/internal/utils"
	"github.com/piresc/mycompta/services/transactions/handler"
	"github.com/piresc/mycompta/services/transactions/usecase"
)

func main() {
	configPath := "config/compta.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", configs.App.Name),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("store", configs.Store.Driver),
	)

	healthService := health.NewService()

	gs := newServer(configs, zapLogger, nrApp, healthService)

	store, err := openStore(configs, healthService, gs)
	if err != nil {
		zapLogger.Fatal("Failed to open transaction store", logger.Err(err))
	}

	transactionGW, err := openGateway(configs, healthService, gs)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}

	verifier, err := jwt.NewVerifier(configs.JWT)
	if err != nil {
		zapLogger.Fatal("Failed to initialize token verifier", logger.Err(err))
	}

	transactionUC := usecase.NewTransactionUC(store, transactionGW)
	handler.NewHandler(transactionUC, verifier).RegisterRoutes(gs.echo)

	if nrApp != nil {
		gs.OnShutdown(nrShutdown(nrApp))
	}

	if err := gs.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}
}

type appServer struct {
	*server.GracefulServer
	echo *echo.Echo
}

func newServer(configs *models.Config, zapLogger *logger.ZapLogger, nrApp *newrelic.Application, healthService *health.Service) *appServer {
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()

	// panic recovery first so it also covers the other middlewares
	e.Use(middleware.PanicRecovery(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS(configs.CORS))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, configs.App.Name, configs.App.Version, healthService)

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	return &appServer{
		GracefulServer: server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port, shutdownTimeout),
		echo:           e,
	}
}
