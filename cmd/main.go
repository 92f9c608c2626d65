package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpctx "github.com/mkravets/todokeeper-server/internal/api/http/context"
	"github.com/mkravets/todokeeper-server/internal/api/http/router"
	httpServer "github.com/mkravets/todokeeper-server/internal/api/http/server"
	"github.com/mkravets/todokeeper-server/internal/config"
	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
	"github.com/mkravets/todokeeper-server/internal/repository/postgres"
	"github.com/mkravets/todokeeper-server/internal/server"
	"github.com/mkravets/todokeeper-server/internal/service"
	"github.com/mkravets/todokeeper-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	todoRepo := postgres.NewTodoRepository(db)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}

	guard := service.NewGuard()
	authService := service.NewAuth(userRepo, tokenManager, logger)
	todoService := service.NewTodo(todoRepo, guard, logger)
	userService := service.NewUser(userRepo, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(
		authService,
		todoService,
		userService,
		guard,
		tokenManager,
		userRepo,
		ctxMgr,
		logger,
		cfg.Login.RatePerSecond,
		cfg.Login.RateBurst,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
