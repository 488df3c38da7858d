package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/todolist/todolist-go/internal/config"
	"github.com/todolist/todolist-go/internal/crypto"
	"github.com/todolist/todolist-go/internal/handler"
	"github.com/todolist/todolist-go/internal/logger"
	"github.com/todolist/todolist-go/internal/repository"
	"github.com/todolist/todolist-go/internal/repository/memory"
	mongorepo "github.com/todolist/todolist-go/internal/repository/mongo"
	mysqlrepo "github.com/todolist/todolist-go/internal/repository/mysql"
	"github.com/todolist/todolist-go/internal/service"
)

// store bundles the repositories of one backend with its shutdown hook.
type store struct {
	users repository.UserRepository
	tasks repository.TaskRepository
	close func(context.Context) error
}

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer log.Sync()

	if envErr != nil {
		log.Warn("no .env file found, using environment variables")
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("database initialization failed", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
	}

	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	credentials := service.NewCredentialStore(st.users, crypto.NewPasswordHasher(crypto.DefaultHashParams()))

	router := handler.NewRouter(handler.RouterConfig{
		Auth:       service.NewAuthService(credentials, tokens, log),
		Tasks:      service.NewTaskService(st.tasks),
		Tokens:     tokens,
		Log:        log,
		CORSOrigin: cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("driver", cfg.DatabaseDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced shutdown", zap.Error(err))
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error("closing database", zap.Error(err))
	}

	log.Info("server stopped")
}

// openStore connects to the backend named by cfg.DatabaseDriver and prepares
// its schema or indexes.
func openStore(ctx context.Context, cfg config.Config) (store, error) {
	switch cfg.DatabaseDriver {
	case "mongo":
		client, err := mongorepo.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return store{}, err
		}
		db := client.Database(cfg.DatabaseName)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			client.Disconnect(ctx)
			return store{}, err
		}
		return store{
			users: mongorepo.NewUserRepository(db),
			tasks: mongorepo.NewTaskRepository(db),
			close: client.Disconnect,
		}, nil

	case "mysql":
		db, err := mysqlrepo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return store{}, err
		}
		if err := mysqlrepo.Init(ctx, db); err != nil {
			db.Close()
			return store{}, err
		}
		return store{
			users: mysqlrepo.NewUserRepository(db),
			tasks: mysqlrepo.NewTaskRepository(db),
			close: func(context.Context) error { return db.Close() },
		}, nil

	default:
		return store{
			users: memory.NewUserRepository(),
			tasks: memory.NewTaskRepository(),
			close: func(context.Context) error { return nil },
		}, nil
	}
}
