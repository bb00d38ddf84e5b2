package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gojer16/Book-Management-API/internal/app/server"
	"github.com/Gojer16/Book-Management-API/internal/config"
	delivery "github.com/Gojer16/Book-Management-API/internal/delivery/http"
	"github.com/Gojer16/Book-Management-API/internal/service"
	"github.com/Gojer16/Book-Management-API/internal/service/auth"
	"github.com/Gojer16/Book-Management-API/internal/service/book"
	"github.com/Gojer16/Book-Management-API/internal/service/library"
	"github.com/Gojer16/Book-Management-API/internal/storage/minio_storage"
	"github.com/Gojer16/Book-Management-API/internal/storage/postgres"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName); err != nil {
		log.FatalErr("error running migrations", err)
	}

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	minioStorage, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	coverStorage, err := minio_storage.NewCoverStorage(ctx, minioStorage, cfg.Minio.Bucket, cfg.Minio.PublicURL)
	if err != nil {
		log.FatalErr("error preparing cover bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	bookRepo := postgres.NewBookPostgres(pg.Pool)
	libraryRepo := postgres.NewLibraryPostgres(pg.Pool)

	if err := tokenRepo.DeleteExpired(ctx); err != nil {
		log.ErrorErr("error clearing expired refresh tokens", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, "book-management-api", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo)
	bookService := book.NewBookService(log, bookRepo, coverStorage)
	libraryService := library.NewLibraryService(log, libraryRepo, bookRepo)

	u := service.Collection{
		AuthService:    authService,
		BookService:    bookService,
		LibraryService: libraryService,
	}

	r := delivery.InitRoutes(log, cfg, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("listening on " + cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}

	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
