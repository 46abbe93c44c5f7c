package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"posts-backend/internal/config"
	delivery "posts-backend/internal/delivery/http"
	"posts-backend/internal/repo"
	"posts-backend/internal/repo/database"
	"posts-backend/internal/repo/kafka"
	"posts-backend/internal/repo/memory"
	"posts-backend/internal/repo/s3"
	"posts-backend/internal/usecase/service"
	"posts-backend/pkg/connector"
	"posts-backend/pkg/goosehelper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// база данных + миграции
	dbConn, err := connector.GetDatabaseConnector(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Errorf("Ошибка при закрытии соединения с базой данных: %v", err)
		}
	}()
	err = goosehelper.MigrateUp(dbConn.DB, connector.GooseDialect(cfg.DB.Driver), database.Migrations, database.MigrationsDir)
	if err != nil {
		log.Fatalf("Ошибка при выполнении миграций: %v", err)
	}

	// minio
	minioClient, err := connector.GetMinioConnector(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, cfg.Minio.Region)
	if err != nil {
		log.Fatalf("Ошибка при подключении к MinIO: %v", err)
	}
	mediaHost, err := s3.NewMediaHost(ctx, minioClient, cfg.Minio.Bucket, cfg.Minio.Region, cfg.Minio.PublicURL)
	if err != nil {
		log.Fatalf("Ошибка при инициализации медиа-хранилища: %v", err)
	}

	// kafka подключается только если заданы брокеры
	var postEventRepo repo.PostEventRepository
	if len(cfg.Kafka.Brokers) > 0 {
		postEventRepo, err = kafka.NewPostEventKafkaRepository(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatalf("Ошибка при подключении к Kafka: %v", err)
		}
	} else {
		log.Info("KAFKA_BROKERS не задан, события о постах не публикуются")
	}

	// репозитории и usecase
	postRepo := database.NewPost(dbConn)
	textPostRepo := memory.NewTextPost(memory.DefaultTextPosts...)
	postUseCase := service.NewPost(postRepo, mediaHost, postEventRepo, cfg.Upload.StagingDir, cfg.Upload.OriginTag)
	textPostUseCase := service.NewTextPost(textPostRepo)

	// delivery
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := delivery.NewMetrics(registry)
	postDelivery := delivery.NewPost(postUseCase)
	textPostDelivery := delivery.NewTextPost(textPostUseCase)
	healthDelivery := delivery.NewHealth(dbConn)

	// REST API
	echoServer := echo.New()
	echoServer.HideBanner = true
	// metrics снаружи Recover, чтобы запросы с паникой тоже учитывались
	echoServer.Use(metrics.Middleware())
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.RequestID())
	echoServer.Use(middleware.BodyLimit(cfg.HTTP.BodyLimit))
	echoServer.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.HTTP.CORSAllowOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderAccept,
			echo.HeaderXRequestedWith,
			echo.HeaderContentType,
		},
		MaxAge: 86400,
	}))

	// Endpoints
	root := echoServer.Group("")
	postDelivery.Configure(root)
	healthDelivery.Configure(root)
	metrics.Configure(root)
	// текстовые посты
	posts := echoServer.Group("/posts")
	textPostDelivery.Configure(posts)

	go func(server *echo.Echo) {
		if err := server.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Logger.Fatalf("Сервер завершил свою работу по причине: %v\n", err)
		}
	}(echoServer)
	log.Infof("Сервис постов запущен на %s", cfg.HTTP.Addr)

	<-ctx.Done()
	log.Info("Получен сигнал завершения, останавливаем сервер...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := echoServer.Shutdown(shutdownCtx); err != nil {
		echoServer.Logger.Errorf("Во время выключения сервера возникла ошибка: %s\n", err)
	}
	if closer, ok := postEventRepo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Errorf("Ошибка при закрытии Kafka writer: %v", err)
		}
	}
	log.Info("Сервис постов успешно остановлен")
}
