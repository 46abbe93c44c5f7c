package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP   HTTPConfig
	DB     DBConfig
	Minio  MinioConfig
	Kafka  KafkaConfig
	Upload UploadConfig
}

type HTTPConfig struct {
	Addr            string
	BodyLimit       string
	CORSAllowOrigin string
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Driver string
	DSN    string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	// PublicURL - внешний адрес для ссылок на файлы, пустой - адрес самого MinIO
	PublicURL string
}

type KafkaConfig struct {
	// Brokers пустой - публикация событий отключена
	Brokers []string
	Topic   string
}

type UploadConfig struct {
	StagingDir string
	OriginTag  string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info(".env файл не обнаружен")
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию из переменных окружения с значениями по умолчанию
func FromEnv() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", "0.0.0.0:8000")
	v.SetDefault("HTTP_BODY_LIMIT", "100M")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "./posts.db")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_BUCKET", "posts-media")
	v.SetDefault("MINIO_REGION", "eu-central-1")
	v.SetDefault("MINIO_PUBLIC_URL", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "post-events")
	v.SetDefault("UPLOAD_STAGING_DIR", "")
	v.SetDefault("UPLOAD_ORIGIN_TAG", "backend-upload")

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:            v.GetString("HTTP_ADDR"),
			BodyLimit:       v.GetString("HTTP_BODY_LIMIT"),
			CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DB_DSN"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			Region:    v.GetString("MINIO_REGION"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Upload: UploadConfig{
			StagingDir: v.GetString("UPLOAD_STAGING_DIR"),
			OriginTag:  v.GetString("UPLOAD_ORIGIN_TAG"),
		},
	}
	if strings.TrimSpace(cfg.DB.DSN) == "" {
		return nil, errors.New("DB_DSN is empty")
	}
	if strings.TrimSpace(cfg.Minio.Bucket) == "" {
		return nil, errors.New("MINIO_BUCKET is empty")
	}
	return cfg, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
