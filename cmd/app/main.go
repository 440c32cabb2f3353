package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SocialApp/social-service/internal/db"
	"github.com/SocialApp/social-service/internal/handler"
	"github.com/SocialApp/social-service/internal/rabbitmq"
	"github.com/SocialApp/social-service/internal/rate"
	"github.com/SocialApp/social-service/internal/repository"
	"github.com/SocialApp/social-service/internal/service"
	"github.com/SocialApp/social-service/internal/storage"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := initEnv(); err != nil {
		logger.Sugar().Warnf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	ctx := context.Background()

	postgresURI := os.Getenv("POSTGRES_URI")
	if err := db.Migrate(postgresURI); err != nil {
		logger.Sugar().Fatalf("failed to run migrations: %s", err.Error())
	}

	pool, err := db.Open(ctx, postgresURI)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()

	var mqConn *rabbitmq.MQConn
	if uri := os.Getenv("RABBITMQ_URI"); uri != "" {
		mqConn, err = rabbitmq.Dial(uri)
		if err != nil {
			logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
		}
		defer mqConn.Close()
	}

	var files *storage.Storage
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		minioClient, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint: endpoint,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket: viper.GetString("minio.bucket"),
			PublicURL: viper.GetString("minio.public_url"),
			UseSSL: viper.GetBool("minio.use_ssl"),
		})
		if err != nil {
			logger.Sugar().Fatalf("failed to create minio client: %s", err.Error())
		}
		if err := minioClient.EnsureBucket(ctx); err != nil {
			logger.Sugar().Fatalf("failed to ensure minio bucket: %s", err.Error())
		}
		files = storage.New(minioClient)
	}

	repo := repository.New(pool, rdb)
	services := service.New(logger, repo, mqConn, files)
	limiter := rate.NewRedis(repo.Redis.Default)

	traffic, err := newTrafficLogger(viper.GetString("traffic.log_path"))
	if err != nil {
		logger.Sugar().Fatalf("failed to open traffic log: %s", err.Error())
	}
	defer traffic.Sync()

	h := handler.New(services, limiter, traffic)

	port := viper.GetString("port")
	srv := &http.Server{
		Addr: ":" + port,
		Handler: h.InitRoutes(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("failed to run http server: %s", err.Error())
		}
	}()
	logger.Sugar().Infof("backend server running at port %s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

func initEnv() error {
	return godotenv.Load(".env")
}

func initConfig() error {
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}

// newTrafficLogger writes one JSON line per request to the traffic file,
// truncating it at startup like the original process did.
func newTrafficLogger(path string) (*zap.Logger, error) {
	if path == "" {
		path = "traffic.json"
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey: "timestamp",
		MessageKey: zapcore.OmitKey,
		LevelKey: zapcore.OmitKey,
		EncodeTime: zapcore.ISO8601TimeEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), zapcore.InfoLevel)

	return zap.New(core), nil
}
