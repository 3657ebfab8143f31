package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/intake"
	"intake-backend/internal/queue"
	"intake-backend/internal/services/health"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/shared/server"
	"intake-backend/internal/shared/server/middleware"
	"intake-backend/internal/shared/storage/object"
	drivestore "intake-backend/internal/shared/storage/object/drive"
	localstore "intake-backend/internal/shared/storage/object/local"
	s3store "intake-backend/internal/shared/storage/object/s3"
	"intake-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Storage       *object.Resolver
	Queue         queue.Client
	IntakeService *intake.Service
	IntakeHandler *intake.Handler
}

// Build wires the application. Storage is resolved lazily per request, so a
// missing bucket or credential does not stop the process from starting.
func Build(cfg config.Config) (*App, error) {
	cfg.Normalize()
	ctx := context.Background()

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storage := object.NewResolver(StorageConfig(cfg), storageFactory(cfg.StorageBackend))

	svc := &intake.Service{
		Storage: storage,
		OrgName: cfg.OrgName,
	}
	if queueClient != nil {
		svc.Notifier = queueClient
	}
	handler := intake.NewHandler(svc, cfg.UploadTempDir)

	app := &App{
		Config:        cfg,
		Storage:       storage,
		Queue:         queueClient,
		IntakeService: svc,
		IntakeHandler: handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		IntakeHandler: handler,
		Health:        health.NewService(),
		RateLimiter:   middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":     cfg.Env,
		"storage": cfg.StorageBackend,
		"notify":  queueClient != nil,
	})
	return app, nil
}

// StorageConfig projects the storage settings out of the app config.
func StorageConfig(cfg config.Config) object.Config {
	return object.Config{
		Kind:                 cfg.StorageBackend,
		DriveCredentialsJSON: cfg.DriveCredentialsJSON,
		DriveParentFolderID:  cfg.DriveParentFolderID,
		AWSRegion:            cfg.AWSRegion,
		S3Bucket:             cfg.S3Bucket,
		S3Prefix:             cfg.S3Prefix,
		SSEKMSKeyID:          cfg.SSEKMSKeyID,
		LocalDir:             cfg.LocalStoreDir,
	}
}

func storageFactory(kind string) object.Factory {
	switch kind {
	case object.KindS3:
		return s3store.Factory
	case object.KindLocal:
		return localstore.Factory
	default:
		return drivestore.Factory
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.NotifyQueueURL) == "" {
		return nil, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.NotifyQueueURL)
	if err != nil {
		return nil, fmt.Errorf("notify queue: %w", err)
	}
	return client, nil
}
