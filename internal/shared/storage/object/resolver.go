package object

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	KindDrive = "drive"
	KindS3    = "s3"
	KindLocal = "local"
)

// Config selects and parameterizes a storage backend.
type Config struct {
	Kind string

	DriveCredentialsJSON string
	DriveParentFolderID  string

	AWSRegion   string
	S3Bucket    string
	S3Prefix    string
	SSEKMSKeyID string

	LocalDir string
}

// Validate reports the first required setting missing for the selected kind.
func (c Config) Validate() error {
	switch c.Kind {
	case KindS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return &ConfigError{Backend: KindS3, Key: "S3_BUCKET"}
		}
	case KindLocal:
		if strings.TrimSpace(c.LocalDir) == "" {
			return &ConfigError{Backend: KindLocal, Key: "LOCAL_STORE_DIR"}
		}
	default:
		if strings.TrimSpace(c.DriveCredentialsJSON) == "" {
			return &ConfigError{Backend: KindDrive, Key: "GOOGLE_APPLICATION_CREDENTIALS_JSON"}
		}
		if strings.TrimSpace(c.DriveParentFolderID) == "" {
			return &ConfigError{Backend: KindDrive, Key: "GOOGLE_DRIVE_FOLDER_ID"}
		}
	}
	return nil
}

// Factory builds a Backend from a validated Config.
type Factory func(ctx context.Context, cfg Config) (Backend, error)

// Resolver lazily builds the configured Backend on first use so that missing
// configuration fails the request rather than process startup.
type Resolver struct {
	cfg     Config
	factory Factory

	mu      sync.Mutex
	backend Backend
}

// NewResolver returns a Resolver for cfg. factory builds the concrete backend.
func NewResolver(cfg Config, factory Factory) *Resolver {
	return &Resolver{cfg: cfg, factory: factory}
}

// Static returns a Resolver that always yields b.
func Static(b Backend) *Resolver {
	return &Resolver{backend: b}
}

// Resolve returns the cached backend or builds it.
func (r *Resolver) Resolve(ctx context.Context) (Backend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend != nil {
		return r.backend, nil
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	if r.factory == nil {
		return nil, fmt.Errorf("no storage factory for %q", r.cfg.Kind)
	}
	b, err := r.factory(ctx, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", r.cfg.Kind, err)
	}
	r.backend = b
	return b, nil
}
