package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"intake-backend/internal/shared/storage/object"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Store implements object.Backend on Google Drive. Each namespace is a folder
// created under the configured parent folder.
type Store struct {
	files    *drive.FilesService
	parentID string
}

// New builds a Drive client from a service-account JSON blob.
func New(ctx context.Context, credentialsJSON, parentID string) (*Store, error) {
	if strings.TrimSpace(parentID) == "" {
		return nil, fmt.Errorf("drive parent folder is required")
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse drive credentials: %w", err)
	}

	svc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return NewWithService(svc, parentID), nil
}

// NewWithService wraps an existing Drive service.
func NewWithService(svc *drive.Service, parentID string) *Store {
	return &Store{files: svc.Files, parentID: parentID}
}

// Factory adapts New to object.Factory.
func Factory(ctx context.Context, cfg object.Config) (object.Backend, error) {
	return New(ctx, cfg.DriveCredentialsJSON, cfg.DriveParentFolderID)
}

// CreateNamespace creates a folder named name under the parent folder.
func (s *Store) CreateNamespace(ctx context.Context, name string) (object.Namespace, error) {
	folder := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{s.parentID},
	}
	created, err := s.files.Create(folder).Fields("id").Context(ctx).Do()
	if err != nil {
		return object.Namespace{}, fmt.Errorf("drive create folder name=%s parent=%s: %w", name, s.parentID, err)
	}
	return object.Namespace{Name: name, ID: created.Id}, nil
}

// Upload creates a file resource inside the namespace folder.
func (s *Store) Upload(ctx context.Context, ns object.Namespace, name string, r io.Reader, contentType string) error {
	meta := &drive.File{
		Name:    name,
		Parents: []string{ns.ID},
	}
	_, err := s.files.Create(meta).
		Media(r, googleapi.ContentType(contentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("drive upload name=%s folder=%s: %w", name, ns.ID, err)
	}
	return nil
}

var _ object.Backend = (*Store)(nil)
