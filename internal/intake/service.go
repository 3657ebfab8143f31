package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intake-backend/internal/queue"
	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/storage/object"
	"intake-backend/internal/shared/telemetry"
)

// Result describes a stored submission.
type Result struct {
	Namespace    string
	BusinessName string
	Files        []string
}

// Service stores submissions in the configured backend.
type Service struct {
	Storage *object.Resolver
	// Notifier is optional; a nil Notifier disables notifications.
	Notifier queue.Client
	OrgName  string
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Backend resolves the storage backend. Configuration errors surface here,
// before any byte of the submission is written.
func (s *Service) Backend(ctx context.Context) (object.Backend, error) {
	if s.Storage == nil {
		return nil, fmt.Errorf("storage not configured")
	}
	return s.Storage.Resolve(ctx)
}

// Store writes the transcript and every attachment under one namespace.
// Writes are sequential and not transactional: a failure leaves whatever was
// already written in place.
func (s *Service) Store(ctx context.Context, backend object.Backend, sub *Submission) (Result, error) {
	businessName, present := sub.Value(BusinessNameField)
	name := Namespace(businessName, present, sub.ReceivedAt)

	ns, err := backend.CreateNamespace(ctx, name)
	if err != nil {
		return Result{}, fmt.Errorf("create namespace %s: %w", name, err)
	}

	res := Result{Namespace: name, BusinessName: businessName}

	transcript := BuildTranscript(s.OrgName, sub.Fields, sub.ReceivedAt)
	if err := backend.Upload(ctx, ns, TranscriptName, strings.NewReader(transcript), transcriptContentType); err != nil {
		return res, fmt.Errorf("upload %s: %w", TranscriptName, err)
	}
	res.Files = append(res.Files, TranscriptName)
	metrics.AddFilesUploaded(1)

	for _, att := range sub.Attachments {
		if err := uploadAttachment(ctx, backend, ns, att); err != nil {
			return res, err
		}
		res.Files = append(res.Files, att.Filename)
		metrics.AddFilesUploaded(1)
	}

	s.notify(ctx, sub, res)
	return res, nil
}

// uploadAttachment streams one spooled file and releases it on every path.
func uploadAttachment(ctx context.Context, backend object.Backend, ns object.Namespace, att *Attachment) error {
	defer att.Release()

	f, err := att.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", att.Filename, err)
	}
	defer f.Close()

	if err := backend.Upload(ctx, ns, att.Filename, f, att.ContentType); err != nil {
		return fmt.Errorf("upload %s: %w", att.Filename, err)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, sub *Submission, res Result) {
	if s.Notifier == nil {
		return
	}
	msg := queue.Message{
		Namespace:    res.Namespace,
		BusinessName: res.BusinessName,
		Files:        res.Files,
		RequestID:    sub.RequestID,
		SubmittedAt:  sub.ReceivedAt.UTC().Format(time.RFC3339),
		Version:      queue.MessageVersion,
	}
	if err := s.Notifier.Send(ctx, msg); err != nil {
		// Artifacts are already stored; the submission still succeeds.
		telemetry.Warn("intake.notify.failed", map[string]any{
			"namespace":  res.Namespace,
			"request_id": sub.RequestID,
			"err":        err.Error(),
		})
	}
}
