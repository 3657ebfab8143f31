package intake

import (
	"errors"
	"os"
	"time"
)

const (
	// BusinessNameField keys the namespace and the success greeting.
	BusinessNameField = "business_name"
	// PhotosField is the multipart field carrying attachments.
	PhotosField = "photos"

	defaultContentType = "application/octet-stream"
)

// Field is one submitted form value.
type Field struct {
	Key   string
	Value string
}

// Attachment is an uploaded file spooled to a temp file until it is stored.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64

	path string
}

// Open opens the spooled content for reading.
func (a *Attachment) Open() (*os.File, error) {
	return os.Open(a.path)
}

// Release removes the temp file. It is safe to call more than once.
func (a *Attachment) Release() error {
	if a.path == "" {
		return nil
	}
	err := os.Remove(a.path)
	a.path = ""
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Submission is one form POST: ordered fields plus attachments.
type Submission struct {
	Fields      []Field
	Attachments []*Attachment
	ReceivedAt  time.Time
	RequestID   string
}

// Value returns the first value submitted for key.
func (s *Submission) Value(key string) (string, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Close releases every attachment still on disk.
func (s *Submission) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, a := range s.Attachments {
		if err := a.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Submission) addField(key, value string) {
	if _, seen := s.Value(key); seen {
		return
	}
	s.Fields = append(s.Fields, Field{Key: key, Value: value})
}
