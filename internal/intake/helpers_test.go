package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"intake-backend/internal/queue"
	"intake-backend/internal/shared/storage/object"
)

type storedObject struct {
	Namespace   string
	Name        string
	ContentType string
	Body        string
}

type memBackend struct {
	mu         sync.Mutex
	namespaces []string
	objects    []storedObject
	failOn     string
}

func (m *memBackend) CreateNamespace(ctx context.Context, name string) (object.Namespace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.namespaces = append(m.namespaces, name)
	return object.Namespace{Name: name, ID: "id-" + name}, nil
}

func (m *memBackend) Upload(ctx context.Context, ns object.Namespace, name string, r io.Reader, contentType string) error {
	if name == m.failOn {
		return errors.New("quota exceeded")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = append(m.objects, storedObject{Namespace: ns.Name, Name: name, ContentType: contentType, Body: string(body)})
	return nil
}

type recordingNotifier struct {
	msgs []queue.Message
	err  error
}

func (n *recordingNotifier) Send(ctx context.Context, msg queue.Message) error {
	n.msgs = append(n.msgs, msg)
	return n.err
}

type filePart struct {
	field       string
	filename    string
	contentType string
	body        string
}

// multipartBody builds a form with fields in the given order followed by files.
func multipartBody(t *testing.T, fields [][2]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newMultipartRequest(t *testing.T, fields [][2]string, files []filePart) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, fields, files)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	return req
}
