package bootstrap_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"intake-backend/internal/bootstrap"
	"intake-backend/internal/shared/config"
)

func buildRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(cfg)
	require.NoError(t, err)
	return app.Router
}

func TestSubmissionStoredLocally(t *testing.T) {
	storeDir := t.TempDir()
	router := buildRouter(t, config.Config{
		StorageBackend: "local",
		LocalStoreDir:  storeDir,
		UploadTempDir:  t.TempDir(),
	})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("business_name", "Acme Co"))
	require.NoError(t, writer.WriteField("contact_email", "a@b.com"))
	fw, err := writer.CreateFormFile("photos", "storefront.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.Contains(t, resp.Body.String(), "Acme Co")

	dirs, err := os.ReadDir(storeDir)
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	require.True(t, strings.HasSuffix(dirs[0].Name(), "_Acme_Co"), dirs[0].Name())

	nsDir := filepath.Join(storeDir, dirs[0].Name())
	transcript, err := os.ReadFile(filepath.Join(nsDir, "intake_answers.txt"))
	require.NoError(t, err)
	require.Contains(t, string(transcript), "HALEY DYNAMIC SYSTEMS - CLIENT INTAKE")
	require.Contains(t, string(transcript), "Email:\n  a@b.com\n")

	photo, err := os.ReadFile(filepath.Join(nsDir, "storefront.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(photo))
}

func TestHealthIgnoresStorageConfig(t *testing.T) {
	router := buildRouter(t, config.Config{StorageBackend: "drive"})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "ok", resp.Body.String())
}

func TestMissingDriveConfigReturns500(t *testing.T) {
	router := buildRouter(t, config.Config{StorageBackend: "drive"})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("business_name=Acme"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.Contains(t, resp.Body.String(), "GOOGLE_APPLICATION_CREDENTIALS_JSON not set")
}

func TestOversizedBodyRejected(t *testing.T) {
	router := buildRouter(t, config.Config{
		StorageBackend: "local",
		LocalStoreDir:  t.TempDir(),
		MaxUploadBytes: 16,
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("business_name=this+is+far+too+long"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestMetricsExposed(t *testing.T) {
	router := buildRouter(t, config.Config{StorageBackend: "local", LocalStoreDir: t.TempDir()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "submissions_received_total")
}

func TestOversizedChunkedMultipartRejected(t *testing.T) {
	storeDir := t.TempDir()
	router := buildRouter(t, config.Config{
		StorageBackend: "local",
		LocalStoreDir:  storeDir,
		UploadTempDir:  t.TempDir(),
		MaxUploadBytes: 16,
	})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("additional_notes", strings.Repeat("x", 200)))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = -1
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code, resp.Body.String())

	dirs, err := os.ReadDir(storeDir)
	require.NoError(t, err)
	require.Empty(t, dirs)
}

func TestSubmitNotRateLimitedByDefault(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("LOCAL_STORE_DIR", t.TempDir())
	t.Setenv("SUBMIT_BURST", "")
	t.Setenv("SUBMIT_RATE_PER_MINUTE", "")
	t.Setenv("NOTIFY_SQS_QUEUE_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	router := buildRouter(t, cfg)

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("business_name=Acme"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code, "request %d", i)
	}
}
