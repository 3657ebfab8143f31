package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBodyLimitRejectsDeclaredOversize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
	if called {
		t.Fatalf("handler must not run")
	}
}

func TestBodyLimitCapsStreamingBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var readErr error
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		_, readErr = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	req.ContentLength = -1
	r.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	if readErr == nil || !errors.As(readErr, &maxErr) {
		t.Fatalf("expected MaxBytesError, got %v", readErr)
	}
}

func TestBodyLimitFlagsOverflowBehindMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var exceeded bool
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/", func(c *gin.Context) {
		mr, err := c.Request.MultipartReader()
		if err == nil {
			for {
				part, err := mr.NextPart()
				if err != nil {
					break
				}
				if _, err := io.Copy(io.Discard, part); err != nil {
					break
				}
			}
		}
		exceeded = BodyLimitExceeded(c)
		c.Status(http.StatusOK)
	})

	body := "--b\r\nContent-Disposition: form-data; name=\"notes\"\r\n\r\n" +
		strings.Repeat("x", 200) + "\r\n--b--\r\n"
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
	req.ContentLength = -1
	r.ServeHTTP(httptest.NewRecorder(), req)

	if !exceeded {
		t.Fatalf("expected overflow to be recorded")
	}
}

func TestBodyLimitNotExceededWithinLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	exceeded := true
	r := gin.New()
	r.Use(BodyLimit(64))
	r.POST("/", func(c *gin.Context) {
		_, _ = io.ReadAll(c.Request.Body)
		exceeded = BodyLimitExceeded(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))
	req.ContentLength = -1
	r.ServeHTTP(httptest.NewRecorder(), req)

	if exceeded {
		t.Fatalf("expected no overflow")
	}
}
