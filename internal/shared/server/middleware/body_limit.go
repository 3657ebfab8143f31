package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/shared/server/respond"
)

const bodyLimitKey = "body_limit"

// limitedBody records whether the capped reader ever hit its limit. Body
// parsers such as mime/multipart do not always keep the *http.MaxBytesError
// in their error chain.
type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooLarge *http.MaxBytesError
	if err != nil && errors.As(err, &tooLarge) {
		b.exceeded = true
	}
	return n, err
}

// BodyLimit rejects requests whose declared length exceeds maxBytes and caps
// the body reader for the rest.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			respond.Error(c, http.StatusRequestEntityTooLarge, "too_large",
				fmt.Sprintf("Request body exceeds %d bytes", maxBytes))
			return
		}
		body := &limitedBody{ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)}
		c.Request.Body = body
		c.Set(bodyLimitKey, body)
		c.Next()
	}
}

// BodyLimitExceeded reports whether the request body was read past the limit
// installed by BodyLimit.
func BodyLimitExceeded(c *gin.Context) bool {
	v, ok := c.Get(bodyLimitKey)
	if !ok {
		return false
	}
	body, ok := v.(*limitedBody)
	return ok && body.exceeded
}
