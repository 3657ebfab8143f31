package intake

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ParseSubmission reads the request body in wire order. Go's form parsing
// stores values in maps, which would lose the questionnaire order, so the
// body is streamed instead. Files under "photos" are spooled to tempDir; on
// error everything spooled so far is removed.
func ParseSubmission(r *http.Request, tempDir string) (*Submission, error) {
	sub := &Submission{}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		// No parsable content type means no form fields.
		return sub, nil
	}

	switch mediaType {
	case "multipart/form-data":
		err = parseMultipart(r, tempDir, sub)
	case "application/x-www-form-urlencoded":
		err = parseURLEncoded(r.Body, sub)
	}
	if err != nil {
		_ = sub.Close()
		return nil, err
	}
	return sub, nil
}

func parseURLEncoded(body io.Reader, sub *Submission) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read form body: %w", err)
	}
	for _, pair := range strings.Split(string(raw), "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		sub.addField(unescapeField(key), unescapeField(value))
	}
	return nil
}

// unescapeField decodes a urlencoded key or value. A malformed escape such
// as the "%" in "50%off" is kept as literal text rather than failing the
// whole submission.
func unescapeField(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func parseMultipart(r *http.Request, tempDir string, sub *Submission) error {
	mr, err := r.MultipartReader()
	if err != nil {
		return fmt.Errorf("read multipart body: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read multipart part: %w", err)
		}

		if err := readPart(part, tempDir, sub); err != nil {
			_ = part.Close()
			return err
		}
		_ = part.Close()
	}
}

func readPart(part *multipart.Part, tempDir string, sub *Submission) error {
	name := part.FormName()
	if name == "" {
		return nil
	}

	if !isFilePart(part) {
		value, err := io.ReadAll(part)
		if err != nil {
			return fmt.Errorf("read field %q: %w", name, err)
		}
		sub.addField(name, string(value))
		return nil
	}

	filename := part.FileName()
	if name != PhotosField || filename == "" {
		return nil
	}

	att, err := spool(part, tempDir, filename, part.Header.Get("Content-Type"))
	if err != nil {
		return err
	}
	sub.Attachments = append(sub.Attachments, att)
	return nil
}

// isFilePart reports whether the part declares a filename parameter, even an
// empty one.
func isFilePart(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}

func spool(r io.Reader, tempDir, filename, contentType string) (*Attachment, error) {
	f, err := os.CreateTemp(tempDir, "intake-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	att := &Attachment{
		Filename:    filename,
		ContentType: strings.TrimSpace(contentType),
		path:        f.Name(),
	}
	if att.ContentType == "" {
		att.ContentType = defaultContentType
	}

	n, err := io.Copy(f, r)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = att.Release()
		return nil, fmt.Errorf("buffer %q: %w", filename, err)
	}
	att.Size = n
	return att, nil
}
