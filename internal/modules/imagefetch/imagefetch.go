package imagefetch

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pixelpage/internal/models"

	"go.uber.org/zap"
)

// DefaultURL requests a random 640x480 image.
const DefaultURL = "https://picsum.photos/640/480?random"

const fallbackContentType = "application/octet-stream"

// NetworkError is a transport-level fetch failure (DNS, refused connection,
// timeout, abort). It wraps the underlying cause.
type NetworkError struct {
	cause error
}

func (e *NetworkError) Error() string { return "image fetch failed: " + e.cause.Error() }

func (e *NetworkError) Unwrap() error { return e.cause }

// StatusError is a non-2xx upstream response. Status holds the status text
// reported by the server, e.g. "Not Found".
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string { return e.Status }

// BodyError is a payload read failure after a successful status check.
type BodyError struct {
	cause error
}

func (e *BodyError) Error() string { return "image body read failed: " + e.cause.Error() }

func (e *BodyError) Unwrap() error { return e.cause }

// Fetch issues one GET against url and returns the response body as a
// payload. The status is validated before the body is read; a non-OK
// response never attempts extraction.
func Fetch(ctx context.Context, client *http.Client, url string, logger *zap.Logger) (models.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Payload{}, &NetworkError{cause: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return models.Payload{}, &NetworkError{cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Payload{}, &StatusError{
			Code:   resp.StatusCode,
			Status: statusText(resp),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Payload{}, &BodyError{cause: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackContentType
	}

	logger.Debug("image fetched",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.String("content_type", contentType))

	return models.Payload{Data: data, ContentType: contentType}, nil
}

// statusText strips the numeric code from resp.Status ("404 Not Found"),
// falling back to the standard text when the server sent none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
