// Package analysis provides the HTTP client for the remote swing-analysis
// service. The service is an external collaborator with a fixed contract:
// POST /api/analyze and GET /api/health. One request, one outcome — the
// client never retries.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/okian/swingmatch/internal/domain/model"
	"github.com/okian/swingmatch/pkg/logger"
	"github.com/okian/swingmatch/pkg/metrics"
)

// Default client configuration constants.
const (
	// defaultTimeout bounds one analyze request. Pose estimation over a
	// whole clip is slow, so the deadline is generous, but a request must
	// not hang forever.
	defaultTimeout = 300 * time.Second

	analyzePath = "/api/analyze"
	healthPath  = "/api/health"

	videoFieldName = "video"
	handFieldName  = "hand"

	// fallbackMessage is surfaced when the service gave no usable detail.
	fallbackMessage = "analysis failed, please try again"
)

// Transport error kinds used for metrics labels.
const (
	kindRequest = "request"
	kindStatus  = "status"
	kindDecode  = "decode"
)

// Client talks to the remote analysis service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("analysis")
	}
	return c
}

// errorBody is the service's structured failure payload.
type errorBody struct {
	Detail string `json:"detail"`
}

// AnalyzeSwing uploads one video with a hand preference and decodes the
// analysis result. Every failure mode — connection error, timeout,
// non-success status, undecodable body — comes back as a *TransportError
// with a human-readable message, never a partial result.
func (c *Client) AnalyzeSwing(ctx context.Context, video io.Reader, filename string, hand model.Hand) (*model.AnalysisResponse, error) {
	if !hand.Valid() {
		hand = model.DefaultHand()
	}

	body, contentType, err := encodeMultipart(video, filename, hand)
	if err != nil {
		return nil, &TransportError{Message: fallbackMessage, Err: fmt.Errorf("%w: %w", ErrRequest, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, body)
	if err != nil {
		return nil, &TransportError{Message: fallbackMessage, Err: fmt.Errorf("%w: %w", ErrRequest, err)}
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	metrics.RecordAnalyzeLatency(float64(latency.Milliseconds()))

	if err != nil {
		metrics.RecordTransportError(kindRequest)
		c.logger.Warn(ctx, "analyze request failed",
			logger.Duration("latency", latency),
			logger.Error(err),
		)
		return nil, &TransportError{Message: fallbackMessage, Err: fmt.Errorf("%w: %w", ErrRequest, err)}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		metrics.RecordTransportError(kindStatus)
		return nil, c.statusError(ctx, resp)
	}

	var result model.AnalysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.RecordTransportError(kindDecode)
		return nil, &TransportError{
			Message: fallbackMessage,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%w: %w", ErrDecode, err),
		}
	}
	if err := result.Validate(); err != nil {
		metrics.RecordTransportError(kindDecode)
		return nil, &TransportError{
			Message: fallbackMessage,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%w: %w", ErrDecode, err),
		}
	}

	c.logger.Info(ctx, "analyze request completed",
		logger.String("most_similar", result.MostSimilarPlayer),
		logger.Duration("latency", latency),
	)
	return &result, nil
}

// statusError turns a non-success response into a TransportError, surfacing
// the service's detail message verbatim when one is present.
func (c *Client) statusError(ctx context.Context, resp *http.Response) *TransportError {
	message := fallbackMessage
	var failure errorBody
	if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Detail != "" {
		message = failure.Detail
	}

	c.logger.Warn(ctx, "analyze request rejected",
		logger.Int("status", resp.StatusCode),
		logger.String("detail", message),
	)
	return &TransportError{
		Message: message,
		Status:  resp.StatusCode,
		Err:     fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode),
	}
}

// Health probes the service's liveness endpoint. Same timeout and error
// policy as AnalyzeSwing, no special payload handling.
func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return nil, &TransportError{Message: fallbackMessage, Err: fmt.Errorf("%w: %w", ErrRequest, err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordHealthCheck("failed")
		return nil, &TransportError{Message: fallbackMessage, Err: fmt.Errorf("%w: %w", ErrRequest, err)}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		metrics.RecordHealthCheck("failed")
		return nil, c.statusError(ctx, resp)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		metrics.RecordHealthCheck("failed")
		return nil, &TransportError{
			Message: fallbackMessage,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%w: %w", ErrDecode, err),
		}
	}

	metrics.RecordHealthCheck("ok")
	return &status, nil
}

// encodeMultipart builds the analyze request body: the video bytes under
// "video" and the hand preference under "hand".
func encodeMultipart(video io.Reader, filename string, hand model.Hand) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(videoFieldName, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, video); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField(handFieldName, string(hand)); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
