package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/homeward-labs/docintel/internal/common"
)

// SendJSON posts a JSON body to url and returns the raw response body and
// status code. Failures come back wrapped in a common.ErrRemoteService
// sub-reason so callers can map them onto transport semantics without looking
// at the provider payload; the raw body is still returned alongside a non-2xx
// error for diagnostics.
func SendJSON(ctx context.Context, client *http.Client, url string, body any, headers map[string]string, logger *slog.Logger) ([]byte, int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}

	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		logger.Error("llm.http.encode_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		logger.Error("llm.http.build_request_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger.Info("llm.http.request",
		"req_id", reqID,
		"url", url,
		"content_length", len(bs),
	)

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("llm.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, fmt.Errorf("%w: %v", common.ErrRemoteTimeout, err)
		}
		return nil, 0, fmt.Errorf("%w: %v", common.ErrRemoteService, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("llm.http.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)

	logger.Info("llm.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if kind := statusFailure(resp.StatusCode); kind != nil {
		return raw, resp.StatusCode, fmt.Errorf("%w: status %d", kind, resp.StatusCode)
	}
	return raw, resp.StatusCode, nil
}

// statusFailure maps a non-2xx status code to its remote-service sub-reason.
func statusFailure(status int) error {
	switch {
	case status/100 == 2:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return common.ErrRemoteAuth
	case status == http.StatusRequestEntityTooLarge:
		return common.ErrRemotePayload
	default:
		return common.ErrRemoteStatus
	}
}
