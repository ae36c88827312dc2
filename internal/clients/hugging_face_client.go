package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
	"golang.org/x/time/rate"
)

var ErrEndpointNotConfigured = errors.New("hugging face endpoint not configured")

var (
	huggingFaceInstance *HuggingFaceClient
	huggingFaceOnce     sync.Once
)

type HuggingFaceOptions struct {
	SentimentEndpoint string
	HealthEndpoint    string
	Timeout           time.Duration
	RequestsPerMinute int
	InitialBackoff    time.Duration
}

// HuggingFaceClient talks to a hosted sentiment model.
type HuggingFaceClient struct {
	Client            *http.Client
	sentimentEndpoint string
	healthEndpoint    string
	limiter           *rate.Limiter
	initialBackoff    time.Duration
}

func NewHuggingFaceClient(opts HuggingFaceOptions) *HuggingFaceClient {
	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}
	backoff := opts.InitialBackoff
	if backoff <= 0 {
		backoff = INITIAL_BACKOFF
	}

	return &HuggingFaceClient{
		Client:            &http.Client{Timeout: opts.Timeout},
		sentimentEndpoint: opts.SentimentEndpoint,
		healthEndpoint:    opts.HealthEndpoint,
		limiter:           rate.NewLimiter(limit, 1),
		initialBackoff:    backoff,
	}
}

// InitHuggingFace creates the process wide client once.
func InitHuggingFace(opts HuggingFaceOptions) *HuggingFaceClient {
	huggingFaceOnce.Do(func() {
		slog.Info("[HuggingFaceClient] Initializing Client",
			slog.Duration("timeout", opts.Timeout),
			slog.String("endpoint", opts.SentimentEndpoint),
			slog.Int("requests_per_minute", opts.RequestsPerMinute))
		huggingFaceInstance = NewHuggingFaceClient(opts)
	})
	return huggingFaceInstance
}

func GetHuggingFaceClient() *HuggingFaceClient {
	if huggingFaceInstance == nil {
		panic("[HuggingFaceClient] Error: client is not initialized")
	}
	return huggingFaceInstance
}

func (h *HuggingFaceClient) DoWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := h.initialBackoff

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		if err = h.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}

		if req.GetBody != nil {
			req.Body, _ = req.GetBody()
		}
		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil {
			resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	if err == nil {
		err = fmt.Errorf("server error: %s", errMsg(nil, resp))
	}
	return nil, err
}

// AnalyzeBatch scores a batch of rows with the remote sentiment model.
func (h *HuggingFaceClient) AnalyzeBatch(ctx context.Context, batch models.ContextualBatchRequest) (models.ContextualBatchResponse, error) {
	var result models.ContextualBatchResponse
	if h.sentimentEndpoint == "" {
		return result, ErrEndpointNotConfigured
	}

	slog.Info("[HuggingFaceClient] Requesting sentiment analysis",
		slog.Int("batch_size", len(batch)))
	start := time.Now()

	if err := h.postJSON(ctx, h.sentimentEndpoint, batch, &result); err != nil {
		slog.Error("[HuggingFaceClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return result, err
	}

	slog.Info("[HuggingFaceClient] Sentiment Analysis request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// HealthCheck reports whether the model service answers its health endpoint.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context) bool {
	if h.healthEndpoint == "" {
		return h.sentimentEndpoint != ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.healthEndpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed",
			slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return true
	}
	return health.Status == "" || health.Status == "ok"
}

// helper function for posting data to the model service
func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to build request",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.DoWithRetry(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		slog.Error("[HuggingFaceClient] Request rejected",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("request rejected: status code %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
