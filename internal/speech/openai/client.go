package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/at-ishikawa/flash/internal/speech"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini-tts"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

func NewClient(apiKey, baseURL, model string, retryAttempts uint) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
		retryDelay:       retry.DefaultDelay,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type SpeechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	Instructions   string `json:"instructions,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// responseError keeps the status code of a failed API call so that retries can be decided
type responseError struct {
	statusCode int
	message    string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.message)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var respErr *responseError
	if errors.As(err, &respErr) {
		// Retry on rate limiting (429) and 5xx errors (server errors)
		return respErr.statusCode == http.StatusTooManyRequests || respErr.statusCode >= http.StatusInternalServerError
	}

	// Retry on network-related errors
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "EOF") {
		return true
	}
	return false
}

// Synthesize implements the speech.Client interface
func (client *Client) Synthesize(
	ctx context.Context,
	params speech.SynthesizeRequest,
) (io.ReadCloser, error) {
	var result io.ReadCloser
	if err := retry.Do(
		func() error {
			body, err := client.synthesize(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = body
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying OpenAI speech API call",
				"attempt", n+1,
				"voice", params.Voice,
				"lastError", err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		var respErr *responseError
		if errors.As(err, &respErr) &&
			(respErr.statusCode == http.StatusUnauthorized || respErr.statusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %v", speech.ErrAuthentication, err)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", speech.ErrSynthesis, err)
	}
	return result, nil
}

func (client *Client) synthesize(
	ctx context.Context,
	params speech.SynthesizeRequest,
) (io.ReadCloser, error) {
	requestBody := SpeechRequest{
		Model:          client.model,
		Input:          params.Text,
		Voice:          params.Voice,
		Instructions:   params.Instructions,
		ResponseFormat: "mp3",
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetDoNotParseResponse(true).
		Post("/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		defer func() {
			_ = response.Body.Close()
		}()
		return nil, &responseError{
			statusCode: response.StatusCode(),
			message:    readErrorMessage(response.Body),
		}
	}

	slog.Default().Debug("openai speech response",
		"model", client.model,
		"voice", params.Voice,
		"status", response.StatusCode(),
	)
	return response.Body, nil
}

func readErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("io.ReadAll > %v", err)
	}

	var decoded ErrorResponse
	if err := json.Unmarshal(content, &decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	return strings.TrimSpace(string(content))
}
