package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"liyu1981.xyz/dialog-service/pkg/common"
)

const DefaultTimeout = 10 * time.Second

// Client talks HTTP/JSON to the DiaLog backend. Every call is bounded by the
// http.Client timeout, and nothing is retried.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

var _ Port = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Tokens:     tokens,
	}
}

func (c *Client) SubmitConditions(ctx context.Context, batch SubmitConditionsRequest) (*SubmitConditionsResponse, error) {
	var resp SubmitConditionsResponse
	if err := c.do(ctx, "submit conditions", http.MethodPost, PathConditions, batch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AlertDoctor(ctx context.Context, req AlertDoctorRequest) (*AlertDoctorResponse, error) {
	var resp AlertDoctorResponse
	if err := c.do(ctx, "alert doctor", http.MethodPost, PathAlertDoctor, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetGraph(ctx context.Context, q GraphQuery) (*GraphResponse, error) {
	params := url.Values{}
	params.Set("datatype", q.DataType)
	params.Set("start_datetime", q.Start)
	params.Set("end_datetime", q.End)
	if q.UserID != "" {
		params.Set("user_id", q.UserID)
	}

	var resp GraphResponse
	if err := c.do(ctx, "get graph", http.MethodGet, PathGraphs+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload, out any) error {
	logger := common.GetCategoryLogger(common.LoggerNameAPIClient, common.LoggerCategoryClient)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, op, req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("Request failed", zap.String("op", op), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Unexpected status", zap.String("op", op), zap.Int("status", resp.StatusCode))
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(errorMessage(respBody))}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	logger.Debug("Request done", zap.String("op", op), zap.Int("status", resp.StatusCode))
	return nil
}

// authorize attaches the bearer token when there is one. A missing token is
// not an error: the request goes out anonymously.
func (c *Client) authorize(ctx context.Context, op string, req *http.Request) {
	var (
		token string
		err   = ErrNoToken
	)
	if c.Tokens != nil {
		token, err = c.Tokens.Token(ctx)
	}
	if err != nil || token == "" {
		common.GetCategoryLogger(common.LoggerNameAPIClient, common.LoggerCategoryAuth).
			Warn("Missing auth token, sending without Authorization", zap.String("op", op), zap.Error(err))
		return
	}

	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
}

func errorMessage(body []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err == nil && m.Message != "" {
		return m.Message
	}
	if len(body) == 0 {
		return "empty response"
	}
	return strings.TrimSpace(string(body))
}
