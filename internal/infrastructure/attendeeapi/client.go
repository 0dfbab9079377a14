package attendeeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/pkg/config"
)

// ResumeFormField は履歴書ファイルのmultipartフィールド名です
const ResumeFormField = "resume"

// StatusError は2xx以外の応答を表します
// 応答ボディは解釈しない
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Config は参加者APIクライアント設定を定義します
type Config struct {
	BaseURL string // 空の場合はconfig.DefaultAttendeeAPIURL
	Timeout time.Duration
}

// ConfigFrom はアプリケーションのクライアント設定を変換します
func ConfigFrom(cfg config.ClientConfig) Config {
	return Config{BaseURL: cfg.AttendeeAPIURL, Timeout: cfg.Timeout}
}

// Client は参加者APIのHTTPクライアントです
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
}

// Option はClientのオプションです
type Option func(*Client)

// WithHTTPClient は使用するhttp.Clientを差し替えます
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource はBearerトークンの取得元を設定します
func WithTokenSource(token func() string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient は新しいClientを作成します
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = config.DefaultAttendeeAPIURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ service.AttendeeStore = (*Client)(nil)

// Get はレコードを取得します
func (c *Client) Get(ctx context.Context, userID string) (*entity.Attendee, error) {
	req, err := c.newRequest(ctx, http.MethodGet, userID, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Replace はレコード全体を置き換えます
func (c *Client) Replace(ctx context.Context, userID string, attendee *entity.Attendee) (*entity.Attendee, error) {
	body, err := json.Marshal(fromEntity(attendee))
	if err != nil {
		return nil, fmt.Errorf("failed to encode attendee: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, userID, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// PatchResume は履歴書ファイルをmultipartで送信します
func (c *Client) PatchResume(ctx context.Context, userID string, file service.ResumeFile) (*entity.Attendee, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, ResumeFormField, escapeQuotes(file.Name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, userID, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, userID string, body io.Reader) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s/attendees/%s/", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*entity.Attendee, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Method: req.Method, Path: req.URL.Path, StatusCode: resp.StatusCode}
	}

	var record attendeeRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode attendee: %w", err)
	}
	return record.toEntity(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
