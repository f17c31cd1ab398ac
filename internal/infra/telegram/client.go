// Package telegram sends generated quote files through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.telegram.org"

var ErrNotConfigured = errors.New("telegram: bot token not configured")

// APIError is a non-OK answer from the Bot API.
type APIError struct {
	Method      string
	Status      int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s: status=%d %s", e.Method, e.Status, e.Description)
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Log     *slog.Logger
}

func New(baseURL, token string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
		Log: log,
	}
}

func (c *Client) SendDocument(ctx context.Context, chatID, filename, contentType string, data []byte) error {
	return c.sendFile(ctx, "sendDocument", "document", chatID, filename, contentType, data)
}

func (c *Client) SendPhoto(ctx context.Context, chatID, filename, contentType string, data []byte) error {
	return c.sendFile(ctx, "sendPhoto", "photo", chatID, filename, contentType, data)
}

func (c *Client) sendFile(ctx context.Context, method, field, chatID, filename, contentType string, data []byte) error {
	if c.Token == "" {
		return ErrNotConfigured
	}
	body, formType, err := buildFileMultipart(field, chatID, filename, contentType, data)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	urlStr := fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.Token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, body)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	req.Header.Set("Content-Type", formType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Error("telegram request failed", "method", method, "chat_id", chatID, "error", err)
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		apiErr := &APIError{Method: method, Status: resp.StatusCode, Description: describe(msg)}
		c.Log.Warn("telegram request rejected", "method", method, "chat_id", chatID, "status", resp.StatusCode, "body", strings.TrimSpace(string(msg)))
		return apiErr
	}
	return nil
}

func describe(body []byte) string {
	var r struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &r); err == nil && r.Description != "" {
		return r.Description
	}
	return strings.TrimSpace(string(body))
}

func buildFileMultipart(field, chatID, filename, contentType string, data []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if chatID != "" {
		if err := writer.WriteField("chat_id", chatID); err != nil {
			return nil, "", err
		}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
