package telegram

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	path, chatID, field, filename, contentType string
	data                                       []byte
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		got.chatID = r.FormValue("chat_id")
		for field, files := range r.MultipartForm.File {
			got.field = field
			got.filename = files[0].Filename
			got.contentType = files[0].Header.Get("Content-Type")
			if f, err := files[0].Open(); err == nil {
				got.data, _ = io.ReadAll(f)
				f.Close()
			}
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func newClient(url string) *Client {
	return New(url, "TOKEN", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSendDocument(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"ok":true}`)
	err := newClient(srv.URL).SendDocument(context.Background(), "123", "orcamento_Ana.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "/botTOKEN/sendDocument", got.path)
	assert.Equal(t, "123", got.chatID)
	assert.Equal(t, "document", got.field)
	assert.Equal(t, "orcamento_Ana.pdf", got.filename)
	assert.Equal(t, "application/pdf", got.contentType)
	assert.Equal(t, []byte("%PDF"), got.data)
}

func TestSendPhoto(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"ok":true}`)
	err := newClient(srv.URL+"/").SendPhoto(context.Background(), "-100", "a.png", "", []byte{1, 2})
	require.NoError(t, err)

	assert.Equal(t, "/botTOKEN/sendPhoto", got.path)
	assert.Equal(t, "photo", got.field)
	assert.Equal(t, "application/octet-stream", got.contentType)
}

func TestSendReportsAPIError(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{"ok":false,"description":"Bad Request: chat not found"}`)
	err := newClient(srv.URL).SendDocument(context.Background(), "1", "a.pdf", "application/pdf", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "sendDocument", apiErr.Method)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad Request: chat not found", apiErr.Description)
}

func TestSendWithoutToken(t *testing.T) {
	c := New("", "", nil)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.ErrorIs(t, c.SendPhoto(context.Background(), "1", "a.png", "image/png", nil), ErrNotConfigured)
}
