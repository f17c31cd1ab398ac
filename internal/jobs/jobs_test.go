package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mensalizou/go_backend/internal/domain/company"
	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/docgen"
	"mensalizou/go_backend/internal/domain/quote/pdf/gofpdf"
	"mensalizou/go_backend/internal/domain/quote/raster"
	"mensalizou/go_backend/internal/infra/db/repository"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestEnqueueShare(t *testing.T) {
	mr := miniredis.RunT(t)
	opts := asynq.RedisClientOpt{Addr: mr.Addr()}
	client := NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	p := SharePayload{RequestID: "req-1", CompanyID: 3, QuoteID: 7, ChatID: "-100", Format: "jpeg"}
	id, err := client.EnqueueShare(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "req-1", id)

	_, err = client.EnqueueShare(context.Background(), p)
	assert.ErrorIs(t, err, asynq.ErrTaskIDConflict)

	inspector := asynq.NewInspector(opts)
	t.Cleanup(func() { _ = inspector.Close() })
	tasks, err := inspector.ListPendingTasks(QueueDefault)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskQuoteShare, tasks[0].Type)
	assert.Equal(t, shareMaxRetry, tasks[0].MaxRetry)

	got, err := ParseSharePayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestNewShareTaskGeneratesRequestID(t *testing.T) {
	task, err := NewShareTask(SharePayload{CompanyID: 1, QuoteID: 2, ChatID: "3"})
	require.NoError(t, err)
	p, err := ParseSharePayload(task)
	require.NoError(t, err)
	assert.Len(t, p.RequestID, 36)
}

func TestParseSharePayloadRejectsIncomplete(t *testing.T) {
	data, _ := json.Marshal(SharePayload{QuoteID: 2})
	_, err := ParseSharePayload(asynq.NewTask(TaskQuoteShare, data))
	assert.Error(t, err)

	_, err = ParseSharePayload(asynq.NewTask(TaskQuoteShare, []byte("{")))
	assert.Error(t, err)
}

type fakeLoader struct {
	quote   quote.Quote
	company company.Company
	err     error
}

func (f fakeLoader) Quote(context.Context, int64, int64) (quote.Quote, error) {
	return f.quote, f.err
}

func (f fakeLoader) Company(context.Context, int64) (company.Company, error) {
	return f.company, f.err
}

type recordingSender struct {
	names []string
	err   error
}

func (r *recordingSender) SendDocument(_ context.Context, _, name, _ string, _ []byte) error {
	r.names = append(r.names, name)
	return r.err
}

func (r *recordingSender) SendPhoto(_ context.Context, _, name, _ string, _ []byte) error {
	r.names = append(r.names, name)
	return r.err
}

func newJob(loader Loader, sender docgen.Sender) *ShareJob {
	return NewShareJob(ShareJobConfig{
		Loader:  loader,
		Service: docgen.New(gofpdf.New(), &raster.Generator{}, nil, discard()),
		Sender:  sender,
		Logger:  discard(),
	})
}

func shareTask(t *testing.T, p SharePayload) *asynq.Task {
	t.Helper()
	task, err := NewShareTask(p)
	require.NoError(t, err)
	return task
}

func TestShareJobSendsPDFAndImage(t *testing.T) {
	loader := fakeLoader{
		quote: quote.Quote{
			ID:     7,
			Client: quote.Client{Name: "Ana"},
			Items: []quote.LineItem{
				{Quantity: 1, Item: quote.CatalogItem{Description: "Pula-pula", UnitPrice: decimal.NewFromInt(100)}},
			},
		},
		company: company.Company{ID: 3, Name: "Mundo Kids"},
	}
	sender := &recordingSender{}

	err := newJob(loader, sender).Handle(context.Background(), shareTask(t, SharePayload{CompanyID: 3, QuoteID: 7, ChatID: "1", Format: "jpeg"}))
	require.NoError(t, err)
	require.Len(t, sender.names, 2)
	assert.Regexp(t, `^orcamento_Ana_.*\.pdf$`, sender.names[0])
	assert.Regexp(t, `^orcamento_Ana_.*\.jpg$`, sender.names[1])
}

func TestShareJobSkipsRetryForMissingQuote(t *testing.T) {
	loader := fakeLoader{err: fmt.Errorf("%w: quote 7", repository.ErrNotFound)}
	err := newJob(loader, &recordingSender{}).Handle(context.Background(), shareTask(t, SharePayload{CompanyID: 3, QuoteID: 7, ChatID: "1"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestShareJobRetriesTransientFailures(t *testing.T) {
	loader := fakeLoader{err: errors.New("connection reset")}
	err := newJob(loader, &recordingSender{}).Handle(context.Background(), shareTask(t, SharePayload{CompanyID: 3, QuoteID: 7, ChatID: "1"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)

	loader = fakeLoader{quote: quote.Quote{ID: 7}}
	err = newJob(loader, &recordingSender{err: errors.New("timeout")}).Handle(context.Background(), shareTask(t, SharePayload{CompanyID: 3, QuoteID: 7, ChatID: "1"}))
	assert.ErrorIs(t, err, docgen.ErrShare)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestShareJobRejectsBadFormat(t *testing.T) {
	err := newJob(fakeLoader{}, &recordingSender{}).Handle(context.Background(), shareTask(t, SharePayload{CompanyID: 3, QuoteID: 7, ChatID: "1", Format: "gif"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, raster.ErrInvalidOptions)
}

func TestNewWorkerNeedsHandlers(t *testing.T) {
	_, err := NewWorker(WorkerConfig{RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"}})
	assert.Error(t, err)

	w, err := NewWorker(WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"},
		Handlers:  []TaskHandler{{Type: TaskQuoteShare, Handler: newJob(fakeLoader{}, &recordingSender{}).Handle}},
	})
	require.NoError(t, err)
	assert.NotNil(t, w)
}
