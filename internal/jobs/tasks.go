package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskQuoteShare renders a stored quote and sends it to a chat.
	TaskQuoteShare = "quote:share"

	shareMaxRetry = 3
)

// SharePayload identifies the quote to share and where it goes.
type SharePayload struct {
	RequestID string `json:"request_id"`
	CompanyID int64  `json:"company_id"`
	QuoteID   int64  `json:"quote_id"`
	ChatID    string `json:"chat_id"`
	// Format is the image format, "png" or "jpeg". Empty means png.
	Format string `json:"format,omitempty"`
}

// NewShareTask builds the task. The request ID doubles as the task ID so a
// repeated request is rejected by the queue; one is generated when empty.
func NewShareTask(p SharePayload) (*asynq.Task, error) {
	if p.RequestID == "" {
		p.RequestID = uuid.NewString()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal share payload: %w", err)
	}
	return asynq.NewTask(TaskQuoteShare, data,
		asynq.TaskID(p.RequestID),
		asynq.MaxRetry(shareMaxRetry),
		asynq.Queue(QueueDefault),
	), nil
}

func ParseSharePayload(t *asynq.Task) (SharePayload, error) {
	var p SharePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("jobs: decode %s payload: %w", t.Type(), err)
	}
	if p.QuoteID == 0 || p.CompanyID == 0 || p.ChatID == "" {
		return p, fmt.Errorf("jobs: incomplete %s payload", t.Type())
	}
	return p, nil
}
