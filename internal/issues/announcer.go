package issues

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nerrad567/gray-logic-strings/internal/infrastructure/mqtt"
)

// Publisher is the broker surface the announcer needs.
// *mqtt.Client satisfies it.
type Publisher interface {
	PublishRetained(topic string, payload []byte) error
}

// Logger interface for optional logging support.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Announcer publishes rendered notices to the broker.
//
// Notices are published retained, one topic per issue, so panels that
// subscribe after startup still receive the current set.
type Announcer struct {
	publisher Publisher
	logger    Logger
}

// NewAnnouncer creates an Announcer using the given publisher.
func NewAnnouncer(publisher Publisher) *Announcer {
	return &Announcer{publisher: publisher}
}

// SetLogger sets an optional logger for announce events.
func (a *Announcer) SetLogger(logger Logger) {
	a.logger = logger
}

// Announce publishes a rendered notice as retained JSON.
//
// Topic: graylogic/strings/issue/{issue_domain}/{issue_id}
//
// Parameters:
//   - ctx: Context for cancellation
//   - rendered: The rendered notice to publish
//
// Returns:
//   - error: ErrAnnounceFailed wrapping the publish failure
func (a *Announcer) Announce(ctx context.Context, rendered *Rendered) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrAnnounceFailed, ctx.Err())
	default:
	}

	payload, err := json.Marshal(rendered)
	if err != nil {
		return fmt.Errorf("%w: encoding notice %q: %w", ErrAnnounceFailed, rendered.IssueID, err)
	}

	topic := mqtt.Topics{}.IssueNotice(rendered.IssueDomain, rendered.IssueID)
	if err := a.publisher.PublishRetained(topic, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrAnnounceFailed, err)
	}

	if a.logger != nil {
		a.logger.Info("announced issue notice",
			"issue_id", rendered.IssueID,
			"issue_domain", rendered.IssueDomain,
			"locale", rendered.Locale,
		)
	}

	return nil
}
