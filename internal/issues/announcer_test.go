package issues

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// fakePublisher records published messages for assertions.
type fakePublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) PublishRetained(topic string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestAnnounce(t *testing.T) {
	pub := &fakePublisher{}
	announcer := NewAnnouncer(pub)

	rendered := &Rendered{
		ID:          "envelope-1",
		IssueID:     "deprecated_light_fan_on",
		IssueDomain: "lutron",
		Severity:    SeverityWarning,
		Locale:      "en",
		Title:       "Turning on fans as lights is deprecated",
		Description: "Use the fan entity instead.",
	}

	if err := announcer.Announce(context.Background(), rendered); err != nil {
		t.Fatalf("Announce() unexpected error: %v", err)
	}

	if len(pub.topics) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.topics))
	}
	wantTopic := "graylogic/strings/issue/lutron/deprecated_light_fan_on"
	if pub.topics[0] != wantTopic {
		t.Errorf("topic = %q, want %q", pub.topics[0], wantTopic)
	}

	var decoded Rendered
	if err := json.Unmarshal(pub.payloads[0], &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.IssueID != rendered.IssueID || decoded.Title != rendered.Title {
		t.Errorf("decoded payload = %+v, want original notice fields", decoded)
	}
}

func TestAnnouncePublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}
	announcer := NewAnnouncer(pub)

	err := announcer.Announce(context.Background(), &Rendered{
		IssueID:     "deprecated_light_fan_on",
		IssueDomain: "lutron",
	})
	if !errors.Is(err, ErrAnnounceFailed) {
		t.Errorf("Announce() error = %v, want %v", err, ErrAnnounceFailed)
	}
}

func TestAnnounceContextCancelled(t *testing.T) {
	pub := &fakePublisher{}
	announcer := NewAnnouncer(pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := announcer.Announce(ctx, &Rendered{
		IssueID:     "deprecated_light_fan_on",
		IssueDomain: "lutron",
	})
	if !errors.Is(err, ErrAnnounceFailed) {
		t.Errorf("Announce() error = %v, want %v", err, ErrAnnounceFailed)
	}
	if len(pub.topics) != 0 {
		t.Errorf("published %d messages after cancellation, want 0", len(pub.topics))
	}
}
