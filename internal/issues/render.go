package issues

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

// Rendered is a notice with its display strings resolved for one locale.
//
// This is the payload published to wall panels: reference tokens are
// replaced by their common-table values and every {placeholder} token is
// substituted, so consumers never see raw markup.
type Rendered struct {
	// ID uniquely identifies this rendering (envelope ID, not the issue).
	ID string `json:"id"`

	IssueID     string   `json:"issue_id"`
	IssueDomain string   `json:"issue_domain"`
	Severity    Severity `json:"severity"`

	// Locale the strings were rendered in.
	Locale string `json:"locale"`

	Title       string `json:"title"`
	Description string `json:"description"`

	BreaksInVersion string `json:"breaks_in_version,omitempty"`
	IsFixable       bool   `json:"is_fixable"`
	IsPersistent    bool   `json:"is_persistent"`

	RenderedAt time.Time `json:"rendered_at"`
}

// Renderer resolves notices into display strings.
type Renderer struct {
	resolver *strtab.Resolver
}

// NewRenderer creates a Renderer backed by the given resolver.
func NewRenderer(resolver *strtab.Resolver) *Renderer {
	return &Renderer{resolver: resolver}
}

// Render resolves a notice's title and description for the requested locale.
//
// An empty locale selects the resolver's default. The notice's placeholders
// must cover every {placeholder} token in the title and description;
// strtab.ErrMissingPlaceholder is returned otherwise.
//
// Parameters:
//   - notice: The notice to render
//   - locale: Requested BCP 47 locale, empty for the default
//
// Returns:
//   - *Rendered: Notice with resolved display strings
//   - error: Validation or resolution failure
func (r *Renderer) Render(notice Notice, locale string) (*Rendered, error) {
	if err := notice.Validate(); err != nil {
		return nil, err
	}

	title, err := r.resolver.Resolve(notice.IssueDomain, locale, notice.titleKey(), notice.Placeholders)
	if err != nil {
		return nil, fmt.Errorf("rendering title for issue %q: %w", notice.IssueID, err)
	}

	description, err := r.resolver.Resolve(notice.IssueDomain, locale, notice.descriptionKey(), notice.Placeholders)
	if err != nil {
		return nil, fmt.Errorf("rendering description for issue %q: %w", notice.IssueID, err)
	}

	// Record the locale actually selected by negotiation, not the request.
	_, selected, err := r.resolver.Table(notice.IssueDomain, locale)
	if err != nil {
		return nil, err
	}

	return &Rendered{
		ID:              uuid.NewString(),
		IssueID:         notice.IssueID,
		IssueDomain:     notice.IssueDomain,
		Severity:        notice.Severity,
		Locale:          selected,
		Title:           title,
		Description:     description,
		BreaksInVersion: notice.BreaksInVersion,
		IsFixable:       notice.IsFixable,
		IsPersistent:    notice.IsPersistent,
		RenderedAt:      time.Now().UTC(),
	}, nil
}
