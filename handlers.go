package recwire

import (
	"context"
	"net/mail"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/recwire/recwire/i18n"
)

// Built-in format handlers. All of them store strings in the record and
// canonicalize on Decode; paths are rooted at "/" and rebased by the engine
// under the owning field.

func formatIssue(hint string) Issues {
	return Issues{Issue{Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil), Hint: hint}}
}

func typeIssue(hint string) Issues {
	return Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: hint}}
}

// emailHandler accepts a bare RFC 5322 address (no display name).
type emailHandler struct{}

func (emailHandler) Decode(ctx context.Context, node any) (any, error) {
	s, ok := node.(string)
	if !ok {
		return nil, typeIssue("expected email string")
	}
	a, err := mail.ParseAddress(s)
	if err != nil || a.Name != "" {
		return nil, formatIssue("invalid email address")
	}
	return a.Address, nil
}

func (h emailHandler) Validate(ctx context.Context, node any) error {
	_, err := h.Decode(ctx, node)
	return err
}

func (h emailHandler) Encode(ctx context.Context, v any) (any, error) {
	return h.Decode(ctx, v)
}

// urlHandler accepts absolute URLs only (scheme and host required).
type urlHandler struct{}

func (urlHandler) Decode(ctx context.Context, node any) (any, error) {
	s, ok := node.(string)
	if !ok {
		return nil, typeIssue("expected url string")
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, formatIssue("invalid absolute url")
	}
	return u.String(), nil
}

func (h urlHandler) Validate(ctx context.Context, node any) error {
	_, err := h.Decode(ctx, node)
	return err
}

func (h urlHandler) Encode(ctx context.Context, v any) (any, error) {
	return h.Decode(ctx, v)
}

// uuidHandler canonicalizes to the lower-case hyphenated form.
type uuidHandler struct{}

func (uuidHandler) Decode(ctx context.Context, node any) (any, error) {
	s, ok := node.(string)
	if !ok {
		return nil, typeIssue("expected uuid string")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, formatIssue("invalid uuid")
	}
	return u.String(), nil
}

func (h uuidHandler) Validate(ctx context.Context, node any) error {
	_, err := h.Decode(ctx, node)
	return err
}

func (h uuidHandler) Encode(ctx context.Context, v any) (any, error) {
	return h.Decode(ctx, v)
}

const dateLayout = "2006-01-02"

// dateHandler accepts calendar dates in the fixed "2006-01-02" layout.
type dateHandler struct{}

func (dateHandler) Decode(ctx context.Context, node any) (any, error) {
	s, ok := node.(string)
	if !ok {
		return nil, typeIssue("expected date string")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, formatIssue("invalid date, want " + dateLayout)
	}
	return t.Format(dateLayout), nil
}

func (h dateHandler) Validate(ctx context.Context, node any) error {
	_, err := h.Decode(ctx, node)
	return err
}

func (h dateHandler) Encode(ctx context.Context, v any) (any, error) {
	return h.Decode(ctx, v)
}

// dateTimeHandler accepts RFC3339 with optional fractional seconds and emits
// the canonical form (fractional part only when non-zero).
type dateTimeHandler struct{}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format(time.RFC3339)
	}
	return t.Format(time.RFC3339Nano)
}

func (dateTimeHandler) Decode(ctx context.Context, node any) (any, error) {
	s, ok := node.(string)
	if !ok {
		return nil, typeIssue("expected datetime string")
	}
	t, err := parseRFC3339(s)
	if err != nil {
		return nil, formatIssue("invalid RFC3339 datetime")
	}
	return formatRFC3339Canonical(t), nil
}

func (h dateTimeHandler) Validate(ctx context.Context, node any) error {
	_, err := h.Decode(ctx, node)
	return err
}

func (h dateTimeHandler) Encode(ctx context.Context, v any) (any, error) {
	return h.Decode(ctx, v)
}
