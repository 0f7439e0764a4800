package validators

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Creator is an input that builds a new document.
type Creator[T any] interface {
	Model() *T
}

// Updater is an input that produces a column-keyed partial update.
type Updater interface {
	Changes() map[string]any
}

// Date accepts RFC 3339 timestamps as well as plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return errors.New("please enter a valid date")
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func trimmed(p *string) string {
	return strings.TrimSpace(str(p))
}

func normalizeEmail(p *string) string {
	return strings.ToLower(trimmed(p))
}
