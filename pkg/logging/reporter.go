package logging

import (
	"context"
	"log/slog"

	"github.com/getmockd/mockswitch/pkg/messages"
)

// Reporter renders catalog messages and writes them to a logger at the
// severity each message carries.
type Reporter struct {
	log     *slog.Logger
	catalog messages.Catalog
	locale  messages.Locale
}

// NewReporter returns a Reporter writing to log in the given locale. A nil
// logger or the silent locale produces a reporter that drops everything.
func NewReporter(log *slog.Logger, locale messages.Locale) *Reporter {
	if log == nil {
		log = Nop()
	}
	return &Reporter{
		log:     log,
		catalog: messages.CatalogFor(locale),
		locale:  locale,
	}
}

// NopReporter returns a silent Reporter.
func NopReporter() *Reporter {
	return NewReporter(Nop(), messages.Silent)
}

// Report renders m and logs it.
func (r *Reporter) Report(ctx context.Context, m messages.Message) {
	if r == nil || r.locale.IsSilent() {
		return
	}
	var args []any
	if f, ok := m.(messages.Fielder); ok {
		args = f.Fields()
	}
	r.log.Log(ctx, m.Level(), r.catalog.Format(m), args...)
}

// Catalog returns the catalog used to render messages, for callers that print
// text directly (the console).
func (r *Reporter) Catalog() messages.Catalog {
	return r.catalog
}

// Locale returns the configured locale.
func (r *Reporter) Locale() messages.Locale {
	return r.locale
}

// Silent reports whether all output is suppressed.
func (r *Reporter) Silent() bool {
	return r.locale.IsSilent()
}
