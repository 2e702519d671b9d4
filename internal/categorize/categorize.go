// Package categorize maps free-text transaction descriptions to expense
// categories: an optional classifier is asked first and an ordered keyword
// table decides when it has nothing to say.
package categorize

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tinoosan/smartbudget/internal/dictionary"
)

// Classifier suggests a category for a description. It may fail or be slow;
// any error or blank answer counts as no suggestion.
type Classifier interface {
	Classify(ctx context.Context, description string) (string, error)
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(ctx context.Context, description string) (string, error)

// Classify calls f.
func (f ClassifierFunc) Classify(ctx context.Context, description string) (string, error) {
	return f(ctx, description)
}

// Rule binds a category to the keywords that select it.
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules returns the curated keyword table in match order.
func DefaultRules() []Rule {
	defs := dictionary.Categories()
	out := make([]Rule, 0, len(defs))
	for _, d := range defs {
		out = append(out, Rule{Category: d.Label, Keywords: d.Keywords})
	}
	return out
}

// Categorizer assigns categories to expense descriptions. The zero value is
// not usable; build one with New.
type Categorizer struct {
	rules      []Rule
	fallback   string
	classifier Classifier
	timeout    time.Duration
	logger     *slog.Logger
}

// Option customises a Categorizer.
type Option func(*Categorizer)

// WithRules replaces the keyword table. Order is preserved; the first rule
// with a matching keyword wins.
func WithRules(rules []Rule) Option {
	return func(c *Categorizer) {
		if len(rules) == 0 {
			return
		}
		c.rules = normalizeRules(rules)
	}
}

// WithClassifier consults cl before the keyword table.
func WithClassifier(cl Classifier) Option {
	return func(c *Categorizer) { c.classifier = cl }
}

// WithTimeout bounds each classifier call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Categorizer) { c.timeout = d }
}

// WithDefault sets the category used when nothing matches.
func WithDefault(category string) Option {
	return func(c *Categorizer) {
		if s := strings.TrimSpace(category); s != "" {
			c.fallback = s
		}
	}
}

// WithLogger sets the logger used to report classifier failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Categorizer) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Categorizer using the curated table unless overridden.
func New(opts ...Option) *Categorizer {
	c := &Categorizer{
		rules:    normalizeRules(DefaultRules()),
		fallback: dictionary.DefaultCategory,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns a copy of the keyword table in match order.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Default returns the category used when nothing matches.
func (c *Categorizer) Default() string { return c.fallback }

// Categorize returns the classifier's suggestion when there is one,
// otherwise the keyword match. It never fails.
func (c *Categorizer) Categorize(ctx context.Context, description string) string {
	if cat, ok := c.Suggest(ctx, description); ok {
		return cat
	}
	return c.Match(description)
}

// Match runs only the keyword table.
func (c *Categorizer) Match(description string) string {
	if cat, ok := MatchKeywords(c.rules, description); ok {
		keywordMatches.WithLabelValues("keyword").Inc()
		return cat
	}
	keywordMatches.WithLabelValues("default").Inc()
	return c.fallback
}

// Suggest asks the classifier for a category. ok is false when no classifier
// is configured or it failed, panicked, timed out or answered blank.
func (c *Categorizer) Suggest(ctx context.Context, description string) (category string, ok bool) {
	if c.classifier == nil {
		return "", false
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	defer func() {
		if rec := recover(); rec != nil {
			classifierOutcomes.WithLabelValues("panic").Inc()
			c.logger.Warn("classifier panicked", "panic", rec)
			category, ok = "", false
		}
	}()
	got, err := c.classifier.Classify(ctx, description)
	if err != nil {
		classifierOutcomes.WithLabelValues("error").Inc()
		c.logger.Warn("classifier failed", "err", err)
		return "", false
	}
	got = strings.TrimSpace(got)
	if got == "" {
		classifierOutcomes.WithLabelValues("empty").Inc()
		return "", false
	}
	classifierOutcomes.WithLabelValues("suggested").Inc()
	return got, true
}

// MatchKeywords returns the category of the first rule having a keyword
// contained in the lower-cased, trimmed description.
func MatchKeywords(rules []Rule, description string) (string, bool) {
	norm := strings.ToLower(strings.TrimSpace(description))
	if norm == "" {
		return "", false
	}
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(norm, kw) {
				return r.Category, true
			}
		}
	}
	return "", false
}

// Categorize is the one-shot form of (*Categorizer).Categorize using the
// curated table and an optional classifier.
func Categorize(ctx context.Context, description string, cl Classifier) string {
	return New(WithClassifier(cl)).Categorize(ctx, description)
}

func normalizeRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		cat := strings.TrimSpace(r.Category)
		if cat == "" {
			continue
		}
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		out = append(out, Rule{Category: cat, Keywords: kws})
	}
	return out
}
