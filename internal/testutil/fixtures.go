package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/flexprice/propbill/internal/docx/docxtest"
	"github.com/flexprice/propbill/internal/sentry"
	"github.com/flexprice/propbill/internal/storage"
	"github.com/flexprice/propbill/internal/types"
	sentrygo "github.com/getsentry/sentry-go"
)

// FixedClock always returns the same instant
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

var _ types.Clock = (*FixedClock)(nil)

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set moves the clock
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// InMemoryTemplateSource serves a fixed template, or Err when set
type InMemoryTemplateSource struct {
	Data  []byte
	Err   error
	Loads int
}

var _ storage.TemplateSource = (*InMemoryTemplateSource)(nil)

// NewInMemoryTemplateSource serves the representative invoice template
func NewInMemoryTemplateSource() *InMemoryTemplateSource {
	return &InMemoryTemplateSource{Data: docxtest.InvoiceTemplate()}
}

func (s *InMemoryTemplateSource) Load(_ context.Context) ([]byte, error) {
	s.Loads++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Data, nil
}

// RecordingSink keeps every document written to it
type RecordingSink struct {
	mu   sync.Mutex
	Docs map[string][]byte
	Err  error
}

var _ storage.DocumentSink = (*RecordingSink)(nil)

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{Docs: make(map[string][]byte)}
}

func (s *RecordingSink) Put(_ context.Context, fileName string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Docs[fileName] = data
	return "mem://" + fileName, nil
}

// Capture is one event recorded by MockReporter
type Capture struct {
	Err     error
	Message string
	Tags    map[string]string
}

// MockReporter records what would have been sent to Sentry
type MockReporter struct {
	mu          sync.Mutex
	Exceptions  []Capture
	Messages    []Capture
	Breadcrumbs []string
}

var _ sentry.Reporter = (*MockReporter)(nil)

func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

func (r *MockReporter) CaptureException(_ context.Context, err error, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Exceptions = append(r.Exceptions, Capture{Err: err, Tags: tags})
}

func (r *MockReporter) CaptureMessage(_ context.Context, message string, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Capture{Message: message, Tags: tags})
}

func (r *MockReporter) AddBreadcrumb(category, message string, _ map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Breadcrumbs = append(r.Breadcrumbs, category+": "+message)
}

func (r *MockReporter) StartTransaction(ctx context.Context, _ string, _ ...sentrygo.SpanOption) (*sentrygo.Span, context.Context) {
	return nil, ctx
}
