package forms

import (
	"context"
	"sync"

	"github.com/2HgO/signup-go/types/requests"
)

// SubmitFunc receives the validated credentials and reports whether a
// submission was started. It is called without the model lock held.
type SubmitFunc func(ctx context.Context, req *requests.SignUpRequest) bool

type SubmitStatus int

const (
	// SubmitInvalid means validation failed and nothing was sent.
	SubmitInvalid SubmitStatus = iota
	// SubmitDropped means the values were clean but another submission
	// was still outstanding.
	SubmitDropped
	SubmitDone
)

// Model is the state of one sign-up form: values, touched flags and
// current errors. Errors always reflect the current values; they are shown
// only for touched fields.
type Model struct {
	mu       sync.RWMutex
	values   Values
	touched  map[Field]bool
	errors   Errors
	rules    *Rules
	onSubmit SubmitFunc
}

func NewModel(rules *Rules, onSubmit SubmitFunc) *Model {
	return &Model{
		touched:  map[Field]bool{},
		errors:   Errors{},
		rules:    rules,
		onSubmit: onSubmit,
	}
}

func (m *Model) Values() Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values
}

func (m *Model) Touched(f Field) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.touched[f]
}

func (m *Model) Error(f Field) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[f]
}

func (m *Model) VisibleError(f Field) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.touched[f] {
		return ""
	}
	return m.errors[f]
}

func (m *Model) HandleChange(f Field, value string) error {
	if _, err := ParseField(string(f)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values.set(f, value)
	m.errors = m.rules.Validate(m.values)
	return nil
}

func (m *Model) HandleBlur(f Field) error {
	if _, err := ParseField(string(f)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[f] = true
	m.errors = m.rules.Validate(m.values)
	return nil
}

// HandleSubmit touches every field, validates, and hands clean values to
// the submit func.
func (m *Model) HandleSubmit(ctx context.Context) SubmitStatus {
	return m.submit(ctx, nil)
}

// HandleSubmitValues replaces all values and submits them in one step, so
// concurrent posts never submit each other's input.
func (m *Model) HandleSubmitValues(ctx context.Context, values Values) SubmitStatus {
	return m.submit(ctx, &values)
}

func (m *Model) submit(ctx context.Context, values *Values) SubmitStatus {
	m.mu.Lock()
	if values != nil {
		m.values = *values
	}
	for _, f := range Fields {
		m.touched[f] = true
	}
	m.errors = m.rules.Validate(m.values)
	clean := len(m.errors) == 0
	req := &requests.SignUpRequest{
		Username: m.values.Username,
		Password: m.values.Password,
	}
	m.mu.Unlock()

	if !clean {
		return SubmitInvalid
	}
	if m.onSubmit == nil || !m.onSubmit(ctx, req) {
		return SubmitDropped
	}
	return SubmitDone
}
