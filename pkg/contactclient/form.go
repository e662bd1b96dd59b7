package contactclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the submission state of a Form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// AlertText is the blocking notice shown when a submission fails.
	AlertText = "Erro ao enviar. Tente novamente."
	// SuccessText is the confirmation shown while in StateSuccess.
	SuccessText = "Mensagem Enviada!"
	// DefaultCloseDelay is how long the confirmation stays up before the
	// form is cleared and closed.
	DefaultCloseDelay = 3 * time.Second
)

var (
	// ErrBusy is returned when the form is not idle.
	ErrBusy = errors.New("contact form is not idle")
	// ErrUnknownField is returned by SetField for names outside the form.
	ErrUnknownField = errors.New("unknown contact form field")
)

// Submitter sends one snapshot of the form. *Client implements it.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// Event describes one state transition. Notice carries the user-facing
// text for Success and Failed; Err is the cause of a failure.
type Event struct {
	From   State
	To     State
	Notice string
	Err    error
}

// Observer is called after every transition, outside the form's lock.
type Observer func(Event)

// Timer is the part of *time.Timer the form needs.
type Timer interface {
	Stop() bool
}

// Form holds contact field state and drives Idle → Submitting → Success or
// Failed → Idle. It is safe for concurrent use.
type Form struct {
	submitter  Submitter
	closeDelay time.Duration
	afterFunc  func(time.Duration, func()) Timer
	observers  []Observer
	onClose    func()

	mu      sync.Mutex
	state   State
	fields  Submission
	open    bool
	gen     uint64 // bumped on every close; stale timers and replies compare it
	pending Timer
}

type FormOption func(*Form)

// WithCloseDelay overrides DefaultCloseDelay.
func WithCloseDelay(d time.Duration) FormOption {
	return func(f *Form) { f.closeDelay = d }
}

// WithAfterFunc replaces time.AfterFunc for scheduling the success close.
func WithAfterFunc(fn func(time.Duration, func()) Timer) FormOption {
	return func(f *Form) { f.afterFunc = fn }
}

func WithObserver(o Observer) FormOption {
	return func(f *Form) { f.observers = append(f.observers, o) }
}

// WithOnClose registers a callback run whenever an open form closes.
func WithOnClose(fn func()) FormOption {
	return func(f *Form) { f.onClose = fn }
}

func NewForm(submitter Submitter, opts ...FormOption) *Form {
	f := &Form{
		submitter:  submitter,
		closeDelay: DefaultCloseDelay,
		afterFunc: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open shows the form. Field values start empty.
func (f *Form) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
}

func (f *Form) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the submit control should be enabled.
func (f *Form) CanSubmit() bool {
	return f.State() == StateIdle
}

// Fields returns a copy of the current field values.
func (f *Form) Fields() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetField updates one field by its JSON name. Fields are frozen outside Idle.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return ErrBusy
	}
	switch name {
	case "name":
		f.fields.Name = value
	case "email":
		f.fields.Email = value
	case "phone":
		f.fields.Phone = value
	case "service":
		f.fields.Service = value
	case "message":
		f.fields.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Submit sends a snapshot of the fields through the Submitter exactly once
// and blocks until it settles. On success the form stays in StateSuccess
// until the close delay elapses, then clears and closes. On failure it
// passes through StateFailed back to StateIdle with fields kept.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return ErrBusy
	}
	snapshot := f.fields
	gen := f.gen
	events := []Event{f.setState(StateSubmitting, "", nil)}
	f.mu.Unlock()
	f.emit(events)

	err := f.submitter.Submit(ctx, snapshot)

	f.mu.Lock()
	switch {
	case err != nil:
		events = []Event{
			f.setState(StateFailed, AlertText, err),
			f.setState(StateIdle, "", nil),
		}
	case gen != f.gen:
		// Closed while in flight; there is no confirmation left to show.
		events = []Event{
			f.setState(StateSuccess, SuccessText, nil),
			f.setState(StateIdle, "", nil),
		}
	default:
		events = []Event{f.setState(StateSuccess, SuccessText, nil)}
		f.pending = f.afterFunc(f.closeDelay, func() { f.finishSuccess(gen) })
	}
	f.mu.Unlock()
	f.emit(events)

	return err
}

// Close clears the fields and hides the form, cancelling a pending
// success close. A request already in flight still settles.
func (f *Form) Close() {
	f.mu.Lock()
	var events []Event
	if f.state == StateSuccess {
		events = append(events, f.setState(StateIdle, "", nil))
	}
	wasOpen := f.resetLocked()
	f.mu.Unlock()

	f.emit(events)
	if wasOpen && f.onClose != nil {
		f.onClose()
	}
}

func (f *Form) finishSuccess(gen uint64) {
	f.mu.Lock()
	if f.gen != gen || f.state != StateSuccess {
		f.mu.Unlock()
		return
	}
	ev := f.setState(StateIdle, "", nil)
	wasOpen := f.resetLocked()
	f.mu.Unlock()

	f.emit([]Event{ev})
	if wasOpen && f.onClose != nil {
		f.onClose()
	}
}

// resetLocked empties the fields, closes the form and invalidates pending
// work. It reports whether the form was open.
func (f *Form) resetLocked() bool {
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	wasOpen := f.open
	f.fields = Submission{}
	f.open = false
	f.gen++
	return wasOpen
}

func (f *Form) setState(to State, notice string, err error) Event {
	ev := Event{From: f.state, To: to, Notice: notice, Err: err}
	f.state = to
	return ev
}

func (f *Form) emit(events []Event) {
	for _, ev := range events {
		for _, o := range f.observers {
			o(ev)
		}
	}
}
