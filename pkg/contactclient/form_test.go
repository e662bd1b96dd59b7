package contactclient_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portfolio-contact-backend/pkg/contactclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

// fakeClock captures the scheduled success close so tests fire it by hand.
type fakeClock struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) contactclient.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay, c.fn, c.timer = d, fn, &fakeTimer{}
	return c.timer
}

func (c *fakeClock) Fire() {
	c.mu.Lock()
	fn := c.fn
	c.mu.Unlock()
	fn()
}

type recorder struct {
	mu     sync.Mutex
	events []contactclient.Event
}

func (r *recorder) Observe(ev contactclient.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Transitions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.From.String()+"->"+ev.To.String())
	}
	return out
}

func fillForm(t *testing.T, f *contactclient.Form, s contactclient.Submission) {
	t.Helper()
	require.NoError(t, f.SetField("name", s.Name))
	require.NoError(t, f.SetField("email", s.Email))
	require.NoError(t, f.SetField("phone", s.Phone))
	require.NoError(t, f.SetField("service", s.Service))
	require.NoError(t, f.SetField("message", s.Message))
}

var ana = contactclient.Submission{Name: "Ana", Email: "ana@x.com", Service: "factory", Message: "Oi"}

func TestFormSuccessClearsAfterDelay(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	closed := 0
	var sent []contactclient.Submission

	f := contactclient.NewForm(
		contactclient.SubmitterFunc(func(_ context.Context, s contactclient.Submission) error {
			sent = append(sent, s)
			return nil
		}),
		contactclient.WithAfterFunc(clock.AfterFunc),
		contactclient.WithObserver(rec.Observe),
		contactclient.WithOnClose(func() { closed++ }),
	)
	f.Open()
	fillForm(t, f, ana)
	assert.True(t, f.CanSubmit())

	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, []contactclient.Submission{ana}, sent)
	assert.Equal(t, contactclient.StateSuccess, f.State())
	assert.Equal(t, contactclient.DefaultCloseDelay, clock.delay)
	assert.Equal(t, ana, f.Fields(), "confirmation shown before the clear")
	assert.True(t, f.IsOpen())
	assert.ErrorIs(t, f.SetField("name", "x"), contactclient.ErrBusy)

	clock.Fire()

	assert.Equal(t, contactclient.StateIdle, f.State())
	assert.Equal(t, contactclient.Submission{}, f.Fields())
	assert.False(t, f.IsOpen())
	assert.Equal(t, 1, closed)
	assert.Equal(t, []string{"idle->submitting", "submitting->success", "success->idle"}, rec.Transitions())
	assert.Equal(t, contactclient.SuccessText, rec.events[1].Notice)
}

func TestFormFailureKeepsFields(t *testing.T) {
	rec := &recorder{}
	sendErr := errors.New("status 400")
	calls := 0

	f := contactclient.NewForm(
		contactclient.SubmitterFunc(func(context.Context, contactclient.Submission) error {
			calls++
			return sendErr
		}),
		contactclient.WithObserver(rec.Observe),
	)
	f.Open()
	fillForm(t, f, ana)

	err := f.Submit(context.Background())

	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, 1, calls, "no automatic retry")
	assert.Equal(t, contactclient.StateIdle, f.State())
	assert.Equal(t, ana, f.Fields())
	assert.True(t, f.IsOpen())
	assert.Equal(t, []string{"idle->submitting", "submitting->failed", "failed->idle"}, rec.Transitions())
	assert.Equal(t, contactclient.AlertText, rec.events[1].Notice)
	assert.ErrorIs(t, rec.events[1].Err, sendErr)

	// Retry without re-typing
	require.NoError(t, f.SetField("phone", "123"))
	_ = f.Submit(context.Background())
	assert.Equal(t, 2, calls)
}

func TestFormRejectsConcurrentSubmit(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int

	f := contactclient.NewForm(
		contactclient.SubmitterFunc(func(context.Context, contactclient.Submission) error {
			calls++
			close(started)
			<-release
			return nil
		}),
		contactclient.WithAfterFunc((&fakeClock{}).AfterFunc),
	)
	fillForm(t, f, ana)

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	assert.Equal(t, contactclient.StateSubmitting, f.State())
	assert.False(t, f.CanSubmit())
	assert.ErrorIs(t, f.Submit(context.Background()), contactclient.ErrBusy)
	assert.ErrorIs(t, f.SetField("message", "changed"), contactclient.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Oi", f.Fields().Message)
}

func TestFormCloseCancelsPendingClear(t *testing.T) {
	clock := &fakeClock{}
	closed := 0
	f := contactclient.NewForm(
		contactclient.SubmitterFunc(func(context.Context, contactclient.Submission) error { return nil }),
		contactclient.WithAfterFunc(clock.AfterFunc),
		contactclient.WithCloseDelay(time.Second),
		contactclient.WithOnClose(func() { closed++ }),
	)
	f.Open()
	fillForm(t, f, ana)
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, time.Second, clock.delay)

	f.Close()
	assert.True(t, clock.timer.stopped)
	assert.Equal(t, contactclient.StateIdle, f.State())
	assert.Equal(t, contactclient.Submission{}, f.Fields())
	assert.Equal(t, 1, closed)

	// A late timer callback is a no-op
	f.Open()
	require.NoError(t, f.SetField("name", "Bia"))
	clock.Fire()
	assert.Equal(t, "Bia", f.Fields().Name)
	assert.True(t, f.IsOpen())
	assert.Equal(t, 1, closed)
}

func TestFormCloseWhileSubmitting(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	clock := &fakeClock{}
	rec := &recorder{}

	f := contactclient.NewForm(
		contactclient.SubmitterFunc(func(context.Context, contactclient.Submission) error {
			close(started)
			<-release
			return nil
		}),
		contactclient.WithAfterFunc(clock.AfterFunc),
		contactclient.WithObserver(rec.Observe),
	)
	f.Open()
	fillForm(t, f, ana)

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	f.Close()
	assert.Equal(t, contactclient.Submission{}, f.Fields())
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, contactclient.StateIdle, f.State())
	assert.Nil(t, clock.fn, "no delayed close for a form already closed")
	assert.Equal(t, []string{"idle->submitting", "submitting->success", "success->idle"}, rec.Transitions())
}

func TestFormUnknownField(t *testing.T) {
	f := contactclient.NewForm(contactclient.SubmitterFunc(func(context.Context, contactclient.Submission) error { return nil }))
	assert.ErrorIs(t, f.SetField("subject", "x"), contactclient.ErrUnknownField)
}

func TestFormRealTimer(t *testing.T) {
	closed := make(chan struct{})
	f := contactclient.NewForm(
		contactclient.SubmitterFunc(func(context.Context, contactclient.Submission) error { return nil }),
		contactclient.WithCloseDelay(10*time.Millisecond),
		contactclient.WithOnClose(func() { close(closed) }),
	)
	f.Open()
	fillForm(t, f, ana)
	require.NoError(t, f.Submit(context.Background()))

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("form did not close after the success delay")
	}
	assert.Equal(t, contactclient.StateIdle, f.State())
	assert.Equal(t, contactclient.Submission{}, f.Fields())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", contactclient.StateIdle.String())
	assert.Equal(t, "submitting", contactclient.StateSubmitting.String())
	assert.Equal(t, "success", contactclient.StateSuccess.String())
	assert.Equal(t, "failed", contactclient.StateFailed.String())
	assert.Equal(t, "State(9)", contactclient.State(9).String())
}
