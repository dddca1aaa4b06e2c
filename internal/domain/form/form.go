// internal/domain/form/form.go
package form

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultQuietPeriod is how long the fields must stay unchanged before
// form validity is recomputed.
const DefaultQuietPeriod = 500 * time.Millisecond

// LoginFunc receives the raw field values on submit. The values are not
// checked again before the call.
type LoginFunc func(email, password string)

// Snapshot is the externally visible state of a form.
type Snapshot struct {
	Email       FieldState `json:"email"`
	Password    FieldState `json:"password"`
	FormIsValid bool       `json:"formIsValid"`
}

type Option func(*LoginForm)

func WithClock(c Clock) Option {
	return func(f *LoginForm) {
		f.clock = c
	}
}

func WithQuietPeriod(d time.Duration) Option {
	return func(f *LoginForm) {
		if d > 0 {
			f.quiet = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(f *LoginForm) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithOnChange registers an observer called after every state change,
// including debounced validity updates.
func WithOnChange(fn func(Snapshot)) Option {
	return func(f *LoginForm) {
		f.onChange = fn
	}
}

// LoginForm composes the email and password fields with a debounced
// validity aggregator.
//
// All state lives on a single goroutine. Public methods queue work onto
// it and wait for the work to finish, so calls apply in order. Callbacks
// run on that goroutine too and must not call back into the form.
type LoginForm struct {
	email    *Field
	password *Field
	agg      *Aggregator

	onLogin  LoginFunc
	onChange func(Snapshot)
	clock    Clock
	quiet    time.Duration
	logger   *zap.Logger

	tasks     chan func()
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// New mounts a form with both fields pristine.
func New(onLogin LoginFunc, opts ...Option) *LoginForm {
	f := &LoginForm{
		email:    NewField(KindEmail),
		password: NewField(KindPassword),
		onLogin:  onLogin,
		clock:    RealClock(),
		quiet:    DefaultQuietPeriod,
		logger:   zap.NewNop(),
		tasks:    make(chan func()),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.onLogin == nil {
		f.onLogin = func(string, string) {}
	}
	f.agg = NewAggregator(NewDebouncer(f.clock, f.quiet, f.post), f.settled)

	go f.loop()
	f.do(func() {
		f.agg.Observe(f.pair())
	})
	return f
}

func (f *LoginForm) loop() {
	defer close(f.stopped)
	for {
		select {
		case task := <-f.tasks:
			task()
		case <-f.quit:
			return
		}
	}
}

// post queues task without waiting for it. Timer callbacks use it.
func (f *LoginForm) post(task func()) {
	select {
	case f.tasks <- task:
	case <-f.quit:
	}
}

// do runs task on the form goroutine and waits. It reports false once
// the form is closed.
func (f *LoginForm) do(task func()) bool {
	done := make(chan struct{})
	select {
	case f.tasks <- func() {
		defer close(done)
		task()
	}:
	case <-f.quit:
		return false
	}
	<-done
	return true
}

func (f *LoginForm) pair() Pair {
	return Pair{
		Email:    f.email.State().IsValid,
		Password: f.password.State().IsValid,
	}
}

func (f *LoginForm) snapshot() Snapshot {
	return Snapshot{
		Email:       f.email.State(),
		Password:    f.password.State(),
		FormIsValid: f.agg.Valid(),
	}
}

func (f *LoginForm) changed() {
	if f.onChange != nil {
		f.onChange(f.snapshot())
	}
}

func (f *LoginForm) settled(valid bool) {
	f.logger.Debug("form validity settled",
		zap.Bool("valid", valid),
		zap.Stringer("email", f.email.State().IsValid),
		zap.Stringer("password", f.password.State().IsValid))
	f.changed()
}

func (f *LoginForm) dispatch(fields []*Field, ev Event) {
	f.do(func() {
		for _, field := range fields {
			field.Dispatch(ev)
		}
		f.agg.Observe(f.pair())
		f.changed()
	})
}

func (f *LoginForm) OnEmailInput(raw string) {
	f.dispatch([]*Field{f.email}, UserInput{Value: raw})
}

func (f *LoginForm) OnPasswordInput(raw string) {
	f.dispatch([]*Field{f.password}, UserInput{Value: raw})
}

func (f *LoginForm) OnEmailBlur() {
	f.dispatch([]*Field{f.email}, Blur{})
}

func (f *LoginForm) OnPasswordBlur() {
	f.dispatch([]*Field{f.password}, Blur{})
}

// Reset returns both fields to their pristine state.
func (f *LoginForm) Reset() {
	f.dispatch([]*Field{f.email, f.password}, Reset{})
}

// Submit calls onLogin with the raw field values if the settled form
// validity is true, and reports whether it did. Otherwise it does
// nothing.
func (f *LoginForm) Submit() bool {
	var submitted bool
	f.do(func() {
		if !f.agg.Valid() {
			f.logger.Debug("submit ignored, form not valid")
			return
		}
		submitted = true
		f.onLogin(f.email.State().Value, f.password.State().Value)
	})
	return submitted
}

// Valid is the settled form validity that gates Submit.
func (f *LoginForm) Valid() bool {
	var valid bool
	f.do(func() {
		valid = f.agg.Valid()
	})
	return valid
}

// Pending reports whether a validity recomputation is scheduled.
func (f *LoginForm) Pending() bool {
	var pending bool
	f.do(func() {
		pending = f.agg.Pending()
	})
	return pending
}

func (f *LoginForm) Snapshot() Snapshot {
	var s Snapshot
	f.do(func() {
		s = f.snapshot()
	})
	return s
}

// Close tears the form down. A pending validity recomputation is
// cancelled and never runs. Calls after Close do nothing.
func (f *LoginForm) Close() {
	f.closeOnce.Do(func() {
		f.do(func() {
			f.agg.Stop()
		})
		close(f.quit)
		<-f.stopped
	})
}
