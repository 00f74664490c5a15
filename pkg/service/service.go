// Package service runs the UI side of the worker/UI bridge. A Service owns
// the presenter: Run blocks the calling goroutine, receives show requests
// over a bounded channel, materialises one dialog per request and replies
// on the request's single-slot reply channel once the dialog closes. Worker
// goroutines talk to it only through Ask, Send and Quit.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/goliatone/go-formdialog/internal/logging"
	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
	"github.com/goliatone/go-formdialog/pkg/validation"
	"github.com/goliatone/go-formdialog/pkg/visibility"
)

var (
	// ErrClosed is returned to requests sent after the loop stopped.
	ErrClosed = errors.New("service: closed")
	// ErrRunning is returned when Run is called twice.
	ErrRunning = errors.New("service: already running")
)

// Kind tags a request envelope.
type Kind string

const (
	KindShow Kind = "show"
	KindQuit Kind = "quit"
)

// Request asks the UI loop to show a dialog or to stop.
type Request struct {
	ID        string
	Kind      Kind
	Title     string
	Form      model.Form
	Validator validation.Validator
	Extras    map[string]any

	reply chan Response
}

// Response answers a Request. Err wraps dialog.ErrCancelled when the user
// dismissed the dialog; Result is then empty.
type Response struct {
	ID     string
	Result model.Result
	Err    error
}

// Service is the UI loop.
type Service struct {
	presenter dialog.Presenter
	requests  chan Request
	quit      chan struct{}
	done      chan struct{}
	quitOnce  sync.Once
	running   atomic.Bool

	logger    *log.Logger
	secrets   dialog.SecretStore
	evaluator visibility.Evaluator
}

// Option configures a Service.
type Option func(*Service)

// WithLogger routes lifecycle logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSecrets enables remembered passwords for every dialog.
func WithSecrets(store dialog.SecretStore) Option {
	return func(s *Service) {
		s.secrets = store
	}
}

// WithEvaluator overrides the visibility rule evaluator.
func WithEvaluator(e visibility.Evaluator) Option {
	return func(s *Service) {
		s.evaluator = e
	}
}

// WithQueueSize bounds the request channel. Values below one are ignored.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.requests = make(chan Request, n)
		}
	}
}

// New returns a Service presenting dialogs with presenter.
func New(presenter dialog.Presenter, options ...Option) *Service {
	s := &Service{
		presenter: presenter,
		requests:  make(chan Request, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logging.Discard(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run processes requests on the calling goroutine until a quit request,
// Quit or ctx cancellation. It returns ctx.Err() when cancelled and nil
// otherwise.
func (s *Service) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(s.done)

	s.logger.Debug("service started")
	defer s.logger.Debug("service stopped")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("service interrupted", "err", ctx.Err())
			return ctx.Err()
		case <-s.quit:
			s.logger.Debug("quit signalled")
			return nil
		case req := <-s.requests:
			if s.quitting() {
				req.reply <- Response{ID: req.ID, Err: ErrClosed}
				return nil
			}
			if req.Kind == KindQuit {
				s.logger.Debug("quit requested", "id", req.ID)
				req.reply <- Response{ID: req.ID}
				return nil
			}
			req.reply <- s.show(ctx, req)
		}
	}
}

func (s *Service) show(ctx context.Context, req Request) (resp Response) {
	resp.ID = req.ID
	logger := s.logger.With("id", req.ID, "title", req.Title)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("presenter panicked", "panic", r)
			resp = Response{ID: req.ID, Err: fmt.Errorf("service: presenter panic: %v", r)}
		}
	}()

	opts := []dialog.Option{
		dialog.WithValidator(req.Validator),
		dialog.WithExtras(req.Extras),
		dialog.WithLogger(logger),
		dialog.WithEvaluator(s.evaluator),
	}
	if s.secrets != nil {
		opts = append(opts, dialog.WithSecrets(s.secrets))
	}

	d, err := dialog.New(req.Title, req.Form, opts...)
	if err != nil {
		logger.Warn("rejected dialog", "err", err)
		resp.Err = err
		return resp
	}

	logger.Info("showing dialog", "fields", len(req.Form.Fields))
	if err := s.presenter.Present(ctx, d); err != nil {
		d.Cancel()
		logger.Error("presenter failed", "err", err)
		resp.Err = fmt.Errorf("service: present %q: %w", d.Title(), err)
		return resp
	}
	if !d.Closed() {
		d.Cancel()
	}

	resp.Result, resp.Err = d.Outcome()
	if errors.Is(resp.Err, dialog.ErrCancelled) {
		logger.Info("dialog cancelled")
	} else {
		logger.Debug("dialog submitted")
	}
	return resp
}

// Ask shows a dialog and waits for its result. It is meant for worker
// goroutines; calling it from the goroutine running Run deadlocks.
func (s *Service) Ask(ctx context.Context, title string, form model.Form, validator validation.Validator) (model.Result, error) {
	resp, err := s.Send(ctx, Request{
		Kind:      KindShow,
		Title:     title,
		Form:      form,
		Validator: validator,
	})
	if err != nil {
		return model.Result{}, err
	}
	return resp.Result, resp.Err
}

// Send enqueues req and waits for the reply. The returned error reports
// transport failures only; dialog outcomes travel in Response.Err.
func (s *Service) Send(ctx context.Context, req Request) (Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Kind == "" {
		req.Kind = KindShow
	}
	req.reply = make(chan Response, 1)

	if s.quitting() {
		return Response{}, ErrClosed
	}

	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-s.done:
		return Response{}, ErrClosed
	case <-s.quit:
		return Response{}, ErrClosed
	case s.requests <- req:
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-s.done:
		select {
		case resp := <-req.reply:
			return resp, nil
		default:
			return Response{}, ErrClosed
		}
	}
}

// Quit stops the loop after the current dialog closes. It never blocks and
// may be called any number of times.
func (s *Service) Quit() {
	s.quitOnce.Do(func() {
		close(s.quit)
	})
}

func (s *Service) quitting() bool {
	select {
	case <-s.quit:
		return true
	default:
		return false
	}
}

// Done is closed once Run has returned.
func (s *Service) Done() <-chan struct{} {
	return s.done
}
