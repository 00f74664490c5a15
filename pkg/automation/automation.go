// Package automation runs user logic on a worker goroutine while the
// calling goroutine serves dialogs. The worker asks for input through a
// Context; the UI loop is told to quit as soon as the worker returns, fails
// or panics.
package automation

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formdialog/internal/logging"
	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
	"github.com/goliatone/go-formdialog/pkg/service"
	"github.com/goliatone/go-formdialog/pkg/validation"
)

// Func is the worker body.
type Func func(ctx context.Context, ac *Context) error

// Context is the worker's handle on the UI loop.
type Context struct {
	svc    *service.Service
	logger *log.Logger
}

// AskOption configures a single AskInput call.
type AskOption func(*service.Request)

// WithValidator attaches a validator that must pass before the dialog
// closes.
func WithValidator(v validation.Validator) AskOption {
	return func(r *service.Request) { r.Validator = v }
}

// WithExtras exposes caller facts to visibility rules.
func WithExtras(extras map[string]any) AskOption {
	return func(r *service.Request) { r.Extras = extras }
}

// AskInput shows a dialog and blocks until the user submits or cancels it.
// A cancelled dialog returns an error wrapping dialog.ErrCancelled.
func (c *Context) AskInput(ctx context.Context, title string, form model.Form, options ...AskOption) (model.Result, error) {
	req := service.Request{Kind: service.KindShow, Title: title, Form: form}
	for _, opt := range options {
		if opt != nil {
			opt(&req)
		}
	}
	c.logger.Debug("asking for input", "title", title)
	resp, err := c.svc.Send(ctx, req)
	if err != nil {
		return model.Result{}, err
	}
	return resp.Result, resp.Err
}

// Quit tells the UI loop to stop once the current dialog closes.
func (c *Context) Quit() {
	c.svc.Quit()
}

// Option configures Run.
type Option func(*config)

type config struct {
	logger     *log.Logger
	svcOptions []service.Option
}

// WithLogger routes lifecycle logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithServiceOptions forwards options to the underlying service.
func WithServiceOptions(options ...service.Option) Option {
	return func(c *config) {
		c.svcOptions = append(c.svcOptions, options...)
	}
}

// Run starts fn on a worker goroutine and serves its dialogs on the calling
// goroutine with presenter. It returns once both sides finished, with the
// worker's error. A worker panic is recovered and returned as an error.
func Run(ctx context.Context, presenter dialog.Presenter, fn Func, options ...Option) error {
	cfg := config{logger: logging.Discard()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	svcOptions := append([]service.Option{service.WithLogger(cfg.logger)}, cfg.svcOptions...)
	svc := service.New(presenter, svcOptions...)
	ac := &Context{svc: svc, logger: cfg.logger}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		defer svc.Quit()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("automation: worker panic: %v", r)
			}
		}()
		return fn(groupCtx, ac)
	})

	runErr := svc.Run(ctx)
	err := group.Wait()
	report(cfg.logger, err)
	if err == nil {
		return runErr
	}
	return err
}

// Wrap turns fn into a plain function that runs through Run each time it is
// called.
func Wrap(presenter dialog.Presenter, fn Func, options ...Option) func(context.Context) error {
	return func(ctx context.Context) error {
		return Run(ctx, presenter, fn, options...)
	}
}

func report(logger *log.Logger, err error) {
	switch {
	case err == nil:
		logger.Debug("automation finished")
	case errors.Is(err, dialog.ErrCancelled):
		logger.Info("dialog cancelled by user")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, service.ErrClosed):
		logger.Warn("process interrupted", "err", err)
	default:
		logger.Error("automation failed", "err", err)
	}
}
