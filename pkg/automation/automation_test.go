package automation_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formdialog/internal/logging"
	"github.com/goliatone/go-formdialog/pkg/automation"
	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
	"github.com/goliatone/go-formdialog/pkg/validation"
)

type recorder struct {
	titles []string
	cancel bool
}

func (r *recorder) Present(ctx context.Context, d *dialog.Dialog) error {
	r.titles = append(r.titles, d.Title())
	if r.cancel {
		d.Cancel()
		return nil
	}
	_ = d.SetText("Name", "Ada")
	_, err := d.Submit(ctx)
	return err
}

func nameForm() model.Form {
	return model.Form{Fields: []model.Field{model.Input("Name", model.Required())}}
}

func runWithTimeout(t *testing.T, presenter dialog.Presenter, fn automation.Func, opts ...automation.Option) error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- automation.Run(context.Background(), presenter, fn, opts...) }()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("automation.Run did not return; UI loop never received quit")
		return nil
	}
}

func TestRunServesDialogsThenQuits(t *testing.T) {
	rec := &recorder{}
	var got []string

	err := runWithTimeout(t, rec, func(ctx context.Context, ac *automation.Context) error {
		for _, title := range []string{"First", "Second"} {
			res, err := ac.AskInput(ctx, title, nameForm())
			if err != nil {
				return err
			}
			got = append(got, res.String("Name"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, rec.titles)
	assert.Equal(t, []string{"Ada", "Ada"}, got)
}

func TestRunQuitsWhenWorkerFails(t *testing.T) {
	boom := errors.New("scrape failed")
	rec := &recorder{}

	err := runWithTimeout(t, rec, func(ctx context.Context, ac *automation.Context) error {
		if _, err := ac.AskInput(ctx, "Before failure", nameForm()); err != nil {
			return err
		}
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"Before failure"}, rec.titles)
}

func TestRunQuitsWhenWorkerPanics(t *testing.T) {
	err := runWithTimeout(t, &recorder{}, func(context.Context, *automation.Context) error {
		panic("nil map")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker panic: nil map")
}

func TestCancelledDialogIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "debug", Output: &buf})
	require.NoError(t, err)

	err = runWithTimeout(t, &recorder{cancel: true}, func(ctx context.Context, ac *automation.Context) error {
		_, err := ac.AskInput(ctx, "Dismiss me", nameForm())
		return err
	}, automation.WithLogger(logger))

	require.ErrorIs(t, err, dialog.ErrCancelled)
	assert.Contains(t, buf.String(), "dialog cancelled by user")
	assert.Contains(t, buf.String(), "showing dialog")
}

func TestAskInputForwardsValidator(t *testing.T) {
	calls := 0
	validator := validation.ValidatorFunc(func(_ context.Context, snap model.Snapshot) validation.Result {
		calls++
		return validation.Result{}
	})

	err := runWithTimeout(t, &recorder{}, func(ctx context.Context, ac *automation.Context) error {
		_, err := ac.AskInput(ctx, "Validated", nameForm(), automation.WithValidator(validator))
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExplicitQuitStopsLoopEarly(t *testing.T) {
	err := runWithTimeout(t, &recorder{}, func(ctx context.Context, ac *automation.Context) error {
		ac.Quit()
		_, err := ac.AskInput(ctx, "Too late", nameForm())
		return err
	})

	require.Error(t, err)
}

func TestWrap(t *testing.T) {
	rec := &recorder{}
	run := automation.Wrap(rec, func(ctx context.Context, ac *automation.Context) error {
		_, err := ac.AskInput(ctx, "Wrapped", nameForm())
		return err
	})

	require.NoError(t, run(context.Background()))
	require.NoError(t, run(context.Background()))
	assert.Equal(t, []string{"Wrapped", "Wrapped"}, rec.titles)
}
