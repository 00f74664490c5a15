// Command formdialog shows a dialog declared in a form document or imported
// from an OpenAPI operation and prints the submitted values.
//
// Exit status is 0 on submit, 1 on error and 2 when the user cancels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"

	"github.com/goliatone/go-formdialog"
	"github.com/goliatone/go-formdialog/internal/logging"
	"github.com/goliatone/go-formdialog/internal/settings"
	"github.com/goliatone/go-formdialog/pkg/automation"
	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/formfile"
	"github.com/goliatone/go-formdialog/pkg/model"
	pkgopenapi "github.com/goliatone/go-formdialog/pkg/openapi"
	"github.com/goliatone/go-formdialog/pkg/output"
	"github.com/goliatone/go-formdialog/pkg/renderers/bubble"
	"github.com/goliatone/go-formdialog/pkg/renderers/tui"
	"github.com/goliatone/go-formdialog/pkg/secrets"
	"github.com/goliatone/go-formdialog/pkg/service"
)

const (
	exitOK        = 0
	exitError     = 1
	exitCancelled = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr})
	stop()
	os.Exit(code)
}

// env carries the process streams. presenter replaces the terminal
// presenters when set.
type env struct {
	stdin     *os.File
	stdout    io.Writer
	stderr    io.Writer
	presenter dialog.Presenter
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	config    string
	files     stringList
	dialogID  string
	openapi   string
	operation string
	presenter string
	format    string
	title     string
	verbose   bool
	list      bool
	check     bool
	noKeyring bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("formdialog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "config", "", "settings file (default ~/.config/formdialog/config.yaml)")
	fs.Var(&opts.files, "file", "dialog document (YAML or JSON); repeatable")
	fs.StringVar(&opts.dialogID, "dialog", "", "dialog id to show")
	fs.StringVar(&opts.openapi, "openapi", "", "OpenAPI document path or URL")
	fs.StringVar(&opts.operation, "operation", "", "OpenAPI operation id to show")
	fs.StringVar(&opts.presenter, "presenter", "", "presenter: auto, prompt or screen")
	fs.StringVar(&opts.format, "format", "", "output format: json, form or pretty")
	fs.StringVar(&opts.title, "title", "", "override the dialog title")
	fs.BoolVar(&opts.verbose, "verbose", false, "log debug output to stderr")
	fs.BoolVar(&opts.list, "list", false, "list available dialogs or operations and exit")
	fs.BoolVar(&opts.check, "check", false, "validate the dialog documents and exit")
	fs.BoolVar(&opts.noKeyring, "no-keyring", false, "do not recall or store remembered passwords")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: formdialog (-file doc.yaml [-dialog id] | -openapi api.yaml -operation id) [flags]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(ctx context.Context, args []string, e env) int {
	opts, err := parseFlags(args, e.stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(e.stderr, "formdialog: %v\n", err)
		return exitError
	}

	cfg, err := settings.Load(opts.config)
	if err != nil {
		fmt.Fprintf(e.stderr, "formdialog: %v\n", err)
		return exitError
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(e.stderr, "formdialog: %v\n", err)
		return exitError
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Prefix: "formdialog", Output: e.stderr})
	if err != nil {
		fmt.Fprintf(e.stderr, "formdialog: %v\n", err)
		return exitError
	}

	if opts.list {
		ids, err := listForms(ctx, cfg, opts)
		if err != nil {
			logger.Error("list failed", "err", err)
			return exitError
		}
		for _, id := range ids {
			fmt.Fprintln(e.stdout, id)
		}
		return exitOK
	}

	form, err := resolveForm(ctx, cfg, opts)
	if err != nil {
		logger.Error("cannot load dialog", "err", err)
		return exitError
	}
	if opts.check {
		logger.Info("dialog is valid", "title", form.Title, "fields", len(form.Fields))
		return exitOK
	}

	format, _ := output.ParseFormat(cfg.Format)
	presenter := e.presenter
	if presenter == nil {
		presenter = choosePresenter(cfg, e)
	}

	serviceOptions := []service.Option{service.WithLogger(logger)}
	if cfg.Keyring {
		serviceOptions = append(serviceOptions, service.WithSecrets(secrets.Open(cfg.KeyringService)))
	}

	var result model.Result
	err = automation.Run(ctx, presenter, func(ctx context.Context, ac *automation.Context) error {
		res, err := ac.AskInput(ctx, opts.title, form)
		if err != nil {
			return err
		}
		result = res
		return nil
	}, automation.WithLogger(logger), automation.WithServiceOptions(serviceOptions...))

	switch {
	case err == nil:
	case errors.Is(err, dialog.ErrCancelled), errors.Is(err, context.Canceled):
		return exitCancelled
	default:
		fmt.Fprintf(e.stderr, "formdialog: %v\n", err)
		return exitError
	}

	if err := output.Write(e.stdout, result, format); err != nil {
		fmt.Fprintf(e.stderr, "formdialog: %v\n", err)
		return exitError
	}
	return exitOK
}

func applyFlags(cfg *settings.Config, opts options) {
	if opts.presenter != "" {
		cfg.Presenter = opts.presenter
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.noKeyring {
		cfg.Keyring = false
	}
}

func importConfig(cfg settings.Config) formdialog.ImportConfig {
	return formdialog.ImportConfig{
		Loader: []pkgopenapi.LoaderOption{pkgopenapi.WithHTTPFallback(cfg.HTTPTimeout)},
	}
}

func loadStore(cfg settings.Config, opts options) (*formfile.Store, error) {
	paths := append(append([]string(nil), cfg.DialogFiles...), opts.files...)
	if len(paths) == 0 {
		return nil, errors.New("no dialog source: use -file or -openapi")
	}
	return formfile.LoadFile(paths...)
}

func listForms(ctx context.Context, cfg settings.Config, opts options) ([]string, error) {
	if opts.openapi != "" {
		src, err := pkgopenapi.ParseSource(opts.openapi)
		if err != nil {
			return nil, err
		}
		return formdialog.Operations(ctx, src, importConfig(cfg))
	}
	store, err := loadStore(cfg, opts)
	if err != nil {
		return nil, err
	}
	return store.IDs(), nil
}

func resolveForm(ctx context.Context, cfg settings.Config, opts options) (model.Form, error) {
	if opts.openapi != "" {
		if opts.operation == "" {
			return model.Form{}, errors.New("-openapi requires -operation")
		}
		src, err := pkgopenapi.ParseSource(opts.openapi)
		if err != nil {
			return model.Form{}, err
		}
		return formdialog.ImportForm(ctx, src, opts.operation, importConfig(cfg))
	}

	store, err := loadStore(cfg, opts)
	if err != nil {
		return model.Form{}, err
	}
	id := opts.dialogID
	if id == "" {
		ids := store.IDs()
		if len(ids) != 1 {
			return model.Form{}, fmt.Errorf("-dialog is required when documents declare %d dialogs", len(ids))
		}
		id = ids[0]
	}
	return store.Form(id)
}

// choosePresenter draws on stderr so stdout carries only the result.
func choosePresenter(cfg settings.Config, e env) dialog.Presenter {
	mode := cfg.Presenter
	if mode == settings.PresenterAuto {
		mode = settings.PresenterPrompt
		if isTerminal(e.stdin) && isTerminal(os.Stderr) {
			mode = settings.PresenterScreen
		}
	}
	if mode == settings.PresenterScreen {
		return bubble.New(bubble.WithAltScreen(cfg.AltScreen), bubble.WithIO(e.stdin, os.Stderr))
	}
	return tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(survey.WithStdio(e.stdin, os.Stderr, os.Stderr))))
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
