package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdialog/pkg/testsupport"
)

const document = `
dialogs:
  connect:
    title: Connect
    fields:
      - label: Host
        required: true
      - label: Mode
        options: [auto, manual]
  other:
    fields:
      - label: X
`

type harness struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	file   string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		file:   filepath.Join(dir, "dialogs.yaml"),
		config: filepath.Join(dir, "config.yaml"),
	}
	if err := os.WriteFile(h.file, []byte(document), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return h
}

func (h *harness) run(p *testsupport.FillPresenter, args ...string) int {
	args = append([]string{"-config", h.config, "-no-keyring"}, args...)
	e := env{stdout: &h.stdout, stderr: &h.stderr}
	if p != nil {
		e.presenter = p
	}
	return run(context.Background(), args, e)
}

func TestRunPrintsSubmittedValues(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := &testsupport.FillPresenter{Answers: testsupport.Answers{"Host": "db.local", "Mode": "manual"}}
	if code := h.run(p, "-file", h.file, "-dialog", "connect"); code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, h.stderr.String())
	}
	if diff := cmp.Diff("{\"Host\":\"db.local\",\"Mode\":\"manual\"}\n", h.stdout.String()); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Connect"}, p.Titles()); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTitleOverride(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	p := &testsupport.FillPresenter{Answers: testsupport.Answers{"Host": "h"}}
	if code := h.run(p, "-file", h.file, "-dialog", "connect", "-title", "Reconnect", "-format", "form"); code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, h.stderr.String())
	}
	if diff := cmp.Diff([]string{"Reconnect"}, p.Titles()); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("Host=h&Mode=auto\n", h.stdout.String()); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCancelledExitsTwo(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if code := h.run(&testsupport.FillPresenter{Cancel: true}, "-file", h.file, "-dialog", "connect"); code != exitCancelled {
		t.Fatalf("expected exit %d, got %d", exitCancelled, code)
	}
	if h.stdout.Len() != 0 {
		t.Fatalf("cancelled run must not print a result: %q", h.stdout.String())
	}
}

func TestRunInvalidSubmissionIsAnError(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if code := h.run(&testsupport.FillPresenter{}, "-file", h.file, "-dialog", "connect"); code != exitError {
		t.Fatalf("expected exit %d, got %d", exitError, code)
	}
	if !strings.Contains(h.stderr.String(), "Host: required") {
		t.Fatalf("expected validation message on stderr, got %q", h.stderr.String())
	}
}

func TestRunListAndCheck(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if code := h.run(nil, "-file", h.file, "-list"); code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, h.stderr.String())
	}
	if diff := cmp.Diff("connect\nother\n", h.stdout.String()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if code := h.run(nil, "-file", h.file, "-dialog", "other", "-check"); code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, h.stderr.String())
	}
}

func TestRunRequiresDialogWhenAmbiguous(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if code := h.run(nil, "-file", h.file); code != exitError {
		t.Fatalf("expected exit %d, got %d", exitError, code)
	}
	if !strings.Contains(h.stderr.String(), "-dialog is required") {
		t.Fatalf("unexpected stderr %q", h.stderr.String())
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{},
		{"-presenter", "window", "-file", "x.yaml"},
		{"-format", "xml", "-file", "x.yaml"},
		{"stray"},
	} {
		h := newHarness(t)
		if code := h.run(nil, args...); code != exitError {
			t.Fatalf("%v: expected exit %d, got %d", args, exitError, code)
		}
	}
}

func TestRunImportsOpenAPIOperation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	apiDoc := filepath.Join("..", "..", "internal", "openapi", "testdata", "deploy.yaml")
	p := &testsupport.FillPresenter{Answers: testsupport.Answers{"Name": "web-1", "Token": "s3cret"}}
	if code := h.run(p, "-openapi", apiDoc, "-operation", "createDeployment", "-format", "pretty"); code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, h.stderr.String())
	}
	want := strings.Join([]string{
		"Name=web-1",
		"Target=cluster",
		"Namespace=default",
		"Token=s3cret",
		"Zones[0]=b",
		"labels.team=",
		"",
	}, "\n")
	if diff := cmp.Diff(want, h.stdout.String()); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
}
