package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	prompts      []string
	inputPos     int
	passPos      int
	selectPos    int
	multiPos     int
	confirmPos   int
	abortAt      string
}

func (s *stubDriver) record(msg string) error {
	s.prompts = append(s.prompts, msg)
	if s.abortAt != "" && msg == s.abortAt {
		return ErrAborted
	}
	return nil
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if err := s.record(cfg.Message); err != nil {
		return "", err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if err := s.record(cfg.Message); err != nil {
		return "", err
	}
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if err := s.record(cfg.Message); err != nil {
		return false, err
	}
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if err := s.record(cfg.Message); err != nil {
		return -1, err
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if err := s.record(cfg.Message); err != nil {
		return nil, err
	}
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func deployForm() model.Form {
	return model.Form{
		Title: "Deploy",
		Fields: []model.Field{
			model.Combobox("Target", []model.Option{
				model.Opt("Cluster", "k8s"),
				model.Opt("Bare metal", "metal").Activates("metal"),
				model.Opt("Mainframe", "zos").Unavailable(),
			}),
			model.Input("Namespace", model.WithDefault("default"), model.HideOn("metal")),
			model.Password("Token", model.Required()),
			model.Listbox("Zones", model.Options("a", "b", "c"), model.Multiple(), model.MinItems(1)),
		},
	}
}

func newDialog(t *testing.T) *dialog.Dialog {
	t.Helper()
	d, err := dialog.New("", deployForm())
	if err != nil {
		t.Fatalf("dialog.New: %v", err)
	}
	return d
}

func TestPresentCollectsValuesInOrder(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"prod"},
		passwords: []string{"t0k"},
		multiIdx:  [][]int{{0, 2}},
		confirm:   []bool{true},
	}
	d := newDialog(t)

	if err := New(WithPromptDriver(driver)).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	res, err := d.Outcome()
	if err != nil {
		t.Fatalf("Outcome: %v", err)
	}
	want := []any{"k8s", "prod", "t0k", []any{"a", "c"}}
	if diff := cmp.Diff(want, res.Values()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"== Deploy"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentSkipsFieldsHiddenByEarlierAnswers(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{1},
		passwords: []string{"t0k"},
		multiIdx:  [][]int{{1}},
	}
	d := newDialog(t)

	if err := New(WithPromptDriver(driver), WithConfirm(false)).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if diff := cmp.Diff([]string{"Target", "Token", "Zones"}, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	res, _ := d.Outcome()
	if got := res.String("Namespace"); got != "default" {
		t.Fatalf("hidden field keeps its value, got %q", got)
	}
}

func TestPresentRepromptsUnavailableOption(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{2, 0},
		inputs:    []string{"ns"},
		passwords: []string{"t"},
		multiIdx:  [][]int{{0}},
	}
	d := newDialog(t)

	if err := New(WithPromptDriver(driver), WithConfirm(false)).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if diff := cmp.Diff([]string{"== Deploy", "  ! that option cannot be selected"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentRepromptsInvalidFieldsOnly(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"ns"},
		passwords: []string{"", "t0k"},
		multiIdx:  [][]int{{}, {1}},
	}
	d := newDialog(t)

	if err := New(WithPromptDriver(driver), WithConfirm(false)).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	wantPrompts := []string{"Target", "Namespace", "Token", "Zones", "Token", "Zones"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"== Deploy", "  ! Token: required", "  ! Zones: select at least 1"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentAbortCancelsDialog(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0}, abortAt: "Namespace"}
	d := newDialog(t)

	if err := New(WithPromptDriver(driver)).Present(context.Background(), d); err != nil {
		t.Fatalf("abort should not be a presenter error: %v", err)
	}
	if _, err := d.Outcome(); !errors.Is(err, dialog.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestPresentDeclinedConfirmRestarts(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 0},
		inputs:    []string{"one", "two"},
		passwords: []string{"t", ""},
		multiIdx:  [][]int{{0}, {0}},
		confirm:   []bool{false, false, true},
	}
	d := newDialog(t)

	if err := New(WithPromptDriver(driver)).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	res, _ := d.Outcome()
	if got := res.String("Namespace"); got != "two" {
		t.Fatalf("expected second pass value, got %q", got)
	}
	if got := res.String("Token"); got != "t" {
		t.Fatalf("empty password answer keeps current value, got %q", got)
	}
	if driver.prompts[7] != "Token (empty keeps current)" {
		t.Fatalf("expected keep-current hint, got %q", driver.prompts[7])
	}
}

func TestPresentClearsSecretOnConfirm(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		model.Password("Secret", model.WithDefault("stale")),
	}}
	d, err := dialog.New("", form)
	if err != nil {
		t.Fatalf("dialog.New: %v", err)
	}
	driver := &stubDriver{passwords: []string{""}, confirm: []bool{true}}

	if err := New(WithPromptDriver(driver), WithConfirm(false)).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if diff := cmp.Diff([]string{"Secret (empty keeps current)", "Clear Secret?"}, driver.prompts); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
	res, err := d.Outcome()
	if err != nil {
		t.Fatalf("Outcome: %v", err)
	}
	if got := res.String("Secret"); got != "" {
		t.Fatalf("expected cleared secret, got %q", got)
	}
}

func TestPresentAnnouncesLockedFields(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		model.Input("Id", model.WithDefault("42"), model.Disabled()),
		model.Input("Name"),
	}}
	d, err := dialog.New("", form)
	if err != nil {
		t.Fatalf("dialog.New: %v", err)
	}
	driver := &stubDriver{inputs: []string{"x"}}

	if err := New(WithPromptDriver(driver), WithConfirm(false)).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if diff := cmp.Diff([]string{"  Id: 42 (locked)"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionLabelsMarkUnavailable(t *testing.T) {
	got := optionLabels(deployForm().Fields[0])
	want := []string{"Cluster", "Bare metal", "Mainframe (unavailable)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}
