package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newController(t *testing.T) *formstate.Controller {
	t.Helper()
	return testsupport.MountedController(t, schema.DefaultPolicy)
}

func TestRun_AcceptsFirstAttempt(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane", "Doe", "30.5", "jane@example.com"},
		selectIdx: []int{0},
	}
	r := New(WithPromptDriver(driver))

	var handled []model.FormValues
	record, err := r.Run(testsupport.Context(), newController(t), func(v model.FormValues) {
		handled = append(handled, v)
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := testsupport.CanonicalRecord()
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.FormValues{want}, handled); diff != "" {
		t.Fatalf("handler mismatch (-want +got):\n%s", diff)
	}
	wantPrompts := []string{"First Name", "Last Name", "Age", "Gender", "Email"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RepromptsFailingFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane", "Doe", "-5", "a@b.co", "42", "jane@example.com"},
		selectIdx: []int{1},
	}
	r := New(WithPromptDriver(driver))

	record, err := r.Run(testsupport.Context(), newController(t), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if record.Age == nil || *record.Age != 42 || record.Gender != model.GenderMale {
		t.Fatalf("unexpected record %+v", record)
	}

	wantPrompts := []string{"First Name", "Last Name", "Age", "Gender", "Email", "Age", "Email"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{
		"  ! age must be a positive number",
		"  ! This email should have a minimum of 10 characters",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_MaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Doe", "30", "jane@example.com"},
		selectIdx: []int{2},
	}
	r := New(WithPromptDriver(driver), WithMaxAttempts(1))

	if _, err := r.Run(testsupport.Context(), newController(t), nil); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRun_PropagatesDriverErrors(t *testing.T) {
	r := New(WithPromptDriver(&stubDriver{}))
	if _, err := r.Run(testsupport.Context(), newController(t), nil); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestRender_Text(t *testing.T) {
	c := newController(t)
	_ = c.SetValue(model.FieldFirstName, "Jane")
	c.Submit(nil)

	out, err := New(WithPromptDriver(&stubDriver{})).Render(testsupport.Context(), c.Snapshot(), render.RenderOptions{
		FormErrors: []string{"check the form"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		"Registration (policy strict)",
		"Render Count: 3",
		"First Name*: Jane",
		"  ! check the form",
		"  ! lastName is a required field",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in\n%s", want, text)
		}
	}
}
