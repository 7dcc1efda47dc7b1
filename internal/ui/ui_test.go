package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeonkey/internal/gamedata"
)

func TestLineInput(t *testing.T) {
	in := NewLineInput(strings.NewReader("move\r\nup\n\nexit"))
	ctx := context.Background()

	for _, want := range []string{"move", "up", "", "exit"} {
		got, err := in.NextAction(ctx)
		if err != nil {
			t.Fatalf("NextAction() error = %v", err)
		}
		if got != want {
			t.Errorf("NextAction() = %q, want %q", got, want)
		}
	}
	if _, err := in.NextAction(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("NextAction() at end error = %v, want io.EOF", err)
	}
}

func TestLineInputCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLineInput(strings.NewReader("move\n")).NextAction(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("NextAction() error = %v, want context.Canceled", err)
	}
}

func TestLineInputCancelWhileBlocked(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	in := NewLineInput(r)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := in.NextAction(ctx)
		errs <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("NextAction() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("NextAction() still blocked after cancel")
	}
}

func TestLineInputResumesAfterCancel(t *testing.T) {
	r, w := io.Pipe()
	in := NewLineInput(r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := in.NextAction(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("NextAction() error = %v, want context.Canceled", err)
	}

	go func() {
		_, _ = io.WriteString(w, "heal\n")
		w.Close()
	}()
	got, err := in.NextAction(context.Background())
	if err != nil || got != "heal" {
		t.Errorf("NextAction() = %q, %v, want heal, nil", got, err)
	}
	if _, err := in.NextAction(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("NextAction() at end error = %v, want io.EOF", err)
	}
}

func TestNarrationFormatter(t *testing.T) {
	logger := logrus.New()
	tests := []struct {
		name     string
		entry    *logrus.Entry
		expected string
	}{
		{
			name:     "info is bare",
			entry:    &logrus.Entry{Logger: logger, Level: logrus.InfoLevel, Message: "Ada moved to (0, 2)."},
			expected: "Ada moved to (0, 2).\n",
		},
		{
			name: "error carries prefix and cause",
			entry: &logrus.Entry{
				Logger:  logger,
				Level:   logrus.ErrorLevel,
				Message: "Save failed.",
				Data:    logrus.Fields{logrus.ErrorKey: errors.New("disk full")},
			},
			expected: "ERROR: Save failed.: disk full\n",
		},
		{
			name:     "warning",
			entry:    &logrus.Entry{Logger: logger, Level: logrus.WarnLevel, Message: "careful"},
			expected: "WARNING: careful\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NarrationFormatter{}.Format(tt.entry)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func newTestConsole(t *testing.T) (*Console, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	theme, err := gamedata.LoadTheme()
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	c, err := newConsole(sim, theme)
	if err != nil {
		t.Fatalf("newConsole() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c, sim
}

func TestConsoleUsesThemeBaseStyle(t *testing.T) {
	theme, err := gamedata.LoadTheme()
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	fg, bg, _ := baseStyle(theme).Decompose()
	if fg != theme.Color(theme.Text) || bg != theme.Color(theme.Background) {
		t.Errorf("baseStyle() = fg %v bg %v, want the theme text and background", fg, bg)
	}
}

func TestConsoleReadsTypedLine(t *testing.T) {
	c, sim := newTestConsole(t)
	sim.InjectKey(tcell.KeyRune, 'u', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := c.NextAction(ctx)
	if err != nil {
		t.Fatalf("NextAction() error = %v", err)
	}
	if got != "up" {
		t.Errorf("NextAction() = %q, want %q", got, "up")
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Text != "> up" {
		t.Errorf("Lines() = %v, want the echoed command", lines)
	}
}

func TestConsoleEscapeEndsInput(t *testing.T) {
	c, sim := newTestConsole(t)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := c.NextAction(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("NextAction() error = %v, want io.EOF", err)
	}
}

func TestConsoleHookSplitsNarration(t *testing.T) {
	c, _ := newTestConsole(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(c)

	logger.Info("Write \"right\" to move one cell right.\nWrite \"left\" to move one cell left.")
	logger.WithError(errors.New("disk full")).Error("Save failed.")

	lines := c.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %v", len(lines), lines)
	}
	if lines[1].Text != "Write \"left\" to move one cell left." || lines[1].Level != logrus.InfoLevel {
		t.Errorf("second line = %+v", lines[1])
	}
	if lines[2].Text != "Save failed.: disk full" || lines[2].Level != logrus.ErrorLevel {
		t.Errorf("error line = %+v", lines[2])
	}
}

func TestAppendLineKeepsNewest(t *testing.T) {
	var lines []Line
	for i := 0; i < maxLines+10; i++ {
		lines = appendLine(lines, Line{Text: strings.Repeat("x", i%3)})
	}
	if len(lines) != maxLines {
		t.Errorf("len = %d, want %d", len(lines), maxLines)
	}
}
