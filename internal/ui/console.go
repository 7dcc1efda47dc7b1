package ui

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeonkey/internal/gamedata"
)

// maxLines caps the narration kept for redraws.
const maxLines = 500

// Console is a full-screen front end. It reads commands typed on the prompt
// line and, as a logrus hook, shows narration in a coloured log pane.
type Console struct {
	screen   *Screen
	renderer *Renderer
	events   chan tcell.Event
	done     chan struct{}

	mu    sync.Mutex
	lines []Line
	input []rune
}

// NewConsole takes over the terminal.
func NewConsole(theme *gamedata.ThemeDef) (*Console, error) {
	screen, err := NewScreen(baseStyle(theme))
	if err != nil {
		return nil, err
	}
	return startConsole(screen, theme), nil
}

// newConsole runs a console on an existing tcell screen, such as a
// simulation screen in tests.
func newConsole(s tcell.Screen, theme *gamedata.ThemeDef) (*Console, error) {
	screen, err := newScreen(s, baseStyle(theme))
	if err != nil {
		return nil, err
	}
	return startConsole(screen, theme), nil
}

func startConsole(screen *Screen, theme *gamedata.ThemeDef) *Console {
	c := &Console{
		screen:   screen,
		renderer: NewRenderer(screen, theme),
		events:   make(chan tcell.Event, 16),
		done:     make(chan struct{}),
	}
	go c.pollEvents()
	c.redraw()
	return c
}

func baseStyle(theme *gamedata.ThemeDef) tcell.Style {
	return tcell.StyleDefault.
		Background(theme.Color(theme.Background)).
		Foreground(theme.Color(theme.Text))
}

// pollEvents forwards terminal events until the screen is closed.
func (c *Console) pollEvents() {
	defer close(c.events)
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

// Close restores the terminal.
func (c *Console) Close() {
	close(c.done)
	c.screen.Close()
}

// NextAction blocks until the player presses Enter and returns the typed
// line. Escape and Ctrl-C end the input with io.EOF.
func (c *Console) NextAction(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-c.events:
			if !ok {
				return "", io.EOF
			}
			if line, submitted, err := c.handle(ev); err != nil || submitted {
				return line, err
			}
		}
	}
}

// handle applies one event to the prompt line.
func (c *Console) handle(ev tcell.Event) (string, bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.screen.Sync()
	case *tcell.EventKey:
		c.mu.Lock()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			c.mu.Unlock()
			return "", false, io.EOF
		case tcell.KeyEnter:
			line := string(c.input)
			c.input = c.input[:0]
			c.lines = appendLine(c.lines, Line{Text: promptPrefix + line, Level: logrus.TraceLevel})
			c.mu.Unlock()
			c.redraw()
			return line, true, nil
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if n := len(c.input); n > 0 {
				c.input = c.input[:n-1]
			}
		case tcell.KeyRune:
			c.input = append(c.input, ev.Rune())
		}
		c.mu.Unlock()
	}
	c.redraw()
	return "", false, nil
}

// Levels implements logrus.Hook.
func (c *Console) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook by adding the entry to the log pane.
func (c *Console) Fire(entry *logrus.Entry) error {
	text := entry.Message
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		text += ": " + err.Error()
	}

	c.mu.Lock()
	for _, row := range strings.Split(text, "\n") {
		c.lines = appendLine(c.lines, Line{Text: row, Level: entry.Level})
	}
	c.mu.Unlock()
	c.redraw()
	return nil
}

// Lines returns a copy of the narration currently held.
func (c *Console) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

func (c *Console) redraw() {
	c.mu.Lock()
	lines := append([]Line(nil), c.lines...)
	input := string(c.input)
	c.mu.Unlock()
	c.renderer.Render(lines, input)
}

func appendLine(lines []Line, line Line) []Line {
	lines = append(lines, line)
	if over := len(lines) - maxLines; over > 0 {
		lines = append(lines[:0], lines[over:]...)
	}
	return lines
}
