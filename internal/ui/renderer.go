package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeonkey/internal/gamedata"
)

const promptPrefix = "> "

// Line is one row of narration in the log pane.
type Line struct {
	Text  string
	Level logrus.Level
}

// Renderer draws the narration log and the prompt line.
type Renderer struct {
	screen *Screen
	theme  *gamedata.ThemeDef
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme *gamedata.ThemeDef) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws the newest lines that fit above the prompt, then the prompt
// with the text typed so far.
func (r *Renderer) Render(lines []Line, input string) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if height < 2 || width < 1 {
		r.screen.Show()
		return
	}

	pane := height - 2
	start := max(len(lines)-pane, 0)
	for row, line := range lines[start:] {
		r.screen.DrawText(0, row, line.Text, r.levelStyle(line.Level))
	}
	r.screen.HLine(height-2, r.style(r.theme.Debug))

	end := r.screen.DrawText(0, height-1, promptPrefix+input, r.style(r.theme.Prompt))
	r.screen.ShowCursor(min(end, width-1), height-1)
	r.screen.Show()
}

// levelStyle colours a narration line by its log level.
func (r *Renderer) levelStyle(level logrus.Level) tcell.Style {
	switch {
	case level <= logrus.ErrorLevel:
		return r.style(r.theme.Error).Bold(true)
	case level == logrus.WarnLevel:
		return r.style(r.theme.Warn)
	case level >= logrus.DebugLevel:
		return r.style(r.theme.Debug)
	default:
		return r.style(r.theme.Info)
	}
}

func (r *Renderer) style(fg string) tcell.Style {
	return tcell.StyleDefault.
		Background(r.theme.Color(r.theme.Background)).
		Foreground(r.theme.Color(fg))
}
