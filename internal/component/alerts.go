package component

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/render"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// Level is the severity of an alert.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Glyph is the status indicator printed before an alert of this level.
func (l Level) Glyph() string {
	switch l {
	case LevelSuccess:
		return logging.GlyphSuccess
	case LevelWarning:
		return logging.GlyphWarning
	case LevelError:
		return logging.GlyphError
	default:
		return logging.GlyphInfo
	}
}

// ParseLevel parses info, success, warning or error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info", "":
		return LevelInfo, nil
	case "success", "ok":
		return LevelSuccess, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error", "fail":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown alert level %q", s)
	}
}

// Alert is a single message or a group of alerts.
type Alert interface {
	flatten(depth int, out []AlertLine) []AlertLine
}

// Message is a leaf alert.
type Message struct {
	Level Level
	Text  string
}

// Group is a titled list of alerts, which may themselves be groups.
type Group struct {
	Title    string
	Children []Alert
}

// Info, Success, Warning and Error build leaf alerts.
func Info(text string) Message    { return Message{Level: LevelInfo, Text: text} }
func Success(text string) Message { return Message{Level: LevelSuccess, Text: text} }
func Warning(text string) Message { return Message{Level: LevelWarning, Text: text} }
func Error(text string) Message   { return Message{Level: LevelError, Text: text} }

// NewGroup builds a group.
func NewGroup(title string, children ...Alert) Group {
	return Group{Title: title, Children: children}
}

// AlertLine is one printable line of a flattened alert tree.
type AlertLine struct {
	Level   Level
	Depth   int
	Text    string
	Heading bool
}

func (m Message) flatten(depth int, out []AlertLine) []AlertLine {
	return append(out, AlertLine{Level: m.Level, Depth: depth, Text: m.Text})
}

func (g Group) flatten(depth int, out []AlertLine) []AlertLine {
	out = append(out, AlertLine{Level: worst(g.Children), Depth: depth, Text: g.Title, Heading: true})
	for _, c := range g.Children {
		out = c.flatten(depth+1, out)
	}
	return out
}

// worst is the highest level anywhere below alerts.
func worst(alerts []Alert) Level {
	l := LevelInfo
	for _, a := range alerts {
		switch v := a.(type) {
		case Message:
			l = max(l, v.Level)
		case Group:
			l = max(l, worst(v.Children))
		}
	}
	return l
}

// Flatten walks the alert trees depth first into lines.
func Flatten(alerts ...Alert) []AlertLine {
	var out []AlertLine
	for _, a := range alerts {
		out = a.flatten(0, out)
	}
	return out
}

// Alerts prints alerts, one per line, indenting nested groups. Warnings and
// errors go to the error pipeline, everything else to the primary one. The
// highest level printed is returned.
func Alerts(env *Env, alerts ...Alert) (Level, error) {
	lines := Flatten(alerts...)
	theme := env.theme()
	out := render.NewAppend(env.Streams)

	top := LevelInfo
	for _, l := range lines {
		pad := strings.Repeat("  ", l.Depth)
		p := terminal.Primary
		var text string
		if l.Heading {
			text = pad + theme.Title.Render(l.Text)
		} else {
			top = max(top, l.Level)
			text = pad + theme.StatusLine(l.Level.Glyph(), l.Text)
			if l.Level >= LevelWarning {
				p = terminal.Error
			}
		}
		if err := out.Render(text, p); err != nil {
			return top, err
		}
	}
	return top, nil
}
