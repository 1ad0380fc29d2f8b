package component

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

const promptGlyph = "?"

// ConfirmOptions configures Confirm.
type ConfirmOptions struct {
	// Default is the answer taken on Return.
	Default bool
}

// Confirm asks a yes/no question. y and n answer immediately, Left and
// Right flip the highlighted answer, Return accepts it and Escape cancels.
func Confirm(ctx context.Context, env *Env, question string, opts ConfirmOptions) (bool, error) {
	s, err := env.open("confirm")
	if err != nil {
		return false, err
	}
	defer s.close()

	theme := env.theme()
	answer := opts.Default
	cancelled := false

	view := func() string {
		yes, no := "yes", "no"
		if answer {
			yes = theme.Highlight(yes)
		} else {
			no = theme.Highlight(no)
		}
		return theme.Info.Render(promptGlyph) + " " + question + " " + yes + " / " + no
	}
	_ = s.r.Render(view(), terminal.Primary)

	err = s.listen(ctx, nil, func(k keys.KeyStroke) bool {
		switch k.Kind {
		case keys.Printable:
			switch k.Char {
			case 'y', 'Y':
				answer = true
				return false
			case 'n', 'N':
				answer = false
				return false
			}
		case keys.Left, keys.Right:
			answer = !answer
		case keys.Return:
			return false
		case keys.Escape:
			cancelled = true
			return false
		}
		_ = s.r.Render(view(), terminal.Primary)
		return true
	})
	if err == nil && cancelled {
		err = errors.UserCancelled()
	}
	if err != nil {
		_ = s.r.Clear()
		return false, err
	}

	word := "no"
	if answer {
		word = "yes"
	}
	_ = s.r.Render(theme.Info.Render(promptGlyph)+" "+question+" "+theme.Dim.Render(word), terminal.Primary)
	_ = s.r.Commit()
	return answer, nil
}

// InputOptions configures Input.
type InputOptions struct {
	// Default is returned when the entry is left empty.
	Default string
	// Placeholder is shown dimmed while the entry is empty.
	Placeholder string
	// Mask, when set, is drawn instead of each typed character.
	Mask rune
	// Limit caps the number of characters. Zero means no limit.
	Limit int
	// Validate rejects an entry; its message is shown and editing resumes.
	Validate func(string) error
}

// Input reads a single line of text. Left, Right, Home and End move the
// cursor; Backspace and Delete remove the character before it.
func Input(ctx context.Context, env *Env, prompt string, opts InputOptions) (string, error) {
	s, err := env.open("input")
	if err != nil {
		return "", err
	}
	defer s.close()

	theme := env.theme()
	ed := &lineEditor{mask: opts.Mask, limit: opts.Limit}
	problem := ""
	cancelled := false
	var result string

	head := theme.Info.Render(promptGlyph) + " " + prompt + ": "
	view := func() string {
		var text string
		if ed.empty() && opts.Placeholder != "" {
			text = table.Reverse(" ") + theme.Dim.Render(opts.Placeholder)
		} else {
			text = ed.view(table.Reverse)
		}
		if problem != "" {
			return head + text + "\n" + theme.Failure.Render(problem)
		}
		return head + text
	}
	_ = s.r.Render(view(), terminal.Primary)

	err = s.listen(ctx, nil, func(k keys.KeyStroke) bool {
		switch k.Kind {
		case keys.Printable:
			ed.insert(k.Char)
		case keys.Backspace, keys.Delete:
			ed.backspace()
		case keys.Left:
			ed.move(-1)
		case keys.Right:
			ed.move(1)
		case keys.Home:
			ed.pos = 0
		case keys.End:
			ed.pos = len(ed.buf)
		case keys.Escape:
			cancelled = true
			return false
		case keys.Return:
			v := ed.String()
			if v == "" {
				v = opts.Default
			}
			if opts.Validate != nil {
				if verr := opts.Validate(v); verr != nil {
					problem = verr.Error()
					break
				}
			}
			result = v
			return false
		default:
			return true
		}
		if k.Kind != keys.Return {
			problem = ""
		}
		_ = s.r.Render(view(), terminal.Primary)
		return true
	})
	if err == nil && cancelled {
		err = errors.UserCancelled()
	}
	if err != nil {
		_ = s.r.Clear()
		return "", err
	}

	shown := result
	if opts.Mask != 0 {
		shown = strings.Repeat(string(opts.Mask), utf8.RuneCountInString(result))
	}
	_ = s.r.Render(head+theme.Dim.Render(shown), terminal.Primary)
	_ = s.r.Commit()
	return result, nil
}

// lineEditor is a single-line buffer with a cursor.
type lineEditor struct {
	buf   []rune
	pos   int
	mask  rune
	limit int
}

func (e *lineEditor) empty() bool {
	return len(e.buf) == 0
}

func (e *lineEditor) String() string {
	return string(e.buf)
}

func (e *lineEditor) insert(r rune) {
	if e.limit > 0 && len(e.buf) >= e.limit {
		return
	}
	e.buf = append(e.buf, 0)
	copy(e.buf[e.pos+1:], e.buf[e.pos:])
	e.buf[e.pos] = r
	e.pos++
}

func (e *lineEditor) backspace() {
	if e.pos == 0 {
		return
	}
	e.buf = append(e.buf[:e.pos-1], e.buf[e.pos:]...)
	e.pos--
}

func (e *lineEditor) move(delta int) {
	e.pos = max(0, min(len(e.buf), e.pos+delta))
}

// view draws the buffer with the character under the cursor passed
// through cursor. The cursor sits on a blank cell at the end of the line.
func (e *lineEditor) view(cursor func(string) string) string {
	shown := e.buf
	if e.mask != 0 {
		shown = []rune(strings.Repeat(string(e.mask), len(e.buf)))
	}
	var b strings.Builder
	b.WriteString(string(shown[:e.pos]))
	if e.pos < len(shown) {
		b.WriteString(cursor(string(shown[e.pos])))
		b.WriteString(string(shown[e.pos+1:]))
	} else {
		b.WriteString(cursor(" "))
	}
	return b.String()
}
