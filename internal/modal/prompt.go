package modal

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frogpad/frogpad/internal/textfield"
)

// Prompt asks for a single line of text, such as a new list name.
type Prompt struct {
	base

	title string
	input *textfield.Field
}

func NewPrompt(title string) *Prompt {
	return &Prompt{title: title, input: textfield.New()}
}

func (p *Prompt) Title() string { return p.title }

func (p *Prompt) Input() *textfield.Field { return p.input }

// Take drains the entered text.
func (p *Prompt) Take() string { return p.input.Take() }

func (p *Prompt) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		p.confirm()
	case "esc":
		p.cancel()
	case "backspace":
		p.input.Remove()
	case "left":
		p.input.MoveLeft()
	case "right":
		p.input.MoveRight()
	case "home":
		p.input.MoveHome()
	case "end":
		p.input.MoveEnd()
	default:
		for _, r := range typed(msg) {
			p.input.Insert(r)
		}
	}
}
