package modal

import tea "github.com/charmbracelet/bubbletea"

type Choice int

const (
	ChoiceNo Choice = iota
	ChoiceYes
)

func (c Choice) toggle() Choice {
	if c == ChoiceYes {
		return ChoiceNo
	}
	return ChoiceYes
}

// Confirm is a yes/no question. It defaults to No each time it is shown.
type Confirm struct {
	base

	title  string
	body   string
	choice Choice
}

func NewConfirm(title, body string) *Confirm {
	return &Confirm{title: title, body: body}
}

func (c *Confirm) Title() string { return c.title }

func (c *Confirm) Body() string { return c.body }

func (c *Confirm) Choice() Choice { return c.choice }

// Decision reports whether the user chose Yes.
func (c *Confirm) Decision() bool { return c.choice == ChoiceYes }

func (c *Confirm) show() {
	c.choice = ChoiceNo
	c.base.show()
}

func (c *Confirm) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "tab", "shift+tab":
		c.choice = c.choice.toggle()
	case "y":
		c.choice = ChoiceYes
		c.confirm()
	case "n":
		c.choice = ChoiceNo
		c.confirm()
	case "enter":
		c.confirm()
	case "esc":
		c.choice = ChoiceNo
		c.cancel()
	}
}
