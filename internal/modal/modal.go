// Package modal implements the popups that mediate every mutating operation:
// the task editor, yes/no confirmation and the single-line prompt.
//
// A Controller owns at most one popup. While it is InUse the popup consumes
// every key, which keeps global hotkeys from firing underneath it.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

type Status string

const (
	StatusClosed    Status = "closed"
	StatusInUse     Status = "in_use"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func (s Status) Resolved() bool {
	return s == StatusConfirmed || s == StatusCanceled
}

// Purpose records why a popup was opened so the caller knows what to do with
// its outcome.
type Purpose string

const (
	PurposeNone     Purpose = ""
	PurposeEditTask Purpose = "edit_task"
	PurposeNewList  Purpose = "new_list"
	PurposeDelete   Purpose = "delete"
	PurposeSave     Purpose = "save"
)

// Popup is implemented by *Editor, *Confirm and *Prompt only.
type Popup interface {
	Status() Status
	Title() string

	show()
	close()
	handleKey(msg tea.KeyMsg)
}

type base struct {
	status Status
}

func (b *base) Status() Status { return b.status }
func (b *base) show() { b.status = StatusInUse }
func (b *base) close() { b.status = StatusClosed }
func (b *base) confirm() { b.status = StatusConfirmed }
func (b *base) cancel() { b.status = StatusCanceled }

// Outcome describes a popup that resolved during HandleKey.
type Outcome struct {
	Popup   Popup
	Purpose Purpose
	Status  Status
}

func (o Outcome) Resolved() bool { return o.Status.Resolved() }

func (o Outcome) Confirmed() bool { return o.Status == StatusConfirmed }

func (o Outcome) Editor() *Editor {
	e, _ := o.Popup.(*Editor)
	return e
}

func (o Outcome) Confirm() *Confirm {
	c, _ := o.Popup.(*Confirm)
	return c
}

func (o Outcome) Prompt() *Prompt {
	p, _ := o.Popup.(*Prompt)
	return p
}

type Controller struct {
	active  Popup
	purpose Purpose
}

// Open shows p. It refuses and returns false while another popup is InUse.
func (c *Controller) Open(p Popup, purpose Purpose) bool {
	if p == nil || c.InUse() {
		return false
	}
	p.show()
	c.active = p
	c.purpose = purpose
	return true
}

func (c *Controller) InUse() bool {
	return c.active != nil && c.active.Status() == StatusInUse
}

// Active returns the open popup, or nil.
func (c *Controller) Active() Popup {
	if !c.InUse() {
		return nil
	}
	return c.active
}

func (c *Controller) Purpose() Purpose {
	if !c.InUse() {
		return PurposeNone
	}
	return c.purpose
}

// HandleKey routes msg to the open popup. consumed is false only when no
// popup is open. When the popup resolves the returned Outcome carries it and
// the controller is already closed again.
func (c *Controller) HandleKey(msg tea.KeyMsg) (Outcome, bool) {
	if !c.InUse() {
		return Outcome{}, false
	}
	p := c.active
	p.handleKey(msg)
	status := p.Status()
	if !status.Resolved() {
		return Outcome{Status: status}, true
	}
	out := Outcome{Popup: p, Purpose: c.purpose, Status: status}
	p.close()
	c.active = nil
	c.purpose = PurposeNone
	return out, true
}

// Close discards the open popup without an outcome.
func (c *Controller) Close() {
	if c.active != nil {
		c.active.close()
	}
	c.active = nil
	c.purpose = PurposeNone
}

// typed returns the runes carried by a key press. Space arrives as its own
// key type.
func typed(msg tea.KeyMsg) []rune {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		return msg.Runes
	case tea.KeySpace:
		return []rune{' '}
	default:
		return nil
	}
}
