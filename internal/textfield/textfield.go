// Package textfield provides the cursor-addressable line buffer behind every
// text entry surface: the command line, popup prompts and the task editor.
package textfield

// Field is an editable string with a cursor. The cursor counts runes, not
// bytes, so a multi-byte character is never split.
type Field struct {
	buf    []rune
	cursor int
	maxLen int
}

func New() *Field {
	return &Field{}
}

// NewWithLimit returns a field that refuses input beyond maxLen runes.
// A non-positive maxLen means no limit.
func NewWithLimit(maxLen int) *Field {
	if maxLen < 0 {
		maxLen = 0
	}
	return &Field{maxLen: maxLen}
}

func (f *Field) Insert(r rune) {
	if f.maxLen > 0 && len(f.buf) >= f.maxLen {
		return
	}
	f.buf = append(f.buf, 0)
	copy(f.buf[f.cursor+1:], f.buf[f.cursor:])
	f.buf[f.cursor] = r
	f.cursor++
}

// Remove deletes the rune before the cursor, like backspace.
func (f *Field) Remove() {
	if len(f.buf) == 0 || f.cursor == 0 {
		return
	}
	f.cursor--
	f.buf = append(f.buf[:f.cursor], f.buf[f.cursor+1:]...)
}

func (f *Field) MoveLeft() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *Field) MoveRight() {
	if f.cursor < len(f.buf) {
		f.cursor++
	}
}

func (f *Field) MoveHome() { f.cursor = 0 }

func (f *Field) MoveEnd() { f.cursor = len(f.buf) }

// SetText replaces the buffer, truncating to the limit, and moves the cursor
// to the end.
func (f *Field) SetText(s string) {
	f.buf = []rune(s)
	if f.maxLen > 0 && len(f.buf) > f.maxLen {
		f.buf = f.buf[:f.maxLen]
	}
	f.cursor = len(f.buf)
}

func (f *Field) Clear() {
	f.buf = f.buf[:0]
	f.cursor = 0
}

// Take returns the contents and leaves the field empty.
func (f *Field) Take() string {
	out := string(f.buf)
	f.buf = nil
	f.cursor = 0
	return out
}

func (f *Field) Text() string { return string(f.buf) }

func (f *Field) Cursor() int { return f.cursor }

func (f *Field) Len() int { return len(f.buf) }
