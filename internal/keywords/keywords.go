// Package keywords implements the tag input used on workshop forms: raw
// keystrokes and pasted text become a bounded, de-duplicated, ordered list of
// short keywords.
package keywords

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	DefaultMaxKeywords = 10
	DefaultMaxLength   = 40
)

// Config holds the input's limits and placeholder text.
type Config struct {
	MaxKeywords int
	MaxLength   int
	Placeholder string
}

func (c Config) withDefaults() Config {
	if c.MaxKeywords <= 0 {
		c.MaxKeywords = DefaultMaxKeywords
	}
	if c.MaxLength <= 0 {
		c.MaxLength = DefaultMaxLength
	}
	return c
}

// Messages are the validation texts. TooLong and LimitReached take the limit
// as their only verb; Duplicate takes the rejected keyword.
type Messages struct {
	TooLong      string
	LimitReached string
	Duplicate    string
}

// DefaultMessages are the Slovenian texts shown on the site.
var DefaultMessages = Messages{
	TooLong:      "Ključna beseda je lahko dolga največ %d znakov.",
	LimitReached: "Dodate lahko največ %d ključnih besed.",
	Duplicate:    "Ključna beseda »%s« je že dodana.",
}

// Key is a keyboard key the input reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyComma
	KeyTab
	KeyBackspace
)

// ParseKey maps a DOM KeyboardEvent.key value to a Key.
func ParseKey(name string) Key {
	switch name {
	case "Enter":
		return KeyEnter
	case ",":
		return KeyComma
	case "Tab":
		return KeyTab
	case "Backspace":
		return KeyBackspace
	default:
		return KeyOther
	}
}

// Input is the keyword controller. It is owned by one form and not safe for
// concurrent use.
type Input struct {
	cfg      Config
	msgs     Messages
	keywords []string
	pending  string
	err      string
	onChange func([]string)
	fold     cases.Caser
}

// Option customises an Input.
type Option func(*Input)

// WithMessages replaces the validation texts.
func WithMessages(m Messages) Option {
	return func(in *Input) {
		if m.TooLong != "" {
			in.msgs.TooLong = m.TooLong
		}
		if m.LimitReached != "" {
			in.msgs.LimitReached = m.LimitReached
		}
		if m.Duplicate != "" {
			in.msgs.Duplicate = m.Duplicate
		}
	}
}

// OnChange registers the owner's callback. It receives the full new list after
// every successful add or remove, synchronously.
func OnChange(fn func([]string)) Option {
	return func(in *Input) { in.onChange = fn }
}

// WithPending restores a pending (uncommitted) buffer.
func WithPending(s string) Option {
	return func(in *Input) { in.pending = s }
}

// New builds an input seeded with the owner's current keywords. Seeds that
// would fail validation are dropped silently.
func New(cfg Config, current []string, opts ...Option) *Input {
	in := &Input{
		cfg:  cfg.withDefaults(),
		msgs: DefaultMessages,
		fold: cases.Fold(),
	}
	for _, raw := range current {
		kw := strings.TrimSpace(raw)
		if kw == "" || in.validate(kw) != "" {
			continue
		}
		in.keywords = append(in.keywords, kw)
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Config returns the effective limits.
func (in *Input) Config() Config { return in.cfg }

// Keywords returns a copy of the committed keywords in insertion order.
func (in *Input) Keywords() []string {
	return append([]string(nil), in.keywords...)
}

// Pending returns the uncommitted text.
func (in *Input) Pending() string { return in.pending }

// Error returns the current validation message or "".
func (in *Input) Error() string { return in.err }

// Full reports whether the limit is reached; the text field is hidden then.
func (in *Input) Full() bool { return len(in.keywords) >= in.cfg.MaxKeywords }

// Add commits raw as a keyword. It reports whether the list changed.
func (in *Input) Add(raw string) bool {
	kw := strings.TrimSpace(raw)
	if kw == "" {
		return false
	}
	if msg := in.validate(kw); msg != "" {
		in.err = msg
		return false
	}
	in.keywords = append(in.keywords, kw)
	in.pending = ""
	in.err = ""
	in.notify()
	return true
}

// Remove deletes the keyword at index and clears the current error.
func (in *Input) Remove(index int) bool {
	if index < 0 || index >= len(in.keywords) {
		return false
	}
	in.keywords = append(in.keywords[:index:index], in.keywords[index+1:]...)
	in.err = ""
	in.notify()
	return true
}

// KeyDown handles a key press and reports whether the browser default should
// be prevented.
func (in *Input) KeyDown(key Key) bool {
	switch key {
	case KeyEnter, KeyComma:
		in.Add(in.pending)
		return true
	case KeyTab:
		if in.pending == "" {
			return false
		}
		in.Add(in.pending)
		return true
	case KeyBackspace:
		if in.pending == "" && len(in.keywords) > 0 {
			in.Remove(len(in.keywords) - 1)
			return true
		}
	}
	return false
}

// Change handles an input change event. Text up to the first comma is
// committed and the rest becomes the pending buffer; further commas are left
// for the next change event.
func (in *Input) Change(value string) {
	head, rest, found := strings.Cut(value, ",")
	if !found {
		in.pending = value
		return
	}
	in.Add(head)
	in.pending = rest
}

// Blur commits whatever is pending when the field loses focus.
func (in *Input) Blur() {
	if in.pending != "" {
		in.Add(in.pending)
	}
}

func (in *Input) validate(kw string) string {
	if utf8.RuneCountInString(kw) > in.cfg.MaxLength {
		return fmt.Sprintf(in.msgs.TooLong, in.cfg.MaxLength)
	}
	if len(in.keywords) >= in.cfg.MaxKeywords {
		return fmt.Sprintf(in.msgs.LimitReached, in.cfg.MaxKeywords)
	}
	folded := in.fold.String(kw)
	for _, existing := range in.keywords {
		if in.fold.String(existing) == folded {
			return fmt.Sprintf(in.msgs.Duplicate, kw)
		}
	}
	return ""
}

func (in *Input) notify() {
	if in.onChange != nil {
		in.onChange(in.Keywords())
	}
}
