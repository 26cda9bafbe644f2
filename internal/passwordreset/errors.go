package passwordreset

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

// Codes used by local validation. Handlers translate them; backend messages
// arrive as free text and are shown verbatim.
const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
	CodeMismatch = "mismatch"
	CodeTooShort = "too_short"
)

// MinPasswordLength is the shortest password accepted locally.
const MinPasswordLength = 8

// FieldErrors maps form fields to their messages. The backend answers 400
// with this shape; local validation produces it as well.
type FieldErrors struct {
	Fields map[string][]string
}

func (e *FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "passwordreset: " + strings.Join(parts, ", ")
}

// First returns the first message for field or "".
func (e *FieldErrors) First(field string) string {
	if e == nil {
		return ""
	}
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e *FieldErrors) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *FieldErrors) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// StatusError is any non-2xx answer that is not a field-keyed 400.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("passwordreset: status %d", e.Status)
	}
	return fmt.Sprintf("passwordreset: status %d: %s", e.Status, e.Body)
}

// ValidateEmail checks that email is present and looks like an address.
func ValidateEmail(email string) error {
	fe := &FieldErrors{}
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		fe.add("email", CodeRequired)
	case !plausibleEmail(email):
		fe.add("email", CodeInvalid)
	}
	return fe.orNil()
}

// Validate checks the confirm form before it is sent.
func (r ConfirmRequest) Validate() error {
	fe := &FieldErrors{}
	if strings.TrimSpace(r.Token) == "" {
		fe.add("token", CodeRequired)
	}
	switch {
	case r.NewPassword == "":
		fe.add("new_password", CodeRequired)
	case len([]rune(r.NewPassword)) < MinPasswordLength:
		fe.add("new_password", CodeTooShort)
	}
	switch {
	case r.ConfirmPassword == "":
		fe.add("confirm_password", CodeRequired)
	case r.NewPassword != "" && r.ConfirmPassword != r.NewPassword:
		fe.add("confirm_password", CodeMismatch)
	}
	return fe.orNil()
}

func plausibleEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// decodeFieldErrors accepts {"field": ["msg", ...]} and {"field": "msg"}.
// Anything else yields nil.
func decodeFieldErrors(raw []byte) *FieldErrors {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload) == 0 {
		return nil
	}
	fe := &FieldErrors{}
	for field, value := range payload {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			for _, msg := range list {
				fe.add(field, msg)
			}
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			fe.add(field, single)
			continue
		}
		return nil
	}
	if len(fe.Fields) == 0 {
		return nil
	}
	return fe
}
