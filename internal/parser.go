package internal

// Session metadata "type" values identifying the producing adapter
const (
	SessionTypeChat    = "chat_session"
	SessionTypeEditing = "chat_editing_session"
)

// SessionParser converts one source file into zero-or-one ChatSession.
// Implementations log and return nil on failure rather than propagating
// errors: a single malformed file must never abort a discovery run.
type SessionParser interface {
	Parse(path string) *ChatSession
}
