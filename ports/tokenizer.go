package ports

import "github.com/cybermonitor-rd/sentinel/core"

// Tokenizer converts between sessions and their signed wire form
type Tokenizer interface {
	SessionToToken(session *core.Session) (string, error)
	TokenToSession(token string) (*core.Session, error)
}
