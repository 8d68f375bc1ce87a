package quiz

import "github.com/abhisek/funcdrill/internal/session"

// advanceMsg fires AutoAdvanceDelay after a correct answer.
type advanceMsg struct {
	Token session.Token
}
