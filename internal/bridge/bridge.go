// Package bridge models the optional host-platform capability for user
// identity and result sharing. Callers receive a Bridge and never branch on
// whether a real host is present: the Local variant answers every call with
// an immediate local fallback.
package bridge

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// UserInfo identifies the person taking tests.
type UserInfo struct {
	ID        string
	FirstName string
	LastName  string
}

// DisplayName renders the info for screens and results.
func (u UserInfo) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "Guest"
	}
	return name
}

// ShareOutcome reports how a share request was handled. When Posted is
// false the caller shows Message itself.
type ShareOutcome struct {
	Posted  bool
	Message string
}

// Bridge is the host capability surface.
type Bridge interface {
	// UserInfo returns the current user identity, falling back to a
	// generated guest identity when the host cannot provide one.
	UserInfo() UserInfo

	// Share offers message to the host's sharing surface.
	Share(message string) ShareOutcome
}

// Local is the no-host variant: guest identity, local-only sharing.
type Local struct {
	info UserInfo
}

var _ Bridge = (*Local)(nil)

// NewLocal generates a guest identity once and reuses it for the process
// lifetime. The login name, when available, makes the guest less anonymous.
func NewLocal() *Local {
	first := os.Getenv("QUIZDECK_USER")
	if first == "" {
		first = os.Getenv("USER")
	}
	return &Local{
		info: UserInfo{
			ID:        "guest_" + uuid.NewString()[:9],
			FirstName: first,
		},
	}
}

func (l *Local) UserInfo() UserInfo {
	return l.info
}

func (l *Local) Share(message string) ShareOutcome {
	return ShareOutcome{Posted: false, Message: message}
}
