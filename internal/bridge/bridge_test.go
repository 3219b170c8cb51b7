package bridge

import (
	"strings"
	"testing"
)

func TestLocalGuestIdentity(t *testing.T) {
	l := NewLocal()

	info := l.UserInfo()
	if !strings.HasPrefix(info.ID, "guest_") {
		t.Errorf("guest id = %q, want guest_ prefix", info.ID)
	}
	if l.UserInfo().ID != info.ID {
		t.Error("guest id must be stable for the process lifetime")
	}
}

func TestLocalShareFallsBackToMessage(t *testing.T) {
	l := NewLocal()

	out := l.Share("hello")
	if out.Posted {
		t.Error("local bridge never posts")
	}
	if out.Message != "hello" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestDisplayNameFallback(t *testing.T) {
	if got := (UserInfo{}).DisplayName(); got != "Guest" {
		t.Errorf("empty info display name = %q, want Guest", got)
	}
	if got := (UserInfo{FirstName: "Ada", LastName: "L"}).DisplayName(); got != "Ada L" {
		t.Errorf("display name = %q", got)
	}
}
