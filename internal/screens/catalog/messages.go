package catalog

import "github.com/bugaev/quizdeck/internal/quiz"

// discoverDoneMsg is sent when the initial catalog discovery completes.
type discoverDoneMsg struct {
	Entries []quiz.Entry
	Err     error
}

// refreshDoneMsg is sent when a manual catalog refresh completes.
type refreshDoneMsg struct {
	Entries []quiz.Entry
	Err     error
}
