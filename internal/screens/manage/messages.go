package manage

import "github.com/bugaev/quizdeck/internal/quiz"

// importedMsg is sent when an import (file or URL) has been decoded and
// stored, or failed.
type importedMsg struct {
	Def *quiz.Definition
	Err error
}
