package quiz

import "fmt"

// ValidationError indicates a test definition that does not satisfy the
// shape invariants (missing title, missing or empty questions, out-of-range
// correct indices). Always recoverable: the import is rejected and the
// caller stays where it was.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid test definition: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("invalid test definition: %s", e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NotFoundError indicates a test id absent from the catalog.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("test %q not found", e.ID)
}

// SourceUnavailableError indicates a remote fetch failed and no built-in
// fallback shares the id. Recoverable: the caller returns to the catalog.
type SourceUnavailableError struct {
	ID  string
	URL string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("test %q unavailable from %s: %v", e.ID, e.URL, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }
