package align

import "fmt"

// ConsistencyError reports a diff that doesn't agree with the documents it was computed for. It
// always indicates a bug in the caller or the diff provider and is never recoverable: the run
// that detects it is aborted without touching any markers.
type ConsistencyError struct {
	Side     Side // document the offending span belongs to, only valid if Op >= 0 or Coverage
	Op       int  // index of the offending diff operation, or -1
	Offset   int  // start of the span in characters
	Length   int  // length of the span in characters
	Len      int  // length of the document in characters
	Coverage bool // the diff as a whole doesn't cover the document
}

func (e *ConsistencyError) Error() string {
	switch {
	case e.Coverage:
		return fmt.Sprintf("diff covers %d characters of the %v document, want %d", e.Offset, e.Side, e.Len)
	case e.Op < 0:
		return fmt.Sprintf("span [%d,%d) outside of document with %d characters", e.Offset, e.Offset+e.Length, e.Len)
	default:
		return fmt.Sprintf("diff operation %d: span [%d,%d) outside of %v document with %d characters", e.Op, e.Offset, e.Offset+e.Length, e.Side, e.Len)
	}
}
