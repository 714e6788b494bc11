package tranid

import (
	"errors"
	"fmt"
)

// ErrIdentifierListMismatch is matched by every *MismatchError.
var ErrIdentifierListMismatch = errors.New("translation id lists do not match")

// MismatchError reports that a snapshot does not line up with the current
// file, so ids cannot be paired positionally.
type MismatchError struct {
	// Before and After name the compared files, when known.
	Before, After string
	// Index is the first differing position, or -1 for a length mismatch.
	Index int
	// BeforeLen and AfterLen are the list lengths.
	BeforeLen, AfterLen int
	// BeforeName and AfterName are the message names at Index.
	BeforeName, AfterName string
}

func (e *MismatchError) Error() string {
	files := ""
	if e.Before != "" || e.After != "" {
		files = fmt.Sprintf(", file: %s and %s", e.Before, e.After)
	}
	if e.Index < 0 {
		return fmt.Sprintf("message count differs: %d vs %d%s", e.BeforeLen, e.AfterLen, files)
	}
	return fmt.Sprintf("message name differs at #%d: %s vs %s%s", e.Index, e.BeforeName, e.AfterName, files)
}

// Unwrap makes errors.Is(err, ErrIdentifierListMismatch) hold.
func (e *MismatchError) Unwrap() error { return ErrIdentifierListMismatch }

// Remap maps an old translation id to its new id.
type Remap map[string]string

// Merge copies every pair of other into r.
func (r Remap) Merge(other Remap) {
	for k, v := range other {
		r[k] = v
	}
}

// Reconcile pairs before and after position by position and records
// old id → new id for every message whose id changed. The lists must have
// the same length and the same message name at each position; otherwise a
// *MismatchError is returned and no remap is produced.
func Reconcile(before, after []Entry) (Remap, error) {
	if len(before) != len(after) {
		return nil, &MismatchError{Index: -1, BeforeLen: len(before), AfterLen: len(after)}
	}
	remap := make(Remap)
	for i := range before {
		b, a := before[i], after[i]
		if b.Name != a.Name {
			return nil, &MismatchError{
				Index:      i,
				BeforeLen:  len(before),
				AfterLen:   len(after),
				BeforeName: b.Name,
				AfterName:  a.Name,
			}
		}
		if b.ID != a.ID {
			remap[b.ID] = a.ID
		}
	}
	return remap, nil
}

// ReconcileFiles extracts and reconciles a snapshot and the current file.
func ReconcileFiles(beforePath, afterPath string) (Remap, error) {
	before, err := ExtractFile(beforePath)
	if err != nil {
		return nil, err
	}
	after, err := ExtractFile(afterPath)
	if err != nil {
		return nil, err
	}
	remap, err := Reconcile(before, after)
	var me *MismatchError
	if errors.As(err, &me) {
		me.Before, me.After = beforePath, afterPath
	}
	return remap, err
}
