package inorder

import (
	"errors"
	"fmt"
)

// IndexedError exposes the input position of a failed item.
type IndexedError interface {
	error
	Unwrap() error
	Index() int
}

type indexedError struct {
	err   error
	index int
}

func newIndexedError(err error, index int) error {
	if err == nil {
		return nil
	}
	// Already tagged with the same position: keep the original wrapper.
	if idx, ok := ExtractIndex(err); ok && idx == index {
		return err
	}
	return &indexedError{err: err, index: index}
}

func (e *indexedError) Error() string { return e.err.Error() }
func (e *indexedError) Unwrap() error { return e.err }
func (e *indexedError) Index() int    { return e.index }

func (e *indexedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "item(index=%d): %+v", e.index, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractIndex returns the input index carried by err if present.
func ExtractIndex(err error) (int, bool) {
	var ie IndexedError
	if errors.As(err, &ie) {
		return ie.Index(), true
	}
	return 0, false
}
