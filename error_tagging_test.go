package inorder

import (
	"errors"
	"fmt"
	"testing"
)

func TestIndexedError_WrapsAndFormats(t *testing.T) {
	base := errors.New("boom")
	err := newIndexedError(base, 4)

	if !errors.Is(err, base) {
		t.Fatalf("expected errors.Is to find the wrapped error")
	}
	idx, ok := ExtractIndex(fmt.Errorf("outer: %w", err))
	if !ok || idx != 4 {
		t.Fatalf("ExtractIndex = (%d,%v); want (4,true)", idx, ok)
	}

	cases := map[string]string{
		"%v":  "boom",
		"%s":  "boom",
		"%q":  `"boom"`,
		"%+v": "item(index=4): boom",
	}
	for format, want := range cases {
		if got := fmt.Sprintf(format, err); got != want {
			t.Fatalf("Sprintf(%s) = %q; want %q", format, got, want)
		}
	}
}

func TestIndexedError_NilAndRetag(t *testing.T) {
	if newIndexedError(nil, 1) != nil {
		t.Fatalf("nil error must stay nil")
	}

	first := newIndexedError(errors.New("x"), 2)
	if again := newIndexedError(first, 2); again != first {
		t.Fatalf("retagging with the same index must keep the original wrapper")
	}

	if _, ok := ExtractIndex(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no index")
	}
}
