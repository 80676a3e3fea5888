package rderr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		in  Kind
		out string
	}{
		{KindUnexpectedEOF, "unexpected-eof"},
		{KindBadMagic, "bad-magic"},
		{KindUnsupportedFeature, "unsupported-feature"},
		{KindBadOpcode, "bad-opcode"},
		{KindOutOfBounds, "out-of-bounds"},
		{KindCorruptSize, "corrupt-size"},
		{KindMissingResource, "missing-resource"},
		{Kind(99), "?"},
	}

	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			if got := tt.in.String(); got != tt.out {
				t.Errorf("Kind.String() = %v, want %v", got, tt.out)
			}
		})
	}
}

func TestIsMatchesByKindNotMessage(t *testing.T) {
	err := New(KindBadOpcode, "opcode 0x42 at offset 10")
	if !Is(err, KindBadOpcode) {
		t.Errorf("Is(err, KindBadOpcode) = false, want true")
	}
	if Is(err, KindBadMagic) {
		t.Errorf("Is(err, KindBadMagic) = true, want false")
	}

	wrapped := fmt.Errorf("while decoding: %w", err)
	if !errors.Is(wrapped, New(KindBadOpcode, "")) {
		t.Errorf("errors.Is did not see through fmt.Errorf wrap")
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("short read")
	err := Wrap(KindUnexpectedEOF, "reading opcode stream", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	k, ok := Of(err)
	if !ok || k != KindUnexpectedEOF {
		t.Errorf("Of(err) = (%v, %v), want (KindUnexpectedEOF, true)", k, ok)
	}
}

func TestOfOnPlainError(t *testing.T) {
	_, ok := Of(errors.New("plain"))
	if ok {
		t.Errorf("Of(plain error) = true, want false")
	}
}
