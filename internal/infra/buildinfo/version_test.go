package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	if !strings.Contains(s, Version) {
		t.Fatalf("String() = %q, missing version", s)
	}
	if !strings.Contains(s, Commit) {
		t.Fatalf("String() = %q, missing commit", s)
	}
}
