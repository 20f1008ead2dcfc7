package envutil

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("NAVGRAPH_TEST_STR", "  bolt  ")
	t.Setenv("NAVGRAPH_TEST_INT", "12")
	t.Setenv("NAVGRAPH_TEST_BAD_INT", "x")
	t.Setenv("NAVGRAPH_TEST_NEG", "-3")
	t.Setenv("NAVGRAPH_TEST_BOOL", "on")
	t.Setenv("NAVGRAPH_TEST_FLOAT", "0.25")
	t.Setenv("NAVGRAPH_TEST_SECS", "30")

	if got := String("NAVGRAPH_TEST_STR", "x"); got != "bolt" {
		t.Fatalf("String: got=%q", got)
	}
	if got := String("NAVGRAPH_TEST_MISSING", "def"); got != "def" {
		t.Fatalf("String default: got=%q", got)
	}
	if got := Int("NAVGRAPH_TEST_INT", 1); got != 12 {
		t.Fatalf("Int: got=%d", got)
	}
	if got := Int("NAVGRAPH_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: got=%d", got)
	}
	if got := PositiveInt("NAVGRAPH_TEST_NEG", 5); got != 5 {
		t.Fatalf("PositiveInt: got=%d", got)
	}
	if !Bool("NAVGRAPH_TEST_BOOL", false) {
		t.Fatalf("Bool: expected true")
	}
	if Bool("NAVGRAPH_TEST_MISSING", false) {
		t.Fatalf("Bool default: expected false")
	}
	if got := Float("NAVGRAPH_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: got=%v", got)
	}
	if got := Seconds("NAVGRAPH_TEST_SECS", time.Second); got != 30*time.Second {
		t.Fatalf("Seconds: got=%v", got)
	}
}
