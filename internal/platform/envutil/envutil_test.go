package envutil

import (
	"testing"
	"time"
)

func TestGetEnvFallsBackOnBlank(t *testing.T) {
	t.Setenv("CG_TEST_STRING", "   ")
	if got := GetEnv("CG_TEST_STRING", "fallback", nil); got != "fallback" {
		t.Fatalf("GetEnv: want=%q got=%q", "fallback", got)
	}
	t.Setenv("CG_TEST_STRING", " value ")
	if got := GetEnv("CG_TEST_STRING", "fallback", nil); got != "value" {
		t.Fatalf("GetEnv: want=%q got=%q", "value", got)
	}
}

func TestGetEnvAsIntInvalid(t *testing.T) {
	t.Setenv("CG_TEST_INT", "abc")
	if got := GetEnvAsInt("CG_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("GetEnvAsInt: want=%d got=%d", 7, got)
	}
	t.Setenv("CG_TEST_INT", "42")
	if got := GetEnvAsInt("CG_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("GetEnvAsInt: want=%d got=%d", 42, got)
	}
}

func TestGetEnvAsSeconds(t *testing.T) {
	t.Setenv("CG_TEST_SECS", "-3")
	if got := GetEnvAsSeconds("CG_TEST_SECS", time.Minute, nil); got != time.Minute {
		t.Fatalf("GetEnvAsSeconds: want=%v got=%v", time.Minute, got)
	}
	t.Setenv("CG_TEST_SECS", "5")
	if got := GetEnvAsSeconds("CG_TEST_SECS", time.Minute, nil); got != 5*time.Second {
		t.Fatalf("GetEnvAsSeconds: want=%v got=%v", 5*time.Second, got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"on": true, "0": false, "": true, "maybe": true}
	for raw, want := range cases {
		t.Setenv("CG_TEST_BOOL", raw)
		if got := Bool("CG_TEST_BOOL", true); got != want {
			t.Fatalf("Bool(%q): want=%v got=%v", raw, want, got)
		}
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("CG_TEST_FLOAT", "0.25")
	if got := GetEnvAsFloat("CG_TEST_FLOAT", 1, nil); got != 0.25 {
		t.Fatalf("GetEnvAsFloat: want=0.25 got=%v", got)
	}
	t.Setenv("CG_TEST_FLOAT", "half")
	if got := GetEnvAsFloat("CG_TEST_FLOAT", 1, nil); got != 1 {
		t.Fatalf("GetEnvAsFloat: want=1 got=%v", got)
	}
}
