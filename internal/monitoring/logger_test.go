package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...any) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("fraction %.2f done", 0.5)
	if got != "fraction 0.50 done" {
		t.Errorf("custom logger got %q", got)
	}

	called := false
	SetLogger(func(string, ...any) { called = true })
	SetLogger(nil)
	Logf("ignored")
	if called {
		t.Error("nil logger should install a no-op")
	}
}

func TestQuiet(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	calls := 0
	SetLogger(func(string, ...any) { calls++ })

	restore := Quiet()
	Logf("muted")
	if calls != 0 {
		t.Errorf("Quiet did not mute logger, calls = %d", calls)
	}

	restore()
	Logf("restored")
	if calls != 1 {
		t.Errorf("restore did not reinstate logger, calls = %d", calls)
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
}
