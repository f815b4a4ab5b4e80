package env

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in       string
		name     string
		value    string
		additive bool
		wantErr  bool
	}{
		{in: "FOO=bar", name: "FOO", value: "bar"},
		{in: "FOO=", name: "FOO", value: ""},
		{in: "PATH+CARGO=$HOME/.cargo/bin", name: "PATH", value: "$HOME/.cargo/bin", additive: true},
		{in: "FOO", wantErr: true},
		{in: "=bar", wantErr: true},
		{in: "+TAG=bar", wantErr: true},
	}

	for _, tt := range tests {
		b, err := ParseBinding(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedBinding) {
				t.Errorf("ParseBinding(%q): expected ErrMalformedBinding, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseBinding(%q): unexpected error: %v", tt.in, err)
		}
		if b.Name != tt.name || b.Value != tt.value || b.Additive != tt.additive {
			t.Errorf("ParseBinding(%q) = %+v", tt.in, b)
		}
	}
}

func TestApply_Revert(t *testing.T) {
	base := []string{"PRESENT=yes"}
	stack := NewStack()

	err := stack.Apply([]string{"INSIDE=1"}, func() error {
		if v, ok := stack.Lookup(base, "INSIDE"); !ok || v != "1" {
			t.Errorf("INSIDE not visible inside scope: %q, %v", v, ok)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Переменная не должна быть видна после выхода из scope
	if _, ok := stack.Lookup(base, "INSIDE"); ok {
		t.Error("INSIDE still visible after scope exit")
	}
	if stack.Depth() != 0 {
		t.Errorf("expected empty stack, depth = %d", stack.Depth())
	}
}

func TestApply_RevertOnFailure(t *testing.T) {
	stack := NewStack()
	wantErr := errors.New("body failed")

	err := stack.Apply([]string{"INSIDE=1"}, func() error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected body error, got %v", err)
	}

	// Overlay снимается и при ошибочном выходе
	if stack.Depth() != 0 {
		t.Errorf("expected empty stack after failure, depth = %d", stack.Depth())
	}
}

func TestApply_MalformedBinding(t *testing.T) {
	stack := NewStack()
	called := false

	err := stack.Apply([]string{"NOEQUALS"}, func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrMalformedBinding) {
		t.Fatalf("expected ErrMalformedBinding, got %v", err)
	}
	if called {
		t.Error("body must not run when the overlay is malformed")
	}
}

func TestEnviron_ShadowingPrecedence(t *testing.T) {
	base := []string{"CHANNEL=stable"}
	stack := NewStack()

	err := stack.Apply([]string{"CHANNEL=beta"}, func() error {
		return stack.Apply([]string{"CHANNEL=nightly"}, func() error {
			// Ближний overlay побеждает
			if v, _ := stack.Lookup(base, "CHANNEL"); v != "nightly" {
				t.Errorf("expected nightly, got %q", v)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := stack.Lookup(base, "CHANNEL"); v != "stable" {
		t.Error("base value not restored after scopes exit")
	}
}

func TestEnviron_AdditiveMerge(t *testing.T) {
	sep := string(os.PathListSeparator)
	base := []string{"PATH=/usr/bin", "HOME=/home/ci"}
	stack := NewStack()

	err := stack.Apply([]string{"PATH+TOOLS=/opt/tools/bin"}, func() error {
		return stack.Apply([]string{"PATH+RUST=$HOME/.cargo/bin"}, func() error {
			v, _ := stack.Lookup(base, "PATH")

			// Аддитивный биндинг сливается с вкладом внешнего overlay,
			// а не заменяет его
			want := "/home/ci/.cargo/bin" + sep + "/opt/tools/bin" + sep + "/usr/bin"
			if v != want {
				t.Errorf("PATH = %q, want %q", v, want)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := stack.Lookup(base, "PATH"); v != "/usr/bin" {
		t.Error("PATH not restored after scopes exit")
	}
}

func TestEnviron_AdditiveOnEmpty(t *testing.T) {
	stack := NewStack()

	err := stack.Apply([]string{"NEWPATH+X=/opt/x"}, func() error {
		v, ok := stack.Lookup(nil, "NEWPATH")
		if !ok || v != "/opt/x" {
			t.Errorf("NEWPATH = %q, %v; want /opt/x", v, ok)
		}
		// Нет существующего значения — разделитель не добавляется
		if strings.Contains(v, string(os.PathListSeparator)) {
			t.Errorf("unexpected separator in %q", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnviron_BaseUntouched(t *testing.T) {
	base := []string{"A=1", "B=2"}
	stack := NewStack()

	_ = stack.Apply([]string{"A=overridden", "C=3"}, func() error {
		stack.Environ(base)
		return nil
	})

	if base[0] != "A=1" || base[1] != "B=2" || len(base) != 2 {
		t.Errorf("base slice mutated: %v", base)
	}
}
