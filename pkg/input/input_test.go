package input

import (
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("register and construct", func(t *testing.T) {
		r := NewRegistry()
		r.Register("text", func(deps Deps) (Adapter, error) {
			return NewPush("text", deps), nil
		})

		a, err := r.New("text", Deps{Sink: SinkFunc(func(string) bool { return true })})
		if err != nil {
			t.Fatalf("construct failed: %v", err)
		}
		if a.Name() != "text" {
			t.Errorf("expected name text, got %q", a.Name())
		}
	})

	t.Run("unregistered name is fatal", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.New("ghost", Deps{}); !errors.Is(err, ErrNotRegistered) {
			t.Errorf("expected ErrNotRegistered, got %v", err)
		}
	})

	t.Run("rebind affects later constructions only", func(t *testing.T) {
		r := NewRegistry()
		r.Register("gui", func(deps Deps) (Adapter, error) {
			return NewPush("gui-v1", deps), nil
		})

		first, err := r.New("gui", Deps{})
		if err != nil {
			t.Fatalf("construct failed: %v", err)
		}

		r.Register("gui", func(deps Deps) (Adapter, error) {
			return NewPush("gui-v2", deps), nil
		})

		second, err := r.New("gui", Deps{})
		if err != nil {
			t.Fatalf("construct after rebind failed: %v", err)
		}

		if first.Name() != "gui-v1" {
			t.Errorf("existing adapter changed by rebind: %q", first.Name())
		}
		if second.Name() != "gui-v2" {
			t.Errorf("rebind not picked up: %q", second.Name())
		}
	})

	t.Run("names sorted", func(t *testing.T) {
		r := NewRegistry()
		nop := func(deps Deps) (Adapter, error) { return NewPush("x", deps), nil }
		r.Register("web", nop)
		r.Register("gui", nop)
		r.Register("text", nop)

		names := r.Names()
		if len(names) != 3 || names[0] != "gui" || names[1] != "text" || names[2] != "web" {
			t.Errorf("unexpected names: %v", names)
		}
	})
}

func TestPush(t *testing.T) {
	t.Run("feed dispatches to sink", func(t *testing.T) {
		var got []string
		p := NewPush("text", Deps{Sink: SinkFunc(func(id string) bool {
			got = append(got, id)
			return true
		})})

		if err := p.Start(); err != nil {
			t.Fatalf("start failed: %v", err)
		}
		if err := p.Feed("lights"); err != nil {
			t.Fatalf("feed failed: %v", err)
		}

		if len(got) != 1 || got[0] != "lights" {
			t.Errorf("expected one lights dispatch, got %v", got)
		}
	})

	t.Run("feed before start", func(t *testing.T) {
		p := NewPush("text", Deps{Sink: SinkFunc(func(string) bool { return true })})
		if err := p.Feed("lights"); !errors.Is(err, ErrNotStarted) {
			t.Errorf("expected ErrNotStarted, got %v", err)
		}
	})

	t.Run("double start", func(t *testing.T) {
		p := NewPush("text", Deps{})
		if err := p.Start(); err != nil {
			t.Fatalf("start failed: %v", err)
		}
		if err := p.Start(); !errors.Is(err, ErrAlreadyStarted) {
			t.Errorf("expected ErrAlreadyStarted, got %v", err)
		}
	})

	t.Run("stop idempotent on never-started adapter", func(t *testing.T) {
		p := NewPush("text", Deps{})
		if err := p.Stop(); err != nil {
			t.Errorf("stop on fresh adapter failed: %v", err)
		}
		if err := p.Stop(); err != nil {
			t.Errorf("second stop failed: %v", err)
		}
		if p.Started() {
			t.Error("adapter should not be started")
		}
	})
}
