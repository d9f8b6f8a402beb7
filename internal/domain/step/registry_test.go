package step

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// fakeStep is a minimal Step for registry tests.
type fakeStep struct {
	id   ID
	deps []ID
}

func (f *fakeStep) ID() ID                              { return f.id }
func (f *fakeStep) DependsOn() []ID                     { return f.deps }
func (f *fakeStep) Check(context.Context) (bool, error) { return false, nil }
func (f *fakeStep) Apply(context.Context) error         { return nil }
func (f *fakeStep) Summary() string                     { return "fake " + f.id.String() }

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	s := &fakeStep{id: MustNewID("apt:package:vim")}

	if err := reg.Register(s); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}

	got, ok := reg.Get(s.id)
	if !ok {
		t.Fatal("Get did not find registered step")
	}
	if !got.ID().Equals(s.id) {
		t.Errorf("Get returned step %q", got.ID())
	}

	_, ok = reg.Get(MustNewID("apt:package:emacs"))
	if ok {
		t.Error("Get found a step that was never registered")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	id := MustNewID("snap:install:chromium")

	if err := reg.Register(&fakeStep{id: id}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	err := reg.Register(&fakeStep{id: id})
	if !errors.Is(err, ErrDuplicateStep) {
		t.Errorf("expected ErrDuplicateStep, got %v", err)
	}
}

func TestRegistryOrdering(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"c:z", "a:x", "b:y"} {
		if err := reg.Register(&fakeStep{id: MustNewID(id)}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	want := []string{"a:x", "b:y", "c:z"}
	if got := reg.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	all := reg.All()
	for i, s := range all {
		if s.ID().String() != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, s.ID(), want[i])
		}
	}
}
