package step

import (
	"errors"
	"testing"
)

func TestNewID(t *testing.T) {
	valid := []string{
		"apt:update",
		"apt:package:vim",
		"files:copy:vim/colors",
		"docker:apt-update",
		"shell:fzf",
		"gnome:gsettings:org.gnome.desktop.interface:color-scheme",
		"single",
	}
	for _, v := range valid {
		id, err := NewID(v)
		if err != nil {
			t.Errorf("NewID(%q) returned error: %v", v, err)
		}
		if id.String() != v {
			t.Errorf("NewID(%q).String() = %q", v, id.String())
		}
	}

	invalid := []string{
		"",
		"   ",
		":leading",
		"trailing:",
		"has space:x",
		"a::b",
	}
	for _, v := range invalid {
		if _, err := NewID(v); err == nil {
			t.Errorf("NewID(%q) expected error", v)
		}
	}
}

func TestNewIDEmpty(t *testing.T) {
	_, err := NewID("")
	if !errors.Is(err, ErrEmptyID) {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}

	_, err = NewID("bad id")
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestIDProvider(t *testing.T) {
	id := MustNewID("apt:package:vim")
	if id.Provider() != "apt" {
		t.Errorf("Provider() = %q, want %q", id.Provider(), "apt")
	}

	id = MustNewID("standalone")
	if id.Provider() != "standalone" {
		t.Errorf("Provider() = %q, want %q", id.Provider(), "standalone")
	}
}

func TestIDEquals(t *testing.T) {
	a := MustNewID("apt:update")
	b := MustNewID("apt:update")
	c := MustNewID("apt:upgrade")

	if !a.Equals(b) {
		t.Error("identical IDs should be equal")
	}
	if a.Equals(c) {
		t.Error("different IDs should not be equal")
	}
}

func TestIDIsZero(t *testing.T) {
	var zero ID
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if MustNewID("x").IsZero() {
		t.Error("valid ID should not report IsZero")
	}
}

func TestMustNewIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewID with invalid input should panic")
		}
	}()
	MustNewID(":bad:")
}
