package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUserProfileValidation(t *testing.T) {
	if _, err := NewUserProfile(""); !errors.Is(err, ErrUsernameEmpty) {
		t.Errorf("empty name: err = %v", err)
	}
	if _, err := NewUserProfile(strings.Repeat("a", MaxUsernameLen+1)); !errors.Is(err, ErrUsernameTooLong) {
		t.Errorf("long name: err = %v", err)
	}
	p, err := NewUserProfile("Ada")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == "" || p.Name != "Ada" {
		t.Errorf("profile = %+v", p)
	}
}

func TestSetName(t *testing.T) {
	p := UserProfile{ID: "u1", Name: "Ada"}
	if err := p.SetName(""); !errors.Is(err, ErrUsernameEmpty) {
		t.Errorf("empty rename: err = %v", err)
	}
	if p.Name != "Ada" {
		t.Errorf("name changed on failed rename: %q", p.Name)
	}
	if err := p.SetName("Grace"); err != nil || p.Name != "Grace" {
		t.Errorf("rename: err = %v, name = %q", err, p.Name)
	}
}
