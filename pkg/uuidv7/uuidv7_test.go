package uuidv7

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	u, err := New()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if u.Version() != 7 {
		t.Fatalf("version=%d", u.Version())
	}
	if u.Variant() != uuid.RFC4122 {
		t.Fatalf("variant=%v", u.Variant())
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	b, err := New()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if b.Time() < a.Time() {
		t.Fatalf("ordering broken: %s before %s", b, a)
	}
}

func TestNewString(t *testing.T) {
	got, err := NewString()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("parse: %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestNew_ReadError(t *testing.T) {
	orig := rand.Reader
	rand.Reader = errReader{}
	defer func() { rand.Reader = orig }()

	if _, err := New(); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewString(); err == nil {
		t.Fatal("expected error")
	}
}
