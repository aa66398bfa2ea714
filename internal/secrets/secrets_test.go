package secrets

import (
	"errors"
	"testing"
)

// memStore is an in-memory Store for chain tests.
type memStore struct {
	value  string
	setErr error
}

func (m *memStore) Get() (string, error) {
	if m.value == "" {
		return "", ErrNotFound
	}
	return m.value, nil
}

func (m *memStore) Set(value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.value = value
	return nil
}

func (m *memStore) Delete() error {
	m.value = ""
	return nil
}

func TestEnv_Get(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key-123")

	got, err := NewEnv().Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "env-key-123" {
		t.Errorf("Get() = %q, want %q", got, "env-key-123")
	}
}

func TestEnv_GetUnset(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := NewEnv().Get()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestEnv_SetRejected(t *testing.T) {
	if err := NewEnv().Set("value"); err == nil {
		t.Error("Set() should fail for the environment backend")
	}
}

func TestChain_GetOrder(t *testing.T) {
	first := &memStore{value: "from-first"}
	second := &memStore{value: "from-second"}

	got, err := NewChain(first, second).Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "from-first" {
		t.Errorf("Get() = %q, want the first store's value", got)
	}
}

func TestChain_GetFallsThrough(t *testing.T) {
	first := &memStore{}
	second := &memStore{value: "from-second"}

	got, err := NewChain(first, second).Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "from-second" {
		t.Errorf("Get() = %q, want the second store's value", got)
	}
}

func TestChain_GetEmpty(t *testing.T) {
	_, err := NewChain(&memStore{}, &memStore{}).Get()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestChain_SetSkipsRejectingStore(t *testing.T) {
	first := &memStore{setErr: errors.New("read only")}
	second := &memStore{}

	if err := NewChain(first, second).Set("new-key"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if second.value != "new-key" {
		t.Errorf("second store value = %q, want %q", second.value, "new-key")
	}
	if first.value != "" {
		t.Errorf("first store should stay empty, got %q", first.value)
	}
}

func TestChain_SetAllReject(t *testing.T) {
	first := &memStore{setErr: errors.New("read only")}
	second := &memStore{setErr: errors.New("locked")}

	if err := NewChain(first, second).Set("new-key"); err == nil {
		t.Error("Set() should fail when no store accepts the value")
	}
}

func TestChain_Delete(t *testing.T) {
	first := &memStore{value: "a"}
	second := &memStore{value: "b"}

	if err := NewChain(first, second).Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if first.value != "" || second.value != "" {
		t.Error("Delete() should clear every store")
	}
}
