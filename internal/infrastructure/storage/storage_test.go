package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rdv360/session-gateway/internal/core/ports"
)

func exerciseStore(t *testing.T, s ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, ports.KeyAccessToken); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, ports.KeyAccessToken, "T1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, ports.KeyRefreshToken, "R1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, ports.KeyAccessToken)
	if err != nil || !ok || v != "T1" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := s.Remove(ctx, ports.KeyAccessToken); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, ports.KeyAccessToken); err != nil {
		t.Fatalf("remove of missing key should be a no-op: %v", err)
	}
	if _, ok, _ := s.Get(ctx, ports.KeyAccessToken); ok {
		t.Fatalf("expected key removed")
	}
	if v, _, _ := s.Get(ctx, ports.KeyRefreshToken); v != "R1" {
		t.Fatalf("unrelated key changed: %q", v)
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile_Plaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	f, err := OpenFile(path, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, f)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte(`"refreshToken":"R1"`)) {
		t.Fatalf("expected plaintext JSON, got %s", data)
	}
}

func TestFile_EncryptedSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	f, err := OpenFile(path, "correct horse")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, f)

	data, _ := os.ReadFile(path)
	if bytes.Contains(data, []byte("R1")) {
		t.Fatalf("token stored in clear")
	}

	reopened, err := OpenFile(path, "correct horse")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok, err := reopened.Get(context.Background(), ports.KeyRefreshToken); err != nil || !ok || v != "R1" {
		t.Fatalf("reopen get: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestFile_WrongSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	f, _ := OpenFile(path, "right")
	if err := f.Set(context.Background(), ports.KeyUser, `{"id":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	wrong, err := OpenFile(path, "wrong")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, _, err := wrong.Get(context.Background(), ports.KeyUser); !errors.Is(err, ErrUndecryptable) {
		t.Fatalf("expected ErrUndecryptable, got %v", err)
	}
	if err := wrong.Ping(context.Background()); !errors.Is(err, ErrUndecryptable) {
		t.Fatalf("expected ping failure, got %v", err)
	}
}

func TestFile_RemoveClearsUnreadableFile(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong secret", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.bin")
		f, _ := OpenFile(path, "right")
		if err := f.Set(ctx, ports.KeyAccessToken, "T1"); err != nil {
			t.Fatalf("set: %v", err)
		}

		wrong, err := OpenFile(path, "wrong")
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		for _, key := range ports.SessionKeys {
			if err := wrong.Remove(ctx, key); err != nil {
				t.Fatalf("remove %s: %v", key, err)
			}
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected session file deleted, stat err=%v", err)
		}
		if _, ok, err := wrong.Get(ctx, ports.KeyAccessToken); err != nil || ok {
			t.Fatalf("expected empty store after logout, ok=%v err=%v", ok, err)
		}
		if err := wrong.Set(ctx, ports.KeyAccessToken, "T2"); err != nil {
			t.Fatalf("store must be usable again with the new secret: %v", err)
		}
	})

	t.Run("corrupt plaintext", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		f, _ := OpenFile(path, "")
		if _, _, err := f.Get(ctx, ports.KeyUser); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("expected ErrCorrupt, got %v", err)
		}
		if err := f.Remove(ctx, ports.KeyUser); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected corrupt file deleted, stat err=%v", err)
		}
	})
}
