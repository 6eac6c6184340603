package storage

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

// ErrUndecryptable is returned when the session file cannot be opened with
// the configured secret.
var ErrUndecryptable = errors.New("session file cannot be decrypted")

// ErrCorrupt is returned when the session file does not hold a JSON object.
var ErrCorrupt = errors.New("session file is corrupt")

// File is a KeyValueStore persisted as a JSON object in a single file.
//
// With a secret the file is sealed with NaCl secretbox under a key derived
// by scrypt; the layout is salt || nonce || box. Every Set and Remove
// rewrites the whole file through a temp file and a rename.
type File struct {
	mu   sync.Mutex
	path string
	salt []byte
	key  *[keySize]byte
}

// OpenFile prepares the store at path, creating the parent directory.
// An empty secret stores plaintext JSON.
func OpenFile(path, secret string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	f := &File{path: path}
	if secret == "" {
		return f, nil
	}

	salt, err := existingSalt(path)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
	}
	derived, err := scrypt.Key([]byte(secret), salt, 1<<15, 8, 1, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	f.salt = salt
	f.key = new([keySize]byte)
	copy(f.key[:], derived)
	return f, nil
}

func existingSalt(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(data) < saltSize+nonceSize {
		return nil, ErrUndecryptable
	}
	return append([]byte(nil), data[:saltSize]...), nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

// Remove deletes key. A file that cannot be read back with the configured
// secret is deleted as a whole.
func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if errors.Is(err, ErrUndecryptable) || errors.Is(err, ErrCorrupt) {
		if rerr := os.Remove(f.path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			return fmt.Errorf("delete unreadable session file: %w", rerr)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

// Ping reports whether the file is readable with the configured secret.
func (f *File) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.load()
	return err
}

func (f *File) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if f.key != nil {
		if data, err = f.open(data); err != nil {
			return nil, err
		}
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	if f.key != nil {
		if data, err = f.seal(data); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *File) seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	out := make([]byte, 0, saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, f.salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, f.key), nil
}

func (f *File) open(data []byte) ([]byte, error) {
	if len(data) < saltSize+nonceSize {
		return nil, ErrUndecryptable
	}
	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])
	plain, ok := secretbox.Open(nil, data[saltSize+nonceSize:], &nonce, f.key)
	if !ok {
		return nil, ErrUndecryptable
	}
	return plain, nil
}
