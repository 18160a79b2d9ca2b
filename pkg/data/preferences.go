package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// PreferenceStore persists scalar user preferences as strings in DuckDB.
type PreferenceStore struct {
	db *sql.DB
}

func (r *Repository) Preferences() *PreferenceStore {
	return &PreferenceStore{db: r.db}
}

func (s *PreferenceStore) raw(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(context.Background(), `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	return value, true, nil
}

func (s *PreferenceStore) setRaw(key, value string) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

func (s *PreferenceStore) deleteRaw(key string) error {
	if _, err := s.db.ExecContext(context.Background(), `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete preference %q: %w", key, err)
	}
	return nil
}

// Preference is a typed handle on one persisted key.
type Preference[T any] struct {
	store  *PreferenceStore
	key    string
	def    T
	encode func(T) string
	decode func(string) (T, error)
}

func (p Preference[T]) Key() string {
	return p.key
}

func (p Preference[T]) Default() T {
	return p.def
}

// Get returns the stored value, or the default when it is unset or unreadable.
func (p Preference[T]) Get() T {
	raw, ok, err := p.store.raw(p.key)
	if err != nil {
		slog.Warn("Falling back to default preference", "key", p.key, "error", err)
		return p.def
	}
	if !ok {
		return p.def
	}
	v, err := p.decode(raw)
	if err != nil {
		slog.Warn("Ignoring malformed preference", "key", p.key, "value", raw, "error", err)
		return p.def
	}
	return v
}

func (p Preference[T]) Set(v T) error {
	return p.store.setRaw(p.key, p.encode(v))
}

func (p Preference[T]) Delete() error {
	return p.store.deleteRaw(p.key)
}

func (p Preference[T]) IsSet() bool {
	_, ok, err := p.store.raw(p.key)
	return err == nil && ok
}

func (s *PreferenceStore) String(key, def string) Preference[string] {
	return Preference[string]{
		store:  s,
		key:    key,
		def:    def,
		encode: func(v string) string { return v },
		decode: func(raw string) (string, error) { return raw, nil },
	}
}

func (s *PreferenceStore) Int(key string, def int) Preference[int] {
	return Preference[int]{
		store:  s,
		key:    key,
		def:    def,
		encode: strconv.Itoa,
		decode: strconv.Atoi,
	}
}

func (s *PreferenceStore) Bool(key string, def bool) Preference[bool] {
	return Preference[bool]{
		store:  s,
		key:    key,
		def:    def,
		encode: strconv.FormatBool,
		decode: strconv.ParseBool,
	}
}

// Enum stores a value by its String() name and reads it back through parse.
func Enum[T fmt.Stringer](s *PreferenceStore, key string, def T, parse func(string) (T, error)) Preference[T] {
	return Preference[T]{
		store:  s,
		key:    key,
		def:    def,
		encode: func(v T) string { return v.String() },
		decode: parse,
	}
}

// Toggle flips a boolean preference and returns the new value.
func Toggle(p Preference[bool]) (bool, error) {
	v := !p.Get()
	return v, p.Set(v)
}
