package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Collection reads and writes a list of T stored under a single key.
type Collection[T any] struct {
	store Store
	key   string
}

// NewCollection creates a collection bound to key.
func NewCollection[T any](store Store, key string) *Collection[T] {
	return &Collection[T]{
		store: store,
		key:   key,
	}
}

// Key returns the namespace key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the stored list. A missing, unreadable or corrupt value is treated as
// an empty collection and only logged.
func (c *Collection[T]) Load(ctx context.Context) []T {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Default().Warn("failed to read a collection, using an empty one",
				slog.String("key", c.key),
				slog.Any("error", err),
			)
		}
		return nil
	}

	var result []T
	if err := yaml.Unmarshal(data, &result); err != nil {
		slog.Default().Warn("corrupt collection, using an empty one",
			slog.String("key", c.key),
			slog.Any("error", err),
		)
		return nil
	}
	return result
}

// Save replaces the stored list.
func (c *Collection[T]) Save(ctx context.Context, values []T) error {
	if values == nil {
		values = []T{}
	}
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(%s) > %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("store.Put(%s) > %w", c.key, err)
	}
	return nil
}

// Clear removes the stored list.
func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("store.Delete(%s) > %w", c.key, err)
	}
	return nil
}
