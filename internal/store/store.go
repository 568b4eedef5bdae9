// Package store provides the local durable key-value store the study core persists to.
//
// Each key holds one whole collection serialized as a single blob.
package store

import (
	"context"
	"errors"
)

//go:generate mockgen -source=store.go -destination=../mocks/store/mock_store.go -package=mock_store

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Namespace keys of the collections kept in the local store.
const (
	KeyProgress     = "progress"
	KeyGoals        = "goals"
	KeyPlans        = "plans"
	KeyWrongAnswers = "wrong_answers"
	KeyQuizResults  = "quiz_results"
)

// Store is a key-value store holding opaque blobs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
