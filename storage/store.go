package storage

import (
	"context"
	"database/sql"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Store is the entity store boundary per kind. FindByID returns (nil, nil)
// when no row matches: classifying absence as an error is the caller's
// concern, not the store's.
type Store[T any] interface {
	FindByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*T, error)
	FindAll(ctx context.Context, criteria ...repository.SelectCriteria) ([]*T, error)
	Save(ctx context.Context, record *T) (*T, error)
	Remove(ctx context.Context, record *T) error
}

// WithRelations returns select criteria that eagerly load the named
// relation collections. Callers declare exactly which collections a given
// call needs populated.
func WithRelations(names ...string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, name := range names {
			q = q.Relation(name)
		}
		return q
	}
}

// ModelHandlers supplies the per-model accessors the generic store cannot
// derive itself.
type ModelHandlers[T any] struct {
	NewRecord func() *T
	GetID     func(*T) string
	SetID     func(*T, string)
}

type bunStore[T any] struct {
	db       *bun.DB
	handlers ModelHandlers[T]
}

// NewStore creates a bun-backed store for one entity kind.
func NewStore[T any](db *bun.DB, handlers ModelHandlers[T]) Store[T] {
	return &bunStore[T]{db: db, handlers: handlers}
}

func (s *bunStore[T]) FindByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*T, error) {
	record := s.handlers.NewRecord()
	q := s.db.NewSelect().Model(record).Where("?TableAlias.id = ?", id)
	for _, c := range criteria {
		q = c(q)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *bunStore[T]) FindAll(ctx context.Context, criteria ...repository.SelectCriteria) ([]*T, error) {
	var records []*T
	q := s.db.NewSelect().Model(&records)
	for _, c := range criteria {
		q = c(q)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// Save inserts a record without an id (assigning a fresh UUID) and updates
// an existing one, falling back to insert when the id is unknown to the
// store.
func (s *bunStore[T]) Save(ctx context.Context, record *T) (*T, error) {
	if s.handlers.GetID(record) == "" {
		s.handlers.SetID(record, uuid.NewString())
		if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, err
		}
		return record, nil
	}

	res, err := s.db.NewUpdate().Model(record).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (s *bunStore[T]) Remove(ctx context.Context, record *T) error {
	_, err := s.db.NewDelete().Model(record).WherePK().Exec(ctx)
	return err
}
