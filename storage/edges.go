package storage

import (
	"context"

	"github.com/uptrace/bun"
)

// EdgeStore mutates one relation pair. Attach is idempotent: attaching an
// existing edge changes nothing. Neither call validates that the endpoints
// exist; that is the service's job.
type EdgeStore interface {
	Attach(ctx context.Context, parentID, childID string) error
	Detach(ctx context.Context, parentID, childID string) error
}

// joinEdges backs a many-to-many relation with a join table. The composite
// primary key on the join model is what makes Attach idempotent.
type joinEdges[J any] struct {
	db           *bun.DB
	newEdge      func(parentID, childID string) *J
	parentColumn string
	childColumn  string
}

// NewJoinEdges creates an edge store over the join table that model J maps
// to.
func NewJoinEdges[J any](db *bun.DB, parentColumn, childColumn string, newEdge func(parentID, childID string) *J) EdgeStore {
	return &joinEdges[J]{
		db:           db,
		newEdge:      newEdge,
		parentColumn: parentColumn,
		childColumn:  childColumn,
	}
}

func (e *joinEdges[J]) Attach(ctx context.Context, parentID, childID string) error {
	_, err := e.db.NewInsert().
		Model(e.newEdge(parentID, childID)).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

func (e *joinEdges[J]) Detach(ctx context.Context, parentID, childID string) error {
	_, err := e.db.NewDelete().
		Model((*J)(nil)).
		Where("? = ?", bun.Ident(e.parentColumn), parentID).
		Where("? = ?", bun.Ident(e.childColumn), childID).
		Exec(ctx)
	return err
}

// fkEdges backs a one-to-many relation stored as a nullable foreign key on
// the child row. Attach points the child at the parent, replacing any
// previous parent; Detach nulls the column only when it still points at
// parentID.
type fkEdges[C any] struct {
	db       *bun.DB
	fkColumn string
}

// NewFKEdges creates an edge store over the fkColumn foreign key of model C.
func NewFKEdges[C any](db *bun.DB, fkColumn string) EdgeStore {
	return &fkEdges[C]{db: db, fkColumn: fkColumn}
}

func (e *fkEdges[C]) Attach(ctx context.Context, parentID, childID string) error {
	_, err := e.db.NewUpdate().
		Model((*C)(nil)).
		Set("? = ?", bun.Ident(e.fkColumn), parentID).
		Where("id = ?", childID).
		Exec(ctx)
	return err
}

func (e *fkEdges[C]) Detach(ctx context.Context, parentID, childID string) error {
	_, err := e.db.NewUpdate().
		Model((*C)(nil)).
		Set("? = NULL", bun.Ident(e.fkColumn)).
		Where("id = ?", childID).
		Where("? = ?", bun.Ident(e.fkColumn), parentID).
		Exec(ctx)
	return err
}
