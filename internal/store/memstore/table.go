package memstore

import (
	"context"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
)

// table is an arena of T in insertion order.
type table[T any] struct {
	entity string
	rows   map[int64]T
	order  []int64
	seq    int64
	id     func(*T) int64
	setID  func(*T, int64)
	// dup deep-copies a row so no pointer field is shared between the
	// table and a caller.
	dup func(T) T
}

func newTable[T any](entity string, id func(*T) int64, setID func(*T, int64), dup func(T) T) *table[T] {
	if dup == nil {
		dup = func(v T) T { return v }
	}
	return &table[T]{entity: entity, rows: make(map[int64]T), id: id, setID: setID, dup: dup}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		entity: t.entity,
		rows:   make(map[int64]T, len(t.rows)),
		order:  append([]int64(nil), t.order...),
		seq:    t.seq,
		id:     t.id,
		setID:  t.setID,
		dup:    t.dup,
	}
	for k, v := range t.rows {
		c.rows[k] = t.dup(v)
	}
	return c
}

func (t *table[T]) load(id int64) (*T, error) {
	v, ok := t.rows[id]
	if !ok {
		return nil, errdefs.NotFound(t.entity, id)
	}
	v = t.dup(v)
	return &v, nil
}

func (t *table[T]) save(v *T) error {
	id := t.id(v)
	if id == 0 {
		t.seq++
		t.setID(v, t.seq)
		t.rows[t.seq] = t.dup(*v)
		t.order = append(t.order, t.seq)
		return nil
	}
	if _, ok := t.rows[id]; !ok {
		return errdefs.NotFound(t.entity, id)
	}
	t.rows[id] = t.dup(*v)
	return nil
}

func (t *table[T]) delete(id int64) error {
	if _, ok := t.rows[id]; !ok {
		return errdefs.NotFound(t.entity, id)
	}
	delete(t.rows, id)
	for i, x := range t.order {
		if x == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) findAll(pred func(*T) bool) []T {
	out := []T{}
	for _, id := range t.order {
		v := t.dup(t.rows[id])
		if pred == nil || pred(&v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) exists(pred func(*T) bool) bool {
	for _, id := range t.order {
		v := t.dup(t.rows[id])
		if pred == nil || pred(&v) {
			return true
		}
	}
	return false
}

// repo exposes a table through store.Repo. resolve picks the table of the
// current state (committed or transactional); lock guards it.
type repo[T any] struct {
	lock    func() func()
	resolve func() *table[T]
	fault   func(op, entity string) error
}

func (r repo[T]) Load(ctx context.Context, id int64) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errdefs.Storage("load", err)
	}
	defer r.lock()()
	t := r.resolve()
	return t.load(id)
}

func (r repo[T]) Save(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return errdefs.Storage("save", err)
	}
	defer r.lock()()
	t := r.resolve()
	if err := r.fault("save", t.entity); err != nil {
		return err
	}
	return t.save(v)
}

func (r repo[T]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return errdefs.Storage("delete", err)
	}
	defer r.lock()()
	t := r.resolve()
	if err := r.fault("delete", t.entity); err != nil {
		return err
	}
	return t.delete(id)
}

func (r repo[T]) FindAll(ctx context.Context, pred func(*T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errdefs.Storage("find", err)
	}
	defer r.lock()()
	return r.resolve().findAll(pred), nil
}

func (r repo[T]) ExistsWhere(ctx context.Context, pred func(*T) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errdefs.Storage("exists", err)
	}
	defer r.lock()()
	return r.resolve().exists(pred), nil
}
