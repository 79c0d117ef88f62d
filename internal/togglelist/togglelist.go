// Package togglelist keeps small sets of record identifiers in per-visitor
// session state.
//
// A List holds an ordered, duplicate-free sequence where submitting an
// identifier that is already present removes it. A Slot holds at most one
// identifier and is overwritten on every selection. Both store their value
// as JSON text so that whatever ends up in the session store stays readable
// by other tooling; anything that does not decode is treated as empty.
package togglelist

import (
	"context"

	"github.com/goccy/go-json"
)

// Session is the per-visitor key-value store the lists live in.
// *scs.SessionManager satisfies it.
type Session interface {
	Get(ctx context.Context, key string) interface{}
	Put(ctx context.Context, key string, val interface{})
}

// List is a multi-slot toggle list stored under a fixed session key.
type List struct {
	session Session
	key     string
}

// NewList returns a List stored under key.
func NewList(s Session, key string) *List {
	return &List{session: s, key: key}
}

// Key returns the session key the list is stored under.
func (l *List) Key() string { return l.key }

// Items returns the stored identifiers in insertion order. It never returns nil.
func (l *List) Items(ctx context.Context) []int64 {
	return decodeList(l.session.Get(ctx, l.key))
}

// Contains reports whether id is in the list.
func (l *List) Contains(ctx context.Context, id int64) bool {
	for _, v := range l.Items(ctx) {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle removes id if it is present and appends it otherwise. It reports
// whether id is in the list afterwards.
func (l *List) Toggle(ctx context.Context, id int64) bool {
	items := l.Items(ctx)
	for i, v := range items {
		if v == id {
			l.write(ctx, append(items[:i], items[i+1:]...))
			return false
		}
	}
	l.write(ctx, append(items, id))
	return true
}

// Retain drops every identifier for which keep returns false. The session is
// only written when something was dropped.
func (l *List) Retain(ctx context.Context, keep func(int64) bool) []int64 {
	items := l.Items(ctx)
	kept := make([]int64, 0, len(items))
	for _, v := range items {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) != len(items) {
		l.write(ctx, kept)
	}
	return kept
}

func (l *List) write(ctx context.Context, items []int64) {
	if items == nil {
		items = []int64{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	l.session.Put(ctx, l.key, string(raw))
}

// Slot is a single-slot variant: it remembers one identifier at a time.
type Slot struct {
	session Session
	key     string
}

// NewSlot returns a Slot stored under key.
func NewSlot(s Session, key string) *Slot {
	return &Slot{session: s, key: key}
}

// Key returns the session key the slot is stored under.
func (s *Slot) Key() string { return s.key }

// Set replaces the stored identifier with id.
func (s *Slot) Set(ctx context.Context, id int64) {
	raw, err := json.Marshal(id)
	if err != nil {
		return
	}
	s.session.Put(ctx, s.key, string(raw))
}

// Get returns the stored identifier, if any.
func (s *Slot) Get(ctx context.Context) (int64, bool) {
	raw, ok := asBytes(s.session.Get(ctx, s.key))
	if !ok {
		return 0, false
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}

// Is reports whether id is the stored identifier.
func (s *Slot) Is(ctx context.Context, id int64) bool {
	got, ok := s.Get(ctx)
	return ok && got == id
}

// decodeList turns a raw session value into a duplicate-free slice.
func decodeList(v interface{}) []int64 {
	raw, ok := asBytes(v)
	if !ok {
		return []int64{}
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return []int64{}
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func asBytes(v interface{}) ([]byte, bool) {
	switch t := v.(type) {
	case string:
		return []byte(t), true
	case []byte:
		return t, true
	default:
		return nil, false
	}
}
