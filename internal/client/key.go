package client

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Key identifies one cached read operation plus its arguments.
// Equality is structural over the arguments: two keys built from
// arguments that encode to the same canonical JSON are the same key,
// regardless of map insertion order.
type Key struct {
	op   string
	args string
}

// NewKey builds a key from an operation name and its arguments.
// Arguments are canonicalized through a JSON round trip, which sorts
// object keys; non-encodable arguments fall back to their fmt
// representation so a key is always produced.
func NewKey(op string, args any) Key {
	return Key{op: op, args: canonicalArgs(args)}
}

// Op returns the operation name.
func (k Key) Op() string { return k.op }

// String returns the canonical cache-map identifier.
func (k Key) String() string {
	if k.args == "" {
		return k.op
	}
	return k.op + "?" + k.args
}

func canonicalArgs(args any) string {
	if args == nil {
		return ""
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%+v", args)
	}

	// Round trip through any: json.Marshal emits map keys in sorted
	// order, which makes struct-vs-map and field-order differences
	// irrelevant.
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	canonical, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(canonical)
}

// Typed key constructors for the application's read operations.

type idArgs struct {
	ID uuid.UUID `json:"id"`
}

// PostAllKey addresses the post list query.
func PostAllKey() Key { return NewKey("post.all", nil) }

// PostByIDKey addresses one post detail query.
func PostByIDKey(id uuid.UUID) Key { return NewKey("post.byId", idArgs{ID: id}) }

// EventAllKey addresses the event list query.
func EventAllKey() Key { return NewKey("event.all", nil) }

// EventByIDKey addresses one event detail query.
func EventByIDKey(id uuid.UUID) Key { return NewKey("event.byId", idArgs{ID: id}) }

// ItemAllKey addresses the item list query.
func ItemAllKey() Key { return NewKey("item.all", nil) }

// ItemByIDKey addresses one item detail query.
func ItemByIDKey(id uuid.UUID) Key { return NewKey("item.byId", idArgs{ID: id}) }
