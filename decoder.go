package untree

import (
	"encoding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"math"
	"net/url"
	"reflect"
	"time"
)

// Decoder decodes value trees into go types. A Decoder from [NewDecoder]
// is a reusable configuration prototype: every [Decoder.Unmarshal] call
// runs on a fresh engine derived from it, so a configured Decoder may be
// shared and reused. The engine handed to [Unmarshaler.UnmarshalTree] and
// to [DateFunc] routines carries per-decode state and must not be used
// from multiple goroutines.
type Decoder struct {
	// strategy applied to time.Time targets
	dates DateStrategy

	// the nodes currently being decoded, innermost last
	stack nodeStack

	// location of the innermost node, tracked for diagnostics
	path Path
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// WithDateStrategy returns a Decoder decoding time.Time targets with the
// given strategy. The receiver is not modified.
func (d *Decoder) WithDateStrategy(dates DateStrategy) *Decoder {
	return &Decoder{dates: dates}
}

// Unmarshal decodes the value tree rooted at node into target. target
// must be a non-nil pointer.
func (d *Decoder) Unmarshal(node any, target any) error {
	return d.fork().unbox(node, target)
}

// Decode decodes the node the engine is currently positioned on into
// target. It is meant for super decoders and [DateFunc] routines; a fresh
// Decoder is not positioned on anything and must use [Decoder.Unmarshal]
// instead.
func (d *Decoder) Decode(target any) error {
	node, ok := d.stack.top()
	if !ok {
		return d.valueNotFound(targetName(target))
	}

	return d.unbox(node, target)
}

// Path returns a copy of the location the engine is currently decoding
// at. Custom decode routines can use it to build their own diagnostics.
func (d *Decoder) Path() Path {
	return d.path.clone()
}

// KeyedContainer presents the current node as a mapping. It fails with a
// [TypeMismatchError] if the node is anything else, or with a
// [ValueNotFoundError] if the node is null.
func (d *Decoder) KeyedContainer() (*KeyedContainer, error) {
	node, _ := d.stack.top()
	if isNil(node) {
		return nil, d.valueNotFound("mapping")
	}

	values, ok := asMapping(node)
	if !ok {
		return nil, d.typeMismatch("mapping", node)
	}

	return &KeyedContainer{d: d, values: values}, nil
}

// SequenceContainer presents the current node as a sequence. It fails
// with a [TypeMismatchError] if the node is anything else, or with a
// [ValueNotFoundError] if the node is null.
func (d *Decoder) SequenceContainer() (*SequenceContainer, error) {
	node, _ := d.stack.top()
	if isNil(node) {
		return nil, d.valueNotFound("sequence")
	}

	elements, ok := asSequence(node)
	if !ok {
		return nil, d.typeMismatch("sequence", node)
	}

	return &SequenceContainer{d: d, elements: elements}, nil
}

// SingleValueContainer presents the current node as a single scalar
// value. Acquisition always succeeds, mismatches surface from the
// container's Decode.
func (d *Decoder) SingleValueContainer() *SingleValueContainer {
	return &SingleValueContainer{d: d}
}

// fork derives a fresh engine inheriting only the configuration of d.
func (d *Decoder) fork() *Decoder {
	return &Decoder{dates: d.dates}
}

// child derives an engine scoped to node, with the path extended by
// segment. Nested containers and super decoders run on child engines, so
// their errors carry the full location even when the parent engine has
// long moved on.
func (d *Decoder) child(node any, segment Segment) *Decoder {
	return &Decoder{
		dates: d.dates,
		stack: nodeStack{nodes: []any{node}},
		path:  d.path.child(segment),
	}
}

func (d *Decoder) pushSegment(segment Segment) {
	d.path = append(d.path, segment)
}

func (d *Decoder) popSegment() {
	d.path = d.path[:len(d.path)-1]
}

// unbox decodes node into target. Three stages: types with their own
// conversion rules first, then direct scalar extraction, then composite
// recursion through [Unmarshaler] or one of the builtin container driven
// fallbacks.
func (d *Decoder) unbox(node any, target any) error {
	pointer := reflect.ValueOf(target)
	if pointer.Kind() != reflect.Pointer || pointer.IsNil() {
		return errInvalidTarget
	}

	switch t := target.(type) {
	case *time.Time:
		return d.unboxTime(node, t)
	case *url.URL:
		return d.unboxURL(node, t)
	case *decimal.Decimal:
		return d.unboxDecimal(node, t)
	case *uuid.UUID:
		return d.unboxUUID(node, t)
	case *[]byte:
		return d.unboxBytes(node, t)
	case *any:
		*t = node
		return nil
	}

	if isNil(node) {
		return d.valueNotFound(targetName(target))
	}

	switch t := target.(type) {
	case *bool:
		return d.unboxBool(node, t)
	case *string:
		return d.unboxText(node, t)
	case *int:
		return setInt(d, node, t, math.MinInt, math.MaxInt)
	case *int8:
		return setInt(d, node, t, math.MinInt8, math.MaxInt8)
	case *int16:
		return setInt(d, node, t, math.MinInt16, math.MaxInt16)
	case *int32:
		return setInt(d, node, t, math.MinInt32, math.MaxInt32)
	case *int64:
		return setInt(d, node, t, math.MinInt64, math.MaxInt64)
	case *uint:
		return setUint(d, node, t, math.MaxUint)
	case *uint8:
		return setUint(d, node, t, math.MaxUint8)
	case *uint16:
		return setUint(d, node, t, math.MaxUint16)
	case *uint32:
		return setUint(d, node, t, math.MaxUint32)
	case *uint64:
		return setUint(d, node, t, math.MaxUint64)
	case *float32:
		return setFloat(d, node, t, math.MaxFloat32)
	case *float64:
		return setFloat(d, node, t, math.MaxFloat64)
	}

	if u, ok := target.(Unmarshaler); ok {
		d.stack.push(node)
		defer d.stack.pop()

		return u.UnmarshalTree(d)
	}

	if u, ok := target.(encoding.TextUnmarshaler); ok {
		return d.unboxTextUnmarshaler(node, u)
	}

	return d.unboxReflect(node, target)
}

func (d *Decoder) typeMismatch(expected string, node any) error {
	return TypeMismatchError{Expected: expected, Actual: kindOf(node), Path: d.path.clone()}
}

func (d *Decoder) valueNotFound(expected string) error {
	return ValueNotFoundError{Expected: expected, Path: d.path.clone()}
}

func (d *Decoder) keyNotFound(key string) error {
	return KeyNotFoundError{Key: key, Path: d.path.clone()}
}

func (d *Decoder) corrupted(reason string, err error) error {
	return CorruptedError{Reason: reason, Path: d.path.clone(), Err: err}
}

// targetName names the type a pointer target points to, for errors.
func targetName(target any) string {
	ty := reflect.TypeOf(target)
	if ty == nil {
		return "value"
	}

	if ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}

	return ty.String()
}

// nodeStack is the engine's node storage. Every push is matched by
// exactly one pop, on failure exactly as on success.
type nodeStack struct {
	nodes []any
}

func (s *nodeStack) push(node any) {
	s.nodes = append(s.nodes, node)
}

func (s *nodeStack) pop() {
	s.nodes = s.nodes[:len(s.nodes)-1]
}

func (s *nodeStack) top() (any, bool) {
	if len(s.nodes) == 0 {
		return nil, false
	}

	return s.nodes[len(s.nodes)-1], true
}

func (s *nodeStack) depth() int {
	return len(s.nodes)
}
