// Package untree decodes loosely typed value trees, the kind a JSON or
// YAML parser leaves behind in an any, onto go types via the [Unmarshal]
// function.
//
// A tree node is one of: nil (the null marker), a bool, a go integer or
// float of any width, a [encoding/json.Number], a string, a
// map[string]any, a []any, or an already typed value such as a
// [time.Time]. Target types describe their own decoding by implementing
// [Unmarshaler]: the engine positions a [Decoder] on their node and they
// pull fields and elements through a [KeyedContainer],
// [SequenceContainer] or [SingleValueContainer]. Scalars, time.Time,
// url.URL, decimal.Decimal, uuid.UUID, []byte, text unmarshalers,
// pointers, slices, arrays and string keyed maps decode without any
// Unmarshaler of their own.
//
// Every decode error carries the [Path] to the offending node and
// matches exactly one of [ErrTypeMismatch], [ErrValueNotFound],
// [ErrKeyNotFound] or [ErrCorrupted]. Float nodes decode into
// decimal.Decimal at float64 precision; trees built with a parser's
// number mode carry json.Number nodes, which convert exactly.
package untree
