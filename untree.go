package untree

// Unmarshaler is implemented by types that decode themselves from a value
// tree. UnmarshalTree receives an engine positioned on the node to
// decode: implementations request a container matching their encoded
// shape, [Decoder.KeyedContainer] for mappings, [Decoder.SequenceContainer]
// for sequences or [Decoder.SingleValueContainer] for plain scalars, and
// pull their fields or elements through it.
type Unmarshaler interface {
	UnmarshalTree(d *Decoder) error
}

// Unmarshal decodes the value tree rooted at node into target using the
// default configuration. target must be a non-nil pointer.
func Unmarshal(node any, target any) error {
	return dec.Unmarshal(node, target)
}

// UnmarshalNew decodes the value tree rooted at node into a new value of
// type T.
func UnmarshalNew[T any](node any) (T, error) {
	return UnmarshalNewWith[T](dec, node)
}

// UnmarshalNewWith decodes the value tree rooted at node into a new value
// of type T using the given Decoder.
func UnmarshalNewWith[T any](dec *Decoder, node any) (T, error) {
	var target T
	err := dec.Unmarshal(node, &target)
	return target, err
}

// The default Decoder instance.
var dec = NewDecoder()
