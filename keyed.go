package untree

import "slices"

// superKey is the pseudo-key a keyless [KeyedContainer.SuperDecoder]
// resolves.
const superKey = "super"

// KeyedContainer is a view over a mapping node, handed out by
// [Decoder.KeyedContainer]. It reads field values by key.
type KeyedContainer struct {
	d      *Decoder
	values map[string]any
}

// Contains reports whether the mapping has an entry for key. An explicit
// null entry counts as present.
func (c *KeyedContainer) Contains(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns every key of the mapping, sorted.
func (c *KeyedContainer) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}

	slices.Sort(keys)
	return keys
}

// Decode decodes the value stored under key into target. An absent key
// fails with a [KeyNotFoundError], a null entry with a
// [ValueNotFoundError].
func (c *KeyedContainer) Decode(key string, target any) error {
	node, ok := c.values[key]
	if !ok {
		return c.d.keyNotFound(key)
	}

	c.d.pushSegment(keySegment(key))
	defer c.d.popSegment()

	return c.d.unbox(node, target)
}

// DecodeIfPresent decodes the value stored under key into target if the
// mapping has a non-null entry for it, and reports whether it did. An
// absent key or a null entry leaves target untouched and is not an error.
func (c *KeyedContainer) DecodeIfPresent(key string, target any) (bool, error) {
	node, ok := c.values[key]
	if !ok || isNil(node) {
		return false, nil
	}

	c.d.pushSegment(keySegment(key))
	defer c.d.popSegment()

	if err := c.d.unbox(node, target); err != nil {
		return false, err
	}

	return true, nil
}

// DecodeNil reports whether the entry stored under key is an explicit
// null. An absent key fails with a [KeyNotFoundError]; nothing is
// consumed either way.
func (c *KeyedContainer) DecodeNil(key string) (bool, error) {
	node, ok := c.values[key]
	if !ok {
		return false, c.d.keyNotFound(key)
	}

	return isNil(node), nil
}

// NestedKeyed returns a keyed container over the mapping stored under
// key. Errors carry the path extended by key.
func (c *KeyedContainer) NestedKeyed(key string) (*KeyedContainer, error) {
	node, ok := c.values[key]
	if !ok {
		return nil, c.d.keyNotFound(key)
	}

	return c.d.child(node, keySegment(key)).KeyedContainer()
}

// NestedSequence returns a sequence container over the sequence stored
// under key. Errors carry the path extended by key.
func (c *KeyedContainer) NestedSequence(key string) (*SequenceContainer, error) {
	node, ok := c.values[key]
	if !ok {
		return nil, c.d.keyNotFound(key)
	}

	return c.d.child(node, keySegment(key)).SequenceContainer()
}

// SuperDecoder returns an engine scoped to the value stored under the
// reserved key "super", letting a type delegate part of its decoding to a
// shared base routine. A missing entry scopes the engine to null.
func (c *KeyedContainer) SuperDecoder() *Decoder {
	return c.d.child(c.values[superKey], keySegment(superKey))
}

// SuperDecoderForKey is [KeyedContainer.SuperDecoder] for an explicit
// key.
func (c *KeyedContainer) SuperDecoderForKey(key string) *Decoder {
	return c.d.child(c.values[key], keySegment(key))
}
