package untree

// SequenceContainer is a forward-only cursor over a sequence node, handed
// out by [Decoder.SequenceContainer]. Elements decode in order.
type SequenceContainer struct {
	d        *Decoder
	elements []any
	index    int
}

// Len returns the total number of elements.
func (c *SequenceContainer) Len() int {
	return len(c.elements)
}

// Index returns the cursor position, the index the next Decode will
// consume.
func (c *SequenceContainer) Index() int {
	return c.index
}

// Remaining returns the number of elements left to decode.
func (c *SequenceContainer) Remaining() int {
	return len(c.elements) - c.index
}

// AtEnd reports whether every element has been consumed.
func (c *SequenceContainer) AtEnd() bool {
	return c.index >= len(c.elements)
}

// Decode decodes the element at the cursor into target. The cursor
// advances on failure exactly as on success: a failed element is consumed
// and will not be retried.
func (c *SequenceContainer) Decode(target any) error {
	if c.AtEnd() {
		return c.atEnd(targetName(target))
	}

	defer func() { c.index++ }()

	c.d.pushSegment(indexSegment(c.index))
	defer c.d.popSegment()

	return c.d.unbox(c.elements[c.index], target)
}

// DecodeNil reports whether the element at the cursor is an explicit
// null, consuming it if so. A non-null element stays unconsumed.
func (c *SequenceContainer) DecodeNil() (bool, error) {
	if c.AtEnd() {
		return false, c.atEnd("null")
	}

	if !isNil(c.elements[c.index]) {
		return false, nil
	}

	c.index++
	return true, nil
}

// NestedKeyed returns a keyed container over the mapping at the cursor.
// The cursor advances only if the element really is a mapping.
func (c *SequenceContainer) NestedKeyed() (*KeyedContainer, error) {
	if c.AtEnd() {
		return nil, c.atEnd("mapping")
	}

	nested, err := c.d.child(c.elements[c.index], indexSegment(c.index)).KeyedContainer()
	if err != nil {
		return nil, err
	}

	c.index++
	return nested, nil
}

// NestedSequence returns a sequence container over the sequence at the
// cursor. The cursor advances only if the element really is a sequence.
func (c *SequenceContainer) NestedSequence() (*SequenceContainer, error) {
	if c.AtEnd() {
		return nil, c.atEnd("sequence")
	}

	nested, err := c.d.child(c.elements[c.index], indexSegment(c.index)).SequenceContainer()
	if err != nil {
		return nil, err
	}

	c.index++
	return nested, nil
}

// SuperDecoder consumes the element at the cursor and returns an engine
// scoped to it.
func (c *SequenceContainer) SuperDecoder() (*Decoder, error) {
	if c.AtEnd() {
		return nil, c.atEnd("value")
	}

	super := c.d.child(c.elements[c.index], indexSegment(c.index))
	c.index++

	return super, nil
}

// atEnd builds the error for reads past the last element. The path names
// the index that was asked for.
func (c *SequenceContainer) atEnd(expected string) error {
	c.d.pushSegment(indexSegment(c.index))
	defer c.d.popSegment()

	return c.d.valueNotFound(expected)
}
