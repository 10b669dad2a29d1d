package untree

// SingleValueContainer is a view of the engine's current node as one
// plain value, handed out by [Decoder.SingleValueContainer].
type SingleValueContainer struct {
	d *Decoder
}

// DecodeNil reports whether the current node is null, or whether the
// engine is not positioned on any node at all.
func (c *SingleValueContainer) DecodeNil() bool {
	node, ok := c.d.stack.top()
	return !ok || isNil(node)
}

// Decode decodes the current node into target. The path is not extended,
// a single value sits exactly where the engine already points.
func (c *SingleValueContainer) Decode(target any) error {
	return c.d.Decode(target)
}
