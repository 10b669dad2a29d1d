package untree

import (
	"strconv"
	"strings"
)

// Segment is one element of a [Path]. It addresses either a mapping entry
// by key or a sequence element by index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func keySegment(key string) Segment {
	return Segment{Key: key}
}

func indexSegment(index int) Segment {
	return Segment{Index: index, IsIndex: true}
}

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}

	return s.Key
}

// Path locates a node within a value tree. The engine tracks it while
// descending and attaches a copy to every error, so a failure deep inside
// a nested tree can be pinpointed. Paths are diagnostics only, they are
// never used to look anything up.
type Path []Segment

// String renders the path in a json-pointer like notation, e.g.
// "/items/2/price". The root path renders as "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}

	var sb strings.Builder
	for _, segment := range p {
		sb.WriteByte('/')
		sb.WriteString(segment.String())
	}

	return sb.String()
}

func (p Path) clone() Path {
	return append(Path(nil), p...)
}

// child derives the path of a sub-node. Capping the slice forces append to
// allocate, so child paths never share a backing array with the parent.
func (p Path) child(segment Segment) Path {
	return append(p[:len(p):len(p)], segment)
}
