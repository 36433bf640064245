package domain

import "strings"

// PathSeparator separates the segments of a Path and marks an absolute path when leading.
const PathSeparator = ":"

// Path is a hierarchical address such as ":lib:sub:compile".
// The zero value is the empty relative path.
type Path struct {
	absolute bool
	segments []string
}

// RootPath returns the absolute root path ":".
func RootPath() Path {
	return Path{absolute: true}
}

// ParsePath parses a colon-separated path. Empty segments are dropped.
func ParsePath(s string) Path {
	p := Path{absolute: strings.HasPrefix(s, PathSeparator)}
	for _, seg := range strings.Split(s, PathSeparator) {
		if seg != "" {
			p.segments = append(p.segments, seg)
		}
	}
	return p
}

// IsAbsolute reports whether the path starts at a root.
func (p Path) IsAbsolute() bool {
	return p.absolute
}

// IsRoot reports whether the path is ":".
func (p Path) IsRoot() bool {
	return p.absolute && len(p.segments) == 0
}

// Child returns a new path with name appended.
func (p Path) Child(name string) Path {
	segs := make([]string, len(p.segments), len(p.segments)+1)
	copy(segs, p.segments)
	return Path{absolute: p.absolute, segments: append(segs, name)}
}

// Append returns a new path with the segments of other appended.
func (p Path) Append(other Path) Path {
	segs := make([]string, 0, len(p.segments)+len(other.segments))
	segs = append(segs, p.segments...)
	segs = append(segs, other.segments...)
	return Path{absolute: p.absolute, segments: segs}
}

// Name returns the last segment, or "" for the root and the empty path.
func (p Path) Name() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns the path without its last segment.
// The second result is false when p has no segments.
func (p Path) Parent() (Path, bool) {
	if len(p.segments) == 0 {
		return p, false
	}
	return Path{absolute: p.absolute, segments: p.segments[:len(p.segments)-1]}, true
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Equal reports whether two paths address the same location.
func (p Path) Equal(other Path) bool {
	return p.String() == other.String()
}

// String renders the path, e.g. ":", ":lib:compile" or "sub:compile".
func (p Path) String() string {
	joined := strings.Join(p.segments, PathSeparator)
	if p.absolute {
		return PathSeparator + joined
	}
	return joined
}
