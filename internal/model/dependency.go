package model

// DependencyKind categorizes the relationship between two issues. The set is
// closed: only the kinds below exist, and only KindBlocks constrains
// execution order. The informational kinds are dropped by the graph builder.
type DependencyKind string

const (
	KindBlocks         DependencyKind = "blocks"
	KindRelated        DependencyKind = "related"
	KindDiscoveredFrom DependencyKind = "discovered-from"
)

// String returns the string representation of the kind.
func (k DependencyKind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value.
func (k DependencyKind) IsValid() bool {
	switch k {
	case KindBlocks, KindRelated, KindDiscoveredFrom:
		return true
	}
	return false
}

// Hard reports whether edges of this kind constrain execution order.
func (k DependencyKind) Hard() bool {
	return k == KindBlocks
}

// ParseKind maps a tracker-emitted dependency type string onto the closed
// kind set. Unrecognized strings fall back to KindRelated so that an unknown
// type can never silently become a hard constraint.
func ParseKind(s string) DependencyKind {
	switch s {
	case "blocks", "depends_on", "depends-on":
		return KindBlocks
	case "discovered-from", "discovered_from":
		return KindDiscoveredFrom
	default:
		return KindRelated
	}
}

// RawEdge is a dependency record as emitted by the tracker, before any
// validation. Convention: From depends on To, so To must reach a terminal
// state before From may start.
type RawEdge struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Kind DependencyKind `json:"kind"`
}
