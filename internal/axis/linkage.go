package axis

import "fmt"

// Linkage is used for two independent knobs: how the built libraries are
// linked and how they link to the language runtime. The two are never
// implicitly equal.
type Linkage int

const (
	Static Linkage = iota
	Shared
)

func (l Linkage) String() string {
	switch l {
	case Static:
		return "static"
	case Shared:
		return "shared"
	default:
		panic("Linkage.String: unreachable")
	}
}

func AllLinkage() []Linkage {
	return []Linkage{Static, Shared}
}

func ParseLinkage(s string) (Linkage, error) {
	switch s {
	case "static":
		return Static, nil
	case "shared":
		return Shared, nil
	default:
		return Static, fmt.Errorf("%w: invalid linkage %q", ErrInvalidValue, s)
	}
}
