package election

import (
	"fmt"
	"strconv"
	"strings"
)

// Group is a class group of students within an academic year.
type Group struct {
	ID            int64
	Name          string
	Course        string
	Year          int
	Number        int
	DelegateID    *int64
	SubdelegateID *int64
}

func (g *Group) Ref() GroupRef {
	return GroupRef{Year: g.Year, Number: g.Number}
}

// Holder returns the ID of the user holding the role, or nil if vacant.
func (g *Group) Holder(role Role) *int64 {
	if role == RoleDelegate {
		return g.DelegateID
	}
	return g.SubdelegateID
}

// GroupRef identifies a group by academic year and group number ("3.1").
type GroupRef struct {
	Year   int
	Number int
}

func (r GroupRef) String() string {
	return fmt.Sprintf("%d.%d", r.Year, r.Number)
}

// ParseGroupRef parses "<year>.<number>".
func ParseGroupRef(s string) (GroupRef, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return GroupRef{}, fmt.Errorf("%w: %q", ErrInvalidGroupRef, s)
	}
	year, ok := parseDigits(parts[0])
	if !ok {
		return GroupRef{}, fmt.Errorf("%w: year %q", ErrInvalidGroupRef, parts[0])
	}
	number, ok := parseDigits(parts[1])
	if !ok {
		return GroupRef{}, fmt.Errorf("%w: number %q", ErrInvalidGroupRef, parts[1])
	}
	return GroupRef{Year: year, Number: number}, nil
}

// parseDigits accepts only unsigned decimal digits, so "+3" and "-1" are rejected.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
