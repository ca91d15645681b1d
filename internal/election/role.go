package election

// Role is the representative position a student holds in a group.
type Role int

const (
	RoleSubdelegate Role = iota
	RoleDelegate
)

// Prefix is prepended to "delegado" in user-facing text.
func (r Role) Prefix() string {
	if r == RoleDelegate {
		return ""
	}
	return "sub"
}

// Title returns the Spanish name of the role.
func (r Role) Title() string {
	return r.Prefix() + "delegado"
}

func (r Role) String() string {
	if r == RoleDelegate {
		return "delegate"
	}
	return "subdelegate"
}

// flag is the payload encoding of the role: "1" for delegate, "0" for subdelegate.
func (r Role) flag() string {
	if r == RoleDelegate {
		return "1"
	}
	return "0"
}

func roleFromFlag(s string) (Role, bool) {
	switch s {
	case "1":
		return RoleDelegate, true
	case "0":
		return RoleSubdelegate, true
	}
	return 0, false
}
