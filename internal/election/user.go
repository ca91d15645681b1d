package election

import "strings"

// PermManageElections lets a user toggle the election period and decide nominations.
const PermManageElections = "bot.can_manage_elections"

// User is a student or staff account of the union platform.
type User struct {
	ID               int64
	Username         string
	FirstName        string
	LastName         string
	Email            string
	TelegramID       *int64
	TelegramUsername string
	IsSuperuser      bool
}

// FullName returns "First Last", falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
