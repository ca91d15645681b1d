package bot

import (
	tele "gopkg.in/telebot.v4"

	"dafi.es/dafibot/internal/election"
)

// Member is a person as shown in request summaries.
type Member struct {
	Name       string // Full name from the union account
	Email      string
	TgUsername string // Telegram username without @ (optional)
}

// MentionName returns "@username", or the full name when the account has no
// public username.
func (m Member) MentionName() string {
	if m.TgUsername != "" {
		return "@" + m.TgUsername
	}
	return m.Name
}

// MemberFromUser builds a Member from the linked account. The live Telegram
// username wins over the stored one since users can rename at any time.
func MemberFromUser(u *election.User, sender *tele.User) Member {
	m := Member{
		Name:       u.FullName(),
		Email:      u.Email,
		TgUsername: u.TelegramUsername,
	}
	if sender != nil && sender.Username != "" {
		m.TgUsername = sender.Username
	}
	return m
}
