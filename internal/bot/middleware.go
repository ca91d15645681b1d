package bot

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"dafi.es/dafibot/internal/election"
)

const userKey = "user"

// currentUser retrieves the linked user stored in the telebot context.
// Must only be called after ResolveUser middleware has run.
func currentUser(c tele.Context) *election.User {
	u, _ := c.Get(userKey).(*election.User)
	return u
}

// ResolveUser looks up the datastore account linked to the sender and stores
// it in context. Commands from unlinked senders get linking guidance; button
// presses from them are dropped.
func (b *Bot) ResolveUser() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			u, err := b.elections.UserByTelegramID(requestContext(c), c.Sender().ID)
			if err != nil {
				return WrapUserError(MsgInternalError, fmt.Errorf("resolve user: %w", err))
			}

			if u == nil {
				b.logger.Info("unlinked telegram account",
					"user_id", c.Sender().ID,
					"username", c.Sender().Username,
					"chat_id", c.Chat().ID,
				)
				if c.Callback() != nil {
					return nil
				}
				return c.Reply(MsgAccountNotLinked, tele.ModeMarkdown)
			}

			c.Set(userKey, u)
			return next(c)
		}
	}
}

// CanManageElections lets through users allowed to manage elections.
// Everyone else is silently ignored.
func (b *Bot) CanManageElections() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			u := currentUser(c)
			ok, err := b.elections.CanManage(requestContext(c), u)
			if err != nil {
				return WrapUserError(MsgInternalError, fmt.Errorf("check permission: %w", err))
			}

			if !ok {
				b.logger.Warn("unauthorized elections attempt",
					"user_id", c.Sender().ID,
					"username", c.Sender().Username,
					"chat_id", c.Chat().ID,
					"text", c.Text(),
				)
				return nil
			}

			return next(c)
		}
	}
}

// PrivateOnly ignores updates coming from anything but a private chat.
func (b *Bot) PrivateOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat().Type != tele.ChatPrivate {
				return nil
			}
			return next(c)
		}
	}
}

// Recover logs a panic in a handler and swallows it.
func Recover(logger *slog.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic",
						"panic", r,
						"error", fmt.Errorf("panic: %v", r),
						"stack", string(debug.Stack()),
					)
					err = nil
				}
			}()
			return next(c)
		}
	}
}
