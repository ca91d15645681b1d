package bot

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"dafi.es/dafibot/internal/election"
)

// Sender delivers messages to arbitrary chats. *tele.Bot implements it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type Bot struct {
	bot       *tele.Bot
	sender    Sender
	elections *election.Service
	logger    *slog.Logger
}

func New(token string, elections *election.Service, logger *slog.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			if c != nil {
				logger.Error("update failed", "update_id", c.Update().ID, "error", err)
				return
			}
			logger.Error("bot error", "error", err)
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := newBot(b, elections, logger)
	bot.bot = b
	return bot, nil
}

func newBot(sender Sender, elections *election.Service, logger *slog.Logger) *Bot {
	return &Bot{
		sender:    sender,
		elections: elections,
		logger:    logger,
	}
}

// RegisterCommands installs every command and callback on the telegram bot.
func (b *Bot) RegisterCommands() {
	r := NewRegistry(b.logger)
	b.register(r)
	r.Install(b.bot)
}

func (b *Bot) register(r *Registry) {
	private := []tele.MiddlewareFunc{b.PrivateOnly(), b.ResolveUser()}
	managers := []tele.MiddlewareFunc{b.ResolveUser(), b.CanManageElections()}

	r.Command("start", b.handleHelp)
	r.Command("help", b.handleHelp)
	r.Command("elecciones", b.handleElections, managers...)
	r.Command("soydelegado", b.handleNomination(election.RoleDelegate), private...)
	r.Command("soysubdelegado", b.handleNomination(election.RoleSubdelegate), private...)

	r.Callback(election.CallbackNamespace, b.handleElectionsCallback, managers...)
	r.Callback(MainNamespace, b.handleMainCallback)
}

// Start polls for updates until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("bot started", "username", b.bot.Me.Username)
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}
