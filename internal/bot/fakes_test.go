package bot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"
)

// sent is a captured outgoing message.
type sent struct {
	to   string
	what interface{}
	opts []interface{}
}

func (s sent) text() string {
	text, _ := s.what.(string)
	return text
}

// markup returns the inline keyboard passed along with the message, if any.
func (s sent) markup() *tele.ReplyMarkup {
	for _, opt := range s.opts {
		switch o := opt.(type) {
		case *tele.ReplyMarkup:
			return o
		case *tele.SendOptions:
			return o.ReplyMarkup
		}
	}
	return nil
}

func (s sent) parseMode() tele.ParseMode {
	for _, opt := range s.opts {
		switch o := opt.(type) {
		case tele.ParseMode:
			return o
		case *tele.SendOptions:
			return o.ParseMode
		}
	}
	return tele.ModeDefault
}

func (s sent) buttonData() []string {
	m := s.markup()
	if m == nil {
		return nil
	}
	var data []string
	for _, row := range m.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.Data)
		}
	}
	return data
}

// fakeContext implements the parts of tele.Context the handlers use.
// Calling anything else panics through the nil embedded interface.
type fakeContext struct {
	tele.Context

	sender   *tele.User
	chat     *tele.Chat
	text     string
	args     []string
	callback *tele.Callback
	store    map[string]interface{}

	responded int
	replies   []sent
	edits     []sent
}

func commandCtx(tgID int64, chatType tele.ChatType, text string, args ...string) *fakeContext {
	chatID := tgID
	if chatType != tele.ChatPrivate {
		chatID = -1000
	}
	return &fakeContext{
		sender: &tele.User{ID: tgID, Username: fmt.Sprintf("user%d", tgID)},
		chat:   &tele.Chat{ID: chatID, Type: chatType},
		text:   text,
		args:   args,
		store:  make(map[string]interface{}),
	}
}

func callbackCtx(tgID int64, chatID int64, data string) *fakeContext {
	return &fakeContext{
		sender:   &tele.User{ID: tgID},
		chat:     &tele.Chat{ID: chatID, Type: tele.ChatSuperGroup},
		callback: &tele.Callback{ID: "cb", Data: data},
		store:    make(map[string]interface{}),
	}
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Chat() *tele.Chat         { return f.chat }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Args() []string           { return f.args }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }

func (f *fakeContext) Get(key string) interface{} {
	return f.store[key]
}

func (f *fakeContext) Set(key string, val interface{}) {
	f.store[key] = val
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.responded++
	return nil
}

func (f *fakeContext) Reply(what interface{}, opts ...interface{}) error {
	f.replies = append(f.replies, sent{what: what, opts: opts})
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.edits = append(f.edits, sent{what: what, opts: opts})
	return nil
}

// fakeSender records messages the bot pushes to other chats.
type fakeSender struct {
	mu   sync.Mutex
	sent []sent
	// fail makes Send to these recipients return an error.
	fail map[string]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{fail: make(map[string]bool)}
}

func (s *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[to.Recipient()] {
		return nil, errors.New("telegram: Forbidden: bot was blocked by the user (403)")
	}
	s.sent = append(s.sent, sent{to: to.Recipient(), what: what, opts: opts})
	return &tele.Message{ID: len(s.sent)}, nil
}

func (s *fakeSender) messages() []sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sent(nil), s.sent...)
}

// fakeRouter captures what the registry installs.
type fakeRouter struct {
	handlers map[string]tele.HandlerFunc
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{handlers: make(map[string]tele.HandlerFunc)}
}

func (r *fakeRouter) Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc) {
	r.handlers[endpoint.(string)] = applyMiddleware(h, m...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
