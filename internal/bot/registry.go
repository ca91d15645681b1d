package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"dafi.es/dafibot/internal/election"
)

// HandlerFunc handles a command or a button press and says what to answer.
type HandlerFunc func(c tele.Context) (Reply, error)

// Router is the part of *tele.Bot the registry installs routes on.
type Router interface {
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
}

const (
	ctxKey         = "ctx"
	handlerTimeout = 30 * time.Second
)

type route struct {
	name       string
	handler    HandlerFunc
	middleware []tele.MiddlewareFunc
}

// Registry collects command and callback handlers and installs them on the
// bot at startup.
type Registry struct {
	commands  []route
	callbacks map[string]route
	logger    *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		callbacks: make(map[string]route),
		logger:    logger,
	}
}

// Command registers a handler for /name. Middleware runs in the given order.
func (r *Registry) Command(name string, h HandlerFunc, m ...tele.MiddlewareFunc) {
	r.commands = append(r.commands, route{name: name, handler: h, middleware: m})
}

// Callback registers a handler for button presses whose data starts with
// "namespace:" or equals namespace.
func (r *Registry) Callback(namespace string, h HandlerFunc, m ...tele.MiddlewareFunc) {
	r.callbacks[namespace] = route{name: namespace, handler: h, middleware: m}
}

func (r *Registry) Install(router Router) {
	for _, rt := range r.commands {
		router.Handle("/"+rt.name, r.commandHandler(rt))
	}
	router.Handle(tele.OnCallback, r.routeCallback)
}

func (r *Registry) commandHandler(rt route) tele.HandlerFunc {
	deliver := func(c tele.Context) error {
		reply, err := rt.handler(c)
		if err != nil {
			return err
		}
		return r.replyCommand(c, reply)
	}
	return r.wrap(applyMiddleware(deliver, rt.middleware...), r.replyCommand)
}

// routeCallback acknowledges the press, then hands it to the handler of the
// payload namespace. Presses for unknown namespaces are dropped.
func (r *Registry) routeCallback(c tele.Context) error {
	if err := c.Respond(); err != nil {
		r.logger.Warn("failed to answer callback", "error", err)
	}

	data := c.Callback().Data
	namespace, _, _ := strings.Cut(data, ":")
	rt, ok := r.callbacks[namespace]
	if !ok {
		r.logger.Debug("callback without handler", "data", data)
		return nil
	}

	deliver := func(c tele.Context) error {
		reply, err := rt.handler(c)
		if err != nil {
			return err
		}
		if reply.IsEmpty() {
			reply = Text(MsgUnexpectedError)
		}
		return r.replyCallback(c, reply)
	}
	return r.wrap(applyMiddleware(deliver, rt.middleware...), r.replyCallback)(c)
}

// replyCommand answers in the same chat with Markdown. Empty replies send nothing.
func (r *Registry) replyCommand(c tele.Context, reply Reply) error {
	if reply.IsEmpty() {
		return nil
	}
	return c.Reply(reply.text, sendOptions(tele.ModeMarkdown, reply.markup()))
}

// replyCallback rewrites the message holding the pressed button, or replies
// to it when the reply asks for a thread.
func (r *Registry) replyCallback(c tele.Context, reply Reply) error {
	if reply.thread {
		return c.Reply(reply.text, sendOptions(tele.ModeDefault, reply.markup()))
	}
	if markup := reply.markup(); markup != nil {
		return c.Edit(reply.text, markup)
	}
	return c.Edit(reply.text)
}

// handleErrors turns handler errors into a user-facing answer. Refused
// authorizations are dropped without an answer.
func (r *Registry) handleErrors(next tele.HandlerFunc, send func(tele.Context, Reply) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		err := next(c)
		if err == nil {
			return nil
		}

		if errors.Is(err, election.ErrForbidden) {
			r.logger.Warn("refused elections action",
				"user_id", c.Sender().ID,
				"chat_id", c.Chat().ID,
				"error", err,
			)
			return nil
		}

		if ShouldLog(err) {
			r.logger.Error("handler failed",
				"user_id", c.Sender().ID,
				"chat_id", c.Chat().ID,
				"error", GetLogError(err),
			)
		}

		if sendErr := send(c, Text(GetUserMessage(err))); sendErr != nil {
			return fmt.Errorf("send error reply: %w", sendErr)
		}
		return nil
	}
}

// wrap adds the request context, panic recovery and error replies around a route.
func (r *Registry) wrap(h tele.HandlerFunc, send func(tele.Context, Reply) error) tele.HandlerFunc {
	return r.withContext(Recover(r.logger)(r.handleErrors(h, send)))
}

func (r *Registry) withContext(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		c.Set(ctxKey, ctx)
		return next(c)
	}
}

// requestContext returns the context of the update being handled.
func requestContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(ctxKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// applyMiddleware wraps h so that m[0] runs first.
func applyMiddleware(h tele.HandlerFunc, m ...tele.MiddlewareFunc) tele.HandlerFunc {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}
