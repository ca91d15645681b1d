package bot

import (
	tele "gopkg.in/telebot.v4"
)

// Action is an inline button. Data is sent back verbatim as callback data.
type Action struct {
	Label string
	Data  string
}

// Reply is what a handler wants sent back: nothing, a text, or a text with
// inline buttons.
type Reply struct {
	text    string
	actions []Action
	thread  bool
}

func NoReply() Reply {
	return Reply{}
}

func Text(text string) Reply {
	return Reply{text: text}
}

func TextWithActions(text string, actions ...Action) Reply {
	return Reply{text: text, actions: actions}
}

// AsThreadReply makes a callback answer arrive as a new message replying to
// the pressed one, leaving the original message and its buttons in place.
func (r Reply) AsThreadReply() Reply {
	r.thread = true
	return r
}

func (r Reply) IsEmpty() bool {
	return r.text == ""
}

func (r Reply) Text() string {
	return r.text
}

func (r Reply) Actions() []Action {
	return r.actions
}

func (r Reply) IsThreadReply() bool {
	return r.thread
}

// markup lays the actions out on a single row. Nil when there are none.
func (r Reply) markup() *tele.ReplyMarkup {
	return actionsMarkup(r.actions...)
}

func actionsMarkup(actions ...Action) *tele.ReplyMarkup {
	if len(actions) == 0 {
		return nil
	}
	row := make([]tele.InlineButton, 0, len(actions))
	for _, a := range actions {
		row = append(row, tele.InlineButton{Text: a.Label, Data: a.Data})
	}
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{row}}
}

// sendOptions builds the options for a reply. A nil markup must not reach
// telebot as an option.
func sendOptions(parseMode tele.ParseMode, markup *tele.ReplyMarkup) *tele.SendOptions {
	opts := &tele.SendOptions{ParseMode: parseMode}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	return opts
}
