package bot

import (
	tele "gopkg.in/telebot.v4"
)

// MainNamespace holds the generic buttons shared by every menu.
const MainNamespace = "main"

// CancelPayload is the data of the "No, cancelar" button.
const CancelPayload = MainNamespace + ":okey"

// handleMainCallback closes a menu without doing anything.
func (b *Bot) handleMainCallback(c tele.Context) (Reply, error) {
	if c.Callback().Data != CancelPayload {
		return NoReply(), nil
	}
	return Text(MsgOperationCancelled), nil
}

// handleHelp shows the list of available commands.
func (b *Bot) handleHelp(c tele.Context) (Reply, error) {
	b.logger.Info("command /help",
		"user_id", c.Sender().ID,
		"username", c.Sender().Username,
		"chat_id", c.Chat().ID,
	)

	text, err := RenderHelpMessage()
	if err != nil {
		return NoReply(), WrapUserError(MsgFailedRenderHelp, err)
	}
	return Text(text), nil
}
