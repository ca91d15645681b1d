package bot

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"dafi.es/dafibot/internal/election"
)

// handleElections shows the election period state with a button to flip it.
// Usage: /elecciones
func (b *Bot) handleElections(c tele.Context) (Reply, error) {
	active, err := b.elections.Period().Active(requestContext(c))
	if err != nil {
		return NoReply(), WrapUserError(MsgFailedReadElections, err)
	}

	b.logger.Info("command /elecciones",
		"user_id", c.Sender().ID,
		"username", c.Sender().Username,
		"chat_id", c.Chat().ID,
		"active", active,
	)

	status, confirm := MsgElectionsStatusInactive, BtnStartElections
	if active {
		status, confirm = MsgElectionsStatusActive, BtnStopElections
	}

	return TextWithActions(MsgElectionsStatus+status,
		Action{Label: confirm, Data: election.TogglePayload(!active)},
		Action{Label: BtnCancel, Data: CancelPayload},
	), nil
}

// handleNomination returns the handler for /soydelegado or /soysubdelegado.
// Usage: /soy[sub]delegado <year>.<group>
func (b *Bot) handleNomination(role election.Role) HandlerFunc {
	return func(c tele.Context) (Reply, error) {
		requester := currentUser(c)

		b.logger.Info("nomination request",
			"user_id", c.Sender().ID,
			"username", c.Sender().Username,
			"role", role,
			"args", c.Args(),
		)

		n, err := b.elections.Nominate(requestContext(c), requester, role, c.Args())
		if err != nil {
			return NoReply(), nominationError(err, role)
		}

		text, err := RenderNominationMessage(NominationData{
			Role:      n.Role,
			Group:     n.Group,
			Requester: MemberFromUser(n.Requester, c.Sender()),
			Current:   n.Current,
		})
		if err != nil {
			return NoReply(), WrapUserError(MsgRequestNotProcessed, err)
		}

		markup := actionsMarkup(
			Action{Label: BtnApprove, Data: n.Request.Payload(election.ActionRequest)},
			Action{Label: BtnDeny, Data: n.Request.Payload(election.ActionDeny)},
		)
		mainChat := tele.ChatID(b.elections.MainGroupID())
		if _, err := b.sender.Send(mainChat, text, sendOptions(tele.ModeMarkdown, markup)); err != nil {
			return NoReply(), WrapUserError(MsgRequestNotProcessed, fmt.Errorf("send request to main chat: %w", err))
		}

		return Text(MsgRequestSent), nil
	}
}

// handleElectionsCallback handles the period toggle and the Approve/Deny
// buttons of nomination requests.
func (b *Bot) handleElectionsCallback(c tele.Context) (Reply, error) {
	data := c.Callback().Data
	cb, err := election.ParseCallback(data)
	if err != nil {
		b.logger.Warn("malformed elections callback",
			"user_id", c.Sender().ID,
			"data", data,
			"error", err,
		)
		return Text(MsgMalformedRequest), nil
	}

	switch cb.Action {
	case election.ActionOn, election.ActionOff:
		return b.toggleElections(c, cb.Action == election.ActionOn)
	}
	return b.decideNomination(c, cb)
}

func (b *Bot) toggleElections(c tele.Context, active bool) (Reply, error) {
	err := b.elections.SetActive(requestContext(c), currentUser(c), active)
	switch {
	case errors.Is(err, election.ErrAlreadyActive):
		return Text(MsgElectionsAlreadyActive), nil
	case errors.Is(err, election.ErrAlreadyInactive):
		return Text(MsgElectionsAlreadyInactive), nil
	case errors.Is(err, election.ErrForbidden):
		return NoReply(), err
	case err != nil:
		return NoReply(), WrapUserError(MsgFailedToggle, err)
	}

	b.logger.Info("election period changed",
		"user_id", c.Sender().ID,
		"username", c.Sender().Username,
		"active", active,
	)

	if active {
		return Text(MsgElectionsNowActive), nil
	}
	return Text(MsgElectionsNowInactive), nil
}

func (b *Bot) decideNomination(c tele.Context, cb election.Callback) (Reply, error) {
	admin := currentUser(c)
	approve := cb.Action == election.ActionRequest

	d, err := b.elections.Decide(requestContext(c), admin, cb.Request, approve)
	switch {
	case errors.Is(err, election.ErrUserNotLinked):
		return Text(MsgUserNotLinked).AsThreadReply(), nil
	case errors.Is(err, election.ErrGroupNotFound):
		return Text(MsgRequestGroupNotFound), nil
	case errors.Is(err, election.ErrForbidden):
		return NoReply(), err
	case err != nil:
		// Keep the request and its buttons so the admin can press again.
		b.logger.Error("failed to decide nomination",
			"admin_id", admin.ID,
			"requester_tg_id", cb.Request.RequesterTgID,
			"group", cb.Request.Group,
			"approved", approve,
			"error", err,
		)
		return Text(MsgFailedDecide).AsThreadReply(), nil
	}

	b.logger.Info("nomination decided",
		"admin_id", admin.ID,
		"requester_tg_id", cb.Request.RequesterTgID,
		"group", cb.Request.Group,
		"role", cb.Request.Role,
		"approved", approve,
	)

	// The decision is already stored; a blocked bot must not hide it from admins.
	to := tele.ChatID(cb.Request.RequesterTgID)
	if _, err := b.sender.Send(to, requesterMessage(d)); err != nil {
		b.logger.Warn("failed to notify requester",
			"requester_tg_id", cb.Request.RequesterTgID,
			"error", err,
		)
	}

	return Text(decisionMessage(d, admin)), nil
}
