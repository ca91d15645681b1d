package election

import (
	"fmt"
	"strconv"
	"strings"
)

// CallbackNamespace is the first token of every elections button payload.
const CallbackNamespace = "elections"

type Action string

const (
	ActionOn      Action = "on"
	ActionOff     Action = "off"
	ActionRequest Action = "request"
	ActionDeny    Action = "deny"
)

// DelegateRequest is a nomination travelling inside the Approve/Deny button
// payloads. It is never stored.
type DelegateRequest struct {
	RequesterTgID int64
	Group         GroupRef
	Role          Role
}

// Payload encodes the request as elections:<action>:<tg_id>:<year>.<number>:<0|1>.
func (r DelegateRequest) Payload(action Action) string {
	return strings.Join([]string{
		CallbackNamespace,
		string(action),
		strconv.FormatInt(r.RequesterTgID, 10),
		r.Group.String(),
		r.Role.flag(),
	}, ":")
}

// TogglePayload encodes the period toggle confirmation for the wanted state.
func TogglePayload(active bool) string {
	if active {
		return CallbackNamespace + ":" + string(ActionOn)
	}
	return CallbackNamespace + ":" + string(ActionOff)
}

// Callback is a decoded elections button press. Request is only set for
// ActionRequest and ActionDeny.
type Callback struct {
	Action  Action
	Request DelegateRequest
}

// ParseCallback decodes a payload built by Payload or TogglePayload. Anything
// else, including extra or missing tokens, is rejected with ErrMalformedPayload.
func ParseCallback(data string) (Callback, error) {
	tokens := strings.Split(data, ":")
	if len(tokens) < 2 || tokens[0] != CallbackNamespace {
		return Callback{}, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
	}

	action, args := Action(tokens[1]), tokens[2:]
	switch action {
	case ActionOn, ActionOff:
		if len(args) != 0 {
			return Callback{}, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
		}
		return Callback{Action: action}, nil
	case ActionRequest, ActionDeny:
		req, err := parseRequestArgs(args)
		if err != nil {
			return Callback{}, fmt.Errorf("%w: %q: %v", ErrMalformedPayload, data, err)
		}
		return Callback{Action: action, Request: req}, nil
	}
	return Callback{}, fmt.Errorf("%w: unknown action %q", ErrMalformedPayload, action)
}

func parseRequestArgs(args []string) (DelegateRequest, error) {
	if len(args) != 3 {
		return DelegateRequest{}, fmt.Errorf("want 3 fields, got %d", len(args))
	}
	tgID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || tgID <= 0 || strconv.FormatInt(tgID, 10) != args[0] {
		return DelegateRequest{}, fmt.Errorf("bad requester id %q", args[0])
	}
	ref, err := ParseGroupRef(args[1])
	if err != nil {
		return DelegateRequest{}, err
	}
	role, ok := roleFromFlag(args[2])
	if !ok {
		return DelegateRequest{}, fmt.Errorf("bad role flag %q", args[2])
	}
	return DelegateRequest{RequesterTgID: tgID, Group: ref, Role: role}, nil
}
