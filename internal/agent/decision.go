package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ActionType string

const (
	ActionNone            ActionType = "none"
	ActionSearchProduct   ActionType = "search_product"
	ActionCheckOrder      ActionType = "check_order"
	ActionGeneratePayment ActionType = "generate_payment"
)

type Action struct {
	Type    ActionType `json:"type"`
	Term    string     `json:"term,omitempty"`
	OrderID uint       `json:"order_id,omitempty"`
}

type Decision struct {
	Reply  string
	Action Action
}

var ErrMalformed = errors.New("malformed model output")

type wireDecision struct {
	BotResponse    string      `json:"botResponse"`
	ActionRequired *wireAction `json:"actionRequired"`
}

type wireAction struct {
	Type    string `json:"type"`
	Term    string `json:"term"`
	OrderID flexID `json:"order_id"`
}

// flexID accepts 50, "50" and null.
type flexID uint

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("order_id %s is not a positive integer", data)
	}
	*f = flexID(n)
	return nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decodeWire(raw string) (wireDecision, error) {
	var w wireDecision
	body := stripFences(raw)
	if body == "" {
		return w, fmt.Errorf("%w: empty output", ErrMalformed)
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(&w); err != nil {
		return w, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return w, nil
}

// ParseDecision parses first-stage output and validates the requested action
// and its parameters.
func ParseDecision(raw string) (Decision, error) {
	w, err := decodeWire(raw)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{Reply: strings.TrimSpace(w.BotResponse), Action: Action{Type: ActionNone}}
	if w.ActionRequired == nil {
		if d.Reply == "" {
			return Decision{}, fmt.Errorf("%w: empty botResponse", ErrMalformed)
		}
		return d, nil
	}

	a := w.ActionRequired
	typ := ActionType(strings.TrimSpace(a.Type))
	switch typ {
	case ActionNone, "":
		if d.Reply == "" {
			return Decision{}, fmt.Errorf("%w: empty botResponse", ErrMalformed)
		}
	case ActionSearchProduct:
		term := strings.TrimSpace(a.Term)
		if term == "" {
			return Decision{}, fmt.Errorf("%w: search_product without term", ErrMalformed)
		}
		d.Action = Action{Type: ActionSearchProduct, Term: term}
	case ActionCheckOrder, ActionGeneratePayment:
		if a.OrderID == 0 {
			return Decision{}, fmt.Errorf("%w: %s without order_id", ErrMalformed, typ)
		}
		d.Action = Action{Type: typ, OrderID: uint(a.OrderID)}
	default:
		return Decision{}, fmt.Errorf("%w: unknown action %q", ErrMalformed, a.Type)
	}
	return d, nil
}

// ParseReply parses second-stage output. Only botResponse is used.
func ParseReply(raw string) (string, error) {
	w, err := decodeWire(raw)
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(w.BotResponse)
	if reply == "" {
		return "", fmt.Errorf("%w: empty botResponse", ErrMalformed)
	}
	return reply, nil
}
