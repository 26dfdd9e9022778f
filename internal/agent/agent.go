// Package agent runs one chat turn: ask the model for a decision, run at
// most one tool, then ask the model to phrase the final reply.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/suagrafica/portal/internal/metrics"
	"github.com/suagrafica/portal/pkg/logging"
)

var (
	ErrUnavailable = errors.New("agent unavailable")
	ErrAgent       = errors.New("agent error")
)

const (
	DegradedReply       = "Nosso assistente está indisponível no momento. Por favor, tente novamente mais tarde ou fale com nossa equipe."
	GenericFailureReply = "Desculpe, não consegui processar sua mensagem agora. Pode tentar de novo em instantes?"
)

type Config struct {
	// CallTimeout bounds each provider call separately.
	CallTimeout time.Duration
	// FinalizeFallback returns the first-stage reply when the second call fails.
	FinalizeFallback bool
}

type Agent struct {
	provider Provider
	catalog  Catalog
	orders   Orders
	cfg      Config
}

// New returns an agent. A nil provider yields an agent that always answers
// with DegradedReply.
func New(provider Provider, catalog Catalog, orders Orders, cfg Config) *Agent {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 20 * time.Second
	}
	return &Agent{provider: provider, catalog: catalog, orders: orders, cfg: cfg}
}

func (a *Agent) Available() bool { return a.provider != nil }

type Turn struct {
	History  []Message
	Message  string
	ClientID uint
}

type Reply struct {
	Text string
	// Action is the tool that executed, ActionNone if none did.
	Action ActionType
	// Fallback is set when Text is the first-stage reply because the
	// finalize call failed.
	Fallback bool
}

// Respond runs a turn. On ErrUnavailable and ErrAgent the returned Reply is
// still safe to show to the user.
func (a *Agent) Respond(ctx context.Context, turn Turn) (Reply, error) {
	l := logging.FromContext(ctx).With("component", "agent", "client_id", turn.ClientID)

	if a.provider == nil {
		metrics.ChatTurns.WithLabelValues(string(ActionNone), "unavailable").Inc()
		return Reply{Text: DegradedReply, Action: ActionNone}, ErrUnavailable
	}

	conv := make([]Message, 0, len(turn.History)+1)
	for _, m := range turn.History {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		conv = append(conv, m)
	}
	conv = append(conv, Message{Role: RoleUser, Content: turn.Message})

	attempted := ActionNone
	fail := func(executed ActionType, err error) (Reply, error) {
		l.Error("chat_turn_failed", "action", attempted, "executed", executed, "error", err)
		metrics.ChatTurns.WithLabelValues(string(executed), "error").Inc()
		return Reply{Text: GenericFailureReply, Action: executed}, fmt.Errorf("%w: %v", ErrAgent, err)
	}

	raw, err := a.call(ctx, "decide", func(ctx context.Context) (string, error) {
		return a.provider.Decide(ctx, conv)
	})
	if err != nil {
		return fail(ActionNone, fmt.Errorf("decide: %w", err))
	}
	decision, err := ParseDecision(raw)
	if err != nil {
		return fail(ActionNone, err)
	}
	attempted = decision.Action.Type

	if decision.Action.Type == ActionNone {
		metrics.ChatTurns.WithLabelValues(string(ActionNone), "ok").Inc()
		return Reply{Text: decision.Reply, Action: ActionNone}, nil
	}

	result, err := a.runTool(ctx, decision.Action, turn.ClientID)
	if err != nil {
		return fail(ActionNone, err)
	}
	executed := decision.Action.Type

	raw, err = a.call(ctx, "finalize", func(ctx context.Context) (string, error) {
		return a.provider.Finalize(ctx, conv, decision.Action, result)
	})
	var final string
	if err == nil {
		final, err = ParseReply(raw)
	}
	if err != nil {
		if a.cfg.FinalizeFallback && decision.Reply != "" {
			l.Warn("chat_finalize_fallback", "action", executed, "error", err)
			metrics.ChatTurns.WithLabelValues(string(executed), "fallback").Inc()
			return Reply{Text: decision.Reply, Action: executed, Fallback: true}, nil
		}
		return fail(executed, fmt.Errorf("finalize: %w", err))
	}

	metrics.ChatTurns.WithLabelValues(string(executed), "ok").Inc()
	return Reply{Text: final, Action: executed}, nil
}

func (a *Agent) call(ctx context.Context, stage string, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	started := time.Now()
	out, err := fn(ctx)
	metrics.ObserveProvider(stage, started, err)
	return out, err
}
