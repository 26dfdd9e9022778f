package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   Decision
		wantOK bool
	}{
		{
			name:   "plain none",
			raw:    `{"botResponse":"Olá!","actionRequired":{"type":"none"}}`,
			want:   Decision{Reply: "Olá!", Action: Action{Type: ActionNone}},
			wantOK: true,
		},
		{
			name:   "missing action",
			raw:    `{"botResponse":"Olá!"}`,
			want:   Decision{Reply: "Olá!", Action: Action{Type: ActionNone}},
			wantOK: true,
		},
		{
			name:   "fenced with language tag",
			raw:    "```json\n{\"botResponse\":\"Vou buscar.\",\"actionRequired\":{\"type\":\"search_product\",\"term\":\" cartão \"}}\n```",
			want:   Decision{Reply: "Vou buscar.", Action: Action{Type: ActionSearchProduct, Term: "cartão"}},
			wantOK: true,
		},
		{
			name:   "fenced without tag",
			raw:    "```\n{\"botResponse\":\"ok\",\"actionRequired\":{\"type\":\"check_order\",\"order_id\":7}}\n```",
			want:   Decision{Reply: "ok", Action: Action{Type: ActionCheckOrder, OrderID: 7}},
			wantOK: true,
		},
		{
			name:   "order id as string",
			raw:    `{"botResponse":"","actionRequired":{"type":"generate_payment","order_id":"50"}}`,
			want:   Decision{Action: Action{Type: ActionGeneratePayment, OrderID: 50}},
			wantOK: true,
		},
		{name: "not json", raw: "Claro! Posso ajudar."},
		{name: "empty", raw: "   "},
		{name: "unknown action", raw: `{"botResponse":"x","actionRequired":{"type":"delete_everything"}}`},
		{name: "search without term", raw: `{"botResponse":"x","actionRequired":{"type":"search_product"}}`},
		{name: "check without id", raw: `{"botResponse":"x","actionRequired":{"type":"check_order"}}`},
		{name: "bad id", raw: `{"botResponse":"x","actionRequired":{"type":"check_order","order_id":"abc"}}`},
		{name: "negative id", raw: `{"botResponse":"x","actionRequired":{"type":"check_order","order_id":-3}}`},
		{name: "none without reply", raw: `{"botResponse":"","actionRequired":{"type":"none"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecision(tt.raw)
			if !tt.wantOK {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReply(t *testing.T) {
	t.Parallel()

	reply, err := ParseReply("```json\n{\"botResponse\":\" Seu pedido está pago. \"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Seu pedido está pago.", reply)

	_, err = ParseReply(`{"botResponse":""}`)
	assert.ErrorIs(t, err, ErrMalformed)
}
