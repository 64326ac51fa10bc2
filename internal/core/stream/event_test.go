package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *Event
		wantErr error
	}{
		{
			name: "token event",
			raw:  `{"event":"token","node_id":"n1","data":"hel"}`,
			want: &Event{Type: EventToken, NodeID: "n1", Data: "hel"},
		},
		{
			name: "node complete",
			raw:  `{"event":"node_complete","node_id":"n1","data":{"response":"hello"}}`,
			want: &Event{Type: EventNodeComplete, NodeID: "n1", Data: map[string]interface{}{"response": "hello"}},
		},
		{
			name: "flow complete",
			raw:  `{"event":"flow_complete","data":{}}`,
			want: &Event{Type: EventFlowComplete, Data: map[string]interface{}{}},
		},
		{
			name: "run-level error",
			raw:  `{"event":"error","error":"engine down"}`,
			want: &Event{Type: EventError, Error: "engine down"},
		},
		{
			name: "node-level error",
			raw:  `{"event":"error","node_id":"n2","error":"rate limited"}`,
			want: &Event{Type: EventError, NodeID: "n2", Error: "rate limited"},
		},
		{
			name:    "unknown discriminator",
			raw:     `{"event":"heartbeat"}`,
			wantErr: ErrUnknownEventType,
		},
		{
			name:    "token without node id",
			raw:     `{"event":"token","data":"x"}`,
			wantErr: ErrMissingNodeID,
		},
		{
			name:    "malformed json",
			raw:     `{"event":`,
			wantErr: nil, // any error is fine, just not a parsed event
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.raw))
			if tt.want != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEvent_Terminal(t *testing.T) {
	assert.True(t, (&Event{Type: EventFlowComplete}).Terminal())
	assert.True(t, (&Event{Type: EventError}).Terminal())
	assert.False(t, (&Event{Type: EventError, NodeID: "n1"}).Terminal(), "node error only ends that node")
	assert.False(t, (&Event{Type: EventToken, NodeID: "n1"}).Terminal())
	assert.False(t, (&Event{Type: EventNodeComplete, NodeID: "n1"}).Terminal())
}
