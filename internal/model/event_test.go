package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnlimited(t *testing.T) {
	require.True(t, (&Event{ParticipantLimit: 0}).Unlimited())
	require.False(t, (&Event{ParticipantLimit: 1}).Unlimited())
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		confirmed int
		want      bool
	}{
		{"unlimited never fills", 0, 1000, false},
		{"below limit", 10, 9, false},
		{"at limit", 10, 10, true},
		{"over limit", 10, 11, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{ParticipantLimit: tt.limit, ConfirmedRequests: tt.confirmed}
			require.Equal(t, tt.want, e.IsFull())
		})
	}
}

func TestModerated(t *testing.T) {
	require.True(t, (&Event{RequestModeration: true, ParticipantLimit: 5}).Moderated())
	require.False(t, (&Event{RequestModeration: false, ParticipantLimit: 5}).Moderated())
	// No limit means nothing to guard, so the flag is ignored.
	require.False(t, (&Event{RequestModeration: true, ParticipantLimit: 0}).Moderated())
}

func TestModerationPolicy(t *testing.T) {
	on := true
	off := false

	require.True(t, ModerationPolicy(nil, true))
	require.False(t, ModerationPolicy(nil, false))
	require.True(t, ModerationPolicy(&on, false))
	require.False(t, ModerationPolicy(&off, true))
}
