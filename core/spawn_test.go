package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		cmd     SpawnCommand
		want    SpawnCommand
		wantErr bool
	}{
		{
			name: "complete command is kept",
			cmd:  SpawnCommand{TargetID: 1, DisplayTitle: "Mail", DisplayURL: "https://mail", IdleDuration: time.Minute, EstimatedWeightMB: 120},
			want: SpawnCommand{TargetID: 1, DisplayTitle: "Mail", DisplayURL: "https://mail", IdleDuration: time.Minute, EstimatedWeightMB: 120},
		},
		{
			name: "missing title falls back to url",
			cmd:  SpawnCommand{TargetID: 2, DisplayURL: " https://example.com "},
			want: SpawnCommand{TargetID: 2, DisplayTitle: "https://example.com", DisplayURL: "https://example.com", EstimatedWeightMB: 50},
		},
		{
			name: "missing title and url",
			cmd:  SpawnCommand{TargetID: 3, DisplayTitle: "   "},
			want: SpawnCommand{TargetID: 3, DisplayTitle: "Untitled", EstimatedWeightMB: 50},
		},
		{
			name: "negative idle clamps to zero",
			cmd:  SpawnCommand{TargetID: 4, DisplayTitle: "x", IdleDuration: -time.Second, EstimatedWeightMB: 10},
			want: SpawnCommand{TargetID: 4, DisplayTitle: "x", EstimatedWeightMB: 10},
		},
		{
			name:    "no target",
			cmd:     SpawnCommand{DisplayTitle: "x"},
			wantErr: true,
		},
		{
			name:    "negative target",
			cmd:     SpawnCommand{TargetID: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cmd.Normalize(50)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingTarget)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpawnCommand_Meta(t *testing.T) {
	cmd := SpawnCommand{TargetID: 9, DisplayTitle: "T", DisplayURL: "U", IdleDuration: time.Hour, EstimatedWeightMB: 33}
	meta := cmd.Meta()

	assert.Equal(t, 9, meta.TargetID)
	assert.Equal(t, "T", meta.Title)
	assert.Equal(t, "U", meta.URL)
	assert.Equal(t, time.Hour, meta.IdleDuration)
	assert.Equal(t, 33, meta.WeightMB)
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "short", DisplayTitle("short"))
	assert.Equal(t, "exactly twenty chars", DisplayTitle("exactly twenty chars"))
	assert.Equal(t, "abcdefghijklmnopqrst...", DisplayTitle("abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "éééééééééééééééééééé...", DisplayTitle("éééééééééééééééééééééé"))
}

func TestToggle(t *testing.T) {
	g := NewToggle(true)
	assert.True(t, g.Enabled())

	assert.False(t, g.Flip())
	assert.False(t, g.Enabled())
	assert.True(t, g.Flip())

	g.Set(false)
	assert.False(t, g.Enabled())
	assert.True(t, AlwaysOn.Enabled())
	assert.False(t, GateFunc(func() bool { return false }).Enabled())
}
