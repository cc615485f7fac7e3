package featureflags

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsOff(t *testing.T) {
	m := NewManager("")

	assert.False(t, m.Enabled(RankedFeed, 1))
	assert.False(t, m.Enabled(Reactions, 1))
	assert.False(t, m.Enabled("unknown_flag", 1))

	snap := m.Snapshot(1)
	assert.Equal(t, map[string]bool{RankedFeed: false, Reactions: false}, snap)
}

func TestNilManagerIsAllOff(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(Reactions, 1))
	assert.Empty(t, m.Snapshot(1))
}

func TestBooleanValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"on", true},
		{"true", true},
		{"1", true},
		{"off", false},
		{"false", false},
		{"0", false},
		{"banana", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			m := NewManager(fmt.Sprintf("reactions=%s", tt.value))
			assert.Equal(t, tt.want, m.Enabled(Reactions, 7))
		})
	}
}

func TestRankedFeedRollout(t *testing.T) {
	m := NewManager("ranked_feed=25%")

	t.Run("anonymous viewers stay on the chronological feed", func(t *testing.T) {
		assert.False(t, m.Enabled(RankedFeed, 0))
	})

	t.Run("evaluation is deterministic per user", func(t *testing.T) {
		for id := uint(1); id <= 20; id++ {
			first := m.Enabled(RankedFeed, id)
			for i := 0; i < 3; i++ {
				require.Equal(t, first, m.Enabled(RankedFeed, id))
			}
		}
	})

	t.Run("raising the percentage only grows the cohort", func(t *testing.T) {
		wider := NewManager("ranked_feed=75%")
		enabled := 0
		for id := uint(1); id <= 200; id++ {
			if m.Enabled(RankedFeed, id) {
				require.True(t, wider.Enabled(RankedFeed, id))
				enabled++
			}
		}
		assert.Greater(t, enabled, 0)
		assert.Less(t, enabled, 200)
	})

	t.Run("full rollout covers anonymous viewers too", func(t *testing.T) {
		full := NewManager("ranked_feed=100%")
		assert.True(t, full.Enabled(RankedFeed, 0))
	})

	t.Run("zero percent is off for everyone", func(t *testing.T) {
		none := NewManager("ranked_feed=0%")
		for id := uint(0); id <= 50; id++ {
			require.False(t, none.Enabled(RankedFeed, id))
		}
	})
}

func TestParseSkipsMalformedEntries(t *testing.T) {
	m := NewManager(" bogus ,reactions=on, Ranked_Feed = 20% ,=off,empty=")

	assert.True(t, m.Enabled(Reactions, 1))

	snap := m.Snapshot(7)
	assert.Contains(t, snap, RankedFeed)
	assert.Contains(t, snap, Reactions)
	assert.NotContains(t, snap, "bogus")
	assert.NotContains(t, snap, "empty")
}
