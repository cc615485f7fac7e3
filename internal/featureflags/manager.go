// Package featureflags evaluates operator-controlled rollout flags parsed
// from the FEATURE_FLAGS setting.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Flags the services consult. Both default off: the chronological feed and
// the plain like counter stay the behavior until a rollout switches them.
const (
	RankedFeed = "ranked_feed"
	Reactions  = "reactions"
)

// defaults fill in known flags that FEATURE_FLAGS leaves unset, so they
// always appear in snapshots.
var defaults = map[string]string{
	RankedFeed: "off",
	Reactions:  "off",
}

// Manager holds parsed flag values. A nil Manager evaluates everything off.
type Manager struct {
	values map[string]string
}

// NewManager parses a comma-separated flag list, e.g.
// "ranked_feed=25%,reactions=on". Malformed entries are skipped; known flags
// keep their defaults when unset.
func NewManager(raw string) *Manager {
	values := make(map[string]string, len(defaults))
	for name, value := range defaults {
		values[name] = value
	}

	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, value = normalize(name), normalize(value)
		if name == "" || value == "" {
			continue
		}
		values[name] = value
	}

	return &Manager{values: values}
}

// Enabled reports whether a flag is on for the given user. Values are
// on/true/1, off/false/0, or N% for a deterministic per-user rollout.
// Anonymous users (id 0) never fall inside a partial rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.values[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, ok := strings.CutSuffix(value, "%")
	if !ok {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	if userID == 0 {
		return false
	}
	return bucket(name, userID) < pct
}

// Snapshot evaluates every flag for one user, defaults included.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	if m == nil {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(m.values))
	for name := range m.values {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// bucket assigns a user a stable slot in [0,100) per flag, so raising a
// rollout percentage only grows the cohort, never reshuffles it.
func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s/%d", normalize(name), userID)
	return int(h.Sum32() % 100)
}
