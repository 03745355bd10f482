// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package elo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestSelectMatchupTooFewItems(t *testing.T) {
	cfg := DefaultSelectorConfig()

	assert.Nil(t, SelectMatchup(nil, seededRNG(1), cfg))
	assert.Nil(t, SelectMatchup([]Rating{}, seededRNG(1), cfg))
	assert.Nil(t, SelectMatchup([]Rating{{ItemID: "only", Score: 1200}}, seededRNG(1), cfg))
}

func TestSelectMatchupExactlyTwoItems(t *testing.T) {
	items := []Rating{
		{ItemID: "a", Score: 1900, Comparisons: 40},
		{ItemID: "b", Score: 800, Comparisons: 40},
	}

	// The only possible pair comes back in input order regardless of seed.
	for seed := uint64(0); seed < 50; seed++ {
		m := SelectMatchup(items, seededRNG(seed), DefaultSelectorConfig())
		require.NotNil(t, m)
		assert.Equal(t, "a", m.Left.ItemID)
		assert.Equal(t, "b", m.Right.ItemID)
	}
}

func TestSelectMatchupNeverRepeatsItem(t *testing.T) {
	items := []Rating{
		{ItemID: "a", Score: 1200, Comparisons: 0},
		{ItemID: "b", Score: 1210, Comparisons: 2},
		{ItemID: "c", Score: 1190, Comparisons: 9},
		{ItemID: "d", Score: 1400, Comparisons: 12},
		{ItemID: "e", Score: 1050, Comparisons: 31},
	}

	for seed := uint64(0); seed < 500; seed++ {
		m := SelectMatchup(items, seededRNG(seed), DefaultSelectorConfig())
		require.NotNil(t, m)
		assert.NotEqual(t, m.Left.ItemID, m.Right.ItemID, "seed %d", seed)
	}
}

func TestSelectMatchupColdStartPriority(t *testing.T) {
	// Three items are still low-history; every selection must draw both
	// sides from that subset no matter how the RNG falls.
	items := []Rating{
		{ItemID: "new1", Score: 1200, Comparisons: 0},
		{ItemID: "new2", Score: 1200, Comparisons: 3},
		{ItemID: "new3", Score: 1200, Comparisons: 4},
		{ItemID: "old1", Score: 1250, Comparisons: 20},
		{ItemID: "old2", Score: 1150, Comparisons: 35},
		{ItemID: "old3", Score: 1248, Comparisons: 8},
	}
	lowHistory := map[string]bool{"new1": true, "new2": true, "new3": true}

	seen := map[string]bool{}
	for seed := uint64(0); seed < 500; seed++ {
		m := SelectMatchup(items, seededRNG(seed), DefaultSelectorConfig())
		require.NotNil(t, m)
		assert.True(t, lowHistory[m.Left.ItemID], "seed %d picked %s", seed, m.Left.ItemID)
		assert.True(t, lowHistory[m.Right.ItemID], "seed %d picked %s", seed, m.Right.ItemID)
		seen[m.Left.ItemID] = true
		seen[m.Right.ItemID] = true
	}

	// Uniform draws over 500 seeds should touch every low-history item.
	assert.Len(t, seen, 3)
}

func TestSelectMatchupDiscoveryAndCompetitiveTiers(t *testing.T) {
	// No low-history items left. Every selection is either the discovery
	// pair (extremes) or the competitive pair (unique minimum adjacent
	// gap, here c/d at 2 points apart).
	items := []Rating{
		{ItemID: "low", Score: 1000, Comparisons: 10},
		{ItemID: "c", Score: 1200, Comparisons: 15},
		{ItemID: "d", Score: 1202, Comparisons: 40},
		{ItemID: "mid", Score: 1300, Comparisons: 8},
		{ItemID: "high", Score: 1600, Comparisons: 22},
	}

	pairKey := func(m *Matchup) string {
		if m.Left.ItemID < m.Right.ItemID {
			return m.Left.ItemID + "/" + m.Right.ItemID
		}
		return m.Right.ItemID + "/" + m.Left.ItemID
	}

	counts := map[string]int{}
	for seed := uint64(0); seed < 400; seed++ {
		m := SelectMatchup(items, seededRNG(seed), DefaultSelectorConfig())
		require.NotNil(t, m)
		counts[pairKey(m)]++
	}

	assert.Len(t, counts, 2, "only discovery and competitive pairs are possible: %v", counts)
	assert.Greater(t, counts["c/d"], 0, "competitive pair never chosen")
	assert.Greater(t, counts["high/low"], 0, "discovery pair never chosen")
	// Competitive is the 85% default path.
	assert.Greater(t, counts["c/d"], counts["high/low"])
}

func TestSelectMatchupCompetitiveTieBreaksOnFirstAdjacentPair(t *testing.T) {
	// Two adjacent pairs share the minimum gap; the first in ascending
	// scan order wins. Discovery is disabled to force the competitive tier.
	cfg := SelectorConfig{LowHistoryThreshold: 0, DiscoveryRate: 0}
	items := []Rating{
		{ItemID: "a", Score: 1100, Comparisons: 10},
		{ItemID: "b", Score: 1110, Comparisons: 10},
		{ItemID: "c", Score: 1300, Comparisons: 10},
		{ItemID: "d", Score: 1310, Comparisons: 10},
	}

	for seed := uint64(0); seed < 50; seed++ {
		m := SelectMatchup(items, seededRNG(seed), cfg)
		require.NotNil(t, m)
		got := map[string]bool{m.Left.ItemID: true, m.Right.ItemID: true}
		assert.True(t, got["a"] && got["b"], "seed %d chose %v", seed, got)
	}
}

func TestSelectMatchupOrientationVaries(t *testing.T) {
	// With a fixed competitive pair, the coin flip must produce both
	// presentation orders across seeds.
	cfg := SelectorConfig{LowHistoryThreshold: 0, DiscoveryRate: 0}
	items := []Rating{
		{ItemID: "a", Score: 1100, Comparisons: 10},
		{ItemID: "b", Score: 1105, Comparisons: 10},
		{ItemID: "c", Score: 1400, Comparisons: 10},
	}

	leftSeen := map[string]bool{}
	for seed := uint64(0); seed < 100; seed++ {
		m := SelectMatchup(items, seededRNG(seed), cfg)
		require.NotNil(t, m)
		leftSeen[m.Left.ItemID] = true
	}

	assert.True(t, leftSeen["a"] && leftSeen["b"], "both orientations expected, saw %v", leftSeen)
}

func TestSelectMatchupDeterministicPerSeed(t *testing.T) {
	items := []Rating{
		{ItemID: "a", Score: 1200, Comparisons: 1},
		{ItemID: "b", Score: 1220, Comparisons: 2},
		{ItemID: "c", Score: 1180, Comparisons: 3},
		{ItemID: "d", Score: 1260, Comparisons: 4},
	}

	for seed := uint64(0); seed < 20; seed++ {
		first := SelectMatchup(items, seededRNG(seed), DefaultSelectorConfig())
		second := SelectMatchup(items, seededRNG(seed), DefaultSelectorConfig())
		assert.Equal(t, first, second, "seed %d", seed)
	}
}

func TestSelectMatchupDoesNotMutateInput(t *testing.T) {
	items := []Rating{
		{ItemID: "z", Score: 1400, Comparisons: 12},
		{ItemID: "a", Score: 1100, Comparisons: 30},
		{ItemID: "m", Score: 1250, Comparisons: 18},
	}
	snapshot := make([]Rating, len(items))
	copy(snapshot, items)

	for seed := uint64(0); seed < 20; seed++ {
		SelectMatchup(items, seededRNG(seed), DefaultSelectorConfig())
	}

	assert.Equal(t, snapshot, items)
}

func TestDefaultSelectorConfig(t *testing.T) {
	cfg := DefaultSelectorConfig()
	assert.Equal(t, 5, cfg.LowHistoryThreshold)
	assert.Equal(t, 0.15, cfg.DiscoveryRate)
}
