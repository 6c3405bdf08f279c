package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Dist(t *testing.T) {
	assert.InDelta(t, 0.0, Vec3{}.Dist(Vec3{}), 1e-12)
	assert.InDelta(t, 5.0, Vec3{X: 3, Y: 4}.Dist(Vec3{}), 1e-12)
	assert.InDelta(t, 3.0, Vec3{X: 1, Y: 2, Z: 2}.Dist(Vec3{X: 0, Y: 0, Z: 0}), 1e-12)
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, Vec3{X: 1, Y: -2, Z: 3.5}.IsFinite())
	assert.False(t, Vec3{X: math.NaN()}.IsFinite())
	assert.False(t, Vec3{Z: math.Inf(-1)}.IsFinite())
}

func TestNewJointPairCanonical(t *testing.T) {
	a := NewJointPair("l_hand", "head")
	b := NewJointPair("head", "l_hand")
	assert.Equal(t, a, b)
	assert.Equal(t, "head-l_hand", a.ID())
	assert.Equal(t, "Head ↔ L Hand", a.Label())
}

func TestSymbolCode(t *testing.T) {
	tests := []struct {
		symbol   Symbol
		expected string
	}{
		{Approach, "+0"},
		{Diverge, "0-"},
		{Cross, "0c"},
		{Stationary, "00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.symbol.Code(), string(tt.symbol))
	}
}

func TestCaptureDuration(t *testing.T) {
	c := &Capture{FPS: 60, FrameCount: 150}
	assert.InDelta(t, 2.5, c.Duration(), 1e-12)

	zero := &Capture{FrameCount: 150}
	assert.Zero(t, zero.Duration())
}

func TestMotifInstanceDuration(t *testing.T) {
	inst := MotifInstance{StartFrame: 10, EndFrame: 130}
	assert.Equal(t, 120, inst.DurationFrames())
	assert.InDelta(t, 2.0, inst.DurationSeconds(60), 1e-12)
	assert.Zero(t, inst.DurationSeconds(0))
}

func TestClusterPairs(t *testing.T) {
	hands := NewJointPair("l_hand", "r_hand")
	feet := NewJointPair("l_foot", "pelvis")
	c := MotifCluster{Members: []MotifInstance{
		{Pair: hands}, {Pair: feet}, {Pair: hands},
	}}
	assert.Equal(t, []string{hands.ID(), feet.ID()}, c.Pairs())
	assert.Equal(t, 3, c.MemberCount())
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryHand, CategoryOf("l_hand"))
	assert.Equal(t, CategoryTorso, CategoryOf("pelvis"))
	assert.Equal(t, CategoryHead, CategoryOf("neck"))
	assert.Equal(t, CategoryLimb, CategoryOf("r_knee"))
	assert.Equal(t, CategoryOther, CategoryOf("prop_marker"))
}

func TestDisplayNameFallback(t *testing.T) {
	assert.Equal(t, "Pelvis", DisplayName("pelvis"))
	assert.Equal(t, "spine_base", DisplayName("spine_base"))
}

func TestDefaultPairsAreCanonical(t *testing.T) {
	seen := make(map[string]struct{})
	for _, p := range DefaultPairs {
		assert.Less(t, p.A, p.B, "pair %s must be ordered", p.ID())
		_, dup := seen[p.ID()]
		assert.False(t, dup, "duplicate default pair %s", p.ID())
		seen[p.ID()] = struct{}{}
	}
	assert.Len(t, DefaultPairs, 8)
}
