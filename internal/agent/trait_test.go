package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveworks/lichfolio/internal/entropy"
)

func TestTraitSetterValidation(t *testing.T) {
	tr := NewTrait("shrewd", "Shrewd")

	tr.SetInheritanceChance(1.5)
	assert.Equal(t, 1.0, tr.InheritanceChance())
	tr.SetInheritanceChance(-0.2)
	assert.Equal(t, 0.0, tr.InheritanceChance())

	tr.SetIncomeModifier(1.3)
	tr.SetIncomeModifier(-1)
	assert.Equal(t, 1.3, tr.IncomeModifier())

	tr.SetLoyaltyModifier(500)
	assert.Equal(t, 100, tr.LoyaltyModifier())
	tr.SetLoyaltyModifier(-500)
	assert.Equal(t, -100, tr.LoyaltyModifier())

	tr.SetDiscoveryModifier(0.7)
	tr.SetDiscoveryModifier(-0.1)
	assert.Equal(t, 0.7, tr.DiscoveryModifier())
}

func TestTraitConflicts(t *testing.T) {
	cautious := NewTrait("cautious", "Cautious")
	greedy := NewTrait("greedy", "Greedy")

	assert.False(t, cautious.ConflictsWith(greedy))

	// Conflict is symmetric even when only one side lists it.
	cautious.AddConflict("greedy")
	assert.True(t, cautious.ConflictsWithID("greedy"))
	assert.True(t, cautious.ConflictsWith(greedy))
	assert.True(t, greedy.ConflictsWith(cautious))
	assert.False(t, greedy.ConflictsWithID("cautious"))

	cautious.AddConflict("greedy")
	assert.Len(t, cautious.ConflictIDs(), 1)
}

func TestTraitCopy(t *testing.T) {
	tr := NewTraitFull("cunning", "Cunning", "Skilled at deception", 0.4, 1.1, -5, 0.7)
	tr.AddConflict("loyal")

	cp := tr.Copy()
	require.NotSame(t, tr, cp)
	assert.Equal(t, tr.ID(), cp.ID())
	assert.Equal(t, tr.InheritanceChance(), cp.InheritanceChance())
	assert.Equal(t, tr.IncomeModifier(), cp.IncomeModifier())
	assert.Equal(t, tr.LoyaltyModifier(), cp.LoyaltyModifier())
	assert.Equal(t, tr.DiscoveryModifier(), cp.DiscoveryModifier())
	assert.True(t, cp.ConflictsWithID("loyal"))

	cp.AddConflict("shrewd")
	assert.False(t, tr.ConflictsWithID("shrewd"))
}

func TestRollInheritanceNeverWithZeroChance(t *testing.T) {
	tr := NewTrait("dud", "Dud")
	tr.SetInheritanceChance(0)
	src := entropy.NewRand(7)

	for i := 0; i < 100; i++ {
		assert.False(t, tr.RollInheritance(50, src))
	}
}

func TestRollInheritanceHighChanceMostlyTrue(t *testing.T) {
	tr := NewTrait("strong", "Strong")
	tr.SetInheritanceChance(0.95)
	src := entropy.NewRand(7)

	hits := 0
	for i := 0; i < 100; i++ {
		if tr.RollInheritance(0, src) {
			hits++
		}
	}
	assert.GreaterOrEqual(t, hits, 80)
}

func TestRollInheritanceGenerationBonusCaps(t *testing.T) {
	tr := NewTrait("old-blood", "Old Blood")
	tr.SetInheritanceChance(0.5)
	src := entropy.NewRand(11)

	// By generation 23 the bonus saturates at the cap, so deep
	// generations still fail sometimes.
	misses := 0
	for i := 0; i < 200; i++ {
		if !tr.RollInheritance(1000, src) {
			misses++
		}
	}
	assert.Greater(t, misses, 0)
}
