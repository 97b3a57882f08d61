package exposure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForValue(t *testing.T) {
	cases := []struct {
		value int
		level Level
	}{
		{0, LevelHidden},
		{24, LevelHidden},
		{25, LevelScrutiny},
		{49, LevelScrutiny},
		{50, LevelSuspicion},
		{74, LevelSuspicion},
		{75, LevelHunt},
		{99, LevelHunt},
		{100, LevelCrusade},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForValue(tc.value), "value %d", tc.value)
	}
}

func TestSetValueClamps(t *testing.T) {
	m := NewMeter()

	m.SetValue(150)
	assert.Equal(t, 100, m.Value())
	assert.Equal(t, LevelCrusade, m.Level())

	m.SetValue(-20)
	assert.Equal(t, 0, m.Value())
	assert.Equal(t, LevelHidden, m.Level())
}

func TestAddSaturates(t *testing.T) {
	m := NewMeter()

	m.Add(60)
	assert.Equal(t, 60, m.Value())

	m.Add(60)
	assert.Equal(t, 100, m.Value())

	m.Add(-250)
	assert.Equal(t, 0, m.Value())
}

func TestLevelChangeNotifications(t *testing.T) {
	m := NewMeter()

	var crossings []Level
	m.OnLevelChanged(func(old, new Level) {
		crossings = append(crossings, new)
	})

	for _, v := range []int{0, 24, 25, 49, 50, 74, 75, 99, 100} {
		m.SetValue(v)
	}

	assert.Equal(t,
		[]Level{LevelScrutiny, LevelSuspicion, LevelHunt, LevelCrusade},
		crossings)
}

func TestValueNotificationBeforeLevelNotification(t *testing.T) {
	m := NewMeter()

	var order []string
	m.OnValueChanged(func(old, new int) { order = append(order, "value") })
	m.OnLevelChanged(func(old, new Level) { order = append(order, "level") })

	m.SetValue(30)
	assert.Equal(t, []string{"value", "level"}, order)
}

func TestNoNotificationOnSameValue(t *testing.T) {
	m := NewMeter()
	m.SetValue(10)

	fired := false
	m.OnValueChanged(func(old, new int) { fired = true })
	m.SetValue(10)
	assert.False(t, fired)
}

func TestApplyDecay(t *testing.T) {
	m := NewMeter()
	m.SetValue(80)

	m.ApplyDecay(3) // default rate 5 -> 15 off
	assert.Equal(t, 65, m.Value())

	m.ApplyDecay(100)
	assert.Equal(t, 0, m.Value())

	// Decay at zero is a no-op.
	m.ApplyDecay(10)
	assert.Equal(t, 0, m.Value())
}

func TestCustomDecayRate(t *testing.T) {
	m := NewMeter()
	m.SetValue(50)
	m.SetDecayRate(10)
	m.ApplyDecay(2)
	assert.Equal(t, 30, m.Value())

	m.SetDecayRate(-1) // rejected, rate unchanged
	assert.Equal(t, 10, m.DecayRate())
}

func TestReset(t *testing.T) {
	m := NewMeter()
	m.SetValue(77)
	m.SetDecayRate(9)

	m.Reset()
	assert.Equal(t, 0, m.Value())
	assert.Equal(t, LevelHidden, m.Level())
	assert.Equal(t, defaultDecayRate, m.DecayRate())
}

func TestDefaultIsSingleton(t *testing.T) {
	a := Default()
	b := Default()
	assert.Same(t, a, b)
	a.Reset()
}
