// Package exposure tracks how visible the lich's activities are to mortal
// institutions: a 0-100 meter banded into discrete threat levels.
package exposure

import (
	"log/slog"
	"sync"
)

// Level is the banded threat level derived from the meter value.
type Level uint8

const (
	LevelHidden    Level = iota // 0-24
	LevelScrutiny               // 25-49
	LevelSuspicion              // 50-74
	LevelHunt                   // 75-99
	LevelCrusade                // 100
)

// Band thresholds.
const (
	thresholdScrutiny  = 25
	thresholdSuspicion = 50
	thresholdHunt      = 75
	thresholdCrusade   = 100
)

const (
	maxExposure      = 100
	defaultDecayRate = 5 // per year of slumber
)

func (l Level) String() string {
	switch l {
	case LevelHidden:
		return "hidden"
	case LevelScrutiny:
		return "scrutiny"
	case LevelSuspicion:
		return "suspicion"
	case LevelHunt:
		return "hunt"
	case LevelCrusade:
		return "crusade"
	}
	return "unknown"
}

// ValueChangedFunc observes numeric changes to the meter.
type ValueChangedFunc func(old, new int)

// LevelChangedFunc observes band crossings.
type LevelChangedFunc func(old, new Level)

// Meter holds the exposure value and decay rate. Setters notify observers
// synchronously: value change first, band change second.
type Meter struct {
	value     int
	decayRate int

	onValueChanged []ValueChangedFunc
	onLevelChanged []LevelChangedFunc
}

// NewMeter creates a meter at zero exposure with the default decay rate.
func NewMeter() *Meter {
	return &Meter{decayRate: defaultDecayRate}
}

// Value returns the current exposure (0-100).
func (m *Meter) Value() int {
	return m.value
}

// SetValue sets the exposure, clamped to 0-100. Observers fire only on an
// actual change.
func (m *Meter) SetValue(v int) {
	clamped := v
	if clamped < 0 {
		clamped = 0
	}
	if clamped > maxExposure {
		clamped = maxExposure
	}
	if m.value == clamped {
		return
	}

	old := m.value
	oldLevel := m.Level()
	m.value = clamped
	newLevel := m.Level()

	for _, fn := range m.onValueChanged {
		fn(old, clamped)
	}
	if oldLevel != newLevel {
		slog.Info("exposure threshold crossed",
			"old", oldLevel, "new", newLevel, "value", clamped)
		for _, fn := range m.onLevelChanged {
			fn(oldLevel, newLevel)
		}
	}
}

// Add adjusts the exposure by delta, saturating at both ends.
func (m *Meter) Add(delta int) {
	m.SetValue(m.value + delta)
}

// Level returns the band for the current value.
func (m *Meter) Level() Level {
	return LevelForValue(m.value)
}

// LevelForValue returns the band for an arbitrary value.
func LevelForValue(v int) Level {
	switch {
	case v >= thresholdCrusade:
		return LevelCrusade
	case v >= thresholdHunt:
		return LevelHunt
	case v >= thresholdSuspicion:
		return LevelSuspicion
	case v >= thresholdScrutiny:
		return LevelScrutiny
	default:
		return LevelHidden
	}
}

// DecayRate returns the per-year decay applied during slumber.
func (m *Meter) DecayRate() int {
	return m.decayRate
}

// SetDecayRate sets the per-year decay. Negative rates are rejected.
func (m *Meter) SetDecayRate(rate int) {
	if rate < 0 {
		slog.Debug("ignoring negative exposure decay rate", "rate", rate)
		return
	}
	m.decayRate = rate
}

// ApplyDecay reduces exposure by rate*years, floored at zero.
func (m *Meter) ApplyDecay(years int) {
	if years <= 0 || m.value == 0 {
		return
	}
	amount := m.decayRate * years
	slog.Debug("applying exposure decay",
		"years", years, "rate", m.decayRate, "amount", amount)
	m.Add(-amount)
}

// OnValueChanged registers a numeric-change observer.
func (m *Meter) OnValueChanged(fn ValueChangedFunc) {
	m.onValueChanged = append(m.onValueChanged, fn)
}

// OnLevelChanged registers a band-crossing observer.
func (m *Meter) OnLevelChanged(fn LevelChangedFunc) {
	m.onLevelChanged = append(m.onLevelChanged, fn)
}

// Reset restores the initial state: value 0, default decay rate. Observers
// stay registered.
func (m *Meter) Reset() {
	slog.Debug("resetting exposure meter")
	m.value = 0
	m.decayRate = defaultDecayRate
}

var (
	defaultMu    sync.Mutex
	defaultMeter *Meter
)

// Default returns the process-wide meter, creating it on first use.
func Default() *Meter {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultMeter == nil {
		defaultMeter = NewMeter()
	}
	return defaultMeter
}
