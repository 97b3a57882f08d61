package worldsim

import "log/slog"

// defaultStartingYear is where a fresh chronicle begins.
const defaultStartingYear = 847

// economicCycleLength is the full boom-to-bust period in years.
const economicCycleLength = 50

type (
	YearAdvancedFunc  func(year int)
	EventOccurredFunc func(ev Event)
)

// WorldSimulation owns the year counter, the kingdoms, and event
// generation.
type WorldSimulation struct {
	currentYear   int
	economicPhase int
	kingdoms      []*Kingdom
	generator     *Generator

	onYearAdvanced  []YearAdvancedFunc
	onEventOccurred []EventOccurredFunc
}

// NewWorldSimulation creates a simulation at the default starting year.
// A nil generator disables event generation.
func NewWorldSimulation(gen *Generator) *WorldSimulation {
	w := &WorldSimulation{
		currentYear: defaultStartingYear,
		generator:   gen,
	}
	w.updateEconomicPhase()
	return w
}

// CurrentYear returns the simulation year.
func (w *WorldSimulation) CurrentYear() int { return w.currentYear }

// EconomicCyclePhase returns the cycle quarter: 0 expansion, 1 peak,
// 2 contraction, 3 trough.
func (w *WorldSimulation) EconomicCyclePhase() int { return w.economicPhase }

// BaseGrowthRate is the annual growth multiplier for the current phase.
func (w *WorldSimulation) BaseGrowthRate() float64 {
	switch w.economicPhase {
	case 0:
		return 1.03
	case 1:
		return 1.01
	case 2:
		return 0.98
	case 3:
		return 0.99
	default:
		return 1.0
	}
}

// EconomicClimate samples the generator's climate curve for the current
// year, 0.5 when no generator is attached.
func (w *WorldSimulation) EconomicClimate() float64 {
	if w.generator == nil {
		return 0.5
	}
	return w.generator.EconomicClimate(w.currentYear)
}

// AddKingdom registers a kingdom, ignoring nil and duplicate ids.
func (w *WorldSimulation) AddKingdom(k *Kingdom) {
	if k == nil || w.Kingdom(k.ID()) != nil {
		return
	}
	w.kingdoms = append(w.kingdoms, k)
}

// Kingdom looks a kingdom up by id, nil when absent.
func (w *WorldSimulation) Kingdom(id string) *Kingdom {
	for _, k := range w.kingdoms {
		if k.ID() == id {
			return k
		}
	}
	return nil
}

// Kingdoms returns the registered kingdoms.
func (w *WorldSimulation) Kingdoms() []*Kingdom { return w.kingdoms }

// AdvanceYear steps the simulation one year, generating events and
// applying their political fallout. Year observers fire after event
// observers.
func (w *WorldSimulation) AdvanceYear() []Event {
	w.currentYear++
	w.updateEconomicPhase()

	var events []Event
	if w.generator != nil {
		events = w.generator.GenerateYearly(w.currentYear)
	}

	for i := range events {
		w.applyToKingdoms(&events[i])
		for _, fn := range w.onEventOccurred {
			fn(events[i])
		}
	}

	slog.Debug("year advanced", "year", w.currentYear, "phase", w.economicPhase, "events", len(events))
	for _, fn := range w.onYearAdvanced {
		fn(w.currentYear)
	}
	return events
}

// AdvanceYears steps n years, collecting every event.
func (w *WorldSimulation) AdvanceYears(n int) []Event {
	var all []Event
	for i := 0; i < n; i++ {
		all = append(all, w.AdvanceYear()...)
	}
	return all
}

// applyToKingdoms lands stability impacts on a random kingdom and tags
// the event with its target.
func (w *WorldSimulation) applyToKingdoms(ev *Event) {
	if ev.StabilityImpact == 0 || len(w.kingdoms) == 0 || w.generator == nil {
		return
	}
	target := w.kingdoms[w.generator.src.IntN(len(w.kingdoms))]
	target.AdjustStability(ev.StabilityImpact)
	ev.KingdomID = target.ID()
}

func (w *WorldSimulation) updateEconomicPhase() {
	w.economicPhase = (w.currentYear / (economicCycleLength / 4)) % 4
}

func (w *WorldSimulation) OnYearAdvanced(fn YearAdvancedFunc) {
	w.onYearAdvanced = append(w.onYearAdvanced, fn)
}

func (w *WorldSimulation) OnEventOccurred(fn EventOccurredFunc) {
	w.onEventOccurred = append(w.onEventOccurred, fn)
}

// Reset returns to the given starting year and drops all kingdoms.
// A non-positive year selects the default.
func (w *WorldSimulation) Reset(startingYear int) {
	if startingYear <= 0 {
		startingYear = defaultStartingYear
	}
	w.currentYear = startingYear
	w.kingdoms = nil
	w.updateEconomicPhase()
}

// SetCurrentYear is used by save restoration.
func (w *WorldSimulation) SetCurrentYear(year int) {
	w.currentYear = year
	w.updateEconomicPhase()
}
