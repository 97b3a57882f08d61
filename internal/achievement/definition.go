// Package achievement tracks unlockable achievements, their progress, and
// gameplay statistics. Definitions come from a built-in catalog optionally
// overlaid with YAML files from a data directory.
package achievement

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Achievement IDs, shared with the YAML definition files.
const (
	FirstMillion    = "first_million"
	Centennial      = "centennial"
	PatientInvestor = "patient_investor"
	Dynasty         = "dynasty"
	HostileTakeover = "hostile_takeover"
	DarkAwakening   = "dark_awakening"
	SoulTrader      = "soul_trader"
	Transcendence   = "transcendence"
)

// Definition describes a single achievement. Target 0 means the achievement
// unlocks instantly rather than through progress.
type Definition struct {
	ID          string
	Name        string
	Description string
	Hint        string
	Category    string
	Points      int
	Target      int64
	Hidden      bool
}

func builtinDefinitions() []Definition {
	return []Definition{
		{ID: FirstMillion, Name: "First Million", Description: "Reach 1,000,000 gold pieces", Category: "wealth", Target: 1000000, Points: 10},
		{ID: Centennial, Name: "Centennial", Description: "Complete a 100-year slumber", Category: "time", Target: 100, Points: 20},
		{ID: PatientInvestor, Name: "Patient Investor", Description: "Hold a single investment for 500 years", Category: "time", Target: 500, Points: 50},
		{ID: Dynasty, Name: "Dynasty", Description: "Have an agent family reach the 5th generation", Category: "agents", Target: 5, Points: 30},
		{ID: HostileTakeover, Name: "Hostile Takeover", Description: "Own 100% of a kingdom's debt", Category: "financial", Points: 40},
		{ID: DarkAwakening, Name: "Dark Awakening", Description: "Unlock dark investments", Category: "dark", Hidden: true, Points: 25},
		{ID: SoulTrader, Name: "Soul Trader", Description: "Complete your first soul trade", Category: "dark", Hidden: true, Points: 35},
		{ID: Transcendence, Name: "Transcendence", Description: "Complete your first prestige cycle", Category: "prestige", Points: 100},
	}
}

type definitionFile struct {
	Entries []definitionEntry `yaml:"entries"`
}

type definitionEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Hint        string   `yaml:"hint"`
	Category    string   `yaml:"category"`
	Related     []string `yaml:"related"`
	Points      int      `yaml:"points"`
	Target      int64    `yaml:"target"`
	IsHidden    bool     `yaml:"is_hidden"`
}

// LoadDefinitions reads achievement definitions from every .yaml file in
// dir. A missing directory is not an error. Entries missing required fields
// are skipped with a warning; documents without an entries list are skipped
// silently.
func LoadDefinitions(dir string) ([]Definition, error) {
	names, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading definition directory: %w", err)
	}

	var defs []Definition
	for _, entry := range names {
		if entry.IsDir() || !hasDefinitionExt(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fileDefs, err := loadDefinitionFile(path)
		if err != nil {
			slog.Warn("skipping unreadable definition file",
				"file", path, "error", err)
			continue
		}
		defs = append(defs, fileDefs...)
	}
	return defs, nil
}

func hasDefinitionExt(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func loadDefinitionFile(path string) ([]Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file definitionFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(file.Entries) == 0 {
		return nil, nil
	}

	var defs []Definition
	for _, e := range file.Entries {
		name := e.Name
		if name == "" {
			name = e.Title
		}
		if e.ID == "" || name == "" || e.Description == "" {
			slog.Warn("skipping incomplete achievement definition",
				"file", path, "id", e.ID)
			continue
		}
		category := e.Category
		if category == "" {
			category = "general"
		}
		defs = append(defs, Definition{
			ID:          e.ID,
			Name:        name,
			Description: e.Description,
			Hint:        e.Hint,
			Category:    category,
			Points:      e.Points,
			Target:      e.Target,
			Hidden:      e.IsHidden,
		})
	}
	return defs, nil
}
