package bedrock

import (
	"fmt"
	"strconv"
	"strings"
)

// Scenario selects how a model grid is derived from a truth grid.
// The numeric codes are part of the config and CLI format; do not renumber.
type Scenario int

const (
	// ScenarioConstant generates the model at a fixed bedrock fraction,
	// independent of the truth grid.
	ScenarioConstant Scenario = 1
	// ScenarioIndependent generates the model at the truth's target
	// fraction with independent tor locations.
	ScenarioIndependent Scenario = 2
	// ScenarioRandom flips truth cells at a uniform error rate.
	ScenarioRandom Scenario = 3
	// ScenarioOffset shifts the truth with wrap-around boundaries.
	ScenarioOffset Scenario = 4
	// ScenarioCombined applies ScenarioOffset then ScenarioRandom.
	ScenarioCombined Scenario = 5
)

// Scenarios lists every defined scenario in code order.
var Scenarios = []Scenario{
	ScenarioConstant,
	ScenarioIndependent,
	ScenarioRandom,
	ScenarioOffset,
	ScenarioCombined,
}

var scenarioNames = map[Scenario]string{
	ScenarioConstant:    "con",
	ScenarioIndependent: "ind",
	ScenarioRandom:      "ran",
	ScenarioOffset:      "sys",
	ScenarioCombined:    "com",
}

// String returns the short scenario name ("con", "ind", "ran", "sys", "com").
func (s Scenario) String() string {
	if name, ok := scenarioNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scenario(%d)", int(s))
}

// Valid reports whether s is one of the defined scenarios.
func (s Scenario) Valid() bool {
	_, ok := scenarioNames[s]
	return ok
}

// PreservesFraction reports whether the scenario keeps the truth's bedrock
// fraction exactly.
func (s Scenario) PreservesFraction() bool {
	return s == ScenarioOffset
}

// ParseScenario accepts a short name or a numeric code.
func ParseScenario(s string) (Scenario, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for sc, name := range scenarioNames {
		if key == name {
			return sc, nil
		}
	}
	if code, err := strconv.Atoi(key); err == nil {
		if sc := Scenario(code); sc.Valid() {
			return sc, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScenario, s)
}
