package taxtable

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	LevelFederal = "federal"
	LevelState   = "state"
)

// fallbackFilingStatus is used when a table has no rows for the
// requested filing status.
const fallbackFilingStatus = "single"

type Bracket struct {
	UpTo float64 `json:"upTo"`
	Rate float64 `json:"rate"`
}

// Jurisdiction holds the allowance and per-filing-status bracket rows
// for one taxing authority (federal or a single state).
type Jurisdiction struct {
	Allowance float64
	Brackets  map[string][]Bracket
}

// UnmarshalJSON splits the "allowance" key from the filing-status keys,
// matching the flat table schema {"allowance": n, "single": [...], ...}.
func (j *Jurisdiction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	j.Brackets = make(map[string][]Bracket, len(raw))
	for key, value := range raw {
		if key == "allowance" {
			if err := json.Unmarshal(value, &j.Allowance); err != nil {
				return fmt.Errorf("allowance: %w", err)
			}
			continue
		}
		var rows []Bracket
		if err := json.Unmarshal(value, &rows); err != nil {
			return fmt.Errorf("brackets for %q: %w", key, err)
		}
		j.Brackets[key] = rows
	}
	return nil
}

type EmployerTax struct {
	Rate     float64 `json:"rate"`
	WageBase float64 `json:"wageBase,omitempty"`
}

// Table is one versioned tax configuration. Immutable once loaded and
// safe for concurrent reads.
type Table struct {
	Version       string                  `json:"version"`
	Federal       Jurisdiction            `json:"federal"`
	States        map[string]Jurisdiction `json:"states"`
	EmployerTaxes map[string]EmployerTax  `json:"employerTaxes"`
}

// Validate checks that every bracket list is ascending by cap.
func (t *Table) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("tax table has no version")
	}
	if err := validateJurisdiction("federal", t.Federal); err != nil {
		return err
	}
	for state, jurisdiction := range t.States {
		if err := validateJurisdiction(state, jurisdiction); err != nil {
			return err
		}
	}
	return nil
}

func validateJurisdiction(name string, j Jurisdiction) error {
	for status, rows := range j.Brackets {
		for i := 1; i < len(rows); i++ {
			if rows[i].UpTo <= rows[i-1].UpTo {
				return fmt.Errorf("%s/%s brackets not ascending at row %d", name, status, i)
			}
		}
	}
	return nil
}

// BracketsFor returns a copy of the bracket rows for the given level and
// filing status, sorted ascending by cap. State lookups fail with
// ErrJurisdictionNotFound when the state has no configuration; a missing
// filing status falls back to the single rows.
func (t *Table) BracketsFor(level, filingStatus, state string) ([]Bracket, error) {
	jurisdiction := t.Federal
	name := LevelFederal
	if level == LevelState {
		configured, ok := t.States[state]
		if !ok {
			return nil, fmt.Errorf("state %q in tax table %s: %w", state, t.Version, ErrJurisdictionNotFound)
		}
		jurisdiction = configured
		name = state
	}
	rows := jurisdiction.Brackets[filingStatus]
	if rows == nil {
		rows = jurisdiction.Brackets[fallbackFilingStatus]
	}
	if rows == nil {
		return nil, fmt.Errorf("no brackets for filing status %q in %s (table %s): %w", filingStatus, name, t.Version, ErrJurisdictionNotFound)
	}
	out := make([]Bracket, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].UpTo < out[j].UpTo })
	return out, nil
}

// AllowanceFor returns the configured allowance for the level. Unlike
// BracketsFor, an unconfigured state yields 0 rather than an error: an
// allowance is additive, so a missing one must not zero out tax.
func (t *Table) AllowanceFor(level, state string) float64 {
	if level == LevelFederal {
		return t.Federal.Allowance
	}
	jurisdiction, ok := t.States[state]
	if !ok {
		return 0
	}
	return jurisdiction.Allowance
}
