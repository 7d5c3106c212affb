package engine

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ritualloop/internal/storage"
)

// SeedFile is the YAML shape accepted by ImportRituals:
//
//	rituals:
//	  - id: morning-pages
//	    tags: [writing, reflection]
//	    effort: medium
//	    frequency: weekdays:mon,wed,fri
//	    scope: global
type SeedFile struct {
	Rituals []SeedRitual `yaml:"rituals"`
}

type SeedRitual struct {
	ID        string   `yaml:"id"`
	Tags      []string `yaml:"tags"`
	Effort    string   `yaml:"effort"`
	Frequency string   `yaml:"frequency"`
	Scope     string   `yaml:"scope"`
	Owner     string   `yaml:"owner"`
}

// ImportRituals loads ritual definitions from a YAML seed file into the
// store. The whole batch is applied in one transaction; any invalid entry
// aborts the import.
func (s *Service) ImportRituals(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read seed: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parse seed: %w", err)
	}

	rows := make([]storage.Ritual, 0, len(seed.Rituals))
	for i, sr := range seed.Rituals {
		row, err := seedToRow(sr)
		if err != nil {
			return 0, fmt.Errorf("seed ritual %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, row := range rows {
			if err := s.rituals.UpsertTx(ctx, tx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func seedToRow(sr SeedRitual) (storage.Ritual, error) {
	scope := RitualScope(strings.TrimSpace(strings.ToLower(sr.Scope)))
	if scope == "" {
		scope = ScopeGlobal
	}
	if !scope.IsValid() {
		return storage.Ritual{}, fmt.Errorf("invalid scope: %q", sr.Scope)
	}

	effort := EffortLevel(strings.TrimSpace(strings.ToLower(sr.Effort)))
	if effort == "" {
		effort = DefaultEffort
	}
	if !effort.IsValid() {
		return storage.Ritual{}, fmt.Errorf("invalid effort: %q", sr.Effort)
	}

	var freq *string
	if f := strings.TrimSpace(sr.Frequency); f != "" && f != string(FrequencyDaily) {
		rule, err := ParseFrequencyRule(f)
		if err != nil {
			return storage.Ritual{}, err
		}
		if rule != nil {
			v := rule.String()
			freq = &v
		}
	}

	var owner *string
	if scope != ScopeGlobal {
		if sr.Owner == "" {
			return storage.Ritual{}, fmt.Errorf("owner is required for scope %q", scope)
		}
		o := sr.Owner
		owner = &o
	}

	id := strings.TrimSpace(strings.ToLower(sr.ID))
	if id == "" {
		id = uuid.NewString()
	}

	return storage.Ritual{
		ID:        id,
		OwnerID:   owner,
		Tags:      normalizeTags(sr.Tags),
		Effort:    string(effort),
		Frequency: freq,
		Scope:     string(scope),
	}, nil
}
