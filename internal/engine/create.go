package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ritualloop/internal/storage"
)

type AddRitualInput struct {
	ID        string // optional slug; a uuid is generated when empty
	Tags      []string
	Effort    EffortLevel
	Frequency string // compact rule string, empty = daily
	Scope     RitualScope
	OwnerID   *string // required for custom/personalized scopes
}

// AddRitual validates and stores one ritual definition.
func (s *Service) AddRitual(ctx context.Context, in AddRitualInput) (string, error) {
	id := strings.TrimSpace(strings.ToLower(in.ID))
	if id == "" {
		id = uuid.NewString()
	}

	effort := in.Effort
	if !effort.IsValid() {
		effort = DefaultEffort
	}
	if !in.Scope.IsValid() {
		return "", fmt.Errorf("invalid ritual scope: %q", in.Scope)
	}

	var owner *string
	switch in.Scope {
	case ScopeGlobal:
		// Global rituals are shared; an owner makes no sense.
	case ScopePersonalized, ScopeCustom:
		if in.OwnerID == nil || *in.OwnerID == "" {
			return "", errors.New("owner is required for non-global rituals")
		}
		owner = in.OwnerID
	}

	var freq *string
	if f := strings.TrimSpace(in.Frequency); f != "" && f != string(FrequencyDaily) {
		rule, err := ParseFrequencyRule(f)
		if err != nil {
			return "", err
		}
		if rule != nil {
			v := rule.String()
			freq = &v
		}
	}

	tags := normalizeTags(in.Tags)

	if err := s.rituals.Upsert(ctx, storage.Ritual{
		ID:        id,
		OwnerID:   owner,
		Tags:      tags,
		Effort:    string(effort),
		Frequency: freq,
		Scope:     string(in.Scope),
	}); err != nil {
		return "", err
	}
	return id, nil
}

func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
