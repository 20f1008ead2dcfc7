package navigation

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/yungbote/navgraph/internal/domain/navigation"
)

//go:embed placements.yaml
var defaultPlacementsYAML []byte

// Placement is one recommendation block: where it is shown (source keys) and
// what it may recommend (target keys). Keys are "type::bundle"; a key mapped
// to false is configured but disabled.
type Placement struct {
	ID          string          `yaml:"-"`
	Label       string          `yaml:"label"`
	SourceTypes map[string]bool `yaml:"source_types"`
	TargetTypes map[string]bool `yaml:"target_types"`
	Limit       int             `yaml:"limit"`
	MaxHops     int             `yaml:"max_hops"`
}

// ShowsOn reports whether the block is displayed on pages of the given entity kind.
func (p Placement) ShowsOn(entityType, bundle string) bool {
	return p.SourceTypes[domain.TypeKey(entityType, bundle)]
}

// Targets returns the enabled target keys, sorted.
func (p Placement) Targets() []string {
	out := make([]string, 0, len(p.TargetTypes))
	for k, on := range p.TargetTypes {
		if on {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

type placementsFile struct {
	Default    string                `yaml:"default"`
	Placements map[string]*Placement `yaml:"placements"`
}

type Placements struct {
	defaultID string
	byID      map[string]Placement
}

func ParsePlacements(raw []byte) (*Placements, error) {
	var f placementsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse placements: %w", err)
	}
	out := &Placements{defaultID: strings.TrimSpace(f.Default), byID: map[string]Placement{}}
	for id, p := range f.Placements {
		id = strings.TrimSpace(id)
		if id == "" || p == nil {
			continue
		}
		p.ID = id
		for _, keys := range []map[string]bool{p.SourceTypes, p.TargetTypes} {
			for k := range keys {
				if !strings.Contains(k, "::") {
					return nil, fmt.Errorf("placement %q: key %q is not of the form type::bundle", id, k)
				}
			}
		}
		out.byID[id] = *p
	}
	if out.defaultID != "" {
		if _, ok := out.byID[out.defaultID]; !ok {
			return nil, fmt.Errorf("default placement %q is not defined", out.defaultID)
		}
	}
	return out, nil
}

// LoadPlacements reads placements from path, or the embedded defaults when path is "".
func LoadPlacements(path string) (*Placements, error) {
	if strings.TrimSpace(path) == "" {
		return ParsePlacements(defaultPlacementsYAML)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read placements: %w", err)
	}
	return ParsePlacements(raw)
}

func (s *Placements) Get(id string) (Placement, bool) {
	if s == nil {
		return Placement{}, false
	}
	p, ok := s.byID[strings.TrimSpace(id)]
	return p, ok
}

// Resolve returns the placement for id, or the default placement when id is empty.
func (s *Placements) Resolve(id string) (Placement, bool) {
	if s == nil {
		return Placement{}, false
	}
	if strings.TrimSpace(id) == "" {
		id = s.defaultID
	}
	return s.Get(id)
}

func (s *Placements) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.byID))
	for id := range s.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
