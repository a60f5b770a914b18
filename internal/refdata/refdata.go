// Package refdata loads the regulatory reference tables the rule layers
// consume: state constants, jurisdiction profiles, building types, and room
// types. A baked-in default set ships with the binary; deployments may layer
// an override file on top and reload it live.
package refdata

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"plancore/pkg/domain"
)

//go:embed defaults.yaml
var defaultTables []byte

// document is the on-disk shape of a reference-data file. Override files use
// the same shape; every entry present in an override replaces the default
// entry with the same key, and a present constants block replaces the default
// constants wholesale.
type document struct {
	Constants     *domain.StateConstants `yaml:"constants"`
	Jurisdictions []domain.Jurisdiction  `yaml:"jurisdictions"`
	BuildingTypes []domain.BuildingType  `yaml:"building_types"`
	RoomTypes     []domain.RoomType      `yaml:"room_types"`
}

type tables struct {
	constants     domain.StateConstants
	jurisdictions map[string]domain.Jurisdiction
	buildingTypes map[string]domain.BuildingType
	roomTypes     map[string]domain.RoomType
}

// Provider serves reference lookups from an immutable table snapshot that can
// be swapped atomically on reload. It implements domain.ReferenceData.
type Provider struct {
	mu sync.RWMutex
	t  tables
}

// Default returns a provider backed solely by the embedded tables.
func Default() (*Provider, error) {
	doc, err := parse(defaultTables)
	if err != nil {
		return nil, fmt.Errorf("refdata: embedded defaults: %w", err)
	}
	p := &Provider{}
	p.t = merge(tables{}, doc)
	return p, nil
}

// Load returns a provider with the file at path merged over the embedded
// defaults.
func Load(path string) (*Provider, error) {
	p, err := Default()
	if err != nil {
		return nil, err
	}
	if err := p.ApplyOverride(path); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyOverride re-reads the override file and layers it over the embedded
// defaults. The previous snapshot stays in place if the file is unreadable or
// malformed, so a bad edit never degrades lookups.
func (p *Provider) ApplyOverride(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("refdata: read override %s: %w", path, err)
	}
	doc, err := parse(raw)
	if err != nil {
		return fmt.Errorf("refdata: parse override %s: %w", path, err)
	}
	base, err := parse(defaultTables)
	if err != nil {
		return fmt.Errorf("refdata: embedded defaults: %w", err)
	}

	next := merge(merge(tables{}, base), doc)
	p.mu.Lock()
	p.t = next
	p.mu.Unlock()
	return nil
}

// Jurisdiction resolves a jurisdiction key, falling back to the
// unincorporated profile for keys the tables do not know.
func (p *Provider) Jurisdiction(key string) domain.Jurisdiction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if j, ok := p.t.jurisdictions[key]; ok {
		return j
	}
	return domain.UnincorporatedJurisdiction()
}

func (p *Provider) BuildingType(key string) (domain.BuildingType, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	bt, ok := p.t.buildingTypes[key]
	return bt, ok
}

func (p *Provider) RoomType(key string) (domain.RoomType, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rt, ok := p.t.roomTypes[key]
	return rt, ok
}

func (p *Provider) Constants() domain.StateConstants {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.t.constants
}

// Jurisdictions returns the known jurisdiction keys, for listing UIs and the
// CLI. Order is unspecified.
func (p *Provider) Jurisdictions() []domain.Jurisdiction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.Jurisdiction, 0, len(p.t.jurisdictions))
	for _, j := range p.t.jurisdictions {
		out = append(out, j)
	}
	return out
}

func parse(raw []byte) (document, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return document{}, err
	}
	for i, j := range doc.Jurisdictions {
		if j.Key == "" {
			return document{}, fmt.Errorf("jurisdiction %d: missing key", i)
		}
	}
	for i, bt := range doc.BuildingTypes {
		if bt.Key == "" {
			return document{}, fmt.Errorf("building type %d: missing key", i)
		}
	}
	for i, rt := range doc.RoomTypes {
		if rt.Key == "" {
			return document{}, fmt.Errorf("room type %d: missing key", i)
		}
	}
	return doc, nil
}

func merge(base tables, doc document) tables {
	out := tables{
		constants:     base.constants,
		jurisdictions: make(map[string]domain.Jurisdiction, len(base.jurisdictions)),
		buildingTypes: make(map[string]domain.BuildingType, len(base.buildingTypes)),
		roomTypes:     make(map[string]domain.RoomType, len(base.roomTypes)),
	}
	for k, v := range base.jurisdictions {
		out.jurisdictions[k] = v
	}
	for k, v := range base.buildingTypes {
		out.buildingTypes[k] = v
	}
	for k, v := range base.roomTypes {
		out.roomTypes[k] = v
	}
	if doc.Constants != nil {
		out.constants = *doc.Constants
	}
	for _, j := range doc.Jurisdictions {
		out.jurisdictions[j.Key] = j
	}
	for _, bt := range doc.BuildingTypes {
		out.buildingTypes[bt.Key] = bt
	}
	for _, rt := range doc.RoomTypes {
		out.roomTypes[rt.Key] = rt
	}
	return out
}
