package navigation

import (
	"sort"
	"strings"
)

// UserKey identifies a User node. A principal whose role set changes becomes a
// different User, so roles are part of the key.
type UserKey struct {
	UID   string
	Roles []string
}

// NewUserKey trims, de-duplicates and sorts roles so equal role sets merge onto
// the same node regardless of input order.
func NewUserKey(uid string, roles []string) UserKey {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return UserKey{UID: strings.TrimSpace(uid), Roles: out}
}

func (k UserKey) String() string {
	return k.UID + "|" + strings.Join(k.Roles, ",")
}

// TypeKey is the "type::bundle" key used by placement source/target sets.
func TypeKey(entityType, bundle string) string {
	return entityType + "::" + bundle
}

// Entity is a reference to a content item of the embedding application.
type Entity struct {
	EntityType string `json:"entity_type"`
	Bundle     string `json:"bundle"`
	EntityID   string `json:"entity_id"`
}

func (e Entity) TypeKey() string { return TypeKey(e.EntityType, e.Bundle) }

func (e Entity) Ref() EntityRef { return EntityRef{EntityType: e.EntityType, EntityID: e.EntityID} }

func (e Entity) Valid() bool {
	return strings.TrimSpace(e.EntityType) != "" && strings.TrimSpace(e.EntityID) != ""
}

// EntityRef is the (type, id) pair produced by graph traversal, before hydration.
type EntityRef struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

func (r EntityRef) String() string { return r.EntityType + ":" + r.EntityID }

// RankedRef is a recommendation candidate with its mean hop distance from the anchor.
type RankedRef struct {
	EntityRef
	Distance float64 `json:"distance"`
}

// VisitRequest describes one tracked HTTP request as seen by the host application.
type VisitRequest struct {
	Method      string
	RequestURI  string
	ClientIP    string
	Referer     string // application-relative path, "" when absent
	UserID      string
	Roles       []string
	RequestTime int64 // epoch seconds

	CurrentEntity *Entity
}

func (r VisitRequest) User() UserKey { return NewUserKey(r.UserID, r.Roles) }

// RecommendRequest is the input of a recommendation traversal.
type RecommendRequest struct {
	Anchor  EntityRef
	Targets []string // allowed "type::bundle" keys
	Limit   int
	MaxHops int
}

const (
	DefaultLimit   = 10
	DefaultMaxHops = 10
)

// Normalized applies defaults and returns the target set sorted and de-duplicated.
func (r RecommendRequest) Normalized() RecommendRequest {
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.MaxHops <= 0 {
		r.MaxHops = DefaultMaxHops
	}
	seen := make(map[string]struct{}, len(r.Targets))
	targets := make([]string, 0, len(r.Targets))
	for _, t := range r.Targets {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		targets = append(targets, t)
	}
	sort.Strings(targets)
	r.Targets = targets
	return r
}

// Recommendation is a hydrated recommendation item in rank order.
type Recommendation struct {
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	Bundle     string  `json:"bundle"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Distance   float64 `json:"distance"`
}
