package core

import (
	"sort"
	"time"
)

// MatchKind tags the outcome of resolving an event to its campaign(s).
type MatchKind int

const (
	NoMatch MatchKind = iota
	SingleMatch
	MultiMatch
)

// Match is the resolution of one event against the membership map. With
// overlapping vigencias an event can legitimately belong to several campaigns
// at once; Archivos then carries all of them, sorted for determinism.
type Match struct {
	Kind     MatchKind
	Archivos []string
}

// ResolverCampania decides which campaign(s) an event belongs to. This is the
// single authority on window containment; nothing else re-derives it.
//
// With an explicit claim the event is valid only against that campaign, and
// only if the account is assigned to it and the timestamp falls inside its
// window. Without a claim every campaign the account belongs to is considered
// and all whose windows contain the timestamp qualify.
func ResolverCampania(codLuna int64, claim string, fecha time.Time, membership map[int64]map[string]bool, reg Registry) Match {
	pertenece := membership[codLuna]

	if claim != "" {
		c, ok := reg[claim]
		if !ok || !pertenece[claim] || !c.Contiene(fecha) {
			return Match{Kind: NoMatch}
		}
		return Match{Kind: SingleMatch, Archivos: []string{claim}}
	}

	var validas []string
	for archivo := range pertenece {
		c, ok := reg[archivo]
		if !ok {
			continue
		}
		if c.Contiene(fecha) {
			validas = append(validas, archivo)
		}
	}

	switch len(validas) {
	case 0:
		return Match{Kind: NoMatch}
	case 1:
		return Match{Kind: SingleMatch, Archivos: validas}
	default:
		sort.Strings(validas)
		return Match{Kind: MultiMatch, Archivos: validas}
	}
}

// EsVigente reports whether the event is valid against at least one campaign.
func EsVigente(codLuna int64, claim string, fecha time.Time, membership map[int64]map[string]bool, reg Registry) bool {
	return ResolverCampania(codLuna, claim, fecha, membership, reg).Kind != NoMatch
}
