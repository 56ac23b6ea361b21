// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match pairs a manifest with its schedule entry. The lookup is
// by normalized name with progressively looser predicates; a manifest
// matches zero or one driver and an unmatched manifest is not an error.
package match

import (
	"strings"

	"github.com/pdiddy/manifest-engine/internal/namenorm"
	"github.com/pdiddy/manifest-engine/internal/schedule"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

// ituOrigin is the one origin whose manifests must match the current
// day's sheet before any other: the ITU depot reissues its schedule
// daily and the first visible sheet is the latest revision.
const ituOrigin = "ITU"

// Driver finds the schedule entry for a manifest. The manifest's key is
// digit-stripped and normalized, then tried against the roster: for ITU
// manifests the sheet-1 pool first, then every sheet, then the alias
// index. Returns nil when nothing matches.
func Driver(m types.Manifest, roster *schedule.Roster) *types.Driver {
	key := namenorm.MatchKey(m.Key)
	if key == "" {
		return nil
	}

	if m.Origin == ituOrigin {
		if d := searchPool(key, roster, func(sheet int) bool { return sheet == 1 }); d != nil {
			return d
		}
	}
	if d := searchPool(key, roster, func(int) bool { return true }); d != nil {
		return d
	}
	return searchAliases(key, roster)
}

// searchPool scans the roster in sheet order, restricted by the sheet
// predicate, and returns the first driver whose name accepts the key.
func searchPool(key string, roster *schedule.Roster, include func(sheet int) bool) *types.Driver {
	for i := range roster.Drivers {
		d := &roster.Drivers[i]
		if !include(d.SheetIndex) {
			continue
		}
		if nameAccepts(key, namenorm.Normalize(d.Name)) {
			return d
		}
	}
	return nil
}

// searchAliases tries the alias index with the same predicates applied
// to the alias spelling instead of the primary name.
func searchAliases(key string, roster *schedule.Roster) *types.Driver {
	for alias, idx := range roster.Aliases {
		if nameAccepts(key, alias) {
			return &roster.Drivers[idx]
		}
	}
	return nil
}

// nameAccepts reports whether the manifest key identifies the candidate
// name: equal, one of its tokens, a prefix of it, or a substring of it.
func nameAccepts(key, name string) bool {
	if name == "" {
		return false
	}
	if key == name || strings.HasPrefix(name, key) || strings.Contains(name, key) {
		return true
	}
	for _, token := range strings.Fields(name) {
		if key == token {
			return true
		}
	}
	return false
}
