// Package venue cross-checks the physical layout and shepherding data
// against the team roster and staging times, catching configuration drift
// between the scheduling data and the venue floor plan.
package venue

import (
	"fmt"
	"sort"
)

// Location is a named physical area within the venue, the teams staged
// there, and (once cross-referenced against the shepherding data) the
// shepherding region that covers it.
type Location struct {
	Name     string
	Teams    []string
	Region   string
	Colour   string
}

// ShepherdingArea is a named shepherding region covering a set of
// locations.
type ShepherdingArea struct {
	Name    string
	Colour  string
	Regions []string
}

// InvalidRegionError reports a shepherding area naming a region that isn't
// a location in the layout.
type InvalidRegionError struct {
	Region string
	Area   string
}

func (e InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid region %q found in shepherding area %q", e.Region, e.Area)
}

// MismatchError reports duplicate, extra or missing items found while
// cross-checking two sets that are expected to coincide.
type MismatchError struct {
	What       string
	Duplicates []string
	Extras     []string
	Missing    []string
}

func (e MismatchError) Error() string {
	var parts []string
	if len(e.Duplicates) > 0 {
		parts = append(parts, "duplicates: "+joinSorted(e.Duplicates))
	}
	if len(e.Extras) > 0 {
		parts = append(parts, "extras: "+joinSorted(e.Extras))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+joinSorted(e.Missing))
	}
	return fmt.Sprintf("%s (%s)", e.What, joinSemicolons(parts))
}

func joinSorted(items []string) string {
	sorted := append([]string{}, items...)
	sort.Strings(sorted)
	out := ""
	for i, s := range sorted {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func joinSemicolons(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "; "
		}
		out += p
	}
	return out
}

// StagingTimes is the subset of the staging-times config venue cross-checks
// against the shepherding data.
type StagingTimes struct {
	SignalShepherds map[string]interface{}
}

// Venue holds the resolved layout and shepherding data for a competition.
type Venue struct {
	locations       map[string]*Location
	teamLocations   map[string]*Location
	shepherdingAreas []string
}

// New cross-checks the given layout against the team roster and builds a
// Venue, or returns a MismatchError (for the layout's teams or the
// shepherding areas) or an InvalidRegionError if the data is inconsistent.
func New(teams []string, layoutTeams []Location, shepherding []ShepherdingArea) (*Venue, error) {
	if err := checkTeams(teams, layoutTeams); err != nil {
		return nil, err
	}

	v := &Venue{
		locations:     map[string]*Location{},
		teamLocations: map[string]*Location{},
	}
	for i := range layoutTeams {
		loc := layoutTeams[i]
		v.locations[loc.Name] = &loc
		for _, team := range loc.Teams {
			v.teamLocations[team] = &loc
		}
	}

	areaNames := make([]string, len(shepherding))
	for i, a := range shepherding {
		areaNames[i] = a.Name
	}
	v.shepherdingAreas = areaNames
	if dup := duplicates(areaNames); len(dup) > 0 {
		return nil, MismatchError{What: "duplicate, extra or missing shepherding areas in the shepherding data", Duplicates: dup}
	}

	for _, area := range shepherding {
		for _, region := range area.Regions {
			loc, ok := v.locations[region]
			if !ok {
				return nil, InvalidRegionError{Region: region, Area: area.Name}
			}
			loc.Region = area.Name
			loc.Colour = area.Colour
		}
	}

	return v, nil
}

func checkTeams(teams []string, layoutTeams []Location) error {
	var allTeams []string
	for _, loc := range layoutTeams {
		allTeams = append(allTeams, loc.Teams...)
	}
	dup := duplicates(allTeams)

	teamSet := map[string]struct{}{}
	for _, t := range teams {
		teamSet[t] = struct{}{}
	}
	layoutSet := map[string]struct{}{}
	for _, t := range allTeams {
		layoutSet[t] = struct{}{}
	}

	var extra, missing []string
	for t := range layoutSet {
		if _, ok := teamSet[t]; !ok {
			extra = append(extra, t)
		}
	}
	for t := range teamSet {
		if _, ok := layoutSet[t]; !ok {
			missing = append(missing, t)
		}
	}

	if len(dup) > 0 || len(extra) > 0 || len(missing) > 0 {
		return MismatchError{What: "duplicate, extra or missing teams in the layout", Duplicates: dup, Extras: extra, Missing: missing}
	}
	return nil
}

// CheckStagingTimes verifies the staging times name exactly the set of
// shepherding areas the venue knows about.
func (v *Venue) CheckStagingTimes(staging StagingTimes) error {
	areaSet := map[string]struct{}{}
	for _, a := range v.shepherdingAreas {
		areaSet[a] = struct{}{}
	}
	stagingSet := map[string]struct{}{}
	for a := range staging.SignalShepherds {
		stagingSet[a] = struct{}{}
	}

	var extra, missing []string
	for a := range stagingSet {
		if _, ok := areaSet[a]; !ok {
			extra = append(extra, a)
		}
	}
	for a := range areaSet {
		if _, ok := stagingSet[a]; !ok {
			missing = append(missing, a)
		}
	}
	if len(extra) > 0 || len(missing) > 0 {
		return MismatchError{What: "duplicate, extra or missing shepherding areas in the staging times", Extras: extra, Missing: missing}
	}
	return nil
}

// GetTeamLocation returns the location name allocated to a team.
func (v *Venue) GetTeamLocation(team string) (string, bool) {
	loc, ok := v.teamLocations[team]
	if !ok {
		return "", false
	}
	return loc.Name, true
}

func duplicates(items []string) []string {
	counts := map[string]int{}
	for _, item := range items {
		counts[item]++
	}
	var dup []string
	for item, n := range counts {
		if n > 1 {
			dup = append(dup, item)
		}
	}
	sort.Strings(dup)
	return dup
}
