// Normalization rules for fighter records, fight results, ages, and fight
// ordering. These are applied once, when remote payloads are turned into
// domain entities, so downstream consumers can trust the invariants.
package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatRecord renders the canonical record string: "{wins}-{losses}" with
// "-{draws}" appended only when draws > 0.
func FormatRecord(wins, losses, draws int) string {
	if draws > 0 {
		return fmt.Sprintf("%d-%d-%d", wins, losses, draws)
	}
	return fmt.Sprintf("%d-%d", wins, losses)
}

// ReconcileRecord enforces the record invariant on f: when numeric
// wins/losses are present, the Record string is recomputed from them.
// It reports whether a previously set string disagreed and was replaced,
// so the caller can log a warning. The numeric fields are authoritative.
func ReconcileRecord(f *Fighter) (corrected bool) {
	if f.Wins == nil || f.Losses == nil {
		return false
	}
	draws := 0
	if f.Draws != nil {
		draws = *f.Draws
	}
	want := FormatRecord(*f.Wins, *f.Losses, draws)
	if f.Record == want {
		return false
	}
	corrected = f.Record != ""
	f.Record = want
	return corrected
}

// DeriveAge fills f.Age from the birthdate when the age is absent.
// Unparseable birthdates leave the age at zero.
func DeriveAge(f *Fighter, now time.Time) {
	if f.Age > 0 || f.Birthdate == "" {
		return
	}
	born, ok := parseDate(f.Birthdate)
	if !ok {
		return
	}
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	if age > 0 {
		f.Age = age
	}
}

// NormalizeResult maps a raw outcome string to one of the four canonical
// results. Matching is case-insensitive and accepts common abbreviations.
// Anything unrecognized maps to ResultUnknown, which renders neutrally.
func NormalizeResult(raw string) Result {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "win", "w", "won":
		return ResultWin
	case "loss", "l", "lost", "lose":
		return ResultLoss
	case "draw", "d", "drew":
		return ResultDraw
	case "nc", "no contest", "no-contest", "no_contest":
		return ResultNoContest
	default:
		return ResultUnknown
	}
}

// dateLayouts are tried in order when parsing fight dates and birthdates.
// Upstream sources mix ISO dates, timestamps, and prose dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortFightsByDateDesc orders fights newest-first with a stable sort.
// Fights whose dates are missing or unparseable sort after all dated fights,
// preserving their relative input order.
func SortFightsByDateDesc(fights []Fight) {
	sort.SliceStable(fights, func(i, j int) bool {
		ti, iok := parseDate(fights[i].Date)
		tj, jok := parseDate(fights[j].Date)
		switch {
		case iok && jok:
			return ti.After(tj)
		case iok:
			return true
		default:
			return false
		}
	})
}
