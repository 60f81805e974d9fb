// Package catalog holds the fixed table of status keywords.
package catalog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/errors"
	"github.com/julianstephens/st/internal/models"
)

var statuses = []models.StatusDefinition{
	{Keyword: "lunch", DisplayText: "Lunchin'", Emoji: ":fork_and_knife:", ChatDND: true},
	{Keyword: "zoom", DisplayText: "In a meeting (Zoom)", Emoji: ":video_camera:"},
	{Keyword: "tuple", DisplayText: "Pairing (Tuple)", Emoji: ":couple:"},
	{Keyword: "meet", DisplayText: "In a meeting", Emoji: ":calendar:"},
	{Keyword: "eod", DisplayText: "Done for the day", Emoji: ":wave:", ChatDND: true},
	{Keyword: "vacation", DisplayText: "Vacation", Emoji: ":desert_island:", ChatDND: true, HostBusy: true, Absence: true},
	{Keyword: "sick", DisplayText: "Out sick", Emoji: ":face_with_thermometer:", ChatDND: true, Absence: true},
	{Keyword: "away", DisplayText: "Out of office", Emoji: ":no_entry:", ChatDND: true, HostBusy: true, Absence: true},
	{Keyword: constants.KeywordBack, DisplayText: "Catching up", Emoji: ":inbox_tray:"},
}

func init() {
	seen := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		if seen[s.Keyword] {
			panic("duplicate status keyword: " + s.Keyword)
		}
		seen[s.Keyword] = true
	}
}

// All returns the catalog in display order.
func All() []models.StatusDefinition {
	out := make([]models.StatusDefinition, len(statuses))
	copy(out, statuses)
	return out
}

// Lookup finds a status by exact keyword.
func Lookup(keyword string) (models.StatusDefinition, bool) {
	for _, s := range statuses {
		if s.Keyword == keyword {
			return s, true
		}
	}
	return models.StatusDefinition{}, false
}

// Keywords lists every accepted keyword, including clear.
func Keywords() []string {
	out := make([]string, 0, len(statuses)+1)
	for _, s := range statuses {
		out = append(out, s.Keyword)
	}
	return append(out, constants.KeywordClear)
}

// Resolve maps a keyword to its transition and definition.
// Keywords are matched case-insensitively.
func Resolve(keyword string) (models.Transition, models.StatusDefinition, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == constants.KeywordClear {
		return models.TransitionClear, models.StatusDefinition{Keyword: constants.KeywordClear}, nil
	}
	def, ok := Lookup(kw)
	if !ok {
		return 0, models.StatusDefinition{}, fmt.Errorf("%w: %s\nAvailable: %s",
			errors.ErrUnknownKeyword, kw, strings.Join(Keywords(), ", "))
	}
	if kw == constants.KeywordBack {
		return models.TransitionReturn, def, nil
	}
	return models.TransitionAnnounce, def, nil
}
