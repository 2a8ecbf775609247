// Package stripboard shapes scenes into the day-by-day production board and
// computes the totals shown alongside it.
package stripboard

import (
	"sort"
	"strconv"
	"strings"

	"s7scheduling/models"
)

// UnscheduledDay is the group key for scenes without a shoot day.
const UnscheduledDay = 0

// DayGroup is one column of the board.
type DayGroup struct {
	Day    int            `json:"day"`
	Scenes []models.Scene `json:"scenes"`
}

// Unscheduled reports whether the group holds scenes with no shoot day.
func (g DayGroup) Unscheduled() bool {
	return g.Day == UnscheduledDay
}

// Title is "Unscheduled" or "Day N".
func (g DayGroup) Title() string {
	if g.Unscheduled() {
		return "Unscheduled"
	}
	return "Day " + strconv.Itoa(g.Day)
}

// GroupByShootDay partitions scenes by shoot day. The unscheduled group comes
// first, the rest follow in ascending day order. Inside a group scenes are
// ordered by SceneNumberLess with input order kept on ties.
func GroupByShootDay(scenes []models.Scene) []DayGroup {
	byDay := make(map[int][]models.Scene)
	for _, scene := range scenes {
		day := scene.Day()
		if day < 0 {
			day = UnscheduledDay
		}
		byDay[day] = append(byDay[day], scene)
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	// 0 is the smallest possible key, so a plain ascending sort already puts
	// the unscheduled group first.
	sort.Ints(days)

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		dayScenes := byDay[day]
		sort.SliceStable(dayScenes, func(i, j int) bool {
			return SceneNumberLess(dayScenes[i].SceneNumber, dayScenes[j].SceneNumber)
		})
		groups = append(groups, DayGroup{Day: day, Scenes: dayScenes})
	}

	return groups
}

// SceneNumberLess orders scene numbers by their leading digits: "2" < "10",
// and "1A" ties with "1B". Numbers without leading digits ("A1", "") sort
// after every numbered scene and tie with each other.
func SceneNumberLess(a, b string) bool {
	na, okA := numericPrefix(a)
	nb, okB := numericPrefix(b)

	switch {
	case okA && okB:
		return na < nb
	case okA:
		return true
	default:
		return false
	}
}

func numericPrefix(sceneNumber string) (int, bool) {
	s := strings.TrimSpace(sceneNumber)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow gets here.
		return int(^uint(0) >> 1), true
	}
	return n, true
}
