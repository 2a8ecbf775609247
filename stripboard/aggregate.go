package stripboard

import (
	"fmt"
	"math"

	"s7scheduling/models"
)

// Duration is a minute total split for display.
type Duration struct {
	TotalMinutes int `json:"total_minutes"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
}

func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// SplitDuration turns a minute total into hours and leftover minutes.
func SplitDuration(total int) Duration {
	return Duration{
		TotalMinutes: total,
		Hours:        total / 60,
		Minutes:      total % 60,
	}
}

// TotalMinutes sums the estimates of all scenes. Scenes without an estimate
// count as zero.
func TotalMinutes(scenes []models.Scene) int {
	total := 0
	for _, scene := range scenes {
		total += scene.Minutes()
	}
	return total
}

// CompletionPercent is round(100 * completed / total), or 0 with no scenes.
func CompletionPercent(scenes []models.Scene) int {
	if len(scenes) == 0 {
		return 0
	}
	completed := 0
	for _, scene := range scenes {
		if scene.Status == models.StatusCompleted {
			completed++
		}
	}
	return int(math.Floor(100*float64(completed)/float64(len(scenes)) + 0.5))
}

// StatusCounts holds one counter per SceneStatus.
type StatusCounts struct {
	Unscheduled int `json:"unscheduled"`
	Scheduled   int `json:"scheduled"`
	InProgress  int `json:"in_progress"`
	Completed   int `json:"completed"`
}

// Total is the sum of all four counters.
func (c StatusCounts) Total() int {
	return c.Unscheduled + c.Scheduled + c.InProgress + c.Completed
}

// Of returns the counter for one status.
func (c StatusCounts) Of(status models.SceneStatus) int {
	switch status {
	case models.StatusUnscheduled:
		return c.Unscheduled
	case models.StatusScheduled:
		return c.Scheduled
	case models.StatusInProgress:
		return c.InProgress
	case models.StatusCompleted:
		return c.Completed
	}
	return 0
}

// CountStatuses tallies scenes by status. A scene with an unrecognised status
// is counted as unscheduled so the counters always sum to len(scenes).
func CountStatuses(scenes []models.Scene) StatusCounts {
	var counts StatusCounts
	for _, scene := range scenes {
		switch scene.Status {
		case models.StatusScheduled:
			counts.Scheduled++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusCompleted:
			counts.Completed++
		default:
			counts.Unscheduled++
		}
	}
	return counts
}

// ProjectStats is the summary shown on a project card.
type ProjectStats struct {
	TotalScenes     int          `json:"total_scenes"`
	CompletedScenes int          `json:"completed_scenes"`
	Duration        Duration     `json:"duration"`
	Progress        int          `json:"progress"`
	Statuses        StatusCounts `json:"statuses"`
}

func StatsFor(scenes []models.Scene) ProjectStats {
	counts := CountStatuses(scenes)
	return ProjectStats{
		TotalScenes:     len(scenes),
		CompletedScenes: counts.Of(models.StatusCompleted),
		Duration:        SplitDuration(TotalMinutes(scenes)),
		Progress:        CompletionPercent(scenes),
		Statuses:        counts,
	}
}

// DashboardTotals summarises every project at once.
type DashboardTotals struct {
	TotalProjects   int      `json:"total_projects"`
	TotalScenes     int      `json:"total_scenes"`
	ScheduledScenes int      `json:"scheduled_scenes"`
	Duration        Duration `json:"duration"`
}

func Totals(projects []models.Project) DashboardTotals {
	totals := DashboardTotals{TotalProjects: len(projects)}
	minutes := 0
	for _, project := range projects {
		totals.TotalScenes += len(project.Scenes)
		totals.ScheduledScenes += CountStatuses(project.Scenes).Of(models.StatusScheduled)
		minutes += TotalMinutes(project.Scenes)
	}
	totals.Duration = SplitDuration(minutes)
	return totals
}
