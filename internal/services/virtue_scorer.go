package services

import (
	"sort"

	"github.com/praxishq/praxis/internal/models"
)

// struggleVirtues maps every questionnaire struggle to the virtue it signals.
var struggleVirtues = map[string]models.Virtue{
	"distraction":          models.VirtueWisdom,
	"indecision":           models.VirtueWisdom,
	"overthinking":         models.VirtueWisdom,
	"information-overload": models.VirtueWisdom,
	"lack-of-direction":    models.VirtueWisdom,

	"fear-failure":      models.VirtueCourage,
	"avoiding-conflict": models.VirtueCourage,
	"procrastination":   models.VirtueCourage,
	"speaking-up":       models.VirtueCourage,
	"risk-aversion":     models.VirtueCourage,

	"resentment":           models.VirtueJustice,
	"gossip":               models.VirtueJustice,
	"selfishness":          models.VirtueJustice,
	"broken-relationships": models.VirtueJustice,
	"dishonesty":           models.VirtueJustice,

	"overindulgence":   models.VirtueTemperance,
	"anger":            models.VirtueTemperance,
	"impulse-spending": models.VirtueTemperance,
	"doomscrolling":    models.VirtueTemperance,
	"perfectionism":    models.VirtueTemperance,
}

// ScoreStruggles picks the dominant virtue for a struggle selection. Unmapped
// ids are ignored. Ties resolve to whichever virtue comes first in
// models.VirtueOrder, so an empty selection scores wisdom. The ordering is a
// reproducibility contract; do not reorder.
func ScoreStruggles(struggles []string) models.Virtue {
	counts := make(map[models.Virtue]int, len(models.VirtueOrder))
	for _, struggle := range struggles {
		if virtue, ok := struggleVirtues[struggle]; ok {
			counts[virtue]++
		}
	}

	best := models.VirtueWisdom
	bestCount := counts[models.VirtueWisdom]
	for _, virtue := range models.VirtueOrder[1:] {
		if counts[virtue] > bestCount {
			best = virtue
			bestCount = counts[virtue]
		}
	}
	return best
}

// StruggleCatalog returns the known struggle ids grouped by virtue, in
// canonical virtue order. It backs the questionnaire options endpoint.
func StruggleCatalog() map[models.Virtue][]string {
	catalog := make(map[models.Virtue][]string, len(models.VirtueOrder))
	for struggle, virtue := range struggleVirtues {
		catalog[virtue] = append(catalog[virtue], struggle)
	}
	for _, struggles := range catalog {
		sort.Strings(struggles)
	}
	return catalog
}
