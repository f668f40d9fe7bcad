package services

import (
	"fmt"
	"strings"

	"github.com/praxishq/praxis/internal/models"
)

// Week themes for the three-week arc.
const (
	WeekThemeFoundation  = "Foundation"
	WeekThemeDeepening   = "Deepening"
	WeekThemeIntegration = "Integration"
)

func weekOf(day int) int {
	return (day + 6) / 7
}

func weekTheme(day int) string {
	switch weekOf(day) {
	case 1:
		return WeekThemeFoundation
	case 2:
		return WeekThemeDeepening
	default:
		return WeekThemeIntegration
	}
}

// fallbackQuote returns the canned quote for a virtue/door pair, alternating
// by day parity so consecutive days never repeat.
func fallbackQuote(virtue models.Virtue, door models.Door, day int) models.Quote {
	even := day%2 == 0
	if door == models.DoorScripture {
		return scriptureQuote(virtue, even)
	}
	return secularQuote(virtue, even)
}

func secularQuote(virtue models.Virtue, even bool) models.Quote {
	switch virtue {
	case models.VirtueCourage:
		if even {
			return models.Quote{Text: "You must do the thing you think you cannot do.", Source: "Eleanor Roosevelt", Type: models.QuoteTypeWisdom}
		}
		return models.Quote{Text: "It is not because things are difficult that we do not dare; it is because we do not dare that they are difficult.", Source: "Seneca", Type: models.QuoteTypeWisdom}
	case models.VirtueJustice:
		if even {
			return models.Quote{Text: "Waste no more time arguing about what a good man should be. Be one.", Source: "Marcus Aurelius", Type: models.QuoteTypeWisdom}
		}
		return models.Quote{Text: "Injustice anywhere is a threat to justice everywhere.", Source: "Martin Luther King Jr.", Type: models.QuoteTypeWisdom}
	case models.VirtueTemperance:
		if even {
			return models.Quote{Text: "No man is free who is not master of himself.", Source: "Epictetus", Type: models.QuoteTypeWisdom}
		}
		return models.Quote{Text: "We are what we repeatedly do. Excellence, then, is not an act, but a habit.", Source: "Will Durant, after Aristotle", Type: models.QuoteTypeWisdom}
	default:
		if even {
			return models.Quote{Text: "Knowing yourself is the beginning of all wisdom.", Source: "Aristotle", Type: models.QuoteTypeWisdom}
		}
		return models.Quote{Text: "The unexamined life is not worth living.", Source: "Socrates", Type: models.QuoteTypeWisdom}
	}
}

func scriptureQuote(virtue models.Virtue, even bool) models.Quote {
	switch virtue {
	case models.VirtueCourage:
		if even {
			return models.Quote{Text: "Be strong and courageous. Do not be afraid; do not be discouraged.", Source: "Joshua 1:9", Type: models.QuoteTypeScripture}
		}
		return models.Quote{Text: "For God gave us a spirit not of fear but of power and love and self-control.", Source: "2 Timothy 1:7", Type: models.QuoteTypeScripture}
	case models.VirtueJustice:
		if even {
			return models.Quote{Text: "Act justly, love mercy, and walk humbly with your God.", Source: "Micah 6:8", Type: models.QuoteTypeScripture}
		}
		return models.Quote{Text: "Let justice roll on like a river, righteousness like a never-failing stream.", Source: "Amos 5:24", Type: models.QuoteTypeScripture}
	case models.VirtueTemperance:
		if even {
			return models.Quote{Text: "Like a city whose walls are broken through is a person who lacks self-control.", Source: "Proverbs 25:28", Type: models.QuoteTypeScripture}
		}
		return models.Quote{Text: "The fruit of the Spirit is love, joy, peace, forbearance, kindness, goodness, faithfulness, gentleness and self-control.", Source: "Galatians 5:22-23", Type: models.QuoteTypeScripture}
	default:
		if even {
			return models.Quote{Text: "If any of you lacks wisdom, you should ask God, who gives generously to all.", Source: "James 1:5", Type: models.QuoteTypeScripture}
		}
		return models.Quote{Text: "The fear of the Lord is the beginning of wisdom.", Source: "Proverbs 9:10", Type: models.QuoteTypeScripture}
	}
}

func fallbackCommentary(virtue models.Virtue, door models.Door, day int) string {
	theme := weekTheme(day)
	voice := "the Stoics"
	if door == models.DoorScripture {
		voice = "scripture"
	}
	switch virtue {
	case models.VirtueCourage:
		return fmt.Sprintf("%s week, day %d. As %s remind us, courage is not the absence of fear but action in its presence. Today's practice is one small act taken before the fear finishes its argument.", theme, day, voice)
	case models.VirtueJustice:
		return fmt.Sprintf("%s week, day %d. %s treats justice as a daily discipline of giving each person their due. Today's practice turns one relationship toward fairness.", theme, day, capitalizeFirst(voice))
	case models.VirtueTemperance:
		return fmt.Sprintf("%s week, day %d. Self-mastery grows by single refusals, not grand resolutions. Today's practice is one deliberate pause between impulse and act, as %s teach.", theme, day, voice)
	default:
		return fmt.Sprintf("%s week, day %d. Wisdom begins with noticing. Today's practice asks for one honest observation before any conclusion, in the manner %s commend.", theme, day, voice)
	}
}

func fallbackReflection(virtue models.Virtue, day int) string {
	switch virtue {
	case models.VirtueCourage:
		return fmt.Sprintf("Where did fear make the decision for you today, and what would day %d's braver choice have looked like?", day)
	case models.VirtueJustice:
		return "Who received less from you today than they were owed, and what is one step toward making it right?"
	case models.VirtueTemperance:
		return "Which impulse did you obey without noticing today, and what was it promising you?"
	default:
		return "What did you treat as certain today that deserved a second look?"
	}
}

func fallbackTitle(virtue models.Virtue, day int) string {
	return fmt.Sprintf("Day %d: Practicing %s", day, virtue.Label())
}

// fallbackSteps is the fixed 3-4 item template parameterized by day and virtue.
func fallbackSteps(virtue models.Virtue, day int) []string {
	steps := []string{
		fmt.Sprintf("Read today's quote slowly, twice, and note one phrase that lands for day %d.", day),
		fmt.Sprintf("Name one moment coming today where %s will be tested.", virtue),
		fmt.Sprintf("Do one small, concrete act of %s in that moment.", virtue),
	}
	if weekOf(day) >= 2 {
		steps = append(steps, "This evening, write two sentences on what happened when you tried.")
	}
	return steps
}

func fallbackOpeningReflection(virtue models.Virtue, day int) string {
	return fmt.Sprintf("Begin day %d in quiet: ask for the grace to practice %s before the day makes its demands.", day, virtue)
}

func fallbackClosingReflection(day int) string {
	return fmt.Sprintf("Close day %d with gratitude for one moment the practice held, and honesty about one it did not.", day)
}

func fallbackCommunityPrompt(virtue models.Virtue) string {
	return fmt.Sprintf("Share with your group one place this week where %s cost you something.", virtue)
}

func fallbackAnchor(virtue models.Virtue, door models.Door) string {
	if door == models.DoorScripture {
		return fmt.Sprintf("Each day, one small act of %s, offered faithfully.", virtue)
	}
	return fmt.Sprintf("Each day, one small deliberate act of %s.", virtue)
}

func fallbackWeeklyCheckin(virtue models.Virtue) string {
	return fmt.Sprintf("Looking back over this week, where did %s come most easily, and where did it cost the most?", virtue)
}

func fallbackStretchPractice(virtue models.Virtue) string {
	return fmt.Sprintf("On a strong day, double the practice: find a second, harder moment to act with %s and take it.", virtue)
}

// fallbackIfThenPlans is the deterministic if-then set used when the guide
// persona is unavailable or returns an unusable document.
func fallbackIfThenPlans(virtue models.Virtue) []models.IfThenPlan {
	cues := map[models.Approach]string{
		models.ApproachPrepare: "If I sit down to plan my morning",
		models.ApproachAct:     fmt.Sprintf("If I notice a moment that calls for %s", virtue),
		models.ApproachServe:   "If someone near me needs help I could give",
		models.ApproachReflect: "If I am getting ready for bed",
	}
	actions := map[models.Approach]string{
		models.ApproachPrepare: fmt.Sprintf("then I name the one situation today where %s will be hardest.", virtue),
		models.ApproachAct:     "then I act within ten seconds, before the excuse forms.",
		models.ApproachServe:   "then I offer the help before being asked.",
		models.ApproachReflect: "then I write one sentence about how today's practice went.",
	}

	plans := make([]models.IfThenPlan, 0, models.IfThenPlanCount)
	for _, approach := range models.ApproachOrder {
		plans = append(plans, models.IfThenPlan{
			Virtue:   virtue,
			Approach: approach,
			Cue:      cues[approach],
			Action:   actions[approach],
		})
	}
	return plans
}

func capitalizeFirst(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
