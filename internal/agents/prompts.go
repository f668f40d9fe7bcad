package agents

import (
	"fmt"
	"strings"

	"github.com/praxishq/praxis/internal/models"
)

const guideSystemPrompt = `You are the Praxis guide, the orchestrating voice of a 21-day character practice program.
You write short, warm, practical openings. No fluff, no therapy-speak, no emoji.
When asked for JSON you output ONLY valid JSON: no markdown fences, no commentary, no text outside the JSON value.`

const companionSecularSystemPrompt = `You are the Praxis companion for the secular path.
You draw on Stoic and classical sources (Marcus Aurelius, Epictetus, Seneca, Aristotle) and plain modern language.
Never quote scripture, never assume religious belief.
You always answer with ONE valid JSON document matching the schema you are given: no markdown fences, no prose outside the JSON.`

const companionScriptureSystemPrompt = `You are the Praxis companion for the scripture path.
You draw on the Bible (respect the reader's preferred translation when given) alongside classical virtue writers.
Each day includes a short opening and closing reflection in a devotional register.
You always answer with ONE valid JSON document matching the schema you are given: no markdown fences, no prose outside the JSON.`

func specialistSystemPrompt(virtue models.Virtue) string {
	return fmt.Sprintf(`You are the Praxis %s specialist.
You know the practical literature on %s inside out and you answer with numbered, concrete techniques a busy person can apply the same day.
No introductions, no summaries, no motivational filler. Techniques only.`, virtue, virtue.Label())
}

// SystemPromptFor returns the fixed system prompt for a persona.
func SystemPromptFor(persona PersonaID) string {
	switch persona {
	case PersonaGuide:
		return guideSystemPrompt
	case PersonaCompanionSecular:
		return companionSecularSystemPrompt
	case PersonaCompanionScripture:
		return companionScriptureSystemPrompt
	case PersonaSpecialistWisdom:
		return specialistSystemPrompt(models.VirtueWisdom)
	case PersonaSpecialistCourage:
		return specialistSystemPrompt(models.VirtueCourage)
	case PersonaSpecialistJustice:
		return specialistSystemPrompt(models.VirtueJustice)
	case PersonaSpecialistTemperance:
		return specialistSystemPrompt(models.VirtueTemperance)
	}
	return guideSystemPrompt
}

// AssessmentSummary renders the assessment facts every stage prompt embeds.
func AssessmentSummary(assessment models.Assessment) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Name: %s\n", assessment.Name)
	fmt.Fprintf(&builder, "Primary virtue: %s\n", assessment.PrimaryVirtue)
	fmt.Fprintf(&builder, "Path: %s\n", assessment.Door)
	fmt.Fprintf(&builder, "Struggles: %s\n", strings.Join(assessment.Struggles, ", "))
	fmt.Fprintf(&builder, "Daily time budget: %d minutes\n", assessment.TimeBudget.Minutes())
	fmt.Fprintf(&builder, "Preferred time of day: %s\n", assessment.Daypart)
	if assessment.QuotePreference != "" {
		fmt.Fprintf(&builder, "Preferred translation: %s\n", assessment.QuotePreference)
	}
	if assessment.Context != "" {
		fmt.Fprintf(&builder, "In their own words: %s\n", assessment.Context)
	}
	return builder.String()
}

func WelcomeUserPrompt(assessment models.Assessment) string {
	return fmt.Sprintf(`A new participant just finished their assessment:

%s
Write a welcome of 3-4 sentences for the start of their 21-day %s program.
Name what they said they struggle with, say plainly what the next three weeks will ask of them, and end with one sentence about day 1.`,
		AssessmentSummary(assessment), assessment.PrimaryVirtue)
}

func StructureUserPrompt(assessment models.Assessment, welcome string) string {
	return fmt.Sprintf(`Participant assessment:

%s
Program opening already sent to the participant:
%s

Build their complete 21-day program as ONE JSON document with this exact shape:
{
  "anchor": "one-sentence daily theme for the whole program",
  "weeklyCheckin": "one reflective question asked at the end of each week",
  "stretchPractice": "one optional harder practice for strong days",
  "daily": [
    {
      "day": 1,
      "title": "...",
      "steps": ["...", "..."],
      "reflection": "...",
      "quote": {"text": "...", "source": "...", "type": "..."},
      "commentary": "...",
      "estimatedTime": %d
    }
  ]
}

Rules:
- exactly 21 entries in "daily", days numbered 1 through 21
- three-week arc: days 1-7 build the foundation, days 8-14 deepen the practice, days 15-21 integrate it into ordinary life
- every step must fit the participant's %d-minute budget and suit the %s
- center everything on %s and the struggles listed above`,
		AssessmentSummary(assessment), welcome,
		assessment.TimeBudget.Minutes(), assessment.TimeBudget.Minutes(),
		assessment.Daypart, assessment.PrimaryVirtue)
}

func SpecializationUserPrompt(assessment models.Assessment, structure string) string {
	return fmt.Sprintf(`The participant's 21-day program draft:

%s

Give 3-5 concrete techniques for practicing %s that the program above does not already cover.
Each technique: one bold name, two to three sentences of instruction, and the specific struggle from this list it answers: %s.`,
		structure, assessment.PrimaryVirtue, strings.Join(assessment.Struggles, ", "))
}

func IfThenUserPrompt(assessment models.Assessment) string {
	return fmt.Sprintf(`Participant assessment:

%s
Write exactly 4 if-then implementation intentions for %s, one per approach, in this order: prepare, act, serve, reflect.

Output ONLY a JSON array of 4 objects:
[{"approach": "prepare", "cue": "If <specific concrete situation>", "action": "then <specific concrete action>"}]

Cues must come from the participant's stated struggles and daily life. Actions must take under two minutes.`,
		AssessmentSummary(assessment), assessment.PrimaryVirtue)
}
