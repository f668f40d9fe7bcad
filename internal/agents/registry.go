package agents

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/praxishq/praxis/internal/models"
)

var ErrAgentNotConfigured = errors.New("agent not configured")

type PersonaID string

const (
	// PersonaGuide runs the welcome stage and the terse high-volume calls.
	// It points at a fast model: large token allowance, short timeout.
	PersonaGuide PersonaID = "guide"

	PersonaCompanionSecular   PersonaID = "companion-secular"
	PersonaCompanionScripture PersonaID = "companion-scripture"

	PersonaSpecialistWisdom     PersonaID = "specialist-wisdom"
	PersonaSpecialistCourage    PersonaID = "specialist-courage"
	PersonaSpecialistJustice    PersonaID = "specialist-justice"
	PersonaSpecialistTemperance PersonaID = "specialist-temperance"
)

// AllPersonas lists every persona the registry must be able to configure.
var AllPersonas = []PersonaID{
	PersonaGuide,
	PersonaCompanionSecular,
	PersonaCompanionScripture,
	PersonaSpecialistWisdom,
	PersonaSpecialistCourage,
	PersonaSpecialistJustice,
	PersonaSpecialistTemperance,
}

// CompanionForDoor selects the path persona that frames all program content.
func CompanionForDoor(door models.Door) PersonaID {
	if door == models.DoorScripture {
		return PersonaCompanionScripture
	}
	return PersonaCompanionSecular
}

// SpecialistForVirtue selects the trait persona for the assessed virtue.
func SpecialistForVirtue(virtue models.Virtue) PersonaID {
	switch virtue {
	case models.VirtueCourage:
		return PersonaSpecialistCourage
	case models.VirtueJustice:
		return PersonaSpecialistJustice
	case models.VirtueTemperance:
		return PersonaSpecialistTemperance
	default:
		return PersonaSpecialistWisdom
	}
}

// PersonaConfig is one completion target: where to call, how to authenticate,
// and how much output/latency to budget for. Budgets are deliberately uneven
// across personas; callers must not assume uniform limits.
type PersonaConfig struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Model      string
	MaxTokens  int
	TimeoutMs  int
}

type personaBudget struct {
	maxTokens int
	timeoutMs int
}

func defaultBudget(persona PersonaID) personaBudget {
	switch persona {
	case PersonaGuide:
		return personaBudget{maxTokens: 8192, timeoutMs: 15_000}
	case PersonaCompanionSecular, PersonaCompanionScripture:
		return personaBudget{maxTokens: 4096, timeoutMs: 120_000}
	default:
		return personaBudget{maxTokens: 1536, timeoutMs: 45_000}
	}
}

type Registry struct {
	configs map[PersonaID]PersonaConfig
}

func NewRegistry(configs map[PersonaID]PersonaConfig) *Registry {
	copied := make(map[PersonaID]PersonaConfig, len(configs))
	for persona, config := range configs {
		copied[persona] = config
	}
	return &Registry{configs: copied}
}

// ConfigFor returns the completion target for a persona, failing when any
// required field is missing so a half-configured deployment is caught at the
// first call rather than as a confusing upstream 401.
func (registry *Registry) ConfigFor(persona PersonaID) (PersonaConfig, error) {
	config, ok := registry.configs[persona]
	if !ok {
		return PersonaConfig{}, fmt.Errorf("%w: unknown persona %s", ErrAgentNotConfigured, persona)
	}
	if strings.TrimSpace(config.Endpoint) == "" {
		return PersonaConfig{}, fmt.Errorf("%w: %s missing endpoint", ErrAgentNotConfigured, persona)
	}
	if strings.TrimSpace(config.APIKey) == "" {
		return PersonaConfig{}, fmt.Errorf("%w: %s missing credential", ErrAgentNotConfigured, persona)
	}
	if strings.TrimSpace(config.Model) == "" {
		return PersonaConfig{}, fmt.Errorf("%w: %s missing model", ErrAgentNotConfigured, persona)
	}
	return config, nil
}

// LoadFromEnv builds a registry from PRAXIS_LLM_* base settings with
// per-persona overrides, e.g. PRAXIS_GUIDE_MODEL or
// PRAXIS_SPECIALIST_COURAGE_TIMEOUT_MS. getenv is injected so tests never
// touch the process environment.
func LoadFromEnv(getenv func(string) string) *Registry {
	configs := make(map[PersonaID]PersonaConfig, len(AllPersonas))
	for _, persona := range AllPersonas {
		budget := defaultBudget(persona)
		prefix := envPrefix(persona)
		configs[persona] = PersonaConfig{
			Endpoint:   envOverride(getenv, prefix, "ENDPOINT"),
			APIKey:     envOverride(getenv, prefix, "API_KEY"),
			APIVersion: envOverride(getenv, prefix, "API_VERSION"),
			Model:      envOverride(getenv, prefix, "MODEL"),
			MaxTokens:  envOverrideInt(getenv, prefix, "MAX_TOKENS", budget.maxTokens),
			TimeoutMs:  envOverrideInt(getenv, prefix, "TIMEOUT_MS", budget.timeoutMs),
		}
	}
	return NewRegistry(configs)
}

func envPrefix(persona PersonaID) string {
	name := strings.ToUpper(strings.ReplaceAll(string(persona), "-", "_"))
	return "PRAXIS_" + name + "_"
}

func envOverride(getenv func(string) string, prefix string, key string) string {
	if value := strings.TrimSpace(getenv(prefix + key)); value != "" {
		return value
	}
	return strings.TrimSpace(getenv("PRAXIS_LLM_" + key))
}

func envOverrideInt(getenv func(string) string, prefix string, key string, fallback int) int {
	raw := strings.TrimSpace(getenv(prefix + key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
