package services

import (
	"context"
	"fmt"
	"time"

	"github.com/praxishq/praxis/internal/agents"
	"github.com/praxishq/praxis/internal/llm"
	"github.com/praxishq/praxis/internal/models"
	"go.uber.org/zap"
)

// Pipeline stages, in execution order.
const (
	StageWelcome        = "welcome"
	StageStructure      = "structure"
	StageSpecialization = "specialization"
)

// StageError tags an orchestration failure with the stage and persona that
// produced it, for diagnosis and for the HTTP error payload.
type StageError struct {
	Stage   string
	Persona agents.PersonaID
	Err     error
}

func (stageError *StageError) Error() string {
	return fmt.Sprintf("stage %s (persona %s): %v", stageError.Stage, stageError.Persona, stageError.Err)
}

func (stageError *StageError) Unwrap() error {
	return stageError.Err
}

// RawBundle is the unparsed output of a full orchestration run.
type RawBundle struct {
	Welcome           string
	Structure         string
	Specialization    string
	PrimaryPersona    agents.PersonaID
	SpecialistPersona agents.PersonaID
}

type PlanOrchestrator struct {
	registry *agents.Registry
	client   llm.CompletionClient
	log      *zap.Logger
}

func NewPlanOrchestrator(registry *agents.Registry, client llm.CompletionClient, log *zap.Logger) *PlanOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlanOrchestrator{
		registry: registry,
		client:   client,
		log:      log.With(zap.String("component", "plan_orchestrator")),
	}
}

// Generate runs the fixed pipeline: welcome, persona selection, structure,
// specialization. Stages are strictly sequential because each later prompt
// embeds the previous stage's raw text as context. A single stage failure
// aborts the run; retry and fallback policy belong to the caller.
func (orchestrator *PlanOrchestrator) Generate(ctx context.Context, assessment models.Assessment) (RawBundle, error) {
	bundle := RawBundle{
		PrimaryPersona:    agents.CompanionForDoor(assessment.Door),
		SpecialistPersona: agents.SpecialistForVirtue(assessment.PrimaryVirtue),
	}

	welcome, err := orchestrator.runStage(ctx, StageWelcome, agents.PersonaGuide, agents.WelcomeUserPrompt(assessment))
	if err != nil {
		return RawBundle{}, err
	}
	bundle.Welcome = welcome

	structure, err := orchestrator.runStage(ctx, StageStructure, bundle.PrimaryPersona, agents.StructureUserPrompt(assessment, welcome))
	if err != nil {
		return RawBundle{}, err
	}
	bundle.Structure = structure

	specialization, err := orchestrator.runStage(ctx, StageSpecialization, bundle.SpecialistPersona, agents.SpecializationUserPrompt(assessment, structure))
	if err != nil {
		return RawBundle{}, err
	}
	bundle.Specialization = specialization

	return bundle, nil
}

func (orchestrator *PlanOrchestrator) runStage(ctx context.Context, stage string, persona agents.PersonaID, userPrompt string) (string, error) {
	config, err := orchestrator.registry.ConfigFor(persona)
	if err != nil {
		return "", &StageError{Stage: stage, Persona: persona, Err: err}
	}

	started := time.Now()
	content, err := orchestrator.client.Complete(ctx, config, agents.SystemPromptFor(persona), userPrompt)
	if err != nil {
		orchestrator.log.Warn("stage failed",
			zap.String("stage", stage),
			zap.String("persona", string(persona)),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return "", &StageError{Stage: stage, Persona: persona, Err: err}
	}

	orchestrator.log.Info("stage complete",
		zap.String("stage", stage),
		zap.String("persona", string(persona)),
		zap.Int("content_chars", len(content)),
		zap.Duration("elapsed", time.Since(started)))
	return content, nil
}
