package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/praxishq/praxis/internal/agents"
	"github.com/praxishq/praxis/internal/llm"
	"github.com/praxishq/praxis/internal/models"
)

type completionCall struct {
	persona      agents.PersonaConfig
	systemPrompt string
	userPrompt   string
}

// scriptedCompletionClient replays canned responses per model name and records
// every call in order.
type scriptedCompletionClient struct {
	responses map[string]string
	failModel string
	failWith  error
	calls     []completionCall
}

func (stub *scriptedCompletionClient) Complete(_ context.Context, persona agents.PersonaConfig, systemPrompt string, userPrompt string) (string, error) {
	stub.calls = append(stub.calls, completionCall{persona: persona, systemPrompt: systemPrompt, userPrompt: userPrompt})
	if stub.failModel == persona.Model && stub.failWith != nil {
		return "", stub.failWith
	}
	return stub.responses[persona.Model], nil
}

func testRegistry() *agents.Registry {
	configs := make(map[agents.PersonaID]agents.PersonaConfig, len(agents.AllPersonas))
	for _, persona := range agents.AllPersonas {
		configs[persona] = agents.PersonaConfig{
			Endpoint:  "https://llm.test/v1",
			APIKey:    "test-key",
			Model:     "model-" + string(persona),
			MaxTokens: 1024,
			TimeoutMs: 1000,
		}
	}
	return agents.NewRegistry(configs)
}

func TestGenerateRunsStagesInOrder(t *testing.T) {
	client := &scriptedCompletionClient{responses: map[string]string{
		"model-guide":              "welcome text",
		"model-companion-secular":  "structure text",
		"model-specialist-courage": "specialization text",
	}}
	orchestrator := NewPlanOrchestrator(testRegistry(), client, nil)

	bundle, err := orchestrator.Generate(context.Background(), courageAssessment(models.DoorSecular))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if bundle.Welcome != "welcome text" || bundle.Structure != "structure text" || bundle.Specialization != "specialization text" {
		t.Fatalf("unexpected bundle: %+v", bundle)
	}
	if bundle.PrimaryPersona != agents.PersonaCompanionSecular {
		t.Fatalf("expected secular companion, got %s", bundle.PrimaryPersona)
	}
	if bundle.SpecialistPersona != agents.PersonaSpecialistCourage {
		t.Fatalf("expected courage specialist, got %s", bundle.SpecialistPersona)
	}

	if len(client.calls) != 3 {
		t.Fatalf("expected 3 completion calls, got %d", len(client.calls))
	}
	expectedModels := []string{"model-guide", "model-companion-secular", "model-specialist-courage"}
	for i, expected := range expectedModels {
		if client.calls[i].persona.Model != expected {
			t.Fatalf("call %d used %s, expected %s", i, client.calls[i].persona.Model, expected)
		}
	}
}

func TestGenerateThreadsStageOutputsForward(t *testing.T) {
	client := &scriptedCompletionClient{responses: map[string]string{
		"model-guide":              "WELCOME-MARKER",
		"model-companion-secular":  "STRUCTURE-MARKER",
		"model-specialist-courage": "techniques",
	}}
	orchestrator := NewPlanOrchestrator(testRegistry(), client, nil)

	if _, err := orchestrator.Generate(context.Background(), courageAssessment(models.DoorSecular)); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if !strings.Contains(client.calls[1].userPrompt, "WELCOME-MARKER") {
		t.Fatalf("structure prompt does not embed welcome output")
	}
	if !strings.Contains(client.calls[2].userPrompt, "STRUCTURE-MARKER") {
		t.Fatalf("specialization prompt does not embed structure output")
	}
}

func TestGenerateSelectsScripturePathPersona(t *testing.T) {
	client := &scriptedCompletionClient{responses: map[string]string{
		"model-guide":               "welcome",
		"model-companion-scripture": "structure",
		"model-specialist-courage":  "techniques",
	}}
	orchestrator := NewPlanOrchestrator(testRegistry(), client, nil)

	bundle, err := orchestrator.Generate(context.Background(), courageAssessment(models.DoorScripture))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if bundle.PrimaryPersona != agents.PersonaCompanionScripture {
		t.Fatalf("expected scripture companion, got %s", bundle.PrimaryPersona)
	}
}

func TestGenerateTagsFailingStage(t *testing.T) {
	upstream := errors.New("upstream timeout")
	client := &scriptedCompletionClient{
		responses: map[string]string{"model-guide": "welcome"},
		failModel: "model-companion-secular",
		failWith:  upstream,
	}
	orchestrator := NewPlanOrchestrator(testRegistry(), client, nil)

	_, err := orchestrator.Generate(context.Background(), courageAssessment(models.DoorSecular))
	var stageError *StageError
	if !errors.As(err, &stageError) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageError.Stage != StageStructure {
		t.Fatalf("expected failure tagged with structure stage, got %s", stageError.Stage)
	}
	if stageError.Persona != agents.PersonaCompanionSecular {
		t.Fatalf("expected failing persona attached, got %s", stageError.Persona)
	}
	if !errors.Is(err, upstream) {
		t.Fatalf("stage error must wrap the upstream cause")
	}

	// The pipeline aborts: the specialist must never have been called.
	if len(client.calls) != 2 {
		t.Fatalf("expected pipeline abort after 2 calls, got %d", len(client.calls))
	}
}

func TestGenerateAbortsOnEmptyCompletion(t *testing.T) {
	client := &scriptedCompletionClient{
		failModel: "model-guide",
		failWith:  llm.ErrEmptyCompletion,
	}
	orchestrator := NewPlanOrchestrator(testRegistry(), client, nil)

	_, err := orchestrator.Generate(context.Background(), courageAssessment(models.DoorSecular))
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("expected wrapped ErrEmptyCompletion, got %v", err)
	}
	var stageError *StageError
	if !errors.As(err, &stageError) || stageError.Stage != StageWelcome {
		t.Fatalf("expected welcome stage tag, got %v", err)
	}
}

func TestGenerateFailsFastOnUnconfiguredPersona(t *testing.T) {
	configs := map[agents.PersonaID]agents.PersonaConfig{
		agents.PersonaGuide: {Endpoint: "https://llm.test/v1", APIKey: "", Model: "model-guide"},
	}
	client := &scriptedCompletionClient{responses: map[string]string{}}
	orchestrator := NewPlanOrchestrator(agents.NewRegistry(configs), client, nil)

	_, err := orchestrator.Generate(context.Background(), courageAssessment(models.DoorSecular))
	if !errors.Is(err, agents.ErrAgentNotConfigured) {
		t.Fatalf("expected ErrAgentNotConfigured, got %v", err)
	}
	var stageError *StageError
	if !errors.As(err, &stageError) || stageError.Stage != StageWelcome {
		t.Fatalf("expected welcome stage tag, got %v", err)
	}
	if len(client.calls) != 0 {
		t.Fatalf("no completion call should be made for an unconfigured persona")
	}
}
