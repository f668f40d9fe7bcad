package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis/internal/agents"
	"github.com/praxishq/praxis/internal/llm"
	"github.com/praxishq/praxis/internal/models"
	"go.uber.org/zap"
)

var (
	ErrValidation = errors.New("invalid assessment")
	ErrNotFound   = errors.New("not found")
)

type AssessmentStore interface {
	Create(assessment *models.Assessment) error
}

type PlanStore interface {
	Create(plan *models.PersonalizedPlan) error
	FindByID(planID string) (models.PersonalizedPlan, bool, error)
	ListByUser(userID uint) ([]models.PersonalizedPlan, error)
}

type ProgressStore interface {
	Create(record *models.ProgressRecord) error
	FindByPlanID(planID string) (models.ProgressRecord, bool, error)
	Save(record *models.ProgressRecord) error
}

// AssessmentInput is the validated questionnaire payload the boundary accepts.
type AssessmentInput struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Struggles       []string            `json:"struggles"`
	Door            models.Door         `json:"door"`
	QuotePreference string              `json:"quote_preference"`
	TimeBudget      models.TimeBudget   `json:"time_budget"`
	Daypart         models.Daypart      `json:"daypart"`
	Context         string              `json:"context"`
	IfThenPlans     []models.IfThenPlan `json:"if_then_plans"`
}

type PlanService struct {
	assessments AssessmentStore
	plans       PlanStore
	progress    ProgressStore

	orchestrator *PlanOrchestrator
	tracker      *ProgressTracker
	registry     *agents.Registry
	client       llm.CompletionClient
	limiter      GenerationLimiter

	// TemplateFallback makes a failed live pipeline degrade to the
	// deterministic templated plan instead of surfacing the stage error.
	// Chosen by the composition root, never by environment sniffing here.
	templateFallback bool

	log *zap.Logger
	now func() time.Time
}

type PlanServiceConfig struct {
	Assessments      AssessmentStore
	Plans            PlanStore
	Progress         ProgressStore
	Registry         *agents.Registry
	Client           llm.CompletionClient
	Limiter          GenerationLimiter
	TemplateFallback bool
	Log              *zap.Logger
	Now              func() time.Time
}

func NewPlanService(config PlanServiceConfig) *PlanService {
	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &PlanService{
		assessments:      config.Assessments,
		plans:            config.Plans,
		progress:         config.Progress,
		orchestrator:     NewPlanOrchestrator(config.Registry, config.Client, log),
		tracker:          NewProgressTracker(now),
		registry:         config.Registry,
		client:           config.Client,
		limiter:          config.Limiter,
		templateFallback: config.TemplateFallback,
		log:              log.With(zap.String("component", "plan_service")),
		now:              now,
	}
}

func validateAssessmentInput(input AssessmentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(input.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(input.Struggles) == 0 {
		return fmt.Errorf("%w: at least one struggle is required", ErrValidation)
	}
	if !input.Door.Valid() {
		return fmt.Errorf("%w: unknown door %q", ErrValidation, input.Door)
	}
	if input.TimeBudget != "" && !input.TimeBudget.Valid() {
		return fmt.Errorf("%w: unknown time budget %q", ErrValidation, input.TimeBudget)
	}
	if input.Daypart != "" && !input.Daypart.Valid() {
		return fmt.Errorf("%w: unknown daypart %q", ErrValidation, input.Daypart)
	}
	if len(input.IfThenPlans) != 0 && len(input.IfThenPlans) != models.IfThenPlanCount {
		return fmt.Errorf("%w: if-then plans must number exactly %d", ErrValidation, models.IfThenPlanCount)
	}
	return nil
}

func (service *PlanService) buildAssessment(userID uint, input AssessmentInput) models.Assessment {
	timeBudget := input.TimeBudget
	if timeBudget == "" {
		timeBudget = models.TimeBudgetMid
	}
	daypart := input.Daypart
	if daypart == "" {
		daypart = models.DaypartMorning
	}
	return models.Assessment{
		UserID:          userID,
		Name:            strings.TrimSpace(input.Name),
		Email:           strings.TrimSpace(input.Email),
		Struggles:       input.Struggles,
		Door:            input.Door,
		QuotePreference: strings.TrimSpace(input.QuotePreference),
		TimeBudget:      timeBudget,
		Daypart:         daypart,
		PrimaryVirtue:   ScoreStruggles(input.Struggles),
		Context:         strings.TrimSpace(input.Context),
		IfThenPlans:     input.IfThenPlans,
		CreatedAt:       service.now(),
	}
}

// GeneratePlan scores the assessment, runs the orchestration pipeline,
// normalizes the output, and persists the plan with an empty progress record.
// Either a structurally complete plan comes back or nothing is persisted.
func (service *PlanService) GeneratePlan(ctx context.Context, userID uint, input AssessmentInput) (models.PersonalizedPlan, error) {
	if err := validateAssessmentInput(input); err != nil {
		return models.PersonalizedPlan{}, err
	}
	assessment := service.buildAssessment(userID, input)

	release, err := service.limiter.Acquire(ctx, userID)
	if err != nil {
		return models.PersonalizedPlan{}, err
	}
	defer release()

	plan, err := service.generatePlanContent(ctx, assessment)
	if err != nil {
		return models.PersonalizedPlan{}, err
	}

	if err := service.assessments.Create(&assessment); err != nil {
		return models.PersonalizedPlan{}, fmt.Errorf("persist assessment: %w", err)
	}

	plan.ID = uuid.NewString()
	plan.UserID = userID
	plan.AssessmentID = assessment.ID
	plan.Assessment = assessment
	plan.CreatedAt = service.now()
	if err := service.plans.Create(&plan); err != nil {
		return models.PersonalizedPlan{}, fmt.Errorf("persist plan: %w", err)
	}

	record := models.ProgressRecord{
		PlanID:        plan.ID,
		UserID:        userID,
		CompletedDays: []int{},
		SkippedDays:   []int{},
		Feedback:      []models.FeedbackEntry{},
		LastActivity:  service.now(),
	}
	if err := service.progress.Create(&record); err != nil {
		return models.PersonalizedPlan{}, fmt.Errorf("persist progress record: %w", err)
	}

	service.log.Info("plan generated",
		zap.String("plan_id", plan.ID),
		zap.String("virtue", string(plan.Virtue)),
		zap.String("version", plan.Version))
	return plan, nil
}

func (service *PlanService) generatePlanContent(ctx context.Context, assessment models.Assessment) (models.PersonalizedPlan, error) {
	bundle, err := service.orchestrator.Generate(ctx, assessment)
	if err != nil {
		if service.templateFallback {
			service.log.Warn("orchestration failed, using templated plan", zap.Error(err))
			return BuildTemplatedPlan(assessment), nil
		}
		return models.PersonalizedPlan{}, err
	}

	plan, err := NormalizeStructured(bundle.Structure, assessment)
	if err != nil {
		// Unstructured prose instead of the requested JSON document: assemble
		// the plan from the deterministic template instead.
		service.log.Warn("structure output not parseable, using templated assembly", zap.Error(err))
		return BuildTemplatedPlan(assessment), nil
	}

	if plan.StretchPractice == "" {
		plan.StretchPractice = strings.TrimSpace(bundle.Specialization)
	}
	return plan, nil
}

// UpdateProgress applies completion-update events to a plan's progress record.
func (service *PlanService) UpdateProgress(userID uint, planID string, updates []ProgressUpdate) (models.ProgressRecord, error) {
	record, found, err := service.progress.FindByPlanID(planID)
	if err != nil {
		return models.ProgressRecord{}, fmt.Errorf("load progress record: %w", err)
	}
	if !found || record.UserID != userID {
		return models.ProgressRecord{}, fmt.Errorf("%w: progress record for plan %s", ErrNotFound, planID)
	}

	service.tracker.ApplyUpdates(&record, updates)
	if err := service.progress.Save(&record); err != nil {
		return models.ProgressRecord{}, fmt.Errorf("save progress record: %w", err)
	}
	return record, nil
}

func (service *PlanService) GetPlan(userID uint, planID string) (models.PersonalizedPlan, error) {
	plan, found, err := service.plans.FindByID(planID)
	if err != nil {
		return models.PersonalizedPlan{}, fmt.Errorf("load plan: %w", err)
	}
	if !found || plan.UserID != userID {
		return models.PersonalizedPlan{}, fmt.Errorf("%w: plan %s", ErrNotFound, planID)
	}
	return plan, nil
}

func (service *PlanService) ListPlans(userID uint) ([]models.PersonalizedPlan, error) {
	return service.plans.ListByUser(userID)
}

func (service *PlanService) GetProgress(userID uint, planID string) (models.ProgressRecord, error) {
	record, found, err := service.progress.FindByPlanID(planID)
	if err != nil {
		return models.ProgressRecord{}, fmt.Errorf("load progress record: %w", err)
	}
	if !found || record.UserID != userID {
		return models.ProgressRecord{}, fmt.Errorf("%w: progress record for plan %s", ErrNotFound, planID)
	}
	return record, nil
}

type rawIfThenPlan struct {
	Approach string `json:"approach"`
	Cue      string `json:"cue"`
	Action   string `json:"action"`
}

// GenerateIfThenPlans asks the guide persona for a complete if-then set. Any
// parse or call failure degrades to the deterministic fallback set; this
// operation never fails once the input validates.
func (service *PlanService) GenerateIfThenPlans(ctx context.Context, input AssessmentInput) ([]models.IfThenPlan, error) {
	if err := validateAssessmentInput(input); err != nil {
		return nil, err
	}
	assessment := service.buildAssessment(0, input)
	virtue := assessment.PrimaryVirtue

	config, err := service.registry.ConfigFor(agents.PersonaGuide)
	if err != nil {
		return fallbackIfThenPlans(virtue), nil
	}
	content, err := service.client.Complete(ctx, config, agents.SystemPromptFor(agents.PersonaGuide), agents.IfThenUserPrompt(assessment))
	if err != nil {
		service.log.Warn("if-then generation failed, using fallback set", zap.Error(err))
		return fallbackIfThenPlans(virtue), nil
	}

	var parsed []rawIfThenPlan
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &parsed); err != nil || len(parsed) != models.IfThenPlanCount {
		service.log.Warn("if-then output not parseable, using fallback set", zap.Error(err))
		return fallbackIfThenPlans(virtue), nil
	}

	plans := make([]models.IfThenPlan, 0, models.IfThenPlanCount)
	for i, raw := range parsed {
		approach := models.Approach(strings.ToLower(strings.TrimSpace(raw.Approach)))
		if approach != models.ApproachOrder[i] || strings.TrimSpace(raw.Cue) == "" || strings.TrimSpace(raw.Action) == "" {
			return fallbackIfThenPlans(virtue), nil
		}
		plans = append(plans, models.IfThenPlan{
			Virtue:   virtue,
			Approach: approach,
			Cue:      strings.TrimSpace(raw.Cue),
			Action:   strings.TrimSpace(raw.Action),
		})
	}
	return plans, nil
}
