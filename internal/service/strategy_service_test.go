package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/llm"
	"github.com/alexanderramin/pauta/internal/planner"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Success(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedBriefing(t)

	rec, err := e.strategy.Analyze(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, rec.Status)
	assert.Equal(t, testutil.NewTestAnalysis(), rec.Data)

	req := e.llm.lastRequest(llm.TaskAnalysis)
	assert.Contains(t, req.UserPrompt, "Padaria artesanal")
	assert.Contains(t, req.UserPrompt, "São Paulo")
	assert.True(t, req.JSON)

	stored, err := e.strategy.Analysis(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.Ready())
}

func TestAnalyze_UsesBriefingModel(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b, err := e.briefingSvc.Create(ctx, "Estúdio de pilates", "RJ", "gpt-4o")
	require.NoError(t, err)

	_, err = e.strategy.Analyze(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", e.llm.lastRequest(llm.TaskAnalysis).Model)
}

func TestAnalyze_FailureIsStored(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedBriefing(t)
	e.llm.setErr(llm.TaskAnalysis, llm.ErrTimeout)

	rec, err := e.strategy.Analyze(ctx, b.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrTimeout)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StatusError, rec.Status)

	stored, err := e.strategy.Analysis(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, stored.Status)
	assert.Contains(t, stored.Error, "market analysis generation failed")
	assert.Nil(t, stored.Data)
}

func TestAnalyze_ResetsDerivedState(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedPlan(t)
	_, err := e.ideas.HolidayIdeas(ctx, b.ID, "2024-11-20")
	require.NoError(t, err)

	_, err = e.strategy.Analyze(ctx, b.ID)
	require.NoError(t, err)

	plans, err := e.strategy.Plans(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)
	history, err := e.chat.History(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	_, err = e.ideaRepo.Get(ctx, b.ID, "2024-11-20")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAnalyze_RollbackOnResetFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	// ExecContext #1 = plans delete, #2 = ideas delete, #3 = chat delete,
	// #4 = analysis upsert. Fail on #3 after plans were already deleted.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Err:    fmt.Errorf("injected chat delete failure"),
	}
	client := newScriptedLLM()
	briefings := repository.NewSQLiteBriefingRepo(database)
	analyses := repository.NewSQLiteAnalysisRepo(database)
	plans := repository.NewSQLitePlanRepo(database)
	healthy := NewStrategyService(briefings, analyses, plans, testutil.NewTestUoW(database),
		planner.NewAnalysisService(client), planner.NewPlanService(client), planner.NewAssistantService(client),
		holiday.Default())
	failing := NewStrategyService(briefings, analyses, plans, failUoW,
		planner.NewAnalysisService(client), planner.NewPlanService(client), planner.NewAssistantService(client),
		holiday.Default())

	b := testutil.NewTestBriefing("Padaria artesanal", testutil.WithRegion("SP"))
	require.NoError(t, briefings.Create(ctx, b))
	_, err := healthy.Analyze(ctx, b.ID)
	require.NoError(t, err)
	_, err = healthy.GeneratePlan(ctx, b.ID, "2024-11")
	require.NoError(t, err)

	_, err = failing.Analyze(ctx, b.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected chat delete failure")

	// Verify nothing was reset (transaction rolled back).
	list, err := plans.ListByBriefing(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "plans should survive after rollback")
	history, err := repository.NewSQLiteChatRepo(database).List(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2, "chat should survive after rollback")
	rec, err := analyses.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, rec.Status, "analysis should not be left loading")
}

func TestGeneratePlan_RequiresAnalysis(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedBriefing(t)

	_, err := e.strategy.GeneratePlan(ctx, b.ID, "2024-11")
	assert.ErrorIs(t, err, ErrNoAnalysis)

	e.llm.setErr(llm.TaskAnalysis, llm.ErrUnavailable)
	_, _ = e.strategy.Analyze(ctx, b.ID)
	_, err = e.strategy.GeneratePlan(ctx, b.ID, "2024-11")
	assert.ErrorIs(t, err, ErrNoAnalysis, "a failed analysis cannot feed a plan")
	assert.Zero(t, e.llm.callCount(llm.TaskPlan))
}

func TestGeneratePlan_Success(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedBriefing(t)
	_, err := e.strategy.Analyze(ctx, b.ID)
	require.NoError(t, err)

	rec, err := e.strategy.GeneratePlan(ctx, b.ID, "2024-11")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, rec.Status)
	assert.Equal(t, "SP", rec.RegionCode)
	require.NotNil(t, rec.Data)
	assert.Equal(t, "Novembro", rec.Data.Month)
	assert.Len(t, rec.Data.Weeks, 4)

	dates := make([]string, 0, len(rec.Holidays))
	for _, h := range rec.Holidays {
		dates = append(dates, h.Date)
	}
	assert.Equal(t, []string{"2024-11-02", "2024-11-15", "2024-11-19", "2024-11-20", "2024-11-29"}, dates)

	prompt := e.llm.lastRequest(llm.TaskPlan).UserPrompt
	assert.Contains(t, prompt, "Black Friday")
	assert.Contains(t, prompt, "Novembro")

	stored, err := e.strategy.Plan(ctx, b.ID, "2024-11")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, stored.ID)
	assert.Equal(t, rec.Holidays, stored.Holidays)

	history, err := e.chat.History(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleSystem, history[0].Role)
	assert.Contains(t, history[0].Text, "Tema da semana 1")
	assert.Equal(t, planner.WelcomeMessage, history[1].Text)
}

func TestGeneratePlan_DefaultsToCurrentMonth(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedBriefing(t)
	_, err := e.strategy.Analyze(ctx, b.ID)
	require.NoError(t, err)

	rec, err := e.strategy.GeneratePlan(ctx, b.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.MonthsToDisplay(time.Now(), 1)[0], rec.MonthKey)
}

func TestGeneratePlan_InvalidMonth(t *testing.T) {
	e := newTestEnv(t)
	b := e.seedBriefing(t)

	_, err := e.strategy.GeneratePlan(context.Background(), b.ID, "2024-13")
	assert.Error(t, err)
}

func TestGeneratePlan_RegenerateKeepsID(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedPlan(t)
	first, err := e.strategy.Plan(ctx, b.ID, "2024-11")
	require.NoError(t, err)

	second, err := e.strategy.GeneratePlan(ctx, b.ID, "2024-11")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	history, err := e.chat.History(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2, "regenerating reseeds the conversation instead of appending")
}

func TestGeneratePlan_FailureIsStored(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.seedBriefing(t)
	_, err := e.strategy.Analyze(ctx, b.ID)
	require.NoError(t, err)

	e.llm.responses[llm.TaskPlan] = `{"month": "Novembro", "weeks": []}`
	rec, err := e.strategy.GeneratePlan(ctx, b.ID, "2024-11")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StatusError, rec.Status)

	stored, err := e.strategy.Plan(ctx, b.ID, "2024-11")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, stored.Status)
	assert.NotEmpty(t, stored.Holidays, "holidays are recorded even when generation fails")

	_, err = e.strategy.Plan(ctx, b.ID, "")
	assert.ErrorIs(t, err, repository.ErrNotFound, "latest only returns successful plans")

	history, err := e.chat.History(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}
