package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/llm"
	"github.com/alexanderramin/pauta/internal/planner"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/require"
)

// scriptedLLM answers by task and is safe for concurrent use.
type scriptedLLM struct {
	mu        sync.Mutex
	responses map[llm.TaskType]string
	errs      map[llm.TaskType]error
	failIf    func(req llm.GenerateRequest) error
	calls     map[llm.TaskType]int
	requests  []llm.GenerateRequest
}

func newScriptedLLM() *scriptedLLM {
	return &scriptedLLM{
		responses: map[llm.TaskType]string{
			llm.TaskAnalysis: testutil.MustJSON(testutil.NewTestAnalysis()),
			llm.TaskPlan:     testutil.MustJSON(testutil.NewTestPlan("Novembro", 4)),
			llm.TaskIdeas:    `{"ideias": ["Post temático", "Sorteio", "Reels de bastidores"]}`,
			llm.TaskChat:     "Na semana 2, foque em depoimentos.",
		},
		errs:  map[llm.TaskType]error{},
		calls: map[llm.TaskType]int{},
	}
}

func (m *scriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[req.Task]++
	m.requests = append(m.requests, req)
	if err := m.errs[req.Task]; err != nil {
		return nil, err
	}
	if m.failIf != nil {
		if err := m.failIf(req); err != nil {
			return nil, err
		}
	}
	return &llm.GenerateResponse{Text: m.responses[req.Task], Model: "gpt-4o-mini"}, nil
}

func (m *scriptedLLM) Available(context.Context) bool { return true }

func (m *scriptedLLM) callCount(task llm.TaskType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[task]
}

func (m *scriptedLLM) lastRequest(task llm.TaskType) llm.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.requests) - 1; i >= 0; i-- {
		if m.requests[i].Task == task {
			return m.requests[i]
		}
	}
	return llm.GenerateRequest{}
}

func (m *scriptedLLM) setErr(task llm.TaskType, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[task] = err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

type testEnv struct {
	db        *sql.DB
	llm       *scriptedLLM
	observer  *recordingObserver
	briefings repository.BriefingRepo
	analyses  repository.AnalysisRepo
	plans     repository.PlanRepo
	ideaRepo  repository.IdeaRepo
	chats     repository.ChatRepo

	briefingSvc BriefingService
	strategy    StrategyService
	ideas       IdeaService
	chat        ChatService
	export      ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithUoW(t, nil)
}

func newTestEnvWithUoW(t *testing.T, uow db.UnitOfWork) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	client := newScriptedLLM()
	obs := &recordingObserver{}
	cal := holiday.Default()

	e := &testEnv{
		db:        database,
		llm:       client,
		observer:  obs,
		briefings: repository.NewSQLiteBriefingRepo(database),
		analyses:  repository.NewSQLiteAnalysisRepo(database),
		plans:     repository.NewSQLitePlanRepo(database),
		ideaRepo:  repository.NewSQLiteIdeaRepo(database),
		chats:     repository.NewSQLiteChatRepo(database),
	}
	e.briefingSvc = NewBriefingService(e.briefings, obs)
	e.strategy = NewStrategyService(e.briefings, e.analyses, e.plans, uow,
		planner.NewAnalysisService(client),
		planner.NewPlanService(client),
		planner.NewAssistantService(client),
		cal, obs)
	e.ideas = NewIdeaService(e.briefings, e.ideaRepo, planner.NewIdeasService(client), cal, 2, obs)
	e.chat = NewChatService(e.briefings, e.chats, planner.NewAssistantService(client), obs)
	e.export = NewExportService(e.briefings, e.analyses, e.plans, e.ideaRepo)
	return e
}

// seedBriefing stores a São Paulo briefing.
func (e *testEnv) seedBriefing(t *testing.T) *domain.Briefing {
	t.Helper()
	b, err := e.briefingSvc.Create(context.Background(), "Padaria artesanal com fermentação natural", "SP", "")
	require.NoError(t, err)
	return b
}

// seedPlan stores a briefing with a successful analysis and a November 2024
// plan.
func (e *testEnv) seedPlan(t *testing.T) *domain.Briefing {
	t.Helper()
	ctx := context.Background()
	b := e.seedBriefing(t)
	_, err := e.strategy.Analyze(ctx, b.ID)
	require.NoError(t, err)
	_, err = e.strategy.GeneratePlan(ctx, b.ID, "2024-11")
	require.NoError(t, err)
	return b
}
