package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
	"go.uber.org/zap"
)

var ErrRunComplete = errors.New("run already completed every turn")

type Settings struct {
	TotalTurns        int
	Courses           []string
	Challenge         string
	ContextWindow     int
	MaxTokens         int
	StatusEvery       int
	Pause             time.Duration
	LongPause         time.Duration
	GenerationTimeout time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		TotalTurns:        27,
		Courses:           domain.DefaultCourses(),
		Challenge:         domain.Challenge,
		ContextWindow:     12,
		MaxTokens:         30,
		Pause:             500 * time.Millisecond,
		LongPause:         time.Second,
		GenerationTimeout: time.Minute,
	}
}

// statusEvery is the explicit StatusEvery, or a third of the run but never
// less than one full round of agents.
func (s Settings) statusEvery(agentCount int) int {
	if s.StatusEvery > 0 {
		return s.StatusEvery
	}

	return max(1, agentCount, s.TotalTurns/3)
}

type TurnResult struct {
	Turn      domain.Turn
	Response  string
	Fallback  bool
	Evolution domain.Evolution
}

type Session struct {
	generator ports.Generator
	reporter  ports.Reporter
	evolver   *domain.Evolver
	clock     ports.Clock
	logger    *zap.Logger
	store     ports.SnapshotStore
	settings  Settings
	sleep     func(ctx context.Context, d time.Duration) error
}

type Option func(*Session)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(clock ports.Clock) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithSnapshotStore saves the untruncated final snapshot when a run ends.
func WithSnapshotStore(store ports.SnapshotStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithSleep replaces the pacing delay between turns.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Session) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

func NewSession(generator ports.Generator, reporter ports.Reporter, evolver *domain.Evolver, settings Settings, opts ...Option) *Session {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if evolver == nil {
		evolver = domain.NewEvolver(nil)
	}

	s := &Session{
		generator: generator,
		reporter:  reporter,
		evolver:   evolver,
		clock:     ports.SystemClock{},
		logger:    zap.NewNop(),
		settings:  settings,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) Settings() Settings {
	return s.settings
}

// Step plays the next turn against state. State is only touched once the
// generator has answered, so a cancelled step leaves it as it was.
func (s *Session) Step(ctx context.Context, state *State) (TurnResult, error) {
	if state.Completed >= s.settings.TotalTurns {
		return TurnResult{}, ErrRunComplete
	}
	if err := ctx.Err(); err != nil {
		return TurnResult{}, err
	}

	turn := domain.PlanTurn(state.Completed, len(state.Agents), s.settings.Courses)
	agent := &state.Agents[turn.AgentIndex]
	s.reporter.TurnStarted(turn, agent.Clone())

	req := ports.GenerationRequest{
		AgentName:          agent.Name,
		Course:             turn.Course,
		SystemInstructions: BuildSystemInstructions(*agent, state.Shared),
		Context:            state.History.Window(s.settings.ContextWindow),
		Prompt:             turn.Prompt,
		Model:              agent.ModelRef,
		Temperature:        agent.Temperature,
		MaxTokens:          s.settings.MaxTokens,
	}

	response, fallback, err := s.generate(ctx, state, turn, req)
	if err != nil {
		return TurnResult{}, err
	}

	state.History.Append(
		domain.Message{Role: domain.RolePrompt, Content: turn.Prompt},
		domain.Message{Role: domain.RoleAgent, Content: response},
	)
	evolution := s.evolver.Evolve(agent, &state.Shared, domain.ExtractCandidates(response), state.Completed)
	state.Completed++
	if fallback {
		state.Failures++
	}

	s.logger.Debug("turn completed",
		zap.String("run_id", state.RunID),
		zap.Int("turn", turn.Index),
		zap.String("agent", agent.Name),
		zap.Int("vocabulary", agent.Vocabulary.Len()),
		zap.Int("shared", state.Shared.Len()),
		zap.Float64("shorthand_frequency", agent.ShorthandFrequency),
	)

	s.reporter.TurnCompleted(ports.TurnReport{
		Turn:     turn,
		Agent:    agent.Clone(),
		Response: response,
		Fallback: fallback,
	})

	return TurnResult{Turn: turn, Response: response, Fallback: fallback, Evolution: evolution}, nil
}

// Run plays turns until the configured count is reached or ctx is done. A
// cancelled run is not an error: the summary is still reported and returned.
func (s *Session) Run(ctx context.Context, state *State) (domain.Snapshot, error) {
	s.reporter.Intro(ports.Intro{Challenge: s.settings.Challenge, Agents: cloneAgents(state.Agents)})

	for state.Completed < s.settings.TotalTurns {
		if _, err := s.Step(ctx, state); err != nil {
			if ctx.Err() != nil {
				break
			}
			snapshot, _ := s.finish(ctx, state)
			return snapshot, fmt.Errorf("play turn %d: %w", state.Completed, err)
		}

		pause := s.settings.Pause
		if state.Completed%s.settings.statusEvery(len(state.Agents)) == 0 {
			s.reporter.StatusReport(state.Snapshot(s.settings.TotalTurns, domain.OutcomeRunning, s.clock.Now()))
			pause = s.settings.LongPause
		}
		if state.Completed >= s.settings.TotalTurns {
			break
		}
		if err := s.sleep(ctx, pause); err != nil {
			break
		}
	}

	return s.finish(ctx, state)
}

func (s *Session) finish(ctx context.Context, state *State) (domain.Snapshot, error) {
	outcome := domain.OutcomeCompleted
	if state.Completed < s.settings.TotalTurns {
		outcome = domain.OutcomeCancelled
	}

	snapshot := state.Snapshot(s.settings.TotalTurns, outcome, s.clock.Now())
	s.logger.Info("run finished",
		zap.String("run_id", state.RunID),
		zap.String("outcome", string(outcome)),
		zap.Int("completed_turns", state.Completed),
		zap.Int("failures", state.Failures),
	)
	s.reporter.Summary(snapshot)

	if s.store == nil {
		return snapshot, nil
	}

	full := state.FullSnapshot(s.settings.TotalTurns, outcome, snapshot.TakenAt)
	if err := s.store.Save(context.WithoutCancel(ctx), full); err != nil {
		s.logger.Error("run report not saved", zap.String("run_id", state.RunID), zap.Error(err))
		return snapshot, fmt.Errorf("save run report: %w", err)
	}

	return snapshot, nil
}

func cloneAgents(agents []domain.Agent) []domain.Agent {
	clones := make([]domain.Agent, 0, len(agents))
	for _, agent := range agents {
		clones = append(clones, agent.Clone())
	}

	return clones
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopReporter struct{}

func (nopReporter) Intro(ports.Intro) {}
func (nopReporter) TurnStarted(domain.Turn, domain.Agent) {}
func (nopReporter) TurnCompleted(ports.TurnReport) {}
func (nopReporter) StatusReport(domain.Snapshot) {}
func (nopReporter) Summary(domain.Snapshot) {}
