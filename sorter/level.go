package sorter

import (
	"github.com/plus3/shapesort/ecs"
	"github.com/rs/zerolog"
)

// LevelController owns the Session singleton and moves it through
// Idle, Active, Transitioning and Complete.
type LevelController struct {
	w   *world
	log zerolog.Logger

	// clear empties the board; wired up by the engine.
	clear func()
}

func newLevelController(w *world) *LevelController {
	return &LevelController{
		w:   w,
		log: w.log.With().Str("system", "level").Logger(),
	}
}

// Record counts one processed shape. Only shapes processed while the level
// is active count.
func (l *LevelController) Record() {
	session := l.w.session.Get()
	if session.Phase != Active {
		return
	}
	session.Processed++
}

// enter switches the session to level n and opens it for play.
func (l *LevelController) enter(n int) {
	session := l.w.session.Get()
	level := l.w.cfg.LevelAt(n)

	session.Level = n
	session.Levels = len(l.w.cfg.Levels)
	session.Processed = 0
	session.Quota = level.Quota
	session.Speed = level.Speed
	session.Spacing = level.Spacing
	session.NextSpawn = session.Clock + l.w.cfg.FirstSpawnDelay
	session.Phase = Active

	l.log.Info().Int("level", n).Float64("speed", level.Speed).Int("quota", level.Quota).Msg("level started")
}

// newSession resets the session to level 1 in phase Idle. The clock keeps
// running.
func (l *LevelController) newSession() {
	session := l.w.session.Get()
	first := l.w.cfg.LevelAt(1)
	*session = Session{
		Phase:   Idle,
		Level:   1,
		Levels:  len(l.w.cfg.Levels),
		Quota:   first.Quota,
		Speed:   first.Speed,
		Spacing: first.Spacing,
		Clock:   session.Clock,
	}
}

// Start leaves Idle and begins level 1.
func (l *LevelController) Start() bool {
	if l.w.session.Get().Phase != Idle {
		return false
	}
	l.enter(1)
	return true
}

// Reset starts a new playthrough from level 1 with a zero score.
func (l *LevelController) Reset() {
	l.clear()
	l.newSession()
	l.enter(1)
}

// Abandon clears the board and returns to Idle.
func (l *LevelController) Abandon() {
	l.clear()
	l.newSession()
	l.log.Info().Msg("session abandoned")
}

func (l *LevelController) check() {
	session := l.w.session.Get()

	switch session.Phase {
	case Active:
		if session.Processed < session.Quota {
			return
		}
		session.Phase = Transitioning
		session.TransitionEnds = session.Clock + l.w.cfg.TransitionDelay
		l.w.presenter.Play(OutcomeLevelComplete)
		l.log.Info().Int("level", session.Level).Int("score", session.Score).Msg("level complete")

	case Transitioning:
		if session.Clock < session.TransitionEnds {
			return
		}
		l.clear()
		if session.Level >= len(l.w.cfg.Levels) {
			session.Phase = Complete
			l.w.presenter.Play(OutcomeWin)
			l.log.Info().Int("score", session.Score).Msg("session won")
			return
		}
		l.enter(session.Level + 1)
	}
}

type levelSystem struct {
	level *LevelController
}

func (s *levelSystem) Execute(*ecs.UpdateFrame) {
	s.level.check()
}

// clockSystem advances the session clock by the frame's delta.
type clockSystem struct {
	Session ecs.Singleton[Session]
}

func (s *clockSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	session.Delta = secondsToDuration(frame.DeltaTime)
	session.Clock += session.Delta
}
