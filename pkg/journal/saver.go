package journal

import (
	"sync"
	"time"
)

// saver debounces journal persistence. Every mutation resets the timer for
// its journal; when the quiescence window elapses the fire takes the latest
// state snapshot and upserts it, so overlapping edits coalesce into one
// save. There is at most one pending timer per journal and a completed save
// never schedules another one.
type saver struct {
	core  *Core
	delay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newSaver(core *Core, delay time.Duration) *saver {
	return &saver{
		core:   core,
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// schedule arms (or re-arms) the save timer for a journal. Callers hold
// core.mu, so the mutation that triggered the schedule is already visible
// to the eventual fire.
func (s *saver) schedule(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[userID]; ok {
		timer.Stop()
	}
	s.timers[userID] = time.AfterFunc(s.delay, func() {
		s.fire(userID)
	})
}

func (s *saver) fire(userID string) {
	s.mu.Lock()
	delete(s.timers, userID)
	s.mu.Unlock()

	s.save(userID)
}

// save snapshots the current state and writes it out. A failed save is
// logged and the in-memory state is untouched; the next mutation re-arms
// the timer and retries with the same (or newer) payload.
func (s *saver) save(userID string) {
	s.core.mu.Lock()
	state, ok := s.core.journals[userID]
	if !ok {
		s.core.mu.Unlock()
		return
	}
	snapshot := *state
	s.core.mu.Unlock()

	if err := s.core.upsertJournalRow(&snapshot); err != nil {
		s.core.logger.Error("journal save failed", "user_id", userID, "err", err)
		return
	}

	s.core.mu.Lock()
	if live, ok := s.core.journals[userID]; ok {
		live.UpdatedAt = snapshot.UpdatedAt
	}
	s.core.mu.Unlock()

	s.core.logger.Debug("journal saved", "user_id", userID)
}

// flush saves every journal with a pending timer immediately. Used on
// shutdown so a quiescence window in progress is not lost.
func (s *saver) flush() {
	s.mu.Lock()
	pending := make([]string, 0, len(s.timers))
	for userID, timer := range s.timers {
		timer.Stop()
		pending = append(pending, userID)
	}
	s.timers = make(map[string]*time.Timer)
	s.mu.Unlock()

	for _, userID := range pending {
		s.save(userID)
	}
}
