package httpapi

import (
	"sync"
	"time"

	"evocell/internal/seedlib"
	"evocell/internal/stream"
	"evocell/pkg/sim"
)

// session owns one collaborator's simulation state: the engine, a pacer for
// run mode, and the hub its frames are published through. A GA run is
// independent of any session and is tracked separately by Server.
type session struct {
	mu    sync.Mutex
	state *sim.State
	pacer *sim.Pacer
	hub   *stream.Hub

	running bool
	stopRun chan struct{}
}

func newSession() *session {
	return &session{hub: stream.New()}
}

// init replaces the session's engine, discarding any in-flight run loop.
func (s *session) init(cfg sim.Config, initialSeed []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopRunLocked()

	var initializer sim.Initializer
	if initialSeed != nil {
		initializer = func(current []uint8) {
			n := len(initialSeed)
			if n > len(current) {
				n = len(current)
			}
			copy(current, initialSeed[:n])
		}
	}

	state, err := sim.Create(cfg, initializer)
	if err != nil {
		return err
	}
	s.state = state
	s.pacer = sim.NewPacer(1)
	return nil
}

func (s *session) step() (*sim.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil, errNotInitialized
	}
	frame := s.state.Step()
	s.hub.PublishFrame(frame)
	return frame, nil
}

// run starts a background loop that steps the engine at speed steps/sec
// until pause is called, the engine terminates, or the session is
// re-initialized.
func (s *session) run(speed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return errNotInitialized
	}
	s.stopRunLocked()

	s.pacer.SetRate(speed)
	s.running = true
	stop := make(chan struct{})
	s.stopRun = stop

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			s.pacer.Wait()

			s.mu.Lock()
			select {
			case <-stop:
				s.mu.Unlock()
				return
			default:
			}
			if s.state == nil || s.state.Terminated() {
				s.running = false
				s.mu.Unlock()
				return
			}
			frame := s.state.Step()
			s.hub.PublishFrame(frame)
			s.mu.Unlock()
		}
	}()
	return nil
}

func (s *session) pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRunLocked()
}

func (s *session) stopRunLocked() {
	if s.stopRun != nil {
		close(s.stopRun)
		s.stopRun = nil
	}
	s.running = false
}

func (s *session) randomize(density float64, seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return errNotInitialized
	}
	s.state.Randomize(density, seed)
	return nil
}

func (s *session) load(cells []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return errNotInitialized
	}
	s.state.ApplySeed(cells)
	return nil
}

func (s *session) loadPattern(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return errNotInitialized
	}
	pattern, ok := seedlib.Lookup(name)
	if !ok {
		return errUnknownPattern
	}
	cfg := s.state.Config()
	buffer := make([]uint8, cfg.CellCount())
	pattern.Apply(buffer, cfg.Width, cfg.Height)
	s.state.ApplySeed(buffer)
	return nil
}

func (s *session) benchmark(durationMS int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return 0, errNotInitialized
	}
	rate := sim.Benchmark(s.state, time.Duration(durationMS)*time.Millisecond)
	return rate, nil
}
