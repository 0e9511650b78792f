package httpapi

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"evocell/internal/stream"
	"evocell/pkg/genetic"
)

// gaRun tracks one GA driver invocation: its cancellation flag, the hub its
// progress events are published through, and the result once it lands.
type gaRun struct {
	mu        sync.Mutex
	cancelled atomic.Bool
	running   bool
	hub       *stream.Hub
	result    *genetic.Result
	ok        bool
}

func newGARun() *gaRun {
	return &gaRun{hub: stream.New()}
}

// start launches cfg/opts on a goroutine, publishing a ProgressEvent per
// generation and recording the final Result. onComplete, if non-nil, is
// called with the finished Result only when the run was not cancelled —
// this is the hook internal/store uses to persist a run. It returns
// errGARunning if a run is already in flight.
func (g *gaRun) start(cfg genetic.GAConfig, opts genetic.RunOptions, seed int64, onComplete func(genetic.GAConfig, genetic.RunOptions, genetic.Result)) error {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return errGARunning
	}
	g.running = true
	g.cancelled.Store(false)
	g.result = nil
	g.ok = false
	g.mu.Unlock()

	go func() {
		result, ok := genetic.Run(cfg, opts, func(e genetic.ProgressEvent) {
			g.hub.PublishProgress(e)
		}, g.cancelled.Load, seed)

		g.mu.Lock()
		g.running = false
		g.ok = ok
		if ok {
			g.result = &result
		}
		g.mu.Unlock()

		// Closing the progress channels ends every subscriber's stream, so
		// handleGAProgress can follow it with the result message.
		g.hub.Close()

		if ok && onComplete != nil {
			onComplete(cfg, opts, result)
		}
	}()
	return nil
}

func (g *gaRun) cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return errNoGARunning
	}
	g.cancelled.Store(true)
	return nil
}

// resultJSON is the §6 "result{genome, fitness}" response body, or nil if
// the run is still in progress or was cancelled before completion.
func (g *gaRun) resultJSON() json.RawMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return nil
	}
	b, _ := json.Marshal(struct {
		Genome  genetic.Genome `json:"genome"`
		Fitness float64        `json:"fitness"`
	}{g.result.BestGenome, g.result.BestFitness})
	return b
}
