package kepler

import (
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

/* Handles the series propagation at fixed output intervals. */

const (
	// tickSnapε absorbs floating noise when deciding whether the end time
	// falls exactly on an output tick.
	tickSnapε = 1e-9
)

// TrajectoryHistory is the time-indexed output of a series propagation run.
// Samples are keyed internally by their integer tick index so that no
// floating-point key equality is involved; time values only materialize at
// the interface (Times, At, StateAt).
type TrajectoryHistory struct {
	start, interval float64
	indices         []int
	samples         map[int]CartesianState
}

// NewTrajectoryHistory returns an empty history for the given start time and
// output interval.
func NewTrajectoryHistory(start, interval float64) *TrajectoryHistory {
	return &TrajectoryHistory{start, interval, nil, make(map[int]CartesianState)}
}

func (h *TrajectoryHistory) add(tick int, s CartesianState) {
	if _, seen := h.samples[tick]; !seen {
		h.indices = append(h.indices, tick)
	}
	h.samples[tick] = s
}

// Len returns the number of samples.
func (h *TrajectoryHistory) Len() int {
	return len(h.indices)
}

// Interval returns the fixed output interval in seconds.
func (h *TrajectoryHistory) Interval() float64 {
	return h.interval
}

// At returns the i-th sample in increasing-time order, along with its elapsed
// time in seconds since the propagation start.
func (h *TrajectoryHistory) At(i int) (float64, CartesianState) {
	tick := h.indices[i]
	return h.start + float64(tick)*h.interval, h.samples[tick]
}

// Times returns the sample times in increasing order.
func (h *TrajectoryHistory) Times() []float64 {
	times := make([]float64, len(h.indices))
	for i, tick := range h.indices {
		times[i] = h.start + float64(tick)*h.interval
	}
	return times
}

// StateAt returns the sample at the given elapsed time, snapping the lookup
// onto the nearest tick to avoid floating-point key comparisons.
func (h *TrajectoryHistory) StateAt(t float64) (CartesianState, bool) {
	tick := int(math.Round((t - h.start) / h.interval))
	s, ok := h.samples[tick]
	return s, ok
}

// SeriesStatus is the lifecycle state of a SeriesPropagator.
type SeriesStatus uint8

// A series is Configured, then Running, and ends Completed or Failed.
const (
	Configured SeriesStatus = iota
	Running
	Completed
	Failed
)

func (s SeriesStatus) String() string {
	switch s {
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	panic("cannot stringify unknown series status")
}

// SeriesPropagator drives repeated single-step Kepler propagation over
// [start, end] at a fixed output interval, accumulating a TrajectoryHistory.
// Every tick propagates from the *original* initial state, so chained short
// steps never compound numerical drift and ticks are independent of each
// other.
type SeriesPropagator struct {
	body                  PropagatedBody
	prop                  *KeplerPropagator
	start, end, interval  float64
	hist                  *TrajectoryHistory
	status                SeriesStatus
	stopChan              chan bool
	logger                kitlog.Logger
	err                   error
	failedTick            float64
}

// NewSeriesPropagator validates the series parameters and returns a driver in
// the Configured state. Malformed parameters yield an
// InvalidConfigurationError before any propagation is attempted.
func NewSeriesPropagator(body PropagatedBody, prop *KeplerPropagator, start, end, interval float64) (*SeriesPropagator, error) {
	if interval <= 0 || math.IsNaN(interval) {
		return nil, InvalidConfigurationError{Param: "interval", Value: interval, Issue: "must be strictly positive"}
	}
	if end <= start || math.IsNaN(end-start) {
		return nil, InvalidConfigurationError{Param: "end", Value: end, Issue: fmt.Sprintf("must be after start (%g)", start)}
	}
	if !body.State.IsValid() {
		return nil, InvalidConfigurationError{Param: "state", Value: math.NaN(), Issue: "initial state has non-finite components"}
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "subsys", "series", "body", body.Name)
	return &SeriesPropagator{body: body, prop: prop, start: start, end: end, interval: interval,
		hist: NewTrajectoryHistory(start, interval), status: Configured,
		stopChan: make(chan bool, 1), logger: logger}, nil
}

// SetLogger replaces the default stdout logfmt logger.
func (sp *SeriesPropagator) SetLogger(logger kitlog.Logger) {
	sp.logger = logger
}

// Status returns the lifecycle state of this series.
func (sp *SeriesPropagator) Status() SeriesStatus {
	return sp.status
}

// StopPropagation requests a cooperative stop; the running series checks for
// it between ticks and fails with ErrPropagationStopped.
func (sp *SeriesPropagator) StopPropagation() {
	sp.stopChan <- true
}

// lastTick returns the index of the last output tick, inclusive of the end
// time when (end-start) is a multiple of the interval within tolerance.
func (sp *SeriesPropagator) lastTick() int {
	return int(math.Floor((sp.end-sp.start)/sp.interval + tickSnapε))
}

// Execute runs the series. On the first propagation failure the run aborts
// with the Failed status and the returned error names the offending tick; the
// partial history accumulated so far is kept for the caller to inspect.
func (sp *SeriesPropagator) Execute() error {
	if sp.status != Configured {
		return fmt.Errorf("cannot execute a %s series", sp.status)
	}
	sp.status = Running
	sp.logger.Log("level", "info", "status", "started", "start(s)", sp.start, "end(s)", sp.end, "interval(s)", sp.interval)
	last := sp.lastTick()
	for tick := 0; tick <= last; tick++ {
		select {
		case <-sp.stopChan:
			return sp.fail(sp.start+float64(tick)*sp.interval, ErrPropagationStopped)
		default:
		}
		Δt := float64(tick) * sp.interval
		state, err := sp.prop.Propagate(sp.body.State, sp.body.Center, Δt)
		if err != nil {
			return sp.fail(sp.start+Δt, err)
		}
		sp.hist.add(tick, state)
	}
	sp.status = Completed
	sp.logger.Log("level", "info", "status", "finished", "samples", sp.hist.Len())
	return nil
}

func (sp *SeriesPropagator) fail(tick float64, err error) error {
	sp.status = Failed
	sp.failedTick = tick
	sp.err = fmt.Errorf("series failed at t=%gs: %w", tick, err)
	sp.logger.Log("level", "error", "status", "failed", "tick(s)", tick, "err", err)
	return sp.err
}

// FailedAt returns the tick which aborted a Failed run and its error.
func (sp *SeriesPropagator) FailedAt() (float64, error) {
	return sp.failedTick, sp.err
}

// PropagationHistory returns the accumulated trajectory. It is only complete
// once the series reports Completed; a Failed run returns the partial history
// together with the recorded error so the caller decides retention.
func (sp *SeriesPropagator) PropagationHistory() (*TrajectoryHistory, error) {
	switch sp.status {
	case Completed:
		return sp.hist, nil
	case Failed:
		return sp.hist, sp.err
	default:
		return nil, fmt.Errorf("no history for a %s series", sp.status)
	}
}
