package kepler

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

/* Trajectory table I/O. The benchmark format is a whitespace-separated table,
one row per sample: <t> <x> <y> <z> <vx> <vy> <vz>, rows in increasing-time
order, one row per fixed-interval tick. */

// LoadPropagationHistory reads a benchmark trajectory table. Comment lines
// start with '#'; repeated separating spaces are tolerated. The rows are
// keyed onto the tick grid defined by start and interval.
func LoadPropagationHistory(r io.Reader, start, interval float64) (*TrajectoryHistory, error) {
	if interval <= 0 {
		return nil, InvalidConfigurationError{Param: "interval", Value: interval, Issue: "must be strictly positive"}
	}
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	hist := NewTrajectoryHistory(start, interval)
	for lineNo := 1; ; lineNo++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		row := make([]float64, 0, 7)
		for _, field := range record {
			if field == "" {
				continue // run of separating spaces
			}
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s", lineNo, err)
			}
			row = append(row, val)
		}
		if len(row) == 0 {
			continue
		}
		if len(row) != 7 {
			return nil, fmt.Errorf("row %d: expected 7 columns, got %d", lineNo, len(row))
		}
		tick := int(math.Round((row[0] - start) / interval))
		hist.add(tick, NewCartesianStateXYZ(row[1], row[2], row[3], row[4], row[5], row[6]))
	}
	return hist, nil
}

// Write stores this history in the benchmark table format.
func (h *TrajectoryHistory) Write(w io.Writer) error {
	for i := 0; i < h.Len(); i++ {
		t, s := h.At(i)
		if _, err := fmt.Fprintf(w, "%.8f %.8f %.8f %.8f %.8f %.8f %.8f\n",
			t, s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2]); err != nil {
			return err
		}
	}
	return nil
}

// InKilometers returns a copy of this history with every sample converted
// from meters to kilometers, for comparison against benchmark tables kept in
// km.
func (h *TrajectoryHistory) InKilometers() *TrajectoryHistory {
	out := NewTrajectoryHistory(h.start, h.interval)
	for _, tick := range h.indices {
		out.add(tick, h.samples[tick].InKilometers())
	}
	return out
}

// MaxComponentDifference returns the largest absolute per-component
// difference between two histories. The histories must cover the same tick
// domain.
func (h *TrajectoryHistory) MaxComponentDifference(o *TrajectoryHistory) (float64, error) {
	if h.Len() != o.Len() {
		return 0, fmt.Errorf("history domains differ: %d vs %d samples", h.Len(), o.Len())
	}
	var max float64
	for _, tick := range h.indices {
		other, ok := o.samples[tick]
		if !ok {
			return 0, fmt.Errorf("tick %d missing from compared history", tick)
		}
		mine := h.samples[tick].Vector()
		for j, v := range other.Vector() {
			if diff := math.Abs(mine[j] - v); diff > max {
				max = diff
			}
		}
	}
	return max, nil
}

// WriteXYZV stores this history as an interpolated-states trajectory file:
// one record per sample, <jd> <x> <y> <z> <vx> <vy> <vz>, with sample times
// anchored on the provided wall-clock epoch as TDB Julian dates.
func (h *TrajectoryHistory) WriteXYZV(w io.Writer, epoch time.Time) error {
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Simulation time start (UTC): %s`, time.Now().UTC(), epoch.UTC()); err != nil {
		return err
	}
	for i := 0; i < h.Len(); i++ {
		t, s := h.At(i)
		jd := julian.TimeToJD(epoch.Add(time.Duration(t * float64(time.Second))))
		if _, err := fmt.Fprintf(w, "\n%f %f %f %f %f %f %f",
			jd, s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// CreateXYZVFile creates a trajectory file under the configured output
// directory, optionally timestamped. The caller owns the close.
func CreateXYZVFile(filename string, stamped bool) (*os.File, error) {
	cfg := keplerConfig()
	if stamped {
		t := time.Now()
		filename = fmt.Sprintf("%s/prop-%s-%d-%02d-%02dT%02d.%02d.%02d.xyzv", cfg.outputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/prop-%s.xyzv", cfg.outputDir, filename)
	}
	return os.Create(filename)
}
