package kepler

import (
	"bytes"
	"strings"
	"testing"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/floats"
)

const benchmarkTable = `# Two-body benchmark, <t> <x> <y> <z> <vx> <vy> <vz>
0.0 6750000.0 0.0 0.0 0.0 8059.5973215 0.0
3600.0  -2763123.5   5840722.1  0.0  -6423.1  -3421.9  0.0
7200.0 -5931161.0 -3414261.2 0.0 3431.3 -5900.1 0.0
`

func TestLoadPropagationHistory(t *testing.T) {
	hist, err := LoadPropagationHistory(strings.NewReader(benchmarkTable), 0, 3600)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	if hist.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", hist.Len())
	}
	first, ok := hist.StateAt(0)
	if !ok {
		t.Fatal("missing t=0 sample")
	}
	if !statesEqual(first, asterixState(), 1e-9) {
		t.Fatalf("t=0 sample misparsed: %s", first)
	}
	// Second row uses repeated separating spaces on purpose.
	second, ok := hist.StateAt(3600)
	if !ok {
		t.Fatal("missing t=3600 sample")
	}
	if second.R[0] != -2763123.5 || second.V[1] != -3421.9 {
		t.Fatalf("t=3600 sample misparsed: %s", second)
	}
}

func TestLoadPropagationHistoryMalformed(t *testing.T) {
	if _, err := LoadPropagationHistory(strings.NewReader("0.0 1.0 2.0\n"), 0, 60); err == nil {
		t.Fatal("expected an error for a short row")
	}
	if _, err := LoadPropagationHistory(strings.NewReader("0.0 a b c d e f\n"), 0, 60); err == nil {
		t.Fatal("expected an error for a non-numeric field")
	}
	if _, err := LoadPropagationHistory(strings.NewReader(benchmarkTable), 0, 0); err == nil {
		t.Fatal("expected an error for a non-positive interval")
	}
}

func TestHistoryWriteLoadRoundTrip(t *testing.T) {
	sp, err := NewSeriesPropagator(PropagatedBody{"Asterix", asterixState(), Earth}, NewKeplerPropagator(), 0, 21600, 3600)
	if err != nil {
		t.Fatalf("series configuration rejected: %s", err)
	}
	sp.SetLogger(kitlog.NewNopLogger())
	if err := sp.Execute(); err != nil {
		t.Fatalf("series failed: %s", err)
	}
	hist, _ := sp.PropagationHistory()

	var buf bytes.Buffer
	if err := hist.Write(&buf); err != nil {
		t.Fatalf("write failed: %s", err)
	}
	loaded, err := LoadPropagationHistory(&buf, 0, 3600)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	diff, err := hist.MaxComponentDifference(loaded)
	if err != nil {
		t.Fatalf("comparison failed: %s", err)
	}
	if diff > 1e-6 {
		t.Fatalf("written and loaded histories differ by %g", diff)
	}
}

func TestMaxComponentDifferenceDomainMismatch(t *testing.T) {
	a := NewTrajectoryHistory(0, 60)
	a.add(0, asterixState())
	b := NewTrajectoryHistory(0, 60)
	if _, err := a.MaxComponentDifference(b); err == nil {
		t.Fatal("expected a domain mismatch error")
	}
	b.add(1, asterixState())
	if _, err := a.MaxComponentDifference(b); err == nil {
		t.Fatal("expected a tick mismatch error")
	}
}

func TestHistoryInKilometers(t *testing.T) {
	hist := NewTrajectoryHistory(0, 60)
	hist.add(0, asterixState())
	km := hist.InKilometers()
	sample, ok := km.StateAt(0)
	if !ok {
		t.Fatal("conversion dropped the sample")
	}
	if !floats.EqualWithinAbs(sample.R[0], 6750, 1e-9) {
		t.Fatalf("expected 6750 km, got %f", sample.R[0])
	}
	if !floats.EqualWithinAbs(sample.V[1], 8.0595973215, 1e-12) {
		t.Fatalf("expected 8.0595973215 km/s, got %f", sample.V[1])
	}
}

func TestWriteXYZV(t *testing.T) {
	hist := NewTrajectoryHistory(0, 3600)
	hist.add(0, asterixState())
	hist.add(1, asterixState())
	var buf bytes.Buffer
	epoch := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := hist.WriteXYZV(&buf, epoch); err != nil {
		t.Fatalf("write failed: %s", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Records are <jd>") {
		t.Fatal("missing header")
	}
	// 2017-01-01T00:00:00 UTC is JD 2457754.5.
	if !strings.Contains(out, "2457754.5") {
		t.Fatalf("missing epoch Julian date:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got < 2 {
		t.Fatalf("expected at least two records, output:\n%s", out)
	}
}

func TestUnitConversions(t *testing.T) {
	if KilometersToMeters(6750) != 6.75e6 {
		t.Fatal("km to m conversion broken")
	}
	if MetersToKilometers(6.75e6) != 6750 {
		t.Fatal("m to km conversion broken")
	}
	s := asterixState()
	if !statesEqual(s.InKilometers().InMeters(), s, 1e-12) {
		t.Fatal("state unit conversion does not round trip")
	}
}
