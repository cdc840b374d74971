package trial

import (
	"testing"
	"time"

	"github.com/verte-zerg/pointspeed/internal/model"
	"github.com/verte-zerg/pointspeed/internal/target"
)

// fixedPlacer always places the target at pos and measures from the cursor.
type fixedPlacer struct {
	pos   model.Point
	calls int
}

func (p *fixedPlacer) Generate(_ model.Bounds, _ int, from model.Point) (model.Point, float64) {
	p.calls++
	return p.pos, target.Distance(from, p.pos)
}

func testConfig() model.Experiment {
	return model.Experiment{
		Delay:       200 * time.Millisecond,
		TargetSize:  20,
		Trials:      5,
		IgnoreFirst: 0,
		Bounds:      model.Bounds{Width: 800, Height: 600},
	}
}

const frame = 50 * time.Millisecond

// armMachine ticks a still cursor until the target appears.
func armMachine(t *testing.T, m *Machine) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if m.Phase().Kind == PhaseArmed {
			return
		}
		m.Tick(frame)
	}
	t.Fatalf("machine never armed, phase %v", m.Phase())
}

// hitTarget runs one full trial ending with a click at the target origin.
func hitTarget(t *testing.T, m *Machine) ClickResult {
	t.Helper()
	armMachine(t, m)
	m.OnMouseMove(m.Target())
	m.Tick(frame)
	m.Tick(frame)
	if m.Phase().Kind != PhaseTiming {
		t.Fatalf("expected timing, got %v", m.Phase())
	}
	return m.OnClick()
}

func TestNewStartsSettlingWithTarget(t *testing.T) {
	placer := &fixedPlacer{pos: model.Point{X: 30, Y: 40}}
	m := New(testConfig(), placer)
	if m.Phase().Kind != PhaseSettling {
		t.Fatalf("expected settling, got %v", m.Phase())
	}
	if placer.calls != 1 {
		t.Fatalf("expected one target generation, got %d", placer.calls)
	}
	if m.TargetDistance() != 50 {
		t.Fatalf("expected distance 50 from origin, got %v", m.TargetDistance())
	}
}

func TestTickArmsAfterDelay(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{})
	m.Tick(frame)
	if m.Phase() != (Phase{Kind: PhaseDelay}) {
		t.Fatalf("expected delay(0), got %v", m.Phase())
	}
	var total time.Duration
	for total+frame < m.Config().Delay {
		m.Tick(frame)
		total += frame
		if m.Phase().Kind != PhaseDelay {
			t.Fatalf("armed early after %s", total)
		}
		if m.TargetVisible() {
			t.Fatalf("target visible during delay")
		}
	}
	m.Tick(frame)
	if m.Phase().Kind != PhaseArmed {
		t.Fatalf("expected armed once delay elapsed, got %v", m.Phase())
	}
}

func TestTickArmsOnExactThreshold(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{})
	m.Tick(0)
	m.Tick(200 * time.Millisecond)
	if m.Phase().Kind != PhaseArmed {
		t.Fatalf("expected armed at threshold, got %v", m.Phase())
	}
}

func TestSettlingWaitsForStillFrame(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{})
	for i := 0; i < 10; i++ {
		m.OnMouseMove(model.Point{X: float64(i), Y: 1})
		m.Tick(frame)
		if m.Phase().Kind != PhaseSettling {
			t.Fatalf("expected settling while moving, got %v", m.Phase())
		}
	}
	m.Tick(frame)
	if m.Phase().Kind != PhaseDelay {
		t.Fatalf("expected delay after still frame, got %v", m.Phase())
	}
}

func TestMovementDuringDelayRestartsSettle(t *testing.T) {
	for _, steps := range []int{0, 1, 2, 3} {
		m := New(testConfig(), &fixedPlacer{})
		m.Tick(frame)
		for i := 0; i < steps; i++ {
			m.Tick(frame)
		}
		if m.Phase().Kind != PhaseDelay {
			t.Fatalf("steps=%d: expected delay, got %v", steps, m.Phase())
		}
		m.OnMouseMove(model.Point{X: 5, Y: 5})
		m.Tick(frame)
		if m.Phase().Kind != PhaseSettling {
			t.Fatalf("steps=%d: expected settling after move, got %v", steps, m.Phase())
		}
		m.Tick(frame)
		if m.Phase() != (Phase{Kind: PhaseDelay}) {
			t.Fatalf("steps=%d: expected delay to restart at zero, got %v", steps, m.Phase())
		}
	}
}

func TestMovementLatchClearsEachTick(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{})
	m.OnMouseMove(model.Point{X: 1, Y: 1})
	m.OnMouseMove(model.Point{X: 2, Y: 2})
	m.Tick(frame)
	if m.Phase().Kind != PhaseSettling {
		t.Fatalf("expected settling, got %v", m.Phase())
	}
	m.Tick(frame)
	if m.Phase().Kind != PhaseDelay {
		t.Fatalf("expected latch to clear, got %v", m.Phase())
	}
}

func TestArmedStartsTimingOnMove(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{})
	armMachine(t, m)
	m.Tick(frame)
	m.Tick(frame)
	if m.Phase().Kind != PhaseArmed {
		t.Fatalf("expected armed without movement, got %v", m.Phase())
	}
	m.OnMouseMove(model.Point{X: 1, Y: 1})
	m.Tick(frame)
	if m.Phase() != (Phase{Kind: PhaseTiming}) {
		t.Fatalf("expected timing(0), got %v", m.Phase())
	}
	m.Tick(frame)
	m.OnMouseMove(model.Point{X: 2, Y: 2})
	m.Tick(frame)
	if m.Phase() != (Phase{Kind: PhaseTiming, Elapsed: 2 * frame}) {
		t.Fatalf("expected timing to accumulate, got %v", m.Phase())
	}
}

func TestTargetVisibility(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{})
	if m.TargetVisible() {
		t.Fatalf("target visible while settling")
	}
	m.Tick(frame)
	if m.TargetVisible() {
		t.Fatalf("target visible during delay")
	}
	armMachine(t, m)
	if !m.TargetVisible() {
		t.Fatalf("target hidden while armed")
	}
	m.OnMouseMove(model.Point{X: 1, Y: 1})
	m.Tick(frame)
	if !m.TargetVisible() {
		t.Fatalf("target hidden while timing")
	}
}

func TestClickOutsideTimingIsInert(t *testing.T) {
	placer := &fixedPlacer{}
	m := New(testConfig(), placer)
	check := func(want PhaseKind) {
		t.Helper()
		before := m.Phase()
		m.OnMouseMove(m.Target())
		res := m.OnClick()
		if res.Status != ClickIgnored {
			t.Fatalf("expected ignored click in %v, got %v", want, res.Status)
		}
		if m.Phase() != before || m.Index() != 0 || placer.calls != 1 {
			t.Fatalf("click changed state in %v", want)
		}
	}
	check(PhaseSettling)
	m.Tick(frame)
	m.Tick(frame)
	check(PhaseDelay)
	m = New(testConfig(), placer)
	placer.calls = 1
	armMachine(t, m)
	check(PhaseArmed)
}

func TestMissKeepsTiming(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{pos: model.Point{X: 100, Y: 100}})
	armMachine(t, m)
	m.OnMouseMove(model.Point{X: 99, Y: 100})
	m.Tick(frame)
	m.Tick(frame)
	before := m.Phase()
	res := m.OnClick()
	if res.Status != ClickMissed {
		t.Fatalf("expected miss, got %v", res.Status)
	}
	if m.Phase() != before {
		t.Fatalf("expected phase unchanged, got %v", m.Phase())
	}
	m.Tick(frame)
	if m.Phase().Elapsed != before.Elapsed+frame {
		t.Fatalf("expected timing to continue, got %v", m.Phase())
	}
}

func TestHitTestBoundaries(t *testing.T) {
	origin := model.Point{X: 100, Y: 200}
	cases := []struct {
		name string
		p    model.Point
		hit  bool
	}{
		{"top-left", model.Point{X: 100, Y: 200}, true},
		{"right edge", model.Point{X: 120, Y: 200}, true},
		{"bottom edge", model.Point{X: 100, Y: 220}, false},
		{"just above bottom", model.Point{X: 120, Y: 219.5}, true},
		{"left of target", model.Point{X: 99.5, Y: 210}, false},
		{"above target", model.Point{X: 110, Y: 199}, false},
		{"past right edge", model.Point{X: 120.5, Y: 210}, false},
	}
	for _, tc := range cases {
		m := New(testConfig(), &fixedPlacer{pos: origin})
		armMachine(t, m)
		m.OnMouseMove(tc.p)
		m.Tick(frame)
		res := m.OnClick()
		got := res.Status != ClickMissed
		if got != tc.hit {
			t.Fatalf("%s: expected hit=%v, got status %v", tc.name, tc.hit, res.Status)
		}
	}
}

func TestWarmupDiscardsClicks(t *testing.T) {
	cfg := testConfig()
	cfg.IgnoreFirst = 3
	m := New(cfg, &fixedPlacer{pos: model.Point{X: 10, Y: 10}})
	if !m.Warmup() {
		t.Fatalf("expected warm-up at start")
	}
	for i := 0; i < 3; i++ {
		res := hitTarget(t, m)
		if res.Status != ClickWarmup {
			t.Fatalf("click %d: expected warm-up, got %v", i+1, res.Status)
		}
		if !m.Warmup() {
			t.Fatalf("click %d: warm-up ended early", i+1)
		}
	}
	res := hitTarget(t, m)
	if res.Status != ClickWarmup {
		t.Fatalf("crossing click: expected discard, got %v", res.Status)
	}
	if m.Warmup() || m.Index() != 0 {
		t.Fatalf("expected warm-up off with index 0, got warmup=%v index=%d", m.Warmup(), m.Index())
	}
	res = hitTarget(t, m)
	if res.Status != ClickRecorded || res.Measurement.Index != 0 {
		t.Fatalf("expected first measurement index 0, got %+v", res)
	}
	if m.Warmup() {
		t.Fatalf("warm-up reactivated")
	}
}

func TestEndToEndCompletes(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{pos: model.Point{X: 300, Y: 300}})
	var got []model.Measurement
	for i := 0; i < 5; i++ {
		res := hitTarget(t, m)
		want := ClickRecorded
		if i == 4 {
			want = ClickComplete
		}
		if res.Status != want {
			t.Fatalf("click %d: expected %v, got %v", i, want, res.Status)
		}
		got = append(got, res.Measurement)
	}
	if !m.Done() {
		t.Fatalf("expected session done")
	}
	for i, meas := range got {
		if meas.Index != uint32(i) {
			t.Fatalf("expected index %d, got %d", i, meas.Index)
		}
		if meas.Elapsed != frame {
			t.Fatalf("expected elapsed %s, got %s", frame, meas.Elapsed)
		}
	}
	if res := hitTargetAfterDone(m); res.Status != ClickIgnored {
		t.Fatalf("expected clicks after completion to be ignored, got %v", res.Status)
	}
}

func hitTargetAfterDone(m *Machine) ClickResult {
	for i := 0; i < 10; i++ {
		m.Tick(frame)
	}
	m.OnMouseMove(m.Target())
	m.Tick(frame)
	return m.OnClick()
}

func TestDistanceFixedAtGeneration(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{pos: model.Point{X: 60, Y: 80}})
	want := m.TargetDistance()
	if want != 100 {
		t.Fatalf("expected generation distance 100, got %v", want)
	}
	armMachine(t, m)
	m.OnMouseMove(model.Point{X: 400, Y: 400})
	m.Tick(frame)
	m.OnMouseMove(model.Point{X: 61, Y: 81})
	m.Tick(frame)
	res := m.OnClick()
	if res.Status != ClickRecorded {
		t.Fatalf("expected recorded, got %v", res.Status)
	}
	if res.Measurement.Distance != want {
		t.Fatalf("expected distance %v, got %v", want, res.Measurement.Distance)
	}
	if res.Measurement.Elapsed != frame {
		t.Fatalf("expected elapsed %s, got %s", frame, res.Measurement.Elapsed)
	}
}

func TestNextTargetMeasuredFromClickPosition(t *testing.T) {
	m := New(testConfig(), &fixedPlacer{pos: model.Point{X: 30, Y: 40}})
	armMachine(t, m)
	m.OnMouseMove(model.Point{X: 30, Y: 40})
	m.Tick(frame)
	m.OnClick()
	if m.TargetDistance() != 0 {
		t.Fatalf("expected next distance from click point, got %v", m.TargetDistance())
	}
	if m.Phase().Kind != PhaseSettling {
		t.Fatalf("expected settling after hit, got %v", m.Phase())
	}
}
