package ptrbench

import (
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/rawbytedev/tether"
)

// Result is one scenario's measurement.
type Result struct {
	Scenario    Scenario
	Elapsed     time.Duration
	NsPerOp     float64
	AllocsPerOp float64
}

// Report is a tagged benchmark run.
type Report struct {
	ID      string // uuid, so runs can be filed and compared
	Started time.Time
	GoArch  string
	GoOS    string
	Results []Result
}

// payload shapes
type word struct{ v int }

type text struct{ s string }

type block struct{ data [65536]int32 }

// sink keeps per-iteration values reachable so the compiler cannot elide
// the work under measurement.
var sink any

// Run executes every scenario in cfg and returns the tagged report.
func Run(cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	rep := Report{
		ID:      uuid.NewString(),
		Started: time.Now(),
		GoArch:  runtime.GOARCH,
		GoOS:    runtime.GOOS,
	}
	for _, s := range cfg.Scenarios {
		res, err := runScenario(s)
		if err != nil {
			return Report{}, err
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

func runScenario(s Scenario) (Result, error) {
	var op, cleanup func()
	var err error
	switch s.Payload {
	case PayloadWord:
		op, cleanup, err = buildOp[word](s.Handle)
	case PayloadText:
		op, cleanup, err = buildOp[text](s.Handle)
	case PayloadBlock:
		op, cleanup, err = buildOp[block](s.Handle)
	default:
		return Result{}, ErrUnknownPayload
	}
	if err != nil {
		return Result{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	return measure(s, op), nil
}

// buildOp returns the per-iteration operation for one handle kind, plus an
// optional cleanup for fixtures that outlive the loop.
func buildOp[T any](handle string) (op func(), cleanup func(), err error) {
	switch handle {
	case HandleRaw:
		return func() {
			sink = new(T)
		}, nil, nil
	case HandleOwned:
		return func() {
			o := tether.Adopt(new(T))
			sink = o.Get()
			o.Dispose()
		}, nil, nil
	case HandleSealed:
		return func() {
			var zero T
			s := tether.Seal(zero)
			sink = s.Get()
			s.Dispose()
		}, nil, nil
	case HandleObserver:
		owner := tether.Adopt(new(T))
		op = func() {
			ob := owner.Observe()
			if !ob.Expired() {
				sink = ob.Get()
			}
			ob.Dispose()
		}
		return op, owner.Dispose, nil
	default:
		return nil, nil, ErrUnknownHandle
	}
}

func measure(s Scenario, op func()) Result {
	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	for i := 0; i < s.Iterations; i++ {
		op()
	}
	elapsed := time.Since(start)

	runtime.ReadMemStats(&after)
	n := float64(s.Iterations)
	return Result{
		Scenario:    s,
		Elapsed:     elapsed,
		NsPerOp:     float64(elapsed.Nanoseconds()) / n,
		AllocsPerOp: float64(after.Mallocs-before.Mallocs) / n,
	}
}
