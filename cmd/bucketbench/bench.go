package main

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theraot/hashbucket/pkg/bucket"
)

// opStats accumulates per-operation-kind counters across all goroutines.
type opStats struct {
	attempts  atomic.Int64
	successes atomic.Int64
	nanosSum  atomic.Int64
}

// Report is the JSON-serializable outcome of one benchmark run.
type Report struct {
	Container       string             `json:"container"`
	Capacity        int                `json:"capacity"`
	Goroutines      int                `json:"goroutines"`
	OpsPerGoroutine int                `json:"opsPerGoroutine"`
	Duration        time.Duration      `json:"durationNanos"`
	TotalOps        int64              `json:"totalOps"`
	OpsPerSecond    float64            `json:"opsPerSecond"`
	FinalCount      int                `json:"finalCount"`
	FinalCapacity   int                `json:"finalCapacity"`
	Ops             map[string]OpReport `json:"ops"`
}

// OpReport is the measured behavior of a single operation kind.
type OpReport struct {
	Attempts       int64   `json:"attempts"`
	Successes      int64   `json:"successes"`
	MeanLatencyNs  float64 `json:"meanLatencyNs"`
}

// opFunc performs one operation against the container under test and
// reports whether it succeeded (e.g. insert landed, pop found a value).
type opFunc func(rng *rand.Rand) bool

// weightedPicker draws operation names in proportion to the scenario's mix
// weights using a cumulative-weight table, avoiding a resize or lock on
// every draw.
type weightedPicker struct {
	names  []string
	cum    []int
	total  int
}

func newWeightedPicker(mix map[string]int, ops map[string]opFunc) *weightedPicker {
	p := &weightedPicker{}

	for name, weight := range mix {
		if weight <= 0 {
			continue
		}

		if _, ok := ops[name]; !ok {
			continue
		}

		p.total += weight
		p.names = append(p.names, name)
		p.cum = append(p.cum, p.total)
	}

	return p
}

func (p *weightedPicker) pick(rng *rand.Rand) string {
	r := rng.Intn(p.total) + 1

	for i, c := range p.cum {
		if r <= c {
			return p.names[i]
		}
	}

	return p.names[len(p.names)-1]
}

// Run executes the scenario and returns the aggregated report.
func Run(s Scenario) Report {
	ops, finalStats := buildOps(s)
	picker := newWeightedPicker(s.Mix, ops)

	stats := make(map[string]*opStats, len(picker.names))
	for _, name := range picker.names {
		stats[name] = &opStats{}
	}

	var wg sync.WaitGroup

	start := time.Now()

	for g := 0; g < s.Goroutines; g++ {
		g := g

		wg.Add(1)

		go func() {
			defer wg.Done()

			rng := rand.New(rand.NewSource(int64(g) + 1))

			for i := 0; i < s.OpsPerGoroutine; i++ {
				name := picker.pick(rng)
				fn := ops[name]

				opStart := time.Now()
				ok := fn(rng)
				elapsed := time.Since(opStart)

				st := stats[name]
				st.attempts.Add(1)
				st.nanosSum.Add(elapsed.Nanoseconds())

				if ok {
					st.successes.Add(1)
				}
			}
		}()
	}

	wg.Wait()

	duration := time.Since(start)

	report := Report{
		Container:       s.Container,
		Capacity:        s.Capacity,
		Goroutines:      s.Goroutines,
		OpsPerGoroutine: s.OpsPerGoroutine,
		Duration:        duration,
		Ops:             make(map[string]OpReport, len(stats)),
	}

	var total int64

	for name, st := range stats {
		attempts := st.attempts.Load()
		total += attempts

		mean := float64(0)
		if attempts > 0 {
			mean = float64(st.nanosSum.Load()) / float64(attempts)
		}

		report.Ops[name] = OpReport{
			Attempts:      attempts,
			Successes:     st.successes.Load(),
			MeanLatencyNs: mean,
		}
	}

	report.TotalOps = total
	if duration > 0 {
		report.OpsPerSecond = float64(total) / duration.Seconds()
	}

	report.FinalCount, report.FinalCapacity = finalStats()

	return report
}

// buildOps constructs the operation table for the scenario's container kind
// and a closure reporting the container's final occupancy and capacity.
func buildOps(s Scenario) (map[string]opFunc, func() (count, capacity int)) {
	switch s.Container {
	case "bucket":
		b := bucket.NewBucket[int](s.Capacity)

		ops := map[string]opFunc{
			"insert": func(rng *rand.Rand) bool {
				return b.Insert(rng.Intn(b.Capacity()), rng.Int())
			},
			"get": func(rng *rand.Rand) bool {
				_, ok := b.TryGet(rng.Intn(b.Capacity()))

				return ok
			},
			"remove": func(rng *rand.Rand) bool {
				_, ok := b.RemoveAt(rng.Intn(b.Capacity()))

				return ok
			},
		}

		return ops, func() (int, int) { return b.Count(), b.Capacity() }

	case "hashbucket":
		h := bucket.NewFixedSizeHashBucket[int, int](s.Capacity, func(k int) uint64 { return uint64(k) })

		ops := map[string]opFunc{
			"add": func(rng *rand.Rand) bool {
				k := rng.Intn(s.Capacity * 4)
				capacity := uint64(h.Capacity())

				for o := uint64(0); o < capacity; o++ {
					index, collision := h.Add(k, k, o)
					if index >= 0 {
						return true
					}

					if !collision {
						return false
					}
				}

				return false
			},
			"contains": func(rng *rand.Rand) bool {
				k := rng.Intn(s.Capacity * 4)
				capacity := uint64(h.Capacity())

				for o := uint64(0); o < capacity; o++ {
					if h.ContainsKey(k, o) >= 0 {
						return true
					}
				}

				return false
			},
			"remove": func(rng *rand.Rand) bool {
				k := rng.Intn(s.Capacity * 4)
				capacity := uint64(h.Capacity())

				for o := uint64(0); o < capacity; o++ {
					if h.Remove(k, o) >= 0 {
						return true
					}
				}

				return false
			},
		}

		return ops, func() (int, int) { return h.Count(), h.Capacity() }

	case "fixeddeque":
		d := bucket.NewFixedSizeDeque[int](s.Capacity)

		ops := map[string]opFunc{
			"addFront":  func(rng *rand.Rand) bool { return d.AddFront(rng.Int()) },
			"addBack":   func(rng *rand.Rand) bool { return d.AddBack(rng.Int()) },
			"takeFront": func(rng *rand.Rand) bool { _, ok := d.TryTakeFront(); return ok },
			"takeBack":  func(rng *rand.Rand) bool { _, ok := d.TryTakeBack(); return ok },
		}

		return ops, func() (int, int) { return d.Count(), d.Capacity() }

	default: // "deque"
		d := bucket.NewDeque[int](s.Capacity)

		ops := map[string]opFunc{
			"addFront": func(rng *rand.Rand) bool {
				d.AddFront(rng.Int())

				return true
			},
			"addBack": func(rng *rand.Rand) bool {
				d.AddBack(rng.Int())

				return true
			},
			"takeFront": func(rng *rand.Rand) bool { _, ok := d.TryTakeFront(); return ok },
			"takeBack":  func(rng *rand.Rand) bool { _, ok := d.TryTakeBack(); return ok },
		}

		return ops, func() (int, int) { return d.Count(), d.Capacity() }
	}
}
