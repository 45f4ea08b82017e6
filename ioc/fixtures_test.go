package ioc_test

import "errors"

// Instrumented fixture types for exercising the container. The counters
// live here, in the tests: the container never sees them, it only routes
// every construction through the real constructor and every discard through
// Release, which is what makes them accurate.

// counters tallies fixture lifecycle events for one test.
type counters struct {
	constructed int
	destructed  int
}

func (c *counters) balanced() bool { return c.constructed == c.destructed }

// device is the contract most fixtures are registered under.
type device interface {
	Working() bool
}

// ── sensor: plain counted concretion ──────────────────────────────────────────

type sensor struct {
	cnt      *counters
	released int
}

func (s *sensor) Working() bool { return true }

func (s *sensor) Release() {
	s.released++
	s.cnt.destructed++
}

// newSensorCtor returns a zero-argument constructor that counts every
// construction and, when made is non-nil, records each instance for
// per-instance release assertions.
func newSensorCtor(cnt *counters, made *[]*sensor) func() *sensor {
	return func() *sensor {
		cnt.constructed++
		s := &sensor{cnt: cnt}
		if made != nil {
			*made = append(*made, s)
		}
		return s
	}
}

// ── rig: concretion with an injected dependency ───────────────────────────────

type rig struct {
	inner *sensor
}

func (r *rig) Working() bool { return r.inner != nil && r.inner.Working() }

func newRig(inner *sensor) *rig { return &rig{inner: inner} }

// ── faulty constructors ───────────────────────────────────────────────────────

var errHardwareAbsent = errors.New("sensor hardware absent")

func newFaultyDevice() (device, error) { return nil, errHardwareAbsent }

func newPanickyDevice() device { panic("wiring shorted") }

// ── assembly: composite of an interface and a concrete dependency ─────────────

type assembly struct {
	dev    device
	backup *sensor
}

func (a *assembly) Working() bool { return a.dev.Working() && a.backup.Working() }

// newAssembly declares the concrete dependency first, so a failing device
// registration exercises the rollback of an already-built sensor.
func newAssembly(backup *sensor, dev device) *assembly {
	return &assembly{dev: dev, backup: backup}
}
