package ioc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/ioc"
)

// ── Registration ──────────────────────────────────────────────────────────────

func TestRegisterType_DuplicateFailsFirstSurvives(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))

	err := ioc.RegisterType[device](c, newSensorCtor(cnt, nil))
	require.ErrorIs(t, err, ioc.ErrAlreadyRegistered)

	// The first registration is intact and resolvable.
	d, err := ioc.Resolve[device](c)
	require.NoError(t, err)
	require.True(t, d.Working())
}

func TestRegisterTypeNamed_DuplicateNameSameContractFails(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterTypeNamed[device](c, "primary", newSensorCtor(cnt, nil)))
	err := ioc.RegisterTypeNamed[device](c, "primary", newSensorCtor(cnt, nil))
	require.ErrorIs(t, err, ioc.ErrAlreadyRegistered)
}

func TestRegisterTypeNamed_SameNameDifferentContractsBothSucceed(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterTypeNamed[device](c, "primary", newSensorCtor(cnt, nil)))
	require.NoError(t, ioc.RegisterTypeNamed[*sensor](c, "primary", newSensorCtor(cnt, nil)))

	require.True(t, ioc.IsRegisteredNamed[device](c, "primary"))
	require.True(t, ioc.IsRegisteredNamed[*sensor](c, "primary"))
}

func TestIsRegistered_TracksExactKey(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.False(t, ioc.IsRegistered[device](c))

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))

	require.True(t, ioc.IsRegistered[device](c))
	require.False(t, ioc.IsRegisteredNamed[device](c, "primary"), "unnamed registration must not answer for a named key")
	require.False(t, ioc.IsRegistered[*sensor](c), "registration must not answer for a different contract")
}

func TestRegisterDelegate_Registers(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}
	mk := newSensorCtor(cnt, nil)

	require.NoError(t, ioc.RegisterDelegate[*sensor](c, func() (*sensor, error) { return mk(), nil }))
	require.True(t, ioc.IsRegistered[*sensor](c))

	require.NoError(t, ioc.RegisterDelegateNamed[*sensor](c, "spare", func() (*sensor, error) { return mk(), nil }))
	require.True(t, ioc.IsRegisteredNamed[*sensor](c, "spare"))
}

// ── Invalid recipes ───────────────────────────────────────────────────────────

func TestRegisterType_RejectsBadConstructors(t *testing.T) {
	tests := []struct {
		name     string
		register func(c *ioc.Container) error
	}{
		{"not a function", func(c *ioc.Container) error {
			return ioc.RegisterType[device](c, 42)
		}},
		{"no results", func(c *ioc.Container) error {
			return ioc.RegisterType[device](c, func() {})
		}},
		{"second result not error", func(c *ioc.Container) error {
			return ioc.RegisterType[device](c, func() (*sensor, string) { return nil, "" })
		}},
		{"result does not satisfy contract", func(c *ioc.Container) error {
			return ioc.RegisterType[device](c, func() int { return 0 })
		}},
		{"variadic", func(c *ioc.Container) error {
			return ioc.RegisterType[device](c, func(xs ...*sensor) *sensor { return nil })
		}},
		{"argument count mismatch", func(c *ioc.Container) error {
			return ioc.RegisterType[*rig](c, newRig, ioc.Key[*sensor](), ioc.Key[*sensor]())
		}},
		{"argument type mismatch", func(c *ioc.Container) error {
			return ioc.RegisterType[*rig](c, newRig, ioc.Key[device]())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ioc.New()
			err := tt.register(c)
			require.ErrorIs(t, err, ioc.ErrInvalidRecipe)
			require.Empty(t, c.Keys(), "a rejected recipe must not be stored")
		})
	}
}

func TestRegisterDelegate_RejectsNilFactory(t *testing.T) {
	c := ioc.New()
	err := ioc.RegisterDelegate[*sensor](c, nil)
	require.ErrorIs(t, err, ioc.ErrInvalidRecipe)
}

// ── Resolution ────────────────────────────────────────────────────────────────

func TestResolve_UnregisteredFailsWithoutSideEffects(t *testing.T) {
	c := ioc.New()

	_, err := ioc.Resolve[device](c)
	require.ErrorIs(t, err, ioc.ErrNotRegistered)
	require.Empty(t, c.Keys())
}

// Scenario: interface contract backed by a plain concretion.
func TestResolve_InterfaceToConcretion(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))

	d, err := ioc.Resolve[device](c)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.True(t, d.Working(), "resolved instance must behave like a directly constructed sensor")
	require.Equal(t, 1, cnt.constructed)
}

// Scenario: constructor injection one level deep.
func TestResolve_ConstructorInjection(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[*sensor](c, newSensorCtor(cnt, nil)))
	require.NoError(t, ioc.RegisterType[*rig](c, newRig))

	r, err := ioc.Resolve[*rig](c)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.True(t, r.Working())
	require.Equal(t, 1, cnt.constructed, "exactly one sensor is built as a side effect")
}

func TestResolve_ByName(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterTypeNamed[*sensor](c, "backup", newSensorCtor(cnt, nil)))

	s, err := ioc.ResolveNamed[*sensor](c, "backup")
	require.NoError(t, err)
	require.NotNil(t, s)

	// The named registration does not answer for the unnamed key.
	_, err = ioc.Resolve[*sensor](c)
	require.ErrorIs(t, err, ioc.ErrNotRegistered)
}

func TestResolve_DelegatePath(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}
	mk := newSensorCtor(cnt, nil)

	require.NoError(t, ioc.RegisterDelegate[device](c, func() (device, error) { return mk(), nil }))

	d, err := ioc.Resolve[device](c)
	require.NoError(t, err)
	require.True(t, d.Working())
	require.Equal(t, 1, cnt.constructed)
}

func TestResolve_FreshInstanceEveryCall(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[*sensor](c, newSensorCtor(cnt, nil)))

	first, err := ioc.Resolve[*sensor](c)
	require.NoError(t, err)
	second, err := ioc.Resolve[*sensor](c)
	require.NoError(t, err)

	require.NotSame(t, first, second, "resolution is transient, never cached")
	require.Equal(t, 2, cnt.constructed)
}

func TestResolve_VerdictStableAcrossRepeats(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))

	for i := 0; i < 3; i++ {
		require.True(t, ioc.IsRegistered[device](c))
		_, err := ioc.Resolve[device](c)
		require.NoError(t, err)

		_, err = ioc.Resolve[*rig](c)
		require.ErrorIs(t, err, ioc.ErrNotRegistered)
	}
}

// ── Removal ───────────────────────────────────────────────────────────────────

func TestRemoveRegistration(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))

	require.True(t, ioc.RemoveRegistration[device](c))
	require.False(t, ioc.IsRegistered[device](c))

	_, err := ioc.Resolve[device](c)
	require.ErrorIs(t, err, ioc.ErrNotRegistered)
}

func TestRemoveRegistration_MissingKeyReturnsFalse(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))

	require.False(t, ioc.RemoveRegistration[*sensor](c))
	require.False(t, ioc.RemoveRegistrationNamed[device](c, "primary"))
	require.True(t, ioc.IsRegistered[device](c), "a miss must not disturb other registrations")
}

func TestRemoveRegistration_FreesTheKeyForReRegistration(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))
	require.True(t, ioc.RemoveRegistration[device](c))
	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))
}

func TestRemoveRegistrationNamed(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterTypeNamed[device](c, "primary", newSensorCtor(cnt, nil)))
	require.True(t, ioc.RemoveRegistrationNamed[device](c, "primary"))
	require.False(t, ioc.IsRegisteredNamed[device](c, "primary"))
}

// ── Depth guard ───────────────────────────────────────────────────────────────

type loop struct{}

func newLoop(_ *loop) *loop { return &loop{} }

func TestResolve_CyclicGraphTripsDepthGuard(t *testing.T) {
	c := ioc.New(ioc.WithMaxDepth(8))

	require.NoError(t, ioc.RegisterType[*loop](c, newLoop))

	_, err := ioc.Resolve[*loop](c)
	require.ErrorIs(t, err, ioc.ErrDepthExceeded)
	require.ErrorIs(t, err, ioc.ErrResolutionFailed, "the guard surfaces through the usual failure kind")
}

// ── Misc ──────────────────────────────────────────────────────────────────────

func TestKeys_ListsRegisteredIdentities(t *testing.T) {
	c := ioc.New()
	cnt := &counters{}

	require.NoError(t, ioc.RegisterType[device](c, newSensorCtor(cnt, nil)))
	require.NoError(t, ioc.RegisterTypeNamed[*sensor](c, "spare", newSensorCtor(cnt, nil)))

	keys := c.Keys()
	require.ElementsMatch(t, []ioc.Identity{
		ioc.Key[device](),
		ioc.Key[*sensor]().Named("spare"),
	}, keys)
}

func TestNew_ContainersAreIndependent(t *testing.T) {
	cnt := &counters{}
	a := ioc.New()
	b := ioc.New()

	require.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, ioc.RegisterType[device](a, newSensorCtor(cnt, nil)))
	require.False(t, ioc.IsRegistered[device](b))
}

func TestResolve_DelegateErrorIsWrapped(t *testing.T) {
	c := ioc.New()
	boom := errors.New("boom")

	require.NoError(t, ioc.RegisterDelegate[device](c, func() (device, error) { return nil, boom }))

	_, err := ioc.Resolve[device](c)
	require.ErrorIs(t, err, ioc.ErrResolutionFailed)
	require.ErrorIs(t, err, boom, "the underlying cause is preserved")
}
