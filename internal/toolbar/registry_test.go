package toolbar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistry_NewIsEmpty(t *testing.T) {
	r := NewRegistry()

	require.Equal(t, 0, r.Len())
	require.Empty(t, r.Snapshot())
	require.Empty(t, r.IDs())
}

func TestRegistry_Register_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "b", nil)
	mustRegister(t, r, "a", nil)
	mustRegister(t, r, "c", nil)

	require.Equal(t, []string{"b", "a", "c"}, r.IDs())
}

func TestRegistry_Register_RejectsNilUnit(t *testing.T) {
	r := NewRegistry()

	err := r.Register("x", Contribution{})

	require.ErrorIs(t, err, ErrNilUnit)
	require.False(t, r.Has("x"))
}

func TestRegistry_Register_TwiceKeepsOneEntryWithSecondContribution(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("x", Contribution{Unit: Static("first"), Position: At(2), Isolation: NoopIsolation}))
	require.NoError(t, r.Register("x", Contribution{Unit: Static("second")}))

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, "x", snap[0].ID)

	view, err := snap[0].Contribution.Unit.Render()
	require.NoError(t, err)
	require.Equal(t, "second", view)
	// Replacement does not merge fields from the earlier contribution.
	require.Nil(t, snap[0].Contribution.Position)
	require.Nil(t, snap[0].Contribution.Isolation)
}

func TestRegistry_Register_ReplaceKeepsSlot(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", nil)
	mustRegister(t, r, "b", nil)
	mustRegister(t, r, "a", At(0))

	require.Equal(t, []string{"a", "b"}, r.IDs())
}

func TestRegistry_Unregister_RemovesEntry(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", nil)
	mustRegister(t, r, "b", nil)

	r.Unregister("a")

	require.Equal(t, []string{"b"}, r.IDs())
	require.False(t, r.Has("a"))
	_, ok := r.Get("a")
	require.False(t, ok)
}

func TestRegistry_Unregister_AbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", nil)
	before := r.Snapshot()

	require.NotPanics(t, func() { r.Unregister("missing") })

	require.Equal(t, before, r.Snapshot())
}

func TestRegistry_ReregisterAfterUnregisterMovesToEnd(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", nil)
	mustRegister(t, r, "b", nil)
	r.Unregister("a")
	mustRegister(t, r, "a", nil)

	require.Equal(t, []string{"b", "a"}, r.IDs())
}

func TestRegistry_Snapshot_IsFreshCopy(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", nil)

	snap := r.Snapshot()
	snap[0].ID = "mutated"
	mustRegister(t, r, "b", nil)

	require.Equal(t, []string{"a", "b"}, r.IDs())
	require.Len(t, r.Snapshot(), 2)
}

func TestRegistry_IDs_IsCopy(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, "a", nil)

	ids := r.IDs()
	ids[0] = "z"

	require.Equal(t, []string{"a"}, r.IDs())
}

// TestRegistry_Property_NetState checks that after any sequence of register
// and unregister calls, the registry holds exactly the identifiers still
// registered, each with its latest contribution, ordered by the registration
// that created its current slot.
func TestRegistry_Property_NetState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry()

		var order []string
		latest := make(map[string]string)

		ids := []string{"a", "b", "c", "d", "e"}
		numOps := rapid.IntRange(0, 60).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			id := rapid.SampledFrom(ids).Draw(t, "id")
			if rapid.Bool().Draw(t, "register") {
				label := fmt.Sprintf("%s#%d", id, i)
				if err := r.Register(id, Contribution{Unit: Static(label)}); err != nil {
					t.Fatalf("register: %v", err)
				}
				if _, ok := latest[id]; !ok {
					order = append(order, id)
				}
				latest[id] = label
				continue
			}

			r.Unregister(id)
			if _, ok := latest[id]; ok {
				delete(latest, id)
				for j, o := range order {
					if o == id {
						order = append(order[:j], order[j+1:]...)
						break
					}
				}
			}
		}

		snap := r.Snapshot()
		if len(snap) != len(order) {
			t.Fatalf("expected %d entries, got %d", len(order), len(snap))
		}
		for i, e := range snap {
			if e.ID != order[i] {
				t.Fatalf("entry %d: expected id %q, got %q", i, order[i], e.ID)
			}
			view, _ := e.Contribution.Unit.Render()
			if view != latest[e.ID] {
				t.Fatalf("entry %q: expected latest %q, got %q", e.ID, latest[e.ID], view)
			}
		}
	})
}
