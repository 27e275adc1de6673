package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{"enabled flag", New(map[string]bool{FlagBrokenContributor: true}), FlagBrokenContributor, true},
		{"disabled flag", New(map[string]bool{FlagBrokenContributor: false}), FlagBrokenContributor, false},
		{"unknown flag", New(map[string]bool{FlagBrokenContributor: true}), "no-such-flag", false},
		{"nil registry", nil, FlagToolbarTracing, false},
		{"nil map", New(nil), FlagToolbarTracing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_All(t *testing.T) {
	require.Equal(t, map[string]bool{}, (*Registry)(nil).All())
	require.Equal(t, map[string]bool{}, New(nil).All())

	r := New(map[string]bool{FlagBrokenContributor: true, FlagToolbarTracing: false})
	require.Equal(t, map[string]bool{FlagBrokenContributor: true, FlagToolbarTracing: false}, r.All())
}

func TestRegistry_AllIsACopy(t *testing.T) {
	r := New(map[string]bool{FlagBrokenContributor: true})

	all := r.All()
	all[FlagBrokenContributor] = false
	all[FlagToolbarTracing] = true

	require.True(t, r.Enabled(FlagBrokenContributor))
	require.False(t, r.Enabled(FlagToolbarTracing))
}
