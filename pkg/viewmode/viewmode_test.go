package viewmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name          string
		modeParam     string
		legacyShowAll string
		expected      ViewMode
		expectErr     bool
	}{
		{"explicit individual", "individual", "", Individual, false},
		{"explicit all", "all", "", AllMembers, false},
		{"mode wins over legacy", "individual", "true", Individual, false},
		{"legacy showAll true", "", "true", AllMembers, false},
		{"legacy showAll false", "", "false", Individual, false},
		{"empty defaults to individual", "", "", Individual, false},
		{"unknown mode", "everyone", "", "", true},
		{"invalid legacy value", "", "yes please", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mode, err := Normalize(tc.modeParam, tc.legacyShowAll)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, mode)
		})
	}
}

func TestCanEdit(t *testing.T) {
	t.Run("individual view is always editable", func(t *testing.T) {
		assert.True(t, CanEdit(Individual, 1, 2))
		assert.True(t, CanEdit(Individual, 5, 5))
	})

	t.Run("all-members view is editable only for the owner", func(t *testing.T) {
		assert.True(t, CanEdit(AllMembers, 7, 7))
		assert.False(t, CanEdit(AllMembers, 7, 8))
	})
}
