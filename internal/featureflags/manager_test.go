package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("contact_export=on,legacy_profile=off,bulk_import=true,beta_search=false,csv_v2=1,old_media=0")

	assert.True(t, m.Enabled("contact_export", 1))
	assert.True(t, m.Enabled("bulk_import", 1))
	assert.True(t, m.Enabled("csv_v2", 1))

	assert.False(t, m.Enabled("legacy_profile", 1))
	assert.False(t, m.Enabled("beta_search", 1))
	assert.False(t, m.Enabled("old_media", 1))
	assert.False(t, m.Enabled("never_configured", 1))
}

func TestEnabled_PercentageRollout(t *testing.T) {
	m := NewManager("contact_export=100%,legacy_profile=0%,bulk_import=25%")

	assert.True(t, m.Enabled("contact_export", 1), "100% rollout is on for everyone")
	assert.False(t, m.Enabled("legacy_profile", 1), "0% rollout is off for everyone")

	first := m.Enabled("bulk_import", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("bulk_import", 42),
			"an account must keep its rollout cohort across evaluations")
	}

	assert.False(t, m.Enabled("bulk_import", 0),
		"partial rollouts need an authenticated account")
}

func TestEnabled_InvalidValues(t *testing.T) {
	m := NewManager("contact_export=maybe,bulk_import=abc%")

	assert.False(t, m.Enabled("contact_export", 1))
	assert.False(t, m.Enabled("bulk_import", 1))
}

func TestNewManager_SkipsMalformedPairs(t *testing.T) {
	m := NewManager(" nonsense ,contact_export=on, Bulk_Import = 20% ,legacy_profile=off")

	raw := m.Raw()
	require.Len(t, raw, 3)
	assert.Equal(t, "on", raw["contact_export"])
	assert.Equal(t, "20%", raw["bulk_import"])
	assert.Equal(t, "off", raw["legacy_profile"])
}

func TestSnapshot(t *testing.T) {
	m := NewManager("contact_export=on,legacy_profile=off,bulk_import=20%")

	snap := m.Snapshot(123)
	require.Len(t, snap, 3)
	assert.True(t, snap["contact_export"])
	assert.False(t, snap["legacy_profile"])
}

func TestEnabled_NilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled("contact_export", 1))
}
