package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounterWith(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounterWith(reg)

	c.WithLabelValues(PersonCreated).Inc()
	c.WithLabelValues(PersonCreated).Inc()
	c.WithLabelValues(LoginFailed).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues(PersonCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.WithLabelValues(LoginFailed)))

	n, err := testutil.GatherAndCount(reg, "personmanager_general_counters")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
