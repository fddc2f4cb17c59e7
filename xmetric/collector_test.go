package xmetric

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmono/xwindow"
)

func TestWindowCollector(t *testing.T) {
	c, err := NewWindowCollector("xmono", xwindow.Config{Window: 3}, nil)
	require.NoError(t, err)

	for i, v := range []float64{5, 1, 3, 2, 4} {
		require.NoError(t, c.Observe("rtt", int64(i), v))
	}
	require.NoError(t, c.Observe("cpu", 0, 0.5))
	assert.Error(t, c.Observe("cpu", 0, 0.9))

	hi, lo, err := c.Extremes("rtt")
	require.NoError(t, err)
	assert.Equal(t, 4.0, hi)
	assert.Equal(t, 2.0, lo)
	_, _, err = c.Extremes("missing")
	assert.ErrorIs(t, err, xwindow.ErrEmpty)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	expected := `
# HELP xmono_window_dropped_total Samples rejected for arriving out of order.
# TYPE xmono_window_dropped_total counter
xmono_window_dropped_total{series="cpu"} 1
xmono_window_dropped_total{series="rtt"} 0
# HELP xmono_window_max Largest value in the sliding window.
# TYPE xmono_window_max gauge
xmono_window_max{series="cpu"} 0.5
xmono_window_max{series="rtt"} 4
# HELP xmono_window_min Smallest value in the sliding window.
# TYPE xmono_window_min gauge
xmono_window_min{series="cpu"} 0.5
xmono_window_min{series="rtt"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"xmono_window_max", "xmono_window_min", "xmono_window_dropped_total"))

	assert.Equal(t, 10, testutil.CollectAndCount(c))
}

func TestWindowCollectorBadConfig(t *testing.T) {
	_, err := NewWindowCollector("xmono", xwindow.Config{}, nil)
	assert.ErrorIs(t, err, xwindow.ErrInvalidConfig)
}

func TestWindowCollectorLargeWindow(t *testing.T) {
	c, err := NewWindowCollector("xmono", xwindow.Config{Window: 1 << 50}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Observe("ns", 1e9, 3))
	require.NoError(t, c.Observe("ns", 2e9, 1))
	hi, lo, err := c.Extremes("ns")
	require.NoError(t, err)
	assert.Equal(t, 3.0, hi)
	assert.Equal(t, 1.0, lo)
}
