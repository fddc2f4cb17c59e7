// Package xmetric exports rolling window extremes to prometheus.
package xmetric

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"xmono/xlog"
	"xmono/xwindow"
)

func floatLess(a, b float64) bool { return a < b }

// WindowCollector owns one float64 tracker per series. Trackers are not
// goroutine safe, so every access goes through mu; Observe may be called
// while a scrape is running.
type WindowCollector struct {
	mu      sync.Mutex
	cfg     xwindow.Config
	series  map[string]*xwindow.Tracker[float64]
	dropped map[string]uint64

	maxDesc     *prometheus.Desc
	minDesc     *prometheus.Desc
	samplesDesc *prometheus.Desc
	droppedDesc *prometheus.Desc
}

func NewWindowCollector(namespace string, cfg xwindow.Config, constLabels prometheus.Labels) (*WindowCollector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	labels := []string{"series"}
	name := func(s string) string { return prometheus.BuildFQName(namespace, "window", s) }
	return &WindowCollector{
		cfg:     cfg,
		series:  make(map[string]*xwindow.Tracker[float64]),
		dropped: make(map[string]uint64),
		maxDesc: prometheus.NewDesc(name("max"),
			"Largest value in the sliding window.", labels, constLabels),
		minDesc: prometheus.NewDesc(name("min"),
			"Smallest value in the sliding window.", labels, constLabels),
		samplesDesc: prometheus.NewDesc(name("wedge_samples"),
			"Samples held by the max and min wedges.", []string{"series", "wedge"}, constLabels),
		droppedDesc: prometheus.NewDesc(name("dropped_total"),
			"Samples rejected for arriving out of order.", labels, constLabels),
	}, nil
}

// Observe feeds value at pos into the named series, creating it on first use.
func (c *WindowCollector) Observe(series string, pos int64, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.series[series]
	if !ok {
		var err error
		if t, err = xwindow.New[float64](c.cfg, floatLess); err != nil {
			return err
		}
		c.series[series] = t
	}
	if err := t.Push(pos, value); err != nil {
		if errors.Is(err, xwindow.ErrOutOfOrder) {
			c.dropped[series]++
		}
		return errors.Wrapf(err, "series %s", series)
	}
	return nil
}

// Extremes returns the current window max and min of a series.
func (c *WindowCollector) Extremes(series string) (hi, lo float64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.series[series]
	if !ok {
		return 0, 0, errors.Wrapf(xwindow.ErrEmpty, "series %s", series)
	}
	maxS, err := t.Max()
	if err != nil {
		return 0, 0, err
	}
	minS, err := t.Min()
	if err != nil {
		return 0, 0, err
	}
	return maxS.Value, minS.Value, nil
}

func (c *WindowCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxDesc
	ch <- c.minDesc
	ch <- c.samplesDesc
	ch <- c.droppedDesc
}

func (c *WindowCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.series))
	for name := range c.series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.series[name]
		if s, err := t.Max(); err == nil {
			pushMetric(ch, c.maxDesc, prometheus.GaugeValue, s.Value, name)
		}
		if s, err := t.Min(); err == nil {
			pushMetric(ch, c.minDesc, prometheus.GaugeValue, s.Value, name)
		}
		maxLen, minLen := t.Len()
		pushMetric(ch, c.samplesDesc, prometheus.GaugeValue, float64(maxLen), name, "max")
		pushMetric(ch, c.samplesDesc, prometheus.GaugeValue, float64(minLen), name, "min")
		pushMetric(ch, c.droppedDesc, prometheus.CounterValue, float64(c.dropped[name]), name)
	}
}

func pushMetric(ch chan<- prometheus.Metric, desc *prometheus.Desc, typ prometheus.ValueType, value float64, labelValues ...string) {
	m, err := prometheus.NewConstMetric(desc, typ, value, labelValues...)
	if err != nil {
		xlog.Errorf("pushMetric, NewConstMetric err=%v", err)
		return
	}
	ch <- m
}
