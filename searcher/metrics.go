package searcher

import "time"

// MoveMetrics summarizes the simulations behind one move decision.
type MoveMetrics struct {
	StartTime        time.Time
	Duration         time.Duration
	Episodes         int64
	FullPlayouts     int64
	CutoffJudgements int64
	TreeReused       bool
}

type MetricsCollector interface {
	Start()
	AddEpisode()
	AddFullPlayout()
	AddCutoff()
	SetTreeReused(bool)
	Complete() MoveMetrics
}

type metricsCollector struct {
	startTime        time.Time
	episodes         int64
	fullPlayouts     int64
	cutoffJudgements int64
	treeReused       bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.episodes = 0
	m.fullPlayouts = 0
	m.cutoffJudgements = 0
}

func (m *metricsCollector) AddEpisode()     { m.episodes++ }
func (m *metricsCollector) AddFullPlayout() { m.fullPlayouts++ }
func (m *metricsCollector) AddCutoff()      { m.cutoffJudgements++ }
func (m *metricsCollector) SetTreeReused(v bool) { m.treeReused = v }

func (m *metricsCollector) Complete() MoveMetrics {
	return MoveMetrics{
		StartTime:        m.startTime,
		Duration:         time.Since(m.startTime),
		Episodes:         m.episodes,
		FullPlayouts:     m.fullPlayouts,
		CutoffJudgements: m.cutoffJudgements,
		TreeReused:       m.treeReused,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return noMetricsCollector{}
}

func (noMetricsCollector) Start()                {}
func (noMetricsCollector) AddEpisode()           {}
func (noMetricsCollector) AddFullPlayout()       {}
func (noMetricsCollector) AddCutoff()            {}
func (noMetricsCollector) SetTreeReused(bool)    {}
func (noMetricsCollector) Complete() MoveMetrics { return MoveMetrics{} }
