package metrics

import (
	"sync/atomic"
	"time"

	"tictac/game"
)

type SearchMetric struct {
	Iterations int
	Confidence float64
	Duration   time.Duration
	Episodes   int
	TreeSize   int
	RootVisits int
}

type MoveMetric struct {
	Step  int
	Mark  game.Mark
	Agent string
	SearchMetric
}

type GameMetric struct {
	StartingMark game.Mark
	Winner       string // "X", "O" or "" on a tie
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

type Collector interface {
	Start(iterations int, confidence float64)
	AddEpisode()
	AddNodes(n int)
	Complete(rootVisits int) SearchMetric
}

type collector struct {
	iterations int
	confidence float64
	startTime  time.Time
	episodes   atomic.Int32
	nodes      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations int, confidence float64) {
	m.startTime = time.Now()
	m.iterations = iterations
	m.confidence = confidence
	m.episodes.Store(0)
	m.nodes.Store(1) // root
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int32(n))
}

func (m *collector) Complete(rootVisits int) SearchMetric {
	return SearchMetric{
		Iterations: m.iterations,
		Confidence: m.confidence,
		Duration:   time.Since(m.startTime),
		Episodes:   int(m.episodes.Load()),
		TreeSize:   int(m.nodes.Load()),
		RootVisits: rootVisits,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int, confidence float64) {}
func (m *dummyCollector) AddEpisode()                              {}
func (m *dummyCollector) AddNodes(n int)                           {}
func (m *dummyCollector) Complete(rootVisits int) SearchMetric     { return SearchMetric{} }
