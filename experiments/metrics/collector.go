package metrics

import (
	"time"
)

// SearchMetric describes one minimax search.
type SearchMetric struct {
	Depth        int
	Duration     time.Duration
	Value        float64
	Nodes        int
	Prunes       int
	EarlyRejects int
	Terminals    int
	AlphaUpdates int
	BetaUpdates  int
}

// MoveMetric is a search made for one real move of a game.
type MoveMetric struct {
	Step   int
	Player int // Player ID
	Row    int
	Col    int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector counts search events. A collector belongs to a single search
// and is not safe for concurrent use.
type Collector interface {
	Start(depth int)
	AddNode()
	AddPrune()
	AddEarlyReject()
	AddTerminal()
	AddAlphaUpdate()
	AddBetaUpdate()
	Complete(value float64) SearchMetric
}

// Observer receives the metric of every completed search.
type Observer interface {
	ObserveSearch(metric SearchMetric)
}

type collector struct {
	startTime time.Time
	metric    SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.metric = SearchMetric{Depth: depth}
}

func (m *collector) AddNode() {
	m.metric.Nodes++
}

func (m *collector) AddPrune() {
	m.metric.Prunes++
}

func (m *collector) AddEarlyReject() {
	m.metric.EarlyRejects++
}

func (m *collector) AddTerminal() {
	m.metric.Terminals++
}

func (m *collector) AddAlphaUpdate() {
	m.metric.AlphaUpdates++
}

func (m *collector) AddBetaUpdate() {
	m.metric.BetaUpdates++
}

func (m *collector) Complete(value float64) SearchMetric {
	out := m.metric
	out.Duration = time.Since(m.startTime)
	out.Value = value
	return out
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)                     {}
func (m *dummyCollector) AddNode()                            {}
func (m *dummyCollector) AddPrune()                           {}
func (m *dummyCollector) AddEarlyReject()                     {}
func (m *dummyCollector) AddTerminal()                        {}
func (m *dummyCollector) AddAlphaUpdate()                     {}
func (m *dummyCollector) AddBetaUpdate()                      {}
func (m *dummyCollector) Complete(value float64) SearchMetric { return SearchMetric{Value: value} }
