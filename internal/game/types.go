package game

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// FrameCounters describes the last drawn frame.
type FrameCounters struct {
	ColumnsHit  int // Columns that produced a wall strip
	ColumnsOpen int // Columns whose ray left the map or gave up
}
