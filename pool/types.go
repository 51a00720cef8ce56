package pool

// Job is a single, one-shot unit of work. Run is called exactly once, on
// whichever worker dequeues the job.
type Job interface {
	Run()
}

// JobFunc adapts an ordinary closure to Job.
type JobFunc func()

// Run calls f().
func (f JobFunc) Run() {
	f()
}

// Strategy selects how workers wait for jobs.
type Strategy int

const (
	// StrategyBlocking parks idle workers until a job arrives or the pool closes.
	StrategyBlocking Strategy = iota
	// StrategyPolling has idle workers poll the queue with backoff between misses.
	StrategyPolling
)

func (s Strategy) String() string {
	switch s {
	case StrategyBlocking:
		return "blocking"
	case StrategyPolling:
		return "polling"
	default:
		return "unknown"
	}
}
