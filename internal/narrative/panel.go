package narrative

// State is the lifecycle of a narrative display slot.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Slot tracks one on-screen narrative panel: idle -> loading ->
// succeeded | failed. Each Start issues a new ticket; Finish only applies a
// result carrying the latest ticket, so responses to superseded requests
// are dropped. A Slot is owned by a single goroutine (the UI update loop).
type Slot struct {
	state  State
	ticket uint64
	result Result
}

// Start moves the slot to loading and returns the ticket the eventual
// result must present to Finish.
func (s *Slot) Start() uint64 {
	s.ticket++
	s.state = StateLoading
	s.result = Result{}
	return s.ticket
}

// Finish records r if ticket is the latest one issued and the slot is
// still waiting for it. It reports whether r was applied.
func (s *Slot) Finish(ticket uint64, r Result) bool {
	if ticket != s.ticket || s.state != StateLoading {
		return false
	}
	s.result = r
	if r.OK() {
		s.state = StateSucceeded
	} else {
		s.state = StateFailed
	}
	return true
}

// Clear returns the slot to idle and invalidates any in-flight ticket.
func (s *Slot) Clear() {
	s.ticket++
	s.state = StateIdle
	s.result = Result{}
}

func (s *Slot) State() State { return s.state }

// Result returns the last applied result. Meaningful only in the
// succeeded and failed states.
func (s *Slot) Result() Result { return s.result }

// Text is what the panel shows: the narrative, or the fallback after a
// failure. Empty while idle or loading.
func (s *Slot) Text() string {
	switch s.state {
	case StateSucceeded, StateFailed:
		return s.result.Display()
	}
	return ""
}
