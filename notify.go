package stopwatch

// Topic names one of the engine's notification channels.
type Topic int

const (
	Started Topic = iota
	Stopped
	Reset
)

// Fixed messages carried by each topic.
const (
	StartedMessage = "Stopwatch Started!"
	StoppedMessage = "Stopwatch Stopped!"
	ResetMessage   = "Stopwatch Reset!"
)

func (t Topic) String() string {
	switch t {
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// Message returns the text delivered to subscribers of t.
func (t Topic) Message() string {
	switch t {
	case Started:
		return StartedMessage
	case Stopped:
		return StoppedMessage
	case Reset:
		return ResetMessage
	default:
		return ""
	}
}

// Handler receives a notification message.
type Handler func(message string)

// notifier keeps an ordered observer list per topic.
// Handlers run on the caller's goroutine, in subscription order.
type notifier struct {
	handlers map[Topic][]Handler
}

func (n *notifier) subscribe(topic Topic, h Handler) {
	if h == nil {
		return
	}
	if n.handlers == nil {
		n.handlers = make(map[Topic][]Handler)
	}
	n.handlers[topic] = append(n.handlers[topic], h)
}

func (n *notifier) emit(topic Topic) {
	msg := topic.Message()
	for _, h := range n.handlers[topic] {
		h(msg)
	}
}
