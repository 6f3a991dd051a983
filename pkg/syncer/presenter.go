package syncer

import (
	"fmt"
	"sync"
	"time"
)

const (
	// statusTag prefixes every transient message in the status line.
	statusTag = "sync: "

	// maxLineLen bounds the rendered message length.
	maxLineLen = 100

	// DefaultMessageTimeout is how long a transient message stays visible.
	DefaultMessageTimeout = 5 * time.Second
)

// StatusMessage is a transient user-facing message with a display window.
type StatusMessage struct {
	Text       string
	Timeout    time.Duration
	EnqueuedAt time.Time
}

// Presenter renders one line of text describing what is happening now:
// the current transient message if one is within its window, else the next
// queued message, else a fallback derived from the controller state.
//
// The host re-evaluates Line on a fixed tick; the queue is safe for use from
// a tick goroutine concurrent with the controller.
type Presenter struct {
	stateFn    func() State
	lastSyncFn func() time.Time
	now        func() time.Time

	mu      sync.Mutex
	queue   []StatusMessage
	current *StatusMessage
}

// NewPresenter creates a presenter reading controller state through the given
// accessors.
func NewPresenter(stateFn func() State, lastSyncFn func() time.Time) *Presenter {
	return &Presenter{
		stateFn:    stateFn,
		lastSyncFn: lastSyncFn,
		now:        time.Now,
	}
}

// WithClock overrides the presenter's time source. Used by tests.
func (p *Presenter) WithClock(now func() time.Time) *Presenter {
	p.now = now
	return p
}

// Enqueue appends a message with the default timeout.
func (p *Presenter) Enqueue(text string) {
	p.EnqueueTimeout(text, DefaultMessageTimeout)
}

// EnqueueTimeout appends a message with an explicit display window.
func (p *Presenter) EnqueueTimeout(text string, timeout time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, StatusMessage{
		Text:       text,
		Timeout:    timeout,
		EnqueuedAt: p.now(),
	})
}

// Line renders the status line for the current instant.
func (p *Presenter) Line() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()

	if p.current != nil && now.Sub(p.current.EnqueuedAt) < p.current.Timeout {
		return render(p.current.Text)
	}
	p.current = nil

	if len(p.queue) > 0 {
		msg := p.queue[0]
		p.queue = p.queue[1:]
		// The display window starts when the message becomes current.
		msg.EnqueuedAt = now
		p.current = &msg
		return render(msg.Text)
	}

	if st := p.stateFn(); st != StateIdle {
		return st.Progress()
	}

	last := p.lastSyncFn()
	if last.IsZero() {
		return "ready"
	}
	return "last update " + humanizeSince(now.Sub(last))
}

// render prefixes and truncates a transient message.
func render(text string) string {
	line := statusTag + text
	if len(line) <= maxLineLen {
		return line
	}
	return line[:maxLineLen-3] + "..."
}

// humanizeSince renders a duration as a coarse "N units ago" string.
func humanizeSince(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Notifier adapts the presenter to the notification sink interface so every
// reported outcome also lands in the status line queue.
func (p *Presenter) Notifier() *presenterNotifier {
	return &presenterNotifier{p: p}
}

type presenterNotifier struct {
	p *Presenter
}

func (n *presenterNotifier) Info(message string)    { n.p.Enqueue(message) }
func (n *presenterNotifier) Success(message string) { n.p.Enqueue(message) }
func (n *presenterNotifier) Warn(message string)    { n.p.Enqueue(message) }
func (n *presenterNotifier) Error(message string, err error) {
	if err != nil {
		n.p.Enqueue(message + ": " + err.Error())
		return
	}
	n.p.Enqueue(message)
}
