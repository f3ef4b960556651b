package status

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

const (
	INFO = iota
	ERROR
	PROGRESS
)

type Status struct {
	Message  string
	Time     time.Time
	Type     int
	Progress float32
}

// Reporter receives human readable progress of a conversion.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Report(s Status)
}

type ReporterFunc func(s Status)

func (f ReporterFunc) Report(s Status) { f(s) }

// Discard drops every status
var Discard Reporter = ReporterFunc(func(Status) {})

type logReporter struct {
	l *log.Logger
}

// NewLogReporter prints statuses using l, or the std logger when l is nil
func NewLogReporter(l *log.Logger) Reporter {
	return &logReporter{l: l}
}

func (lr *logReporter) Report(s Status) {
	var msg string
	switch s.Type {
	case ERROR:
		msg = fmt.Sprintf("[status] ERROR %s", s.Message)
	case PROGRESS:
		msg = fmt.Sprintf("[status] %5.1f%% %s", s.Progress*100, s.Message)
	default:
		msg = fmt.Sprintf("[status] %s", s.Message)
	}
	if lr.l != nil {
		lr.l.Println(msg)
	} else {
		log.Println(msg)
	}
}

// Recorder keeps every status, handy in tests
type Recorder struct {
	lock     sync.Mutex
	Statuses []Status
}

func (r *Recorder) Report(s Status) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Statuses = append(r.Statuses, s)
}

func (r *Recorder) Messages(_type int) []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]string, 0)
	for _, s := range r.Statuses {
		if s.Type == _type {
			result = append(result, s.Message)
		}
	}
	return result
}

func report(r Reporter, msg string, _type int, progress float32) {
	if r == nil {
		return
	}
	if math.IsNaN(float64(progress)) || math.IsInf(float64(progress), 0) {
		progress = 0
	}
	r.Report(Status{
		Message:  msg,
		Time:     time.Now(),
		Type:     _type,
		Progress: progress})
}

func Info(r Reporter, format string, a ...interface{}) {
	report(r, fmt.Sprintf(format, a...), INFO, 0.0)
}

func Error(r Reporter, format string, a ...interface{}) {
	report(r, fmt.Sprintf(format, a...), ERROR, 0.0)
}

func Progress(r Reporter, progress float32, format string, a ...interface{}) {
	report(r, fmt.Sprintf(format, a...), PROGRESS, progress)
}

// Counter reports progress of total steps, each call to Step advances it by one.
// Safe to share between workers.
type Counter struct {
	lock  sync.Mutex
	r     Reporter
	what  string
	done  int
	total int
	every int
}

func NewCounter(r Reporter, what string, total int) *Counter {
	every := total / 20
	if every < 1 {
		every = 1
	}
	return &Counter{r: r, what: what, total: total, every: every}
}

func (c *Counter) Step() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.done++
	if c.done%c.every == 0 || c.done == c.total {
		var p float32 = 1
		if c.total != 0 {
			p = float32(c.done) / float32(c.total)
		}
		Progress(c.r, p, "%s %d/%d", c.what, c.done, c.total)
	}
}
