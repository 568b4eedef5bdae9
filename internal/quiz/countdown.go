package quiz

import (
	"sync"
	"time"
)

const (
	// TimerTicks is the number of ticks a question may take.
	TimerTicks = 10
	// TickInterval is the time between two ticks.
	TickInterval = time.Second
	// ResultDwell is how long a timed-out result stays visible before the next question.
	ResultDwell = 2 * time.Second
)

// Tick is sent by a Countdown. Remaining reaches 0 on the last tick.
type Tick struct {
	Generation int
	Remaining  int
}

// Timer is a running countdown of one question.
type Timer interface {
	Stop()
}

// TimerFunc starts the countdown of the question identified by generation.
type TimerFunc func(generation int) Timer

// Countdown sends ticks on a channel until it runs out or is stopped.
type Countdown struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartCountdown starts sending total ticks, one per interval, tagged with generation.
func StartCountdown(ticks chan<- Tick, generation, total int, interval time.Duration) *Countdown {
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(ticks, generation, total, interval)
	return c
}

func (c *Countdown) run(ticks chan<- Tick, generation, total int, interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for remaining := total - 1; remaining >= 0; remaining-- {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}
		select {
		case <-c.stop:
			return
		case ticks <- Tick{Generation: generation, Remaining: remaining}:
		}
	}
}

// Stop stops the countdown and waits for its goroutine to exit. It is idempotent.
func (c *Countdown) Stop() {
	c.once.Do(func() {
		close(c.stop)
	})
	<-c.done
}

// NewCountdownFunc returns a TimerFunc starting a TimerTicks countdown on ticks.
func NewCountdownFunc(ticks chan<- Tick, interval time.Duration) TimerFunc {
	return func(generation int) Timer {
		return StartCountdown(ticks, generation, TimerTicks, interval)
	}
}
