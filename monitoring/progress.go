package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// AdvanceTo moves the finished count forward to n. It never moves backward.
func (b *ProgressBar) AdvanceTo(n uint64) {
	b.Lock()
	defer b.Unlock()

	if n > b.Finished {
		b.Finished = n
	}
}
