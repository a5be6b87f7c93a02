package planck

import (
	"context"
	"fmt"
	"time"
)

const DefaultScanInterval = 10 * time.Millisecond

// ProcessEvents reads events from source and handles them until ctx is done
// or the source fails. Between events the leader timeout is polled every
// scanInterval. Events are handled on the calling goroutine only.
func (d *Dispatcher) ProcessEvents(ctx context.Context, source EventSource, scanInterval time.Duration) error {
	if scanInterval <= 0 {
		scanInterval = DefaultScanInterval
	}

	eventCh := make(chan KeyEvent)
	errCh := make(chan error, 1)
	go func() {
		for {
			ev, err := source.ReadEvent()
			if err != nil {
				errCh <- err
				return
			}

			select {
			case eventCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventCh:
			d.Process(ev)
		case <-ticker.C:
			d.Poll()
		case err := <-errCh:
			return fmt.Errorf("read event: %w", err)
		}
	}
}
