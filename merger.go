package lanes

import (
	"sync"
)

// errorMerger allows to listen to multiple error channels.
type errorMerger struct {
	wg        sync.WaitGroup
	errorChan chan error
}

// mergeErrors merges error channels from all stages into one. Returned
// channel is closed when all stage channels are closed.
func mergeErrors(errcList ...<-chan error) <-chan error {
	m := errorMerger{
		errorChan: make(chan error, len(errcList)),
	}
	m.wg.Add(len(errcList))
	for _, ec := range errcList {
		go m.listen(ec)
	}
	go m.wait()
	return m.errorChan
}

// listen forwards all errors until channel is closed.
func (m *errorMerger) listen(ec <-chan error) {
	for err := range ec {
		m.errorChan <- err
	}
	m.wg.Done()
}

// wait waits for all underlying error channels to be closed and then
// closes the output error channel.
func (m *errorMerger) wait() {
	m.wg.Wait()
	close(m.errorChan)
}
