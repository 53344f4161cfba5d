// internal/core/domain/signals/dedup.go
package signals

import "sync"

// DedupState хранит последний отправленный сигнал.
// Меняется только после успешной отправки; между перезапусками не сохраняется.
type DedupState struct {
	mu   sync.RWMutex
	last Signal
}

// NewDedupState - состояние на старте (None)
func NewDedupState() *DedupState {
	return &DedupState{last: None}
}

// ShouldDispatch - отправлять только новый направленный сигнал
func (s *DedupState) ShouldDispatch(sig Signal) bool {
	if sig == None || sig == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sig != s.last
}

// RecordDispatched фиксирует успешно отправленный сигнал
func (s *DedupState) RecordDispatched(sig Signal) {
	s.mu.Lock()
	s.last = sig
	s.mu.Unlock()
}

// Last - последний отправленный сигнал
func (s *DedupState) Last() Signal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == "" {
		return None
	}
	return s.last
}
