package voice

import (
	"strconv"
	"sync"
	"time"
)

// MockWake is an in-memory WakeWordSource for tests and for running the
// daemon without a wake-word backend. Trigger fires registered callbacks
// synchronously, standing in for the detector's execution context.
type MockWake struct {
	Models   []string
	StartErr error
	StopErr  error

	mu        sync.Mutex
	order     []string
	callbacks map[string]WakeCallback
	listening bool
	nextID    int
}

var _ WakeWordSource = (*MockWake)(nil)

// NewMockWake creates a mock wake source with the given model names.
func NewMockWake(models ...string) *MockWake {
	return &MockWake{Models: models}
}

func (m *MockWake) StartListening() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StartErr != nil {
		return m.StartErr
	}
	m.listening = true
	return nil
}

func (m *MockWake) StopListening() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StopErr != nil {
		return m.StopErr
	}
	m.listening = false
	return nil
}

func (m *MockWake) AddCallback(fn WakeCallback) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.callbacks == nil {
		m.callbacks = make(map[string]WakeCallback)
	}
	m.nextID++
	id := "cb-" + strconv.Itoa(m.nextID)
	m.callbacks[id] = fn
	m.order = append(m.order, id)
	return id
}

func (m *MockWake) RemoveCallback(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.callbacks, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *MockWake) AvailableModels() []string { return m.Models }

func (m *MockWake) IsListening() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listening
}

// Trigger simulates a wake-word detection, invoking callbacks on the
// caller's goroutine.
func (m *MockWake) Trigger(word string, confidence float64) {
	m.mu.Lock()
	snapshot := make([]WakeCallback, 0, len(m.order))
	for _, id := range m.order {
		if fn, ok := m.callbacks[id]; ok {
			snapshot = append(snapshot, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range snapshot {
		fn(word, confidence)
	}
}

// MockTranscriber is an in-memory Transcriber. It returns Text (or Err)
// after Delay, optionally waiting for Gate to be closed first so tests can
// hold a cycle open deterministically.
type MockTranscriber struct {
	Text        string
	Err         error
	Delay       time.Duration
	Gate        chan struct{}
	Unavailable bool
	Info        map[string]string

	mu    sync.Mutex
	calls int
}

var _ Transcriber = (*MockTranscriber)(nil)

func (m *MockTranscriber) RecordAndTranscribe() (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	if m.Gate != nil {
		<-m.Gate
	}
	return m.Text, m.Err
}

func (m *MockTranscriber) IsAvailable() bool { return !m.Unavailable }

func (m *MockTranscriber) BackendInfo() map[string]string {
	if m.Info != nil {
		return m.Info
	}
	return map[string]string{"backend": "mock"}
}

// Calls returns how many transcriptions were requested.
func (m *MockTranscriber) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockSpeaker is an in-memory Speaker recording everything spoken.
type MockSpeaker struct {
	Err         error
	Unavailable bool

	mu     sync.Mutex
	spoken []string
}

var _ Speaker = (*MockSpeaker)(nil)

func (m *MockSpeaker) Speak(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.spoken = append(m.spoken, text)
	return nil
}

func (m *MockSpeaker) IsAvailable() bool { return !m.Unavailable }

// Spoken returns everything spoken so far.
func (m *MockSpeaker) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken))
	copy(out, m.spoken)
	return out
}
