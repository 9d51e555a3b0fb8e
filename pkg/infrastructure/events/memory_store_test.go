package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []Event
	err    error
	done   chan struct{}
}

func newRecordingHandler(err error) *recordingHandler {
	return &recordingHandler{err: err, done: make(chan struct{}, 16)}
}

func (h *recordingHandler) Handle(event Event) error {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	h.done <- struct{}{}
	return h.err
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return true
}

func (h *recordingHandler) wait(t *testing.T) {
	t.Helper()
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}
}

var at = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestAppendAssignsStreamVersions(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	require.NoError(t, store.AppendEvent("component-CPU", NewEvent(CostRecordedEvent, "component-CPU", nil, at)))
	require.NoError(t, store.AppendEvent("inventory-1", NewEvent(InventoryStateChangedEvent, "inventory-1", nil, at)))
	require.NoError(t, store.AppendEvent("component-CPU", NewEvent(CostRecordedEvent, "component-CPU", nil, at.Add(time.Minute))))

	cpu, err := store.ReadEvents("component-CPU", 1)
	require.NoError(t, err)
	require.Len(t, cpu, 2)
	assert.Equal(t, 1, cpu[0].Version())
	assert.Equal(t, 2, cpu[1].Version())
	assert.Equal(t, at.Add(time.Minute), cpu[1].Timestamp())

	fromSecond, err := store.ReadEvents("component-CPU", 2)
	require.NoError(t, err)
	assert.Len(t, fromSecond, 1)

	beyond, err := store.ReadEvents("component-CPU", 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "inventory-1", all[1].StreamID())

	tail, err := store.ReadAllEvents(2)
	require.NoError(t, err)
	assert.Len(t, tail, 1)

	none, err := store.ReadAllEvents(10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReadReturnsCopies(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	require.NoError(t, store.AppendEvent("s", NewEvent(CostRecordedEvent, "s", nil, at)))

	all, _ := store.ReadAllEvents(0)
	all[0] = nil

	again, _ := store.ReadAllEvents(0)
	require.Len(t, again, 1)
	assert.NotNil(t, again[0])
}

func TestSubscribersReceiveMatchingEvents(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	handler := newRecordingHandler(nil)
	require.NoError(t, store.Subscribe([]string{ShortageIdentifiedEvent}, handler))

	require.NoError(t, store.AppendEvent("revision-A", NewEvent(RevisionBuildableEvent, "revision-A", nil, at)))
	require.NoError(t, store.AppendEvent("revision-A", NewEvent(ShortageIdentifiedEvent, "revision-A", nil, at)))
	handler.wait(t)

	handler.mu.Lock()
	require.Len(t, handler.events, 1)
	assert.Equal(t, ShortageIdentifiedEvent, handler.events[0].Type())
	assert.Equal(t, 2, handler.events[0].Version())
	handler.mu.Unlock()

	require.NoError(t, store.Unsubscribe(handler))
	require.NoError(t, store.AppendEvent("revision-A", NewEvent(ShortageIdentifiedEvent, "revision-A", nil, at)))

	handler.mu.Lock()
	assert.Len(t, handler.events, 1)
	handler.mu.Unlock()
}

func TestHandlerFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewInMemoryEventStore(zap.New(core))
	handler := newRecordingHandler(errors.New("mailer down"))
	require.NoError(t, store.Subscribe([]string{CostRecordedEvent}, handler))

	require.NoError(t, store.AppendEvent("component-CPU", NewEvent(CostRecordedEvent, "component-CPU", nil, at)))
	handler.wait(t)

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("event handler failed").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSnapshotFlattensEvents(t *testing.T) {
	snap := Snapshot([]Event{NewEvent(CostRecordedEvent, "component-CPU", CostRecorded{ComponentID: "CPU"}, at)})
	require.Len(t, snap, 1)
	assert.Equal(t, CostRecordedEvent, snap[0].EventType)
	assert.Equal(t, "component-CPU", snap[0].Stream)
	assert.Equal(t, CostRecorded{ComponentID: "CPU"}, snap[0].EventData)
}
