package boundchan

import (
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithOnEvent(t *testing.T) {
	var mu sync.Mutex
	var events []Event

	ch := newChan[int](t, 3,
		WithName("jobs"),
		WithOnEvent(func(e Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		}),
	)
	require.NoError(t, ch.Send(1))
	require.NoError(t, ch.Close())
	require.ErrorIs(t, ch.Close(), ErrClosed)
	require.NoError(t, ch.Destroy())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 2, "double close must not emit a second event")

	assert.Equal(t, EventClosed, events[0].Kind)
	assert.Equal(t, "jobs", events[0].Name)
	assert.Equal(t, 3, events[0].Capacity)
	assert.Equal(t, 1, events[0].Len)

	assert.Equal(t, EventDestroyed, events[1].Kind)
	assert.Equal(t, 1, events[1].Len)
}

func TestWithOnEventStorageError(t *testing.T) {
	boom := errors.New("boom")
	var got []Event

	ch := NewWithStorage[int](
		&faultyStorage{capacity: 1, failAdd: boom},
		WithOnEvent(func(e Event) { got = append(got, e) }),
	)
	require.ErrorIs(t, ch.TrySend(1), ErrStorage)

	require.Len(t, got, 1)
	assert.Equal(t, EventStorageError, got[0].Kind)
	assert.ErrorIs(t, got[0].Err, boom)
}

func TestPanickingHookIsRecovered(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ch := newChan[int](t, 1,
		WithLogger(logger),
		WithOnEvent(func(Event) { panic("hook exploded") }),
	)

	require.NoError(t, ch.Close())
	assert.True(t, ch.IsClosed())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "boundchan: event hook panicked", entry.Message)

	err, ok := entry.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "hook exploded", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestWithLoggerLifecycle(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ch := newChan[int](t, 2, WithLogger(logger), WithName("orders"))
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Destroy())

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, "boundchan: channel closed", entries[0].Message)
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "orders", entries[0].Data["channel"])
	assert.Equal(t, "closed", entries[0].Data["event"])

	assert.Equal(t, "boundchan: channel destroyed", entries[1].Message)
}

func TestWithLoggerStorageFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	boom := errors.New("boom")

	ch := NewWithStorage[int](&faultyStorage{capacity: 1, failAdd: boom}, WithLogger(logger))
	require.Error(t, ch.Send(1))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "storage_error", entry.Data["event"])
}

func TestOptionsPanicOnNil(t *testing.T) {
	assert.PanicsWithValue(t, "boundchan: WithLogger requires non-nil logger", func() {
		WithLogger(nil)
	})
	assert.PanicsWithValue(t, "boundchan: WithOnEvent requires non-nil callback", func() {
		WithOnEvent(nil)
	})
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "closed", EventClosed.String())
	assert.Equal(t, "destroyed", EventDestroyed.String())
	assert.Equal(t, "storage_error", EventStorageError.String())
	assert.Equal(t, "unknown", EventKind(99).String())
	assert.Equal(t, "send", OpSend.String())
	assert.Equal(t, "recv", OpRecv.String())
}
