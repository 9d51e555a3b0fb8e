package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/aim/pkg/application/dto"
)

func TestShortageLoggerWarnsPerShortComponent(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewInMemoryEventStore(nil)
	require.NoError(t, NewShortageLogger(zap.New(core)).Register(store))

	shortage := ShortageIdentified{
		RevisionID: "REV-A",
		Mode:       "net",
		Shortfalls: []dto.Shortfall{
			{ComponentID: "CPU", Required: 2, Available: 0},
			{ComponentID: "RAM", Required: 8, Available: 5},
		},
	}
	require.NoError(t, store.AppendEvent("revision-REV-A", NewEvent(ShortageIdentifiedEvent, "revision-REV-A", shortage, at)))
	require.NoError(t, store.AppendEvent("revision-REV-B", NewEvent(RevisionBuildableEvent, "revision-REV-B", RevisionBuildable{RevisionID: "REV-B"}, at)))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("component short").Len() == 2
	}, 2*time.Second, 10*time.Millisecond)

	ram := logs.FilterField(zap.String("component_id", "RAM")).All()
	require.Len(t, ram, 1)
	fields := ram[0].ContextMap()
	assert.Equal(t, "REV-A", fields["revision_id"])
	assert.Equal(t, int64(8), fields["required"])
	assert.Equal(t, int64(5), fields["available"])
}

func TestShortageLoggerOnlyHandlesShortages(t *testing.T) {
	l := NewShortageLogger(nil)
	assert.True(t, l.CanHandle(ShortageIdentifiedEvent))
	assert.False(t, l.CanHandle(RevisionBuildableEvent))
	assert.NoError(t, l.Handle(NewEvent(ShortageIdentifiedEvent, "revision-X", nil, at)))
}
