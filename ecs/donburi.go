package ecs

import (
	"github.com/phanxgames/patternlock"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PatternEventType is the Donburi event type for patternlock signals.
var PatternEventType = events.NewEventType[patternlock.PatternEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events
// are queued on PatternEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) patternlock.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event patternlock.PatternEvent) {
	PatternEventType.Publish(s.world, event)
}
