// Package ecs provides ECS adapters for patternlock's pattern events.
//
// The primary adapter is [NewDonburiStore], which bridges Lock signals
// (pattern change, pattern cleared, point selected) into a [Donburi] world
// as typed events. Subscribe to [PatternEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	lock.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
