// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Type represents the type of event
type Type string

// Combat event types
const (
	EnemyDestroyed  Type = "enemy_destroyed"
	PlayerDestroyed Type = "player_destroyed"
	WaveSpawned     Type = "wave_spawned"
	ShotsFired      Type = "shots_fired"
	LaserFired      Type = "laser_fired"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the bus.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// EnemyEvent reports something that happened to one hostile craft
type EnemyEvent struct {
	BaseEvent
	EnemyID  uint64
	Kind     string
	Position physics.Vector2D
}

// NewEnemyEvent creates a new enemy event
func NewEnemyEvent(eventType Type, source interface{}, enemyID uint64, kind string, position physics.Vector2D) *EnemyEvent {
	return &EnemyEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		EnemyID:   enemyID,
		Kind:      kind,
		Position:  position,
	}
}

// WaveEvent reports a group of enemies entering the field
type WaveEvent struct {
	BaseEvent
	Kind  string
	Count int
}

// NewWaveEvent creates a new wave event
func NewWaveEvent(source interface{}, kind string, count int) *WaveEvent {
	return &WaveEvent{
		BaseEvent: BaseEvent{EventType: WaveSpawned, Source: source},
		Kind:      kind,
		Count:     count,
	}
}

// PlayerEvent reports player activity: shots fired or destruction
type PlayerEvent struct {
	BaseEvent
	PlayerID uint64
	Count    int
}

// NewPlayerEvent creates a new player event
func NewPlayerEvent(eventType Type, source interface{}, playerID uint64, count int) *PlayerEvent {
	return &PlayerEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		PlayerID:  playerID,
		Count:     count,
	}
}
