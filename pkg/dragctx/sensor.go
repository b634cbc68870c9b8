package dragctx

import (
	"sort"

	"github.com/vango-dev/dragkit/pkg/dnd"
)

// Activator starts (or attempts to start) a drag of id from event e.
type Activator func(e *dnd.Event, id dnd.ID)

// Sensor turns node events into drag lifecycle calls on a Store.
type Sensor interface {
	// ID names the sensor; it is recorded as the active sensor of a drag.
	ID() string

	// Activators maps event names to the activators attached to each
	// draggable node.
	Activators() map[string]Activator
}

func sameSensors(a, b []Sensor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddSensor appends a sensor. Draggables rebind their activators.
func (s *Store) AddSensor(sensor Sensor) {
	s.sensors.Update(func(list []Sensor) []Sensor {
		next := make([]Sensor, 0, len(list)+1)
		for _, existing := range list {
			if existing.ID() != sensor.ID() {
				next = append(next, existing)
			}
		}
		return append(next, sensor)
	})
}

// RemoveSensor drops the sensor with id.
func (s *Store) RemoveSensor(id string) {
	s.sensors.Update(func(list []Sensor) []Sensor {
		next := make([]Sensor, 0, len(list))
		for _, existing := range list {
			if existing.ID() != id {
				next = append(next, existing)
			}
		}
		return next
	})
}

// Sensors returns the registered sensors in order.
func (s *Store) Sensors() []Sensor {
	return append([]Sensor(nil), s.sensors.Get()...)
}

// DraggableActivators implements dnd.Context. Each event gets one handler
// that offers the event to every sensor listening for it, in registration
// order, stopping as soon as a drag is active.
func (s *Store) DraggableActivators(id dnd.ID, asHandlers bool) dnd.Activators {
	sensors := s.sensors.Get()

	byEvent := make(map[string][]Activator)
	for _, sensor := range sensors {
		acts := sensor.Activators()
		events := make([]string, 0, len(acts))
		for event := range acts {
			events = append(events, event)
		}
		sort.Strings(events)
		for _, event := range events {
			byEvent[event] = append(byEvent[event], acts[event])
		}
	}

	activators := make(dnd.Activators, len(byEvent))
	for event, acts := range byEvent {
		acts := acts
		key := event
		if asHandlers {
			key = dnd.HandlerKey(event)
		}
		activators[key] = func(e *dnd.Event) {
			for _, activate := range acts {
				if s.active.Peek().ok {
					break
				}
				activate(e, id)
			}
		}
	}
	return activators
}
