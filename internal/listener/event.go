package listener

type Event struct {
	Type    EventType
	Details string
}

// EventType tells a layout file edit apart from a compositor hotplug.
type EventType string

const (
	LayoutUpdatedEvent   EventType = "LAYOUT_UPDATED"
	MonitorsChangedEvent EventType = "MONITORS_CHANGED"
)
