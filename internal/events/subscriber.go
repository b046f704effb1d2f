// Package events receives tracker change notifications. The bd server
// publishes mutation events to NATS subjects under "beads."; watch mode
// subscribes to them to trigger recomputation without polling.
package events

// Topics published by the tracker that affect the dependency graph.
const (
	TopicBeadCreated       = "beads.bead.created"
	TopicBeadUpdated       = "beads.bead.updated"
	TopicBeadClosed        = "beads.bead.closed"
	TopicBeadDeleted       = "beads.bead.deleted"
	TopicDependencyAdded   = "beads.dependency.added"
	TopicDependencyRemoved = "beads.dependency.removed"

	// TopicAll matches every tracker event. Any mutation can change the
	// schedule, so watch mode listens to the whole subtree.
	TopicAll = "beads.>"
)

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers raw event payloads on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}
