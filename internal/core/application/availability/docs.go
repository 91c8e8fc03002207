// Package availability keeps riders informed about how many orders are
// waiting for pickup.
//
// The flow is:
//
//	unit of work commits an order change
//	  -> Notifier.OrdersChanged (returns immediately)
//	  -> Counter.CountAvailable on the notifier's worker goroutine
//	  -> Broadcaster.Broadcast(Message)
//	  -> Registry fans out to every subscribed rider socket
//
// Rounds of count-then-broadcast never overlap, and changes that arrive while
// a round runs are folded into a single follow-up round. The last count sent
// is therefore never older than the last change.
//
// The Broadcaster is either the local Registry or a relay that publishes to
// other instances and feeds each instance's Registry.
//
// Delivery is best effort. A subscriber that cannot keep up is dropped and
// its channel closed; the socket owning it then disconnects and the rider app
// reconnects, receiving a fresh count on connect. The resync job rebroadcasts
// periodically so any missed fan-out converges.
package availability
