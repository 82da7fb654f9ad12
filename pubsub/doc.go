/*
Package pubsub provides the in-process publish/subscribe bus that every
component of the runtime communicates through.

Topics are plain strings and need no declaration: publishing to a topic
nobody listens on is a no-op, and subscribing creates the topic on demand.
Delivery is synchronous on the publisher's goroutine, in subscriber
registration order. A subscriber that panics is isolated: the panic is
recovered, reported on the "error" topic, and the remaining subscribers for
that publish still run.

The bus is safe for concurrent Publish and Subscribe from multiple
goroutines. Payload values are handed to subscribers as-is; a subscriber
that needs the payload beyond the publish call must copy it.
*/
package pubsub
