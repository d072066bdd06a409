package mq

import (
	"context"
	"encoding/json"
	"log"

	"moyo/models"
	"moyo/rdx"
)

const statusChannel = "order-status-events"

// Emit publishes an order-status event to Redis. Failures are logged and
// dropped; the status change itself has already been confirmed upstream.
func Emit(ctx context.Context, event models.StatusEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal status event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, statusChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish status event: %v", err)
	}
}

// StartStatusWorker subscribes to the status channel, refreshes the
// last-known-status cache and hands each event to broadcast (the warehouse
// feed hub).
func StartStatusWorker(broadcast func([]byte)) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, statusChannel)
	ch := sub.Channel()

	log.Println("[StatusWorker] Listening for order status events...")

	for msg := range ch {
		var event models.StatusEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[StatusWorker] Failed to parse event: %v", err)
			continue
		}

		if err := rdx.CacheOrderStatus(event.OrderID, event.To); err != nil {
			log.Printf("[StatusWorker] Failed to cache status: %v", err)
		}
		if broadcast != nil {
			broadcast([]byte(msg.Payload))
		}
	}
}
