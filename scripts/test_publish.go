//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	searchStream = "stream:nearby:search"
	eventsStream = "stream:nearby:events"
)

type NearbySearchRequestedEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Query     string    `json:"query,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	query := flag.String("query", "restaurant", "Place type to search")
	lat := flag.Float64("lat", 41.4027042, "Device latitude")
	lng := flag.Float64("lng", 2.1599563, "Device longitude")
	ip := flag.String("ip", "", "Client IP, used instead of coordinates when set")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := NearbySearchRequestedEvent{
		RequestID: uuid.New(),
		Query:     *query,
	}
	if *ip != "" {
		event.ClientIP = *ip
	} else {
		event.Lat = ptr(*lat)
		event.Lng = ptr(*lng)
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем последний ID, чтобы читать только новые события
	lastID := "$"
	if last, err := client.XRevRangeN(ctx, eventsStream, "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: searchStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", searchStream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   Query: %s\n", event.Query)

	fmt.Printf("\nWaiting for result in %s...\n", eventsStream)

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{eventsStream, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Printf("read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var response map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
					continue
				}

				if response["request_id"] == event.RequestID.String() {
					fmt.Printf("\nEvent %v received\n", response["type"])
					pretty, _ := json.MarshalIndent(response, "", "  ")
					fmt.Printf("%s\n", pretty)
					return
				}
			}
		}
	}

	fmt.Println("Timeout waiting for result")
}
