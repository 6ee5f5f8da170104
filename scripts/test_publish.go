//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ev-siting/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	minStations := flag.Int("min-stations", 200, "minimum number of stations")
	minCoverage := flag.Float64("min-coverage", 150, "minimum coverage")
	wait := flag.Duration("wait", 90*time.Second, "how long to wait for the result")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Запоминаем хвост стрима результатов, чтобы читать только новые
	lastID := "$"
	if msgs, err := client.XRevRangeN(ctx, domain.StreamOptimizationDone, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	event := domain.OptimizationRequestedEvent{
		RequestID:   uuid.New(),
		MinStations: *minStations,
		MinCoverage: *minCoverage,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamOptimizationRequested,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamOptimizationRequested)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   Params: min_stations=%d min_coverage=%.2f\n", event.MinStations, event.MinCoverage)

	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamOptimizationDone)

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamOptimizationDone, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("read failed: %v", err)
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var done domain.OptimizationDoneEvent
				if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
					continue
				}

				if done.RequestID == event.RequestID {
					fmt.Printf("\nResponse received\n")
					pretty, _ := json.MarshalIndent(done, "", "  ")
					fmt.Printf("%s\n", pretty)
					return
				}
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
