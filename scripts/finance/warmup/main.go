// Enqueues a profit and loss warmup task so the worker regenerates the
// statement for the given period.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hibiken/asynq"

	"github.com/gudang-erp/gudang-erp/internal/shared"
	"github.com/gudang-erp/gudang-erp/jobs"
)

func main() {
	month := flag.Int("month", 0, "period month (1-12), 0 for previous month")
	year := flag.Int("year", 0, "period year, 0 for previous month")
	flag.Parse()

	period := shared.Period{Month: *month, Year: *year}
	if *month != 0 || *year != 0 {
		if err := period.Validate(); err != nil {
			log.Fatalf("invalid period: %v", err)
		}
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	if err != nil {
		log.Fatalf("init client: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	info, err := client.EnqueuePnLWarmup(context.Background(), period)
	if err != nil {
		log.Fatalf("enqueue warmup: %v", err)
	}
	log.Printf("enqueued %s id=%s queue=%s", jobs.TaskPnLWarmup, info.ID, info.Queue)
}
