package main

import (
	"context"
	"fmt"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/internal/database"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
)

func connectMilvusWithRetry(address string, attempts int, perAttemptTimeout time.Duration, delay time.Duration) (client.Client, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), perAttemptTimeout)
		cli, err := client.NewClient(ctx, client.Config{Address: address})
		cancel()
		if err == nil {
			return cli, nil
		}
		lastErr = err
		time.Sleep(delay)
	}
	return nil, lastErr
}

// Connectivity smoke check for local development: verifies MySQL and
// Milvus are reachable with the current configuration.
func main() {
	if err := config.Init("config.yaml"); err != nil {
		fmt.Println("config error:", err)
	}
	fmt.Println("Database Host: ", config.Cfg.Database.Host)

	db, err := database.GetDB()
	if err != nil {
		fmt.Println("MySQL connect error:", err)
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			fmt.Println("MySQL ping error:", err)
			return
		}
	}
	fmt.Println("MySQL connected!")

	// Milvus may take tens of seconds to boot.
	cli, err := connectMilvusWithRetry(config.Cfg.Milvus.Address, 20, 5*time.Second, 2*time.Second)
	if err != nil {
		fmt.Println("Milvus connect error:", err)
		return
	}
	defer cli.Close()

	fmt.Println("Milvus connected!")
}
