package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/developer-d723/user-service/internal/notifications"
	"github.com/developer-d723/user-service/pkg/config"
	"github.com/developer-d723/user-service/pkg/postgres"
	"github.com/developer-d723/user-service/pkg/rabbitmq"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Notify] Starting notification-consumer...")

	cfg := config.Load()

	// Connect to PostgreSQL
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Notify] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "notify"); err != nil {
		log.Fatalf("[Notify] Failed to run migrations: %v", err)
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[Notify] Failed to connect to RabbitMQ: %v", err)
	}
	defer rmqConn.Close()

	consumer := notifications.NewConsumer(db)

	consumerCfg := rabbitmq.ConsumerConfig{
		Exchange:  cfg.NotificationsTopic,
		QueueName: "notify.user.events",
		DLQName:   "dlq.notify.user.events",
		// Events are routed by user email; take them all.
		BindingKeys:  []string{"#"},
		ConsumerName: "notification-consumer",
	}

	if err := rabbitmq.SetupConsumer(rmqConn, consumerCfg, consumer.HandleMessage); err != nil {
		log.Fatalf("[Notify] Failed to setup consumer: %v", err)
	}

	log.Println("[Notify] Consumer is running. Waiting for messages...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Notify] Shutting down consumer...")
}
