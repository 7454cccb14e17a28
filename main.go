package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/taydongtruong/CoffeeShopManagerApp/config"
	httpapi "github.com/taydongtruong/CoffeeShopManagerApp/internal/api/http"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/dashboard"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/service"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/stats"
	"github.com/taydongtruong/CoffeeShopManagerApp/internal/storage"
)

func main() {
	_ = godotenv.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(config.OrderEventsTopic)
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}
	if err := repo.SeedMenu(); err != nil {
		log.Fatal("Failed to seed menu:", err)
	}

	menuCache := storage.NewMenuCache(rdb, 5*time.Minute)
	publisher := storage.NewKafkaPublisher(kafkaWriter)
	receipts := service.DefaultReceiptGenerator{
		BaseURL: config.Getenv("PUBLIC_URL", "http://localhost:8080"),
	}

	menuSvc := service.NewMenuService(repo, menuCache)
	orderSvc := service.NewOrderService(repo, repo, publisher, receipts)
	statsStore := stats.NewStore(rdb)

	// Fold order events into the Redis sales counters in the background.
	kafkaReader := config.NewKafkaReader(config.OrderEventsTopic, "coffeeshop-stats")
	defer kafkaReader.Close()
	consumer := stats.NewConsumer(kafkaReader, statsStore)
	go consumer.Start(context.Background())

	uploadDir := config.Getenv("UPLOAD_DIR", "./uploads")
	apiHandler := httpapi.NewHandler(menuSvc, orderSvc, statsStore, uploadDir)
	dashHandler := dashboard.NewHandler(menuSvc, orderSvc)

	r := mux.NewRouter()
	apiHandler.RegisterRoutes(r)
	dashHandler.RegisterRoutes(r)
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	addr := ":" + config.Getenv("PORT", "8080")
	httpapi.StartServer(addr, cors.Default().Handler(r))
}
