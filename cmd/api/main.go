package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bookhaven/bookstore-backend/internal/address"
	"github.com/bookhaven/bookstore-backend/internal/author"
	"github.com/bookhaven/bookstore-backend/internal/book"
	"github.com/bookhaven/bookstore-backend/internal/cart"
	"github.com/bookhaven/bookstore-backend/internal/config"
	"github.com/bookhaven/bookstore-backend/internal/database"
	"github.com/bookhaven/bookstore-backend/internal/metrics"
	"github.com/bookhaven/bookstore-backend/internal/order"
	"github.com/bookhaven/bookstore-backend/internal/payment"
	"github.com/bookhaven/bookstore-backend/internal/user"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db, cfg.MigrationsPath); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	checkout := metrics.NewCheckout(prometheus.DefaultRegisterer)
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			log.Printf("metrics listener stopped: %v", err)
		}
	}()

	app := fiber.New()
	setupCORS(app)

	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)), cfg.JWTSecret)
	bookHandler := book.NewHandler(book.NewService(book.NewPostgresRepository(db)))
	authorHandler := author.NewHandler(author.NewService(author.NewPostgresRepository(db)))
	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(db)))

	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService)

	gateway := payment.NewClient(cfg.PaymentServiceURL)
	initiator := order.NewInitiator(gateway, cfg.PaymentTimeout)
	orderService := order.NewService(order.NewPostgresRepository(db), cartService, initiator, checkout)
	initiator.Start(orderService, cfg.PaymentWorkers)
	orderHandler := order.NewHandler(orderService)

	paymentHandler := payment.NewHandler(gateway, payment.NewCompletion(gateway, orderService))

	// public routes first, then the JWT gate, then everything that needs
	// a signed-in user
	userHandler.RegisterPublicRoutes(app)
	bookHandler.RegisterPublicRoutes(app)
	authorHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	bookHandler.RegisterProtectedRoutes(app)
	authorHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Print("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	// let queued payment initiations finish before the process exits
	initiator.Stop()
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
