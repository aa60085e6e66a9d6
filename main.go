package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rihla/auth"
	"rihla/bookings"
	"rihla/db"
	"rihla/flags"
	"rihla/mq"
	"rihla/profile"
	"rihla/ratelim"
	"rihla/rdx"
	"rihla/requests"
	"rihla/routes"
	"rihla/settings"
	"rihla/stats"
	"rihla/trips"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// data store: explicit handle, passed down, closed on shutdown
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := db.Connect(connectCtx, envOr("MONGO_URI", "mongodb://localhost:27017"), envOr("MONGO_DB", "travelbooking"))
	connectCancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	cache, err := rdx.New(envOr("REDIS_ADDR", "localhost:6379"))
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	rateLimiter := ratelim.NewRateLimiter()
	emitter := mq.NewEmitter(cache)

	// live feed hub for the admin dashboard
	hub := bookings.NewHub()
	go hub.Run()

	// fan events out to connected dashboards and keep the cached public
	// trip list in step with seat changes
	go mq.StartWorker(ctx, cache, mq.Fanout(
		func(event mq.Event) { hub.BroadcastJSON(event) },
		func() { trips.DropListCache(ctx, cache) },
	))

	bookingSvc := bookings.NewService(store, store, store)
	flagSvc := flags.NewService(store)

	authHandler := auth.NewHandler(store, cache)
	tripHandler := trips.NewHandler(store, cache)
	bookingHandler := bookings.NewHandler(bookingSvc, store, emitter)
	flagHandler := flags.NewHandler(flagSvc, emitter)
	requestHandler := requests.NewHandler(store)
	settingsHandler := settings.NewHandler(store)
	statsHandler := stats.NewHandler(store)
	profileHandler := profile.NewHandler(store)

	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, authHandler, rateLimiter)
	routes.AddTripRoutes(router, tripHandler)
	routes.AddBookingRoutes(router, bookingHandler, hub, rateLimiter)
	routes.AddFlagRoutes(router, flagHandler)
	routes.AddRequestRoutes(router, requestHandler, rateLimiter)
	routes.AddSettingsRoutes(router, settingsHandler)
	routes.AddStatsRoutes(router, statsHandler)
	routes.AddProfileRoutes(router, profileHandler)
	routes.AddStaticRoutes(router)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{envOr("FRONTEND_URL", "*")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	cancel() // stops the mq worker
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("Error closing MongoDB connection: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Printf("Error closing redis connection: %v", err)
	}

	log.Println("Server stopped cleanly")
}
