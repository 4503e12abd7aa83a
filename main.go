package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusit/internal/activity"
	"campusit/internal/archive"
	"campusit/internal/asset"
	"campusit/internal/auth"
	"campusit/internal/common"
	"campusit/internal/department"
	"campusit/internal/lab"
	"campusit/internal/request"
	"campusit/internal/stats"
	"campusit/internal/ticket"
	"campusit/pkg/database"
	"campusit/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using environment variables")
	}

	// =============================================
	// 1. DATABASE
	// =============================================
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ Database connected and migrated")

	// =============================================
	// 2. REDIS (optional - stats cache + login rate limiting)
	// =============================================
	redisClient := connectRedis()

	// =============================================
	// 3. ARCHIVE STORAGE (optional - raw CSV import payloads)
	// =============================================
	archiveClient, err := archive.NewFromEnv(context.Background())
	if err != nil {
		log.Fatalf("❌ Failed to configure archive storage: %v", err)
	}
	if archiveClient != nil {
		log.Println("✅ Import archive storage enabled")
	}

	// =============================================
	// 4. SERVICES & HANDLERS
	// =============================================
	audit := activity.NewLogger(db)

	requestService := request.NewService(db, audit)
	authService := auth.NewService(db, requestService)
	departmentService := department.NewService(db)
	labService := lab.NewService(db)
	ticketService := ticket.NewService(db, audit)
	statsService := stats.NewService(db, redisClient)

	var archiver asset.BatchArchiver
	if archiveClient != nil {
		archiver = archiveClient
	}
	assetService := asset.NewService(db, audit, archiver)

	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	labHandler := lab.NewHandler(labService)
	assetHandler := asset.NewHandler(assetService)
	ticketHandler := ticket.NewHandler(ticketService)
	requestHandler := request.NewHandler(requestService)
	activityHandler := activity.NewHandler(db)
	statsHandler := stats.NewHandler(statsService)

	loginLimiter := middleware.NewLoginRateLimiter(redisClient)

	// =============================================
	// 5. ROUTER
	// =============================================
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// ==================== 1. AUTH ====================
	r.POST("/api/v1/auth/login", loginLimiter.LoginRateLimit(), authHandler.Login)
	r.POST("/api/v1/auth/register", authHandler.Register)

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth())
	api.Use(middleware.ActiveAccount(authService))
	{
		// ==================== 2. USERS ====================
		api.GET("/users/admins",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			authHandler.ListAdmins)
		api.DELETE("/users/:id",
			middleware.RequireRoles(common.RoleDean),
			authHandler.DeleteUser)

		// ==================== 3. DEPARTMENTS ====================
		api.GET("/departments", departmentHandler.List)
		api.POST("/departments",
			middleware.RequireRoles(common.RoleDean),
			departmentHandler.Create)
		api.PATCH("/departments/:id",
			middleware.RequireRoles(common.RoleDean),
			departmentHandler.Update)
		api.DELETE("/departments/:id",
			middleware.RequireRoles(common.RoleDean),
			departmentHandler.Decommission)

		// ==================== 4. LABS ====================
		api.GET("/labs", labHandler.List)
		api.POST("/labs",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			labHandler.Create)

		// ==================== 5. ASSETS ====================
		api.GET("/assets", assetHandler.List)
		api.POST("/assets",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			assetHandler.Create)
		api.PATCH("/assets/:id/lab",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			assetHandler.ReassignLab)
		api.DELETE("/assets/:id",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			assetHandler.Delete)
		api.POST("/assets/import",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			assetHandler.ImportCSV)

		// ==================== 6. TICKETS ====================
		api.GET("/tickets", ticketHandler.List)
		api.POST("/tickets", ticketHandler.Create)
		api.PATCH("/tickets/:id",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			ticketHandler.Advance)

		// ==================== 7. REQUESTS ====================
		api.GET("/requests", requestHandler.List)
		api.POST("/requests", requestHandler.Create)
		api.PATCH("/requests/:id",
			middleware.RequireRoles(common.RoleDean, common.RoleAdmin),
			requestHandler.Advance)

		// ==================== 8. ACTIVITY & STATS ====================
		api.GET("/activities", activityHandler.Feed)
		api.GET("/stats", statsHandler.Dashboard)
	}

	// =============================================
	// 6. SERVER
	// =============================================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("🚀 Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}

func connectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, running without cache and rate limiting")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable (%v), running without cache and rate limiting", err)
		return nil
	}

	log.Println("✅ Redis connected")
	return client
}
