package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-api/internal/handler"
	"go-pos-api/internal/middleware"
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/internal/service"
	"go-pos-api/internal/ws"
	"go-pos-api/pkg/config"
	"go-pos-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg)
	// Auto Migrate (use a dedicated migration tool for serious deployments)
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Discount{},
		&model.Setting{},
		&model.Transaction{},
		&model.TransactionItem{},
	)

	// 3. Seed default admin and the settings singleton
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	discountRepo := repository.NewDiscountRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	authService := service.NewAuthService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo, wsHub)
	txService := service.NewTransactionService(productRepo, discountRepo, settingRepo, txRepo, db, wsHub)
	dashService := service.NewDashboardService(txRepo, productRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	discountHandler := handler.NewDiscountHandler(discountRepo, productRepo)
	settingHandler := handler.NewSettingHandler(settingRepo)
	txHandler := handler.NewTransactionHandler(txService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.RequireAuth(userRepo), authHandler.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// Product Routes (create/delete are admin-only)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.Get)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin), productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.Delete)

	// Category Routes
	protected.Get("/categories", categoryHandler.List)
	protected.Post("/categories", middleware.RequireRole(model.RoleAdmin), categoryHandler.Create)

	// Discount Routes (admin maintains, engine reads)
	protected.Get("/discounts", discountHandler.List)
	protected.Put("/discounts", middleware.RequireRole(model.RoleAdmin), discountHandler.Upsert)
	protected.Delete("/discounts/:code", middleware.RequireRole(model.RoleAdmin), discountHandler.Delete)

	// Settings Routes (global tax rate)
	protected.Get("/settings", settingHandler.Get)
	protected.Put("/settings", middleware.RequireRole(model.RoleAdmin), settingHandler.Update)

	// Transaction Routes
	protected.Post("/transactions", middleware.RequireRole(model.RoleAdmin, model.RoleCashier), txHandler.Create)
	protected.Get("/transactions", txHandler.List)
	protected.Get("/transactions/:id", txHandler.Get)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates the default admin account and the settings singleton
// if they don't exist
func seedDefaults(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername("admin"); err != nil {
		admin := &model.User{
			Username: "admin",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin / admin123")
		}
	}

	var setting model.Setting
	if err := db.First(&setting, "id = ?", model.SettingID).Error; err == gorm.ErrRecordNotFound {
		setting = model.Setting{ID: model.SettingID, TaxRate: decimal.Zero}
		if err := db.Create(&setting).Error; err != nil {
			log.Printf("Warning: Failed to seed settings: %v", err)
		} else {
			log.Println("✅ Settings singleton created with 0% tax rate")
		}
	}
}
