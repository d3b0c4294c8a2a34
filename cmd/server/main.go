package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	appcatalog "github.com/sysstock/backend/internal/application/catalog"
	appidentity "github.com/sysstock/backend/internal/application/identity"
	appledger "github.com/sysstock/backend/internal/application/ledger"
	appreport "github.com/sysstock/backend/internal/application/report"
	appsales "github.com/sysstock/backend/internal/application/sales"
	apptenant "github.com/sysstock/backend/internal/application/tenant"
	"github.com/sysstock/backend/internal/infrastructure/auth"
	"github.com/sysstock/backend/internal/infrastructure/config"
	"github.com/sysstock/backend/internal/infrastructure/event"
	"github.com/sysstock/backend/internal/infrastructure/logger"
	"github.com/sysstock/backend/internal/infrastructure/persistence"
	"github.com/sysstock/backend/internal/interfaces/http/handler"
	"github.com/sysstock/backend/internal/interfaces/http/middleware"
	"github.com/sysstock/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SysStock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	// Transaction scopes
	tenantTxScope := persistence.NewTenantTransactionScope(db.DB)
	ledgerTxScope := persistence.NewLedgerTransactionScope(db.DB)
	salesTxScope := persistence.NewSalesTransactionScope(db.DB)

	// Token revocation store: Redis when reachable, otherwise a process
	// local fallback suitable for single instance deployments
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	cancelPing()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		AccessSecret:      cfg.JWT.Secret,
		RefreshSecret:     cfg.JWT.RefreshSecret,
		AccessExpiration:  cfg.JWT.AccessTokenExpiration,
		RefreshExpiration: cfg.JWT.RefreshTokenExpiration,
		Issuer:            cfg.JWT.Issuer,
		MaxRefreshCount:   cfg.JWT.MaxRefreshCount,
	})

	// Application services
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := appidentity.NewUserService(userRepo, branchRepo, log)
	branchService := apptenant.NewBranchService(branchRepo, tenantTxScope)
	categoryService := appcatalog.NewCategoryService(categoryRepo, productRepo)
	productService := appcatalog.NewProductService(productRepo, categoryRepo, branchRepo, movementRepo, saleRepo)
	ledgerService := appledger.NewLedgerService(branchRepo, productRepo, movementRepo, ledgerTxScope, cfg.Inventory.LowStockThreshold)
	saleService := appsales.NewSaleService(branchRepo, saleRepo, salesTxScope, cfg.Inventory.LowStockThreshold)
	reportService := appreport.NewReportService(branchRepo, productRepo, movementRepo, saleRepo, cfg.Inventory.LowStockThreshold)

	// Low-stock alerts ride the in-process event bus
	eventBus := event.NewInMemoryEventBus(log)
	lowStockHandler := appledger.NewLowStockHandler(log).
		WithNotifier(appledger.NewLoggingStockAlertNotifier(log))
	eventBus.Subscribe(lowStockHandler, lowStockHandler.EventTypes()...)
	ledgerService.SetEventPublisher(eventBus)
	saleService.SetEventPublisher(eventBus)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	branchHandler := handler.NewBranchHandler(branchService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	movementHandler := handler.NewMovementHandler(ledgerService)
	saleHandler := handler.NewSaleHandler(saleService)
	reportHandler := handler.NewReportHandler(reportService, log)
	systemHandler := handler.NewSystemHandler(version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)))

	// Health check outside API versioning
	engine.GET("/health", healthHandler(db))

	authn := middleware.Auth(jwtService, authService, log)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Public authentication routes
	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)

	// Authenticated session routes
	meRoutes := router.NewDomainGroup("/auth").Use(authn)
	meRoutes.POST("/logout", authHandler.Logout)
	meRoutes.GET("/me", authHandler.Me)
	meRoutes.PUT("/password", authHandler.ChangePassword)

	// Account management
	identityRoutes := router.NewDomainGroup("/identity").Use(authn)
	identityRoutes.POST("/employees", userHandler.CreateEmployee)
	identityRoutes.GET("/employees", userHandler.ListEmployees)
	identityRoutes.PUT("/employees/:id/branch", userHandler.ReassignEmployee)
	identityRoutes.DELETE("/employees/:id", userHandler.DeleteEmployee)
	identityRoutes.GET("/users/:id", userHandler.GetUser)

	// Branch management
	tenantRoutes := router.NewDomainGroup("/tenant").Use(authn)
	tenantRoutes.POST("/branches", branchHandler.Create)
	tenantRoutes.GET("/branches", branchHandler.List)
	tenantRoutes.GET("/branches/:id", branchHandler.GetByID)
	tenantRoutes.PUT("/branches/:id", branchHandler.Update)
	tenantRoutes.DELETE("/branches/:id", branchHandler.Delete)

	// Catalog
	catalogRoutes := router.NewDomainGroup("/catalog").Use(authn)
	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.PUT("/categories/:id", categoryHandler.Update)
	catalogRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)

	// Stock ledger
	inventoryRoutes := router.NewDomainGroup("/inventory").Use(authn)
	inventoryRoutes.POST("/movements", movementHandler.Record)
	inventoryRoutes.GET("/movements", movementHandler.List)
	inventoryRoutes.GET("/products/:id/stock", movementHandler.Stock)
	inventoryRoutes.GET("/products/:id/kardex", movementHandler.Kardex)

	// Point of sale
	salesRoutes := router.NewDomainGroup("/sales").Use(authn)
	salesRoutes.POST("", saleHandler.Create)
	salesRoutes.GET("", saleHandler.List)
	salesRoutes.GET("/:id", saleHandler.GetByID)

	// Reports and exports
	reportRoutes := router.NewDomainGroup("/reports").Use(authn)
	reportRoutes.GET("/sales/summary", reportHandler.SalesSummary)
	reportRoutes.GET("/sales/today", reportHandler.TodaySummary)
	reportRoutes.GET("/sales/daily", reportHandler.SalesByDay)
	reportRoutes.GET("/sales/products", reportHandler.SalesByProduct)
	reportRoutes.GET("/sales/export", reportHandler.ExportSales)
	reportRoutes.GET("/inventory/low-stock", reportHandler.LowStock)
	reportRoutes.GET("/inventory/kardex/:id", reportHandler.Kardex)
	reportRoutes.GET("/inventory/kardex/:id/export", reportHandler.ExportKardex)

	// System
	systemRoutes := router.NewDomainGroup("/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.Info)

	r.Register(authRoutes).
		Register(meRoutes).
		Register(identityRoutes).
		Register(tenantRoutes).
		Register(catalogRoutes).
		Register(inventoryRoutes).
		Register(salesRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
