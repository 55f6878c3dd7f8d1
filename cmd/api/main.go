package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"alimentary/brrp/carbon-backend/internal/config"
	"alimentary/brrp/carbon-backend/internal/credits"
	"alimentary/brrp/carbon-backend/internal/emissions"
	"alimentary/brrp/carbon-backend/internal/scada"
	"alimentary/brrp/carbon-backend/internal/verification"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	logger, err := buildLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer logger.Sync()

	dsn := cfg.Database.GetDatabaseURL()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&scada.Measurement{},
		&emissions.Record{},
		&verification.Record{},
		&credits.CarbonCredit{},
	); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	// The ledger runs on raw SQL alongside the GORM entities
	sqlDB, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to connect ledger database", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := credits.EnsureLedgerSchema(sqlDB); err != nil {
		logger.Fatal("failed to migrate ledger schema", zap.Error(err))
	}

	// ---------------- EMISSIONS ----------------
	emissionsRepo := emissions.NewRepository(db)
	emissionsService := emissions.NewService(emissionsRepo, logger)
	emissionsHandler := emissions.NewHandler(emissionsService)

	// ---------------- SCADA ----------------
	scadaRepo := scada.NewRepository(db)
	scadaService := scada.NewService(scadaRepo, emissionsService, logger)
	scadaHandler := scada.NewHandler(scadaService)

	// ---------------- VERIFICATION ----------------
	verificationRepo := verification.NewRepository(db)
	verificationService := verification.NewService(verificationRepo, logger)
	verificationHandler := verification.NewHandler(verificationService, emissionsService)

	// ---------------- CREDITS ----------------
	creditRepo := credits.NewRepository(db)
	ledger := credits.NewSQLLedger(sqlDB)
	creditService := credits.NewService(
		creditRepo,
		ledger,
		credits.NewRandomIdentifierProvider(),
		credits.NewNDCBudgetValidator(),
		credits.NewOpenEarthClient(cfg.Registry.BaseURL, cfg.Registry.Timeout),
		logger,
	)
	creditHandler := credits.NewHandler(creditService, emissionsService, verificationService)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	scadaHandler.RegisterRoutes(v1.Group("/scada"))
	emissionsHandler.RegisterRoutes(v1.Group("/emissions"))
	verificationHandler.RegisterRoutes(v1.Group("/verifications"))
	creditHandler.RegisterRoutes(v1.Group("/credits"))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	addr := cfg.Server.GetServerAddr()
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = parsed
	}
	return zapCfg.Build()
}
