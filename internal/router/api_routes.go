package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/handler"
	"github.com/keiichiro05/LO-converter/internal/repository"
	"github.com/keiichiro05/LO-converter/internal/service"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	rdb *redis.Client,
	cfg *config.Config,
	rules *config.Rules,
) {
	// Initialize repositories
	masterRepo := repository.NewMasterRepository(rdb, cfg.MasterTTL)
	convRepo := repository.NewConversionRepository(rdb, cfg.ConversionTTL)

	// Initialize services
	excelService := service.NewExcelService()

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if rdb != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	masterHandler := handler.NewMasterHandler(masterRepo, excelService, rules, cfg)
	convertHandler := handler.NewConvertHandler(masterRepo, convRepo, excelService, asynqClient, rules, cfg)

	// Master session routes
	master := router.Group("/master")
	master.Post("/", masterHandler.UploadMaster)
	master.Get("/template", masterHandler.DownloadTemplate)
	master.Get("/:code", masterHandler.GetMaster)
	master.Put("/:code", masterHandler.ReplaceMaster)
	master.Post("/:code/columns", masterHandler.AddColumn)
	master.Delete("/:code", masterHandler.DeleteMaster)

	// Conversion routes
	conversions := router.Group("/conversions")
	conversions.Post("/", convertHandler.UploadListOrder)
	conversions.Get("/", convertHandler.ListConversions)
	conversions.Get("/:code", convertHandler.GetConversion)
	conversions.Get("/:code/download", convertHandler.DownloadResult)
}
