package main

import (
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/api"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/category"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/config"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/db"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/jobs"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/notification"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/product"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/realtime"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/supplier"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	tokens, err := user.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		logger.L().Fatal("token manager init failed", zap.Error(err))
	}

	notifier := notification.NewLogNotifier()
	hub := realtime.NewHub()

	userSvc := user.NewService(user.NewRepository(database), tokens)
	categorySvc := category.NewService(category.NewRepository(database))

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	supplierSvc := supplier.NewService(supplier.NewRepository(database), notifier)

	orderSvc := order.NewService(
		order.NewRepository(database),
		productRepo,
		order.NewNumberGenerator(),
		notifier,
		hub,
	)

	reminder := jobs.NewPendingReminderJob(orderSvc)
	if err := reminder.Start(); err != nil {
		logger.L().Fatal("reminder job start failed", zap.Error(err))
	}
	defer reminder.Stop()

	e := api.NewServer(api.Services{
		Users:      userSvc,
		Tokens:     tokens,
		Categories: categorySvc,
		Products:   productSvc,
		Orders:     orderSvc,
		Suppliers:  supplierSvc,
		Hub:        hub,
	})

	logger.L().Info("🚀 server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	if err := e.Start(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
