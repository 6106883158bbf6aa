package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-leavehub/internal/app"
	"go-leavehub/internal/bootstrap"
	"go-leavehub/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()

	logger, err := bootstrap.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
