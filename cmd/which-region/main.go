package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/aws-which-region/internal/adapter/driven/aws"
	"github.com/diillson/aws-which-region/internal/adapter/driven/config"
	"github.com/diillson/aws-which-region/internal/adapter/driving/cli"
	"github.com/diillson/aws-which-region/internal/application/usecase"
	"github.com/diillson/aws-which-region/pkg/console"
	"github.com/diillson/aws-which-region/pkg/logging"
)

func main() {
	// Inicializa os repositórios
	configRepo := config.NewConfigRepository()
	connector := aws.NewConnector()
	consoleImpl := console.NewConsole()

	// Inicializa o aplicativo CLI e o caso de uso
	app := cli.NewCLIApp(configRepo)
	app.SetRegionUseCase(usecase.NewRegionUseCase(connector, consoleImpl, logging.NewLogger(0)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
