package main

import (
	"github.com/resumeguard/backend/internal/server"
	"github.com/resumeguard/backend/internal/util"
	"github.com/resumeguard/backend/pkg/logger"
	"github.com/resumeguard/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
