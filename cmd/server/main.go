package main

import (
	"github.com/CesarLuchesi/phrasenets/internal/server"
	"github.com/CesarLuchesi/phrasenets/internal/util"
	"github.com/CesarLuchesi/phrasenets/pkg/logger"
	"github.com/CesarLuchesi/phrasenets/pkg/logger/console"
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
