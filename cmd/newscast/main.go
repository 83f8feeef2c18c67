package main

import (
	"newscast/cmd/cmd"
	"newscast/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
