// Команда zenith - сервер и инструменты ленивого тайлового мира.
package main

import (
	"os"

	"github.com/emlai/zenith-sub000/pkg/logger"
)

func main() {
	logger.Init()

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
