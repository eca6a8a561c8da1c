package main

import (
	"os"

	"competition_backend/internals/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.L().WithError(err).Error("[MAIN] command failed")
		os.Exit(1)
	}
}
