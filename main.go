// main is the entry point of the fastball CLI.
package main

import (
	"github.com/huangsam/fastball/cmd"
	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}
