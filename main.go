// Package main is the entry point for pipewatch.
package main

import (
	"github.com/pipewatch/pipewatch/cmd"
	"github.com/pipewatch/pipewatch/config"
	"github.com/pipewatch/pipewatch/internal/cache"
	"github.com/pipewatch/pipewatch/key"
	"github.com/pipewatch/pipewatch/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Stream listings expire quickly; drop stale ones in the background.
	go cache.CollectGarbage(viper.GetDuration(key.CatalogCacheTTL))

	cmd.Execute()
}
