package main

import (
	"github.com/mrlokans/lexicology/internal/config"
	"github.com/mrlokans/lexicology/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
