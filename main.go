package main

import (
	"github.com/remaep/registry_service/config"
	"github.com/remaep/registry_service/internal/api"
)

func main() {
	config.Logger()

	cfg := config.LoadConfig()

	api.StartServer(cfg)
}
