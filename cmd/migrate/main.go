package main

import (
	"flag"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/config"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/infra"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/logging"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logger := logging.NewLogger(logging.INFO)
	defer logger.Sync()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	mgTool := infra.GetMigrateTool()
	mgTool.Migrate("file://migration/sql", cfg.TradesDB.MigrationConnURL)
}
