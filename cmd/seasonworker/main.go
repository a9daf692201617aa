package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/clock"
	"github.com/harvestcover/seasonworker/internal/config"
	"github.com/harvestcover/seasonworker/internal/migration"
	"github.com/harvestcover/seasonworker/internal/observability"
	"github.com/harvestcover/seasonworker/internal/server"
	"github.com/harvestcover/seasonworker/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
