package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/sehatbeat/internal/buildinfo"
	"github.com/dmitrijs2005/sehatbeat/internal/server"
	"github.com/dmitrijs2005/sehatbeat/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	buildinfo.PrintBuildData(os.Stdout)

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
