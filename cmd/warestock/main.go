package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/warekit/warestock/config"
	"github.com/warekit/warestock/internal/adminapi"
	"github.com/warekit/warestock/internal/app"
	"github.com/warekit/warestock/internal/console"
	"github.com/warekit/warestock/internal/webserver"
)

var (
	BuildVersion string

	conffile    = flag.String("c", "", "config file")
	showVersion = flag.Bool("v", false, "print version and exit")
	initDb      = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	interactive = flag.Bool("console", false, "run the interactive warehouse console")
)

func printVersion() {
	fmt.Fprintf(os.Stdout, "warestock %s\n", BuildVersion)
}

func main() {
	flag.Parse()
	if *showVersion {
		printVersion()
		return
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		return
	}

	webserver.Init(application)
	adminapi.RegisterRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(webserver.Listen)
	if *interactive {
		g.Go(func() error {
			defer stop()
			term := console.New(application, os.Stdin, os.Stdout)
			return term.Run(ctx)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		webserver.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		zap.L().Fatal("server error", zap.Error(err))
	}
}
