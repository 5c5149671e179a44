package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"cpprofile-backend/internal/components/fetch"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/scrapers/codechef"
	"cpprofile-backend/internal/scrapers/codeforces"
	"cpprofile-backend/internal/scrapers/leetcode"
	"cpprofile-backend/internal/server"
	"cpprofile-backend/internal/service"
	"cpprofile-backend/lib/configutil"
	"cpprofile-backend/lib/serviceutil"

	"github.com/gin-gonic/gin"
)

const serviceName = "cpprofile-server"

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the json5 configuration file.")
	dumpDir := flag.String("dump-http", "", "Write every upstream request/response to this directory.")
	flag.Parse()

	telemetry.InitSlog(*verbose)
	if !*verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := serviceutil.SignalContext()

	cfg, err := configutil.ReadConfigOr(*configPath, defaultConfig())
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	t, err := telemetry.Setup(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx, time.Second*5)

	tel := telemetry.SlogAPI{}
	timeout := cfg.fetchTimeout()

	var dump fetch.Output
	if *dumpDir != "" {
		output, err := fetch.NewDirOutput(*dumpDir)
		if err != nil {
			serviceutil.Fatal("create http dump directory", err)
		}
		dump = output
	}

	svc := service.NewService(
		codechef.NewScraper(
			cfg.Platforms.CodeChef.BaseUrl,
			codechef.NewHttpClient(timeout, dump, tel),
			tel,
		),
		leetcode.NewScraper(
			cfg.Platforms.LeetCode.BaseUrl,
			leetcode.NewHttpClient(timeout, dump, tel),
			tel,
		),
		codeforces.NewScraper(
			cfg.Platforms.Codeforces.BaseUrl,
			codeforces.NewHttpClient(timeout, dump, tel),
			tel,
		),
		tel,
	)

	srv := server.NewServer(svc, server.Options{
		ServiceName: serviceName,
		CorsOrigins: cfg.CorsOrigins,
	}, tel)

	slog.Info("server is running", "url", "http://localhost", "port", cfg.Port)
	err = serviceutil.StartHttpServer(ctx, cfg.Port, srv.Handler(), time.Second*10)
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}
}
