package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"remindbot/internal/app"
	"remindbot/internal/app/daily"
	"remindbot/internal/app/deps"
	"remindbot/internal/app/scheduler"
	"remindbot/internal/app/services"
	"remindbot/internal/discord"
	health "remindbot/internal/http"
	"sync"
	"syscall"
	"time"

	dl "remindbot/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)
	log := deps.Logger

	discord.Listen(deps.Session, app.InitRouter(deps, services), log)
	if err := deps.Session.Open(); err != nil {
		log.Error(context.Background(), "Could not connect to Discord.", dl.Entry("err", err))
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx, log, deps.Config.ReminderCheckInterval, services.DeliverReminders)
	}()

	events, err := daily.LoadEvents(ctx, deps.Store)
	if err != nil {
		log.Warning(ctx, "Could not load daily events.", dl.Entry("err", err))
	}
	_, dailyWg := daily.NewRunner(log, services.SendDailyEvent, deps.Now).Start(ctx, events)

	if deps.Config.ExternalURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := &http.Client{Timeout: 10 * time.Second}
			health.KeepAlive(ctx, log, client, deps.Config.ExternalURL, deps.Config.SelfPingInterval)
		}()
	}

	httpServer := app.InitHttpServer(deps)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	cancel()
	wg.Wait()
	dailyWg.Wait()
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("prefix", deps.Config.CommandPrefix),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "Bot has shut down.")
}
