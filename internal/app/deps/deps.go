package deps

import (
	"context"
	"fmt"
	"remindbot/internal/config"
	dl "remindbot/internal/core/domain/logging"
	drl "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/storage"
	"remindbot/internal/db/document"
	dbreminder "remindbot/internal/db/reminder"
	"remindbot/internal/implementations/discord"
	"remindbot/internal/implementations/logging"
	randomstringgenerator "remindbot/internal/implementations/random_string_generator"
	ratelimiter "remindbot/internal/implementations/rate_limiter"
	remindersender "remindbot/internal/implementations/reminder_sender"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	Store   storage.Store
	Redis   *redis.Client
	Session *discordgo.Session
	Discord *discord.Client

	Now       func() time.Time
	StartedAt time.Time

	ReminderRepository reminder.ReminderRepository
	ReminderIDs        reminder.IDGenerator
	ReminderSender     reminder.Sender

	RateLimiter drl.RateLimiter
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	flushSentry := deps.initSentry()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.StartedAt = deps.Now()
	deps.Store = document.NewFileStore(deps.Config.DataDir)
	deps.Logger.Info(context.Background(), "Using data directory.", dl.Entry("dir", deps.Config.DataDir))
	deps.applySettings()

	closeRedisClient := deps.initRedisClient()
	deps.RateLimiter = deps.initRateLimiter()

	closeSession := deps.initDiscordSession()
	deps.Discord = discord.New(deps.Session, deps.Logger, deps.Now)
	deps.ReminderSender = remindersender.New(deps.Discord)

	deps.ReminderIDs = randomstringgenerator.NewGenerator()
	deps.initReminderRepository()

	return deps, func() {
		closeFuncs := []func(){
			closeSession,
			closeRedisClient,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger = logging.WithSentry(deps.Logger, sentry.CurrentHub())
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}

// applySettings overlays the optional settings document on top of the env config.
func (deps *Deps) applySettings() {
	settings, err := config.LoadSettings(context.Background(), deps.Store)
	if err != nil {
		deps.Logger.Warning(context.Background(), "Could not read settings document.", dl.Entry("err", err))
		return
	}
	deps.Config.Apply(settings)
	deps.Logger.Info(
		context.Background(),
		"Settings applied.",
		dl.Entry("prefix", deps.Config.CommandPrefix),
		dl.Entry("reminderCheckInterval", deps.Config.ReminderCheckInterval),
	)
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		deps.Logger.Info(context.Background(), "Redis is disabled, rate limiting is off.")
		return func() {}
	}

	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRateLimiter() drl.RateLimiter {
	if deps.Redis == nil || deps.Config.IsTestMode {
		return ratelimiter.NewAllowAlways()
	}
	return ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
}

func (deps *Deps) initDiscordSession() func() {
	session, err := discord.NewSession(deps.Config.DiscordToken)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create Discord session.", dl.Entry("err", err))
		panic(err)
	}
	deps.Session = session
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Discord session.")
		session.Close()
		deps.Logger.Info(context.Background(), "Discord session shut down.")
	}
}

func (deps *Deps) initReminderRepository() {
	repository := dbreminder.NewStoreReminderRepository(deps.Store, deps.ReminderIDs, deps.Logger, deps.Now)
	if err := repository.Load(context.Background()); err != nil {
		deps.Logger.Error(context.Background(), "Could not load reminders.", dl.Entry("err", err))
		panic(err)
	}
	deps.ReminderRepository = repository
}
