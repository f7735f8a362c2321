package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/arabic-quiz-bot/internal/config"
	"github.com/aliskhannn/arabic-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/arabic-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/arabic-quiz-bot/internal/logger"
	"github.com/aliskhannn/arabic-quiz-bot/internal/repository"
	"github.com/aliskhannn/arabic-quiz-bot/internal/service"
	"github.com/aliskhannn/arabic-quiz-bot/internal/textnorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env != "production"

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "quiz", Description: "Начать квиз"},
		{Command: "topics", Description: "Выбрать тему квиза"},
		{Command: "stop", Description: "Прервать текущий квиз"},
		{Command: "stats", Description: "Статистика ответов"},
		{Command: "normalize", Description: "Как бот видит ответ (использование: /normalize текст)"},
		{Command: "help", Description: "Помощь"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	questionRepo, err := repository.NewQuestionRepository(cfg.QuestionsJSONPath)
	if err != nil {
		return err
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	transactor := postgres.NewTransactor(pool)

	validator := service.NewAnswerValidator(
		textnorm.New(textnorm.WithStrict(cfg.Quiz.StrictMatching)),
		cfg.Quiz.HintThreshold,
	)

	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(
		questionRepo,
		quizRepo,
		transactor,
		validator,
		cfg.Quiz.QuestionsPerSession,
		lg,
	)

	janitor := service.NewSessionJanitor(quizRepo, cfg.Quiz.CleanupSchedule, cfg.Quiz.SessionTTL, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		quizService,
		validator,
	)

	// Both workers must return before the deferred pool.Close runs.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return janitor.Start(gctx)
	})
	g.Go(func() error {
		if err := handler.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	lg.Info("shutdown signal received")
	return nil
}
