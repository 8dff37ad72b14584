package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/linemk/sattvik-shop/internal/cart"
	"github.com/linemk/sattvik-shop/internal/config"
	"github.com/linemk/sattvik-shop/internal/events"
	"github.com/linemk/sattvik-shop/internal/mailer"
)

const connectTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Logger *slog.Logger
	// DB nil, если пароль БД не задан: функции заказов отвечают 500
	DB        *sql.DB
	Redis     *redis.Client
	Rabbit    *amqp.Connection
	Publisher events.OrderPublisher
	Carts     cart.Store
	Mailer    mailer.Mailer
}

// NewApp создаёт новый экземпляр App.
// Обязательна только БД, если она настроена; Redis и RabbitMQ подключаются, когда заданы адреса.
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	app := &App{
		Config:    cfg,
		Logger:    log,
		Publisher: events.NoopPublisher{},
		Carts:     cart.NewMemoryStore(),
	}

	if cfg.Database.Password == "" {
		log.Warn("DB_PASSWORD is not set, order storage disabled")
	} else {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		app.DB = db
	}

	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		app.Redis = client
		app.Carts = cart.NewRedisStore(client, cfg.Redis.CartTTL)
		log.Info("cart store: redis", slog.String("address", cfg.Redis.Address))
	}

	if cfg.RabbitMQ.URL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		publisher, err := events.NewRabbitPublisher(conn)
		if err != nil {
			_ = conn.Close()
			app.Close()
			return nil, fmt.Errorf("failed to init order publisher: %w", err)
		}
		app.Rabbit = conn
		app.Publisher = publisher
		log.Info("order events: rabbitmq", slog.String("queue", events.OrderPlacedQueue))
	}

	app.Mailer = newMailer(log, cfg.Mail)
	return app, nil
}

// newMailer nil означает, что отправка писем не настроена
func newMailer(log *slog.Logger, cfg config.MailConfig) mailer.Mailer {
	switch strings.ToLower(cfg.Provider) {
	case "smtp":
		if cfg.SMTP.User == "" || cfg.SMTP.Password == "" {
			log.Warn("SMTP credentials are not set, emails disabled")
			return nil
		}
		return mailer.NewSMTPMailer(log, cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	case "log":
		return mailer.NewLogMailer(log)
	default:
		if cfg.ResendAPIKey == "" {
			log.Warn("RESEND_API_KEY is not set, emails disabled")
			return nil
		}
		return mailer.NewResendMailer(log, cfg.ResendURL, cfg.ResendAPIKey, cfg.Timeout, nil)
	}
}

// Close закрывает открытые подключения
func (a *App) Close() {
	if closer, ok := a.Publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.Logger.Error("failed to close publisher", slog.Any("error", err))
		}
	}
	if a.Rabbit != nil {
		if err := a.Rabbit.Close(); err != nil {
			a.Logger.Error("failed to close rabbitmq connection", slog.Any("error", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("failed to close redis", slog.Any("error", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}
