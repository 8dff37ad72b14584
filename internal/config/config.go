package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Payment    PaymentConfig    `yaml:"payment"`
	Mail       MailConfig       `yaml:"mail"`
	Redis      RedisConfig      `yaml:"redis"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Cart       CartConfig       `yaml:"cart"`
	CORS       CORSConfig       `yaml:"cors"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig структура по работе с БД.
// Пароль необязателен: без него сервер стартует, а функции, которым нужна БД, отвечают 500.
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env-required:"true"`
}

// DSN собирает строку подключения к postgres
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}

// JWTConfig настройка jwt
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	TokenTTL int    `yaml:"token_ttl" env-default:"60"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// PaymentConfig настройки платёжных шлюзов
type PaymentConfig struct {
	Currency   string           `yaml:"currency" env-default:"INR"`
	ReturnURL  string           `yaml:"return_url" env-default:"http://localhost:5173/order-success"`
	Cashfree   CashfreeConfig   `yaml:"cashfree"`
	Razorpay   RazorpayConfig   `yaml:"razorpay"`
	VerifyPoll VerifyPollConfig `yaml:"verify_poll"`
}

// CashfreeConfig ключи берутся только из окружения
type CashfreeConfig struct {
	BaseURL    string        `yaml:"base_url" env-default:"https://sandbox.cashfree.com/pg"`
	APIVersion string        `yaml:"api_version" env-default:"2023-08-01"`
	AppID      string        `yaml:"-" env:"CASHFREE_APP_ID"`
	SecretKey  string        `yaml:"-" env:"CASHFREE_SECRET_KEY"`
	Timeout    time.Duration `yaml:"timeout" env-default:"10s"`
}

type RazorpayConfig struct {
	BaseURL   string        `yaml:"base_url" env-default:"https://api.razorpay.com/v1"`
	KeyID     string        `yaml:"-" env:"RAZORPAY_KEY_ID"`
	KeySecret string        `yaml:"-" env:"RAZORPAY_KEY_SECRET"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

// VerifyPollConfig параметры опроса статуса оплаты
type VerifyPollConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env-default:"5"`
	Delay       time.Duration `yaml:"delay" env-default:"2s"`
}

// MailConfig настройка отправки писем. provider: resend, smtp или log
type MailConfig struct {
	Provider      string        `yaml:"provider" env-default:"resend"`
	From          string        `yaml:"from" env-default:"Mithila Sattvik Makhana <onboarding@resend.dev>"`
	BusinessInbox string        `yaml:"business_inbox" env-default:"mithilasattvikmakhan@gmail.com"`
	SupportEmail  string        `yaml:"support_email" env-default:"mithilasattvikmakhan@gmail.com"`
	ResendURL     string        `yaml:"resend_url" env-default:"https://api.resend.com"`
	ResendAPIKey  string        `yaml:"-" env:"RESEND_API_KEY"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
	SMTP          SMTPConfig    `yaml:"smtp"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env-default:"587"`
	User     string `yaml:"user"`
	Password string `yaml:"-" env:"SMTP_PASSWORD"`
}

// RedisConfig пустой адрес: корзины хранятся в памяти процесса
type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"-" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env-default:"0"`
	CartTTL  time.Duration `yaml:"cart_ttl" env-default:"24h"`
}

// RabbitMQConfig пустой URL: события о заказах не публикуются
type RabbitMQConfig struct {
	URL string `yaml:"-" env:"RABBITMQ_URL"`
}

// CartConfig правила расчёта корзины, суммы в рупиях
type CartConfig struct {
	DeliveryFee         int64 `yaml:"delivery_fee" env-default:"0"`
	FreeDeliveryFrom    int64 `yaml:"free_delivery_from" env-default:"0"`
	DiscountPercent     int64 `yaml:"discount_percent" env-default:"0"`
	DiscountMinSubtotal int64 `yaml:"discount_min_subtotal" env-default:"0"`
}

type CORSConfig struct {
	AllowOrigin string `yaml:"allow_origin" env-default:"*"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}

	return &cfg
}
