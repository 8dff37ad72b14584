// Терминальный клиент оформления заказа: собирает корзину и данные доставки,
// проводит оплату через функции сервера.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"

	"github.com/linemk/sattvik-shop/internal/cart"
	"github.com/linemk/sattvik-shop/internal/catalog"
	"github.com/linemk/sattvik-shop/internal/checkout"
	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/lib/logger"
)

type clientConfig struct {
	Env       string        `env:"ENV" env-default:"local"`
	BaseURL   string        `env:"SHOP_API_URL" env-default:"http://localhost:8080"`
	APIKey    string        `env:"SHOP_ANON_KEY" env-default:"anon"`
	ReturnURL string        `env:"SHOP_RETURN_URL" env-default:"http://localhost:5173/order-success"`
	Currency  string        `env:"SHOP_CURRENCY" env-default:"INR"`
	Timeout   time.Duration `env:"SHOP_HTTP_TIMEOUT" env-default:"30s"`
}

func main() {
	var cfg clientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic(errors.Wrap(err, "failed to read client config"))
	}

	method := flag.String("method", "cashfree", "payment method: cashfree, razorpay, cod or partial_cod")
	items := flag.String("items", "", "cart lines as id:qty,id:qty (see -list)")
	list := flag.Bool("list", false, "print the catalog and exit")
	flag.Parse()

	if *list {
		for _, p := range catalog.All() {
			fmt.Printf("%-20s %-28s ₹%d\n", p.ID, p.Name, p.Price)
		}
		return
	}

	log := logger.SetupLogger(cfg.Env)

	basket := cart.NewPriced(cart.Pricing{})
	if err := fillCart(basket, *items); err != nil {
		log.Error("invalid cart", slog.Any("error", err))
		os.Exit(2)
	}

	fn, err := checkout.NewFunctionsClient(cfg.BaseURL, cfg.APIKey, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		panic(errors.Wrap(err, "failed to create functions client"))
	}

	ui := checkout.NewTerminalUI(os.Stdin, os.Stdout)
	var o *checkout.Orchestrator
	switch *method {
	case "cashfree":
		o = checkout.New(log, checkout.NewCashfreeBackend(fn, cfg.ReturnURL), fn, ui, basket)
	case "razorpay":
		ui.AskSignature = true
		o = checkout.New(log, checkout.NewRazorpayBackend(fn, cfg.Currency), fn, ui, basket)
	default:
		direct, err := checkout.NewDirectBackend(*method)
		if err != nil {
			log.Error("unknown payment method", slog.String("method", *method))
			os.Exit(2)
		}
		o = checkout.NewDirect(log, direct, fn, basket)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	customer, err := askCustomer(ui)
	if err != nil {
		log.Error("failed to read customer details", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("Total: ₹%d\n", basket.Total())
	res := o.Checkout(ctx, customer)

	for field, msg := range res.FieldErrors {
		fmt.Printf("  %s: %s\n", field, msg)
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	if res.Warning != "" {
		fmt.Println("Warning:", res.Warning)
	}
	switch res.View {
	case checkout.ViewOrderSuccess:
		fmt.Printf("-> %s (method=%s, order=%s, total=₹%d)\n", res.View, *method, res.PaymentOrderID, res.TotalAmount)
	case checkout.ViewOrderFailed:
		fmt.Printf("-> %s (order=%s)\n", res.View, res.PaymentOrderID)
		os.Exit(1)
	default:
		if res.Err != nil {
			os.Exit(1)
		}
	}
}

// fillCart разбирает строку вида premium-makhana:2,roasted-makhana:1
func fillCart(c *cart.Priced, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("no items given, use -items id:qty")
	}
	for _, part := range strings.Split(raw, ",") {
		id, qtyRaw, found := strings.Cut(strings.TrimSpace(part), ":")
		qty := 1
		if found {
			n, err := strconv.Atoi(qtyRaw)
			if err != nil {
				return errors.Wrapf(err, "quantity for %s", id)
			}
			qty = n
		}
		product, ok := catalog.ByID(id)
		if !ok {
			return errors.Errorf("unknown product %q", id)
		}
		if err := c.Add(product, qty); err != nil {
			return errors.Wrapf(err, "add %s", id)
		}
	}
	return nil
}

func askCustomer(ui *checkout.TerminalUI) (models.CustomerData, error) {
	var c models.CustomerData
	fields := []struct {
		label string
		dst   *string
	}{
		{"Full name", &c.Name},
		{"Email", &c.Email},
		{"Phone (10 digits)", &c.Phone},
		{"Address", &c.Address},
		{"City", &c.City},
		{"State", &c.State},
		{"PIN code", &c.Pincode},
	}
	for _, f := range fields {
		v, err := ui.Prompt(f.label + ": ")
		if err != nil {
			return c, err
		}
		*f.dst = v
	}
	return c, nil
}
