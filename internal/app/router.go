package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linemk/sattvik-shop/internal/app/handlers"
	mw "github.com/linemk/sattvik-shop/internal/app/middleware"
	"github.com/linemk/sattvik-shop/internal/cart"
	"github.com/linemk/sattvik-shop/internal/gateway/cashfree"
	"github.com/linemk/sattvik-shop/internal/gateway/razorpay"
	"github.com/linemk/sattvik-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/sattvik-shop/internal/lib/logger/handlers/urllog"
	"github.com/linemk/sattvik-shop/internal/lib/retry"
	"github.com/linemk/sattvik-shop/internal/service"
	"github.com/linemk/sattvik-shop/internal/storage"
)

// Router собирает сервисы и маршруты. Без БД маршруты остаются, а сервисы отвечают 500.
func (a *App) Router() http.Handler {
	cfg := a.Config
	log := a.Logger

	// реализация слоев по работе с БД по каждому направлению
	var (
		userRepo        storage.UserStorage
		roleRepo        storage.RoleStorage
		orderRepo       storage.OrderStorage
		testimonialRepo storage.TestimonialStorage
		db              handlers.Pinger
	)
	if a.DB != nil {
		userRepo = storage.NewUserRepository(a.DB)
		roleRepo = storage.NewRoleRepository(a.DB)
		orderRepo = storage.NewOrderRepository(a.DB)
		testimonialRepo = storage.NewTestimonialRepository(a.DB)
		db = a.DB
	}

	cf := cashfree.New(log, cashfree.Config{
		BaseURL:    cfg.Payment.Cashfree.BaseURL,
		APIVersion: cfg.Payment.Cashfree.APIVersion,
		AppID:      cfg.Payment.Cashfree.AppID,
		SecretKey:  cfg.Payment.Cashfree.SecretKey,
		Currency:   cfg.Payment.Currency,
		Timeout:    cfg.Payment.Cashfree.Timeout,
	}, nil)
	rp := razorpay.New(log, razorpay.Config{
		BaseURL:   cfg.Payment.Razorpay.BaseURL,
		KeyID:     cfg.Payment.Razorpay.KeyID,
		KeySecret: cfg.Payment.Razorpay.KeySecret,
		Timeout:   cfg.Payment.Razorpay.Timeout,
	}, nil)

	paymentService := service.NewPaymentService(log, cf, rp, retry.Policy{
		MaxAttempts: cfg.Payment.VerifyPoll.MaxAttempts,
		Delay:       cfg.Payment.VerifyPoll.Delay,
	}, cfg.Payment.ReturnURL, cfg.Payment.Currency)
	notificationService := service.NewOrderNotificationService(log, orderRepo, a.Mailer, a.Publisher, service.MailSettings{
		From:          cfg.Mail.From,
		BusinessInbox: cfg.Mail.BusinessInbox,
		SupportEmail:  cfg.Mail.SupportEmail,
	})
	cartService := service.NewCartService(log, a.Carts, cart.Pricing{
		DeliveryFee:         cfg.Cart.DeliveryFee,
		FreeDeliveryFrom:    cfg.Cart.FreeDeliveryFrom,
		DiscountPercent:     cfg.Cart.DiscountPercent,
		DiscountMinSubtotal: cfg.Cart.DiscountMinSubtotal,
	})
	authService := service.NewAuthService(log, userRepo, roleRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	testimonialService := service.NewTestimonialService(log, testimonialRepo, roleRepo)
	orderAdminService := service.NewOrderAdminService(log, orderRepo, roleRepo)

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", handlers.HealthHandler(log, db))

	// функции оплаты и уведомлений, контракт как у edge-функций витрины
	router.Route("/functions/v1", func(r chi.Router) {
		r.Use(mw.CORS(cfg.CORS.AllowOrigin, mw.FunctionMethods))
		r.Use(mw.RequireAuthorization(log))
		r.Post("/create-cashfree-order", handlers.CreateCashfreeOrderHandler(log, paymentService))
		r.Post("/verify-cashfree-payment", handlers.VerifyCashfreePaymentHandler(log, paymentService))
		r.Post("/create-razorpay-order", handlers.CreateRazorpayOrderHandler(log, paymentService))
		r.Post("/verify-razorpay-payment", handlers.VerifyRazorpayPaymentHandler(log, paymentService))
		r.Post("/send-order-notification", handlers.SendOrderNotificationHandler(log, notificationService))
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(mw.CORS(cfg.CORS.AllowOrigin, mw.APIMethods))

		r.Get("/products", handlers.ProductsHandler(log))
		r.Get("/products/{id}", handlers.ProductHandler(log))

		r.Get("/cart/{session}", handlers.GetCartHandler(log, cartService))
		r.Delete("/cart/{session}", handlers.ClearCartHandler(log, cartService))
		r.Post("/cart/{session}/items", handlers.AddCartItemHandler(log, cartService))
		r.Put("/cart/{session}/items/{productID}", handlers.UpdateCartItemHandler(log, cartService))
		r.Delete("/cart/{session}/items/{productID}", handlers.RemoveCartItemHandler(log, cartService))

		r.Post("/checkout/validate", handlers.ValidateCheckoutHandler(log))

		// эндпоинт для аутентификации
		r.Post("/auth", handlers.AuthHandler(log, authService))

		r.Get("/testimonials", handlers.ListTestimonialsHandler(log, testimonialService))
		r.Post("/testimonials", handlers.SubmitTestimonialHandler(log, testimonialService))

		r.Group(func(r chi.Router) {
			r.Use(jwtmiddleware.NewJWTMiddleware(cfg.JWT.Secret))
			r.Get("/admin/testimonials", handlers.ListAllTestimonialsHandler(log, testimonialService))
			r.Post("/admin/testimonials/{id}/approve", handlers.ApproveTestimonialHandler(log, testimonialService))
			r.Delete("/admin/testimonials/{id}", handlers.RejectTestimonialHandler(log, testimonialService))
			r.Get("/admin/orders", handlers.ListOrdersHandler(log, orderAdminService))
			r.Get("/admin/orders/{id}", handlers.GetOrderHandler(log, orderAdminService))
		})
	})

	return router
}
