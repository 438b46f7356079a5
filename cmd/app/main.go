// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"csi-membership/internal/config"
	fs "csi-membership/internal/infra/firestore"
	"csi-membership/internal/infra/logging"
	"csi-membership/internal/infra/mail"
	"csi-membership/internal/infra/metrics"
	"csi-membership/internal/infra/payment"
	red "csi-membership/internal/infra/redis"
	"csi-membership/internal/infra/web"
	"csi-membership/internal/usecase"

	"csi-membership/internal/domain/model"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, insecure cookies)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Firestore ----
	fsClient, err := fs.NewClient(ctx, cfg.Firestore)
	if err != nil {
		log.Fatalf("firestore: %v", err)
	}
	defer fsClient.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	memberRepo := fs.NewMembershipRepo(fsClient)
	paymentLogRepo := fs.NewPaymentLogRepo(fsClient)
	otpRepo := red.NewOTPRepo(redisClient)

	// ---- Adapters ----
	gateway := payment.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
	mailer := mail.NewHTTPSender(cfg.Mail)

	// ---- Plan catalog ----
	plans := make([]model.MembershipPlan, 0, len(cfg.Plans))
	for _, p := range cfg.Plans {
		plans = append(plans, model.MembershipPlan{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Duration:   p.Duration,
			ExpiryDays: p.ExpiryDays,
		})
	}
	catalog := model.NewPlanCatalog(plans)

	// ---- Use cases ----
	orderUC := usecase.NewOrderUseCase(catalog, gateway, cfg.Payment.Razorpay.Currency, logger)
	webhookUC := usecase.NewWebhookUseCase(memberRepo, paymentLogRepo, catalog, logger)
	adminUC := usecase.NewAdminAuthUseCase(otpRepo, mailer, cfg.Admin.Whitelist, cfg.Admin.OTPTTL, cfg.Admin.OTPMaxAttempts, logger)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Admin.SessionSecret, !cfg.Runtime.Dev, "", cfg.Admin.SessionTTL)
	srv := web.NewServer(orderUC, webhookUC, adminUC, auth, rateLimiter, red.ClientKey, cfg, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}
	cancel()
}
