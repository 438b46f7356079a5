package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"csi-membership/internal/config"
	"csi-membership/internal/usecase"
)

// Server wires the membership HTTP surface: order creation, the payment
// webhook and the admin OTP endpoints.
type Server struct {
	orders        usecase.OrderUseCase
	webhook       usecase.WebhookUseCase
	admin         usecase.AdminAuthUseCase
	auth          *AuthManager
	limiter       RateLimiter
	keyFn         func(tier, addr string) string
	webhookSecret string
	cfg           *config.Config
	log           *zerolog.Logger
}

func NewServer(
	orders usecase.OrderUseCase,
	webhook usecase.WebhookUseCase,
	admin usecase.AdminAuthUseCase,
	auth *AuthManager,
	limiter RateLimiter,
	keyFn func(tier, addr string) string,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		orders:        orders,
		webhook:       webhook,
		admin:         admin,
		auth:          auth,
		limiter:       limiter,
		keyFn:         keyFn,
		webhookSecret: cfg.Payment.Razorpay.WebhookSecret,
		cfg:           cfg,
		log:           logger,
	}
}

// Router builds the chi mux with the middleware tiers from config: general
// rate limiting on public payment routes, the strict tier stacked on top for
// the sensitive order and admin endpoints. Probes and metrics bypass both.
func (s *Server) Router() http.Handler {
	general := RateLimit(s.limiter, "general", s.cfg.RateLimit.General.Limit, s.cfg.RateLimit.General.Window, s.keyFn, s.log)
	strict := RateLimit(s.limiter, "strict", s.cfg.RateLimit.Strict.Limit, s.cfg.RateLimit.Strict.Window, s.keyFn, s.log)

	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log), Timeout(s.cfg.Server.RequestTimeout), CORS(s.cfg.Server.AllowedOrigins))

	r.Get("/health", s.handleHealth)
	r.Get("/api/admin/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(general)
		r.Post("/webhook", s.handleWebhook)

		r.Group(func(r chi.Router) {
			r.Use(strict)
			r.Post("/create-order", s.handleCreateOrder)
			r.Route("/api/admin", func(r chi.Router) {
				r.Post("/send-otp", s.handleSendOTP)
				r.Post("/verify-otp", s.handleVerifyOTP)
				r.Post("/resend-otp", s.handleResendOTP)
				r.Post("/validate-email", s.handleValidateEmail)
				r.With(s.requireAdmin).Get("/me", s.handleAdminMe)
				r.Post("/logout", s.handleLogout)
			})
		})
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// requireAdmin gates admin screens behind the session minted by verify-otp.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "unauthorized"})
			return
		}
		if !s.admin.IsWhitelisted(claims.Subject) {
			writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "error": "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
