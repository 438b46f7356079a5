package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(otpTotal)
}

var otpTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_otp_total",
		Help: "Admin OTP operations by action (send/verify) and outcome.",
	},
	[]string{"action", "result"},
)

func IncOTP(action, result string) {
	otpTotal.WithLabelValues(norm(action), norm(result)).Inc()
}
