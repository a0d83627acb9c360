package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests is a Prometheus counter for tracking the total number of API requests issued.
	APIRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquamon_api_requests_total",
		Help: "The total number of API requests issued",
	})

	// APIRequestErrors is a Prometheus counter for tracking failed API requests (transport or server rejection).
	APIRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquamon_api_request_errors_total",
		Help: "The total number of API requests that failed",
	})

	// Logins is a Prometheus counter for tracking successful logins.
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquamon_logins_total",
		Help: "The total number of successful logins",
	})

	// OTPVerifications is a Prometheus counter for tracking successful OTP verifications.
	OTPVerifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquamon_otp_verifications_total",
		Help: "The total number of successful OTP verifications",
	})

	// BatchRowsSubmitted is a Prometheus counter for tracking rows sent to the batch prediction endpoint.
	BatchRowsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquamon_batch_rows_submitted_total",
		Help: "The total number of parsed rows submitted for batch prediction",
	})
)
