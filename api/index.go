package handler

import (
	"bookingpay/config"
	"bookingpay/di"
	"bookingpay/shared/logger"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler serves the API from a serverless runtime. The cron scheduler does not
// run here; the daily jobs are triggered through the admin job endpoints.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		handler = di.InitializeService().HTTP.Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
