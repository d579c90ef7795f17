package handler

import (
	"net/http"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/dispatch"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/metrics"
)

type providerStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
	Reason     string `json:"reason,omitempty"`
}

type healthResponse struct {
	Status   string         `json:"status"`
	Provider providerStatus `json:"provider"`
}

// Health reports whether the selected provider resolves from configuration.
// It never calls the provider.
func Health(d *dispatch.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := providerStatus{Name: d.ProviderName(), Configured: true}
		if _, err := d.Resolve(); err != nil {
			s.Configured = false
			s.Reason = err.Error()
		}

		gauge := 0.0
		if s.Configured {
			gauge = 1
		}
		metrics.ProviderConfigured.WithLabelValues(s.Name).Set(gauge)

		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: s})
	}
}
