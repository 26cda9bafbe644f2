package handlers

import "delavnice.si/web/internal/config"

// Analytics holds client instrumentation configuration surfaced to views.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	PlausibleDomain  string // e.g. delavnice.si
}

// Enabled reports whether any tracker is configured.
func (a Analytics) Enabled() bool {
	return a.GA4MeasurementID != "" || a.PlausibleDomain != ""
}

// AnalyticsFromConfig builds Analytics from the loaded configuration.
func AnalyticsFromConfig(cfg config.AnalyticsConfig) Analytics {
	return Analytics{
		GA4MeasurementID: cfg.GA4MeasurementID,
		PlausibleDomain:  cfg.PlausibleDomain,
	}
}
