package ports

// Metrics contadores de dominio. La implementación real vive en infrastructure/metrics.
type Metrics interface {
	OverrideUpserted()
	OverrideDuplicates(n int)
	TagConflictChecked(conflict bool)
	PaymentWebhook(eventType string)
}

// NopMetrics descarta todas las métricas (tests, CLI).
type NopMetrics struct{}

func (NopMetrics) OverrideUpserted()       {}
func (NopMetrics) OverrideDuplicates(int)  {}
func (NopMetrics) TagConflictChecked(bool) {}
func (NopMetrics) PaymentWebhook(string)   {}
