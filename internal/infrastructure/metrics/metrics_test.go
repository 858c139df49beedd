package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/infrastructure/metrics"
)

func TestRegistry_ContadoresDeDominio(t *testing.T) {
	m := metrics.New("test")
	m.OverrideUpserted()
	m.OverrideUpserted()
	m.OverrideDuplicates(3)
	m.OverrideDuplicates(0)
	m.TagConflictChecked(true)
	m.TagConflictChecked(false)
	m.TagConflictChecked(false)
	m.PaymentWebhook("payment_intent.succeeded")

	n, err := testutil.GatherAndCount(m.Gatherer(),
		"test_catalog_override_upserts_total",
		"test_catalog_override_duplicates_total",
		"test_spec_tag_checks_total",
		"test_payment_webhooks_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "una serie por contador simple más dos de tag_checks y una de webhooks")
}

func TestMiddleware_MideRequestsYExpone(t *testing.T) {
	m := metrics.New("test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/projects/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/projects/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Contains(t, string(body), `test_http_requests_total{method="GET",path="/projects/:id",status="200"} 2`)
	assert.Contains(t, string(body), "test_http_request_duration_seconds_bucket")
}
