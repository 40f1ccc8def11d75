package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordJobRun(t *testing.T) {
	before := testutil.ToFloat64(jobRuns.WithLabelValues("cleanup", "failure"))
	RecordJobRun("cleanup", errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(jobRuns.WithLabelValues("cleanup", "failure")))
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(notifications.WithLabelValues("sms", "success"))
	RecordNotification("sms", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(notifications.WithLabelValues("sms", "success")))
}

func TestHandlerExposesHTTPMetrics(t *testing.T) {
	ObserveHTTPRequest(http.MethodGet, "/appointments", http.StatusOK, 12*time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `barbershop_http_requests_total{method="GET",path="/appointments",status="200"}`))
}
