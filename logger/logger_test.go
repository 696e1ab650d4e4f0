package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(header string) *gin.Context {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/tasks/members/sync", nil)
	if header != "" {
		req.Header.Set("X-Cloud-Trace-Context", header)
	}

	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = req

	return ctx
}

func TestNewLoggerWithoutTraceHeader(t *testing.T) {
	ctx := newTestContext("")

	l, err := NewLogger(ctx)

	assert.NoError(t, err)
	assert.NotEmpty(t, l.Trace())
	assert.Same(t, l, FromContext(ctx))

	l.Infof("sync %s", "started")
	l.End(ctx)
}

func TestNewLoggerUsesTraceHeader(t *testing.T) {
	ctx := newTestContext("test987/uselessSuffix?")

	l, err := NewLogger(ctx)

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(l.Trace(), "test987"))
}

func TestNewLoggerIgnoresZeroTrace(t *testing.T) {
	ctx := newTestContext("0000/suffix")

	l, err := NewLogger(ctx)

	assert.NoError(t, err)
	assert.False(t, strings.HasSuffix(l.Trace(), "0000"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	l := FromContext(context.Background())

	assert.NotNil(t, l)

	l.SetLabels(map[string]string{"service": "members-sync", "flow": "test"})
	assert.Equal(t, "members-sync", l.(*Logger).labelsCopy()["service"])
}
