package mid

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
	"github.com/referralhub/casemgmt/scheduled-tasks/internal"
)

func TestRequireCaller(t *testing.T) {
	localhost := common.IsLocalhost
	common.IsLocalhost = false

	t.Cleanup(func() { common.IsLocalhost = localhost })

	ok := func(ctx *gin.Context) error { return nil }

	tests := []struct {
		name   string
		data   *internal.Data
		status int
	}{
		{"no request data", nil, http.StatusForbidden},
		{"unknown caller", &internal.Data{}, http.StatusForbidden},
		{"cron", &internal.Data{Caller: "cron"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.data != nil {
				internal.ContextWithData(ctx, tt.data)
			}

			err := RequireCaller()(ok)(ctx)

			if tt.status == 0 {
				assert.NoError(t, err)
				return
			}

			var webErr *web.Error
			assert.True(t, errors.As(err, &webErr))
			assert.Equal(t, tt.status, webErr.Status)
		})
	}
}
