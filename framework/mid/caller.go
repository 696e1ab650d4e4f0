package mid

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
	"github.com/referralhub/casemgmt/scheduled-tasks/internal"
)

var ErrForbidden = errors.New("forbidden")

// RequireCaller only lets through requests whose caller was verified by the
// platform (cron, task queue or IAP user). Skipped when running in localhost.
func RequireCaller() web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			if common.IsLocalhost {
				return handler(ctx)
			}

			if v, ok := internal.DataFromContext(ctx); !ok || v.Caller == "" {
				return web.NewRequestError(ErrForbidden, http.StatusForbidden)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
