package mid

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
	"github.com/referralhub/casemgmt/scheduled-tasks/internal"
)

func captureSentryError(ctx *gin.Context, err error) {
	if hub := sentrygin.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(sentry.LevelError)

			if v, ok := internal.DataFromContext(ctx); ok {
				scope.SetTag("trace", v.TraceID)
				scope.SetTag("caller", v.Caller)
			}

			hub.CaptureException(err)
		})
	}
}

// Sentry reports handler errors that map to a 5xx response.
func Sentry() web.Middleware {
	f := func(before web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			err := before(ctx)

			var webErr *web.Error

			switch {
			case err == nil:
			case errors.As(err, &webErr):
				if webErr.Status >= http.StatusInternalServerError {
					captureSentryError(ctx, err)
				}
			default:
				captureSentryError(ctx, err)
			}

			return err
		}

		return h
	}

	return f
}
