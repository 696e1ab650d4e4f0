package mid

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
)

// Panics recovers from panics and converts the panic to a 500 request error,
// so a crashing sync run answers the scheduler instead of dropping the connection.
func Panics() web.Middleware {
	f := func(after web.Handler) web.Handler {
		h := func(ctx *gin.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					panicErr := fmt.Errorf("panic: %v", r)
					logger.FromContext(ctx).Errorf("%s\n%s", panicErr, debug.Stack())

					if hub := sentrygin.GetHubFromContext(ctx); hub != nil {
						hub.WithScope(func(scope *sentry.Scope) {
							hub.Recover(r)
							sentry.Flush(5 * time.Second)
						})
					}

					err = web.NewRequestError(panicErr, http.StatusInternalServerError)
				}
			}()

			return after(ctx)
		}

		return h
	}

	return f
}
