package mid

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
)

// ValidateQueryParamNotEmpty rejects requests whose query parameter is missing or blank.
func ValidateQueryParamNotEmpty(paramName string) web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			if strings.TrimSpace(ctx.Query(paramName)) == "" {
				return web.NewRequestError(fmt.Errorf("query parameter %s cannot be empty", paramName), http.StatusBadRequest)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
