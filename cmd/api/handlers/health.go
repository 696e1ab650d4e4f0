package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Env     string `json:"env"`
}

func Health(ctx *gin.Context) error {
	return web.Respond(ctx, healthResponse{
		Status:  "ok",
		Service: common.GAEService,
		Version: common.GAEVersion,
		Env:     common.Env,
	}, http.StatusOK)
}
