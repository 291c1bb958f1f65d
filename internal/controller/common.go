package controller

import (
	"questionnaire_backend/internal/service"
	"questionnaire_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// actingUser 从 JWT 声明构造当前操作者，未登录时直接返回 401
func actingUser(ctx *gin.Context) (service.ActingUser, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return service.ActingUser{}, false
	}
	return service.ActingUserFromClaims(claims), true
}

func uintParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
