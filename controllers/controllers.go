package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/services"
	"github.com/okapine/tablebook/utils"
)

// currentActor -> the authenticated caller set on the context by the auth
// middleware. Zero-valued for unauthenticated routes.
func currentActor(c *gin.Context) services.Actor {
	var actor services.Actor
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			actor.UserID = id
		}
	}
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			actor.Role = role
		}
	}
	return actor
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, apperrors.Validationf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}
