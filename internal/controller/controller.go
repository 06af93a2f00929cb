package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dterira/Quorable/internal/apperr"
	"github.com/dterira/Quorable/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// abortError translates service errors to the JSON error envelope. Typed
// application errors keep their status; anything else is a 500.
func abortError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, dto.ErrorResponse{Error: appErr.Message})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Something went wrong."})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// wantsAnswers reports whether the relation list pulls answers in, directly
// or through a nested form like answers.user. Must match the repository's
// preload resolution so verdicts appear whenever answers are loaded.
func wantsAnswers(with []string) bool {
	for _, name := range with {
		if strings.HasPrefix(name, "answers") {
			return true
		}
	}
	return false
}
