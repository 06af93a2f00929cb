package controller

import (
	"net/http"
	"strconv"

	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/resource"
	"github.com/dterira/Quorable/internal/service"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users     service.UserService
	feed      service.FeedService
	formatter *resource.Formatter
}

func NewUserController(users service.UserService, feed service.FeedService, formatter *resource.Formatter) *UserController {
	return &UserController{users: users, feed: feed, formatter: formatter}
}

// GetUser godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.users.Get(id)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctrl.formatter.User(user))
}

// QuestionsFeed godoc
// @Summary A user's questions feed
// @Description Questions posted by the user, restricted to users holding the requested roles (experts by default). Relation lists `with`/`withCount` control eager loading; authenticated viewers additionally receive per-answer visibility verdicts.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param roles query int false "Role bitmask filter" default(4)
// @Param with query []string false "Relations to include (user, answers, answers.user, tags)"
// @Param withCount query []string false "Relations to count (answers)"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {array} map[string]interface{}
// @Router /users/{id}/questions-feed [get]
func (ctrl *UserController) QuestionsFeed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	roles, err := strconv.Atoi(c.DefaultQuery("roles", strconv.Itoa(model.RoleExpert)))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid roles format"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := dto.FeedParams{
		Roles:     roles,
		With:      c.QueryArray("with"),
		WithCount: c.QueryArray("withCount"),
		Page:      page,
		PerPage:   perPage,
	}

	res, err := ctrl.feed.QuestionsFeed(id, ViewerID(c), params)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
