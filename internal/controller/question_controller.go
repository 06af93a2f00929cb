package controller

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/resource"
	"github.com/dterira/Quorable/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questions service.QuestionService
	formatter *resource.Formatter
}

func NewQuestionController(questions service.QuestionService, formatter *resource.Formatter) *QuestionController {
	return &QuestionController{questions: questions, formatter: formatter}
}

func bindSaveQuestion(c *gin.Context) (dto.SaveQuestionRequest, *multipart.FileHeader, bool) {
	var req dto.SaveQuestionRequest
	var img *multipart.FileHeader

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
			return req, nil, false
		}
		img, _ = c.FormFile("file_img_src")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return req, nil, false
	}
	return req, img, true
}

// CreateQuestion godoc
// @Summary Post a question
// @Tags questions
// @Accept json,mpfd
// @Produce json
// @Param question body dto.SaveQuestionRequest true "Question fields"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} dto.ErrorResponse "Validation failure"
// @Security BearerAuth
// @Router /questions [post]
func (ctrl *QuestionController) CreateQuestion(c *gin.Context) {
	req, img, ok := bindSaveQuestion(c)
	if !ok {
		return
	}

	viewerID := ViewerID(c)
	question, err := ctrl.questions.Create(*viewerID, req, img)
	if err != nil {
		abortError(c, err)
		return
	}

	log.Info().Uint("questionID", question.ID).Uint("userID", *viewerID).Msg("Question posted")
	c.JSON(http.StatusCreated, ctrl.formatter.Question(question, resource.Options{ViewerID: viewerID}))
}

// GetQuestion godoc
// @Summary Get a question
// @Description Loads a question with the requested relations; answers are formatted per-viewer, including visibility verdicts when authenticated.
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Param with query []string false "Relations to include (user, answers, answers.user, tags)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id} [get]
func (ctrl *QuestionController) GetQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	with := c.QueryArray("with")
	viewerID := ViewerID(c)

	question, err := ctrl.questions.Get(id, with, viewerID)
	if err != nil {
		abortError(c, err)
		return
	}

	opt := resource.Options{
		ViewerID:     viewerID,
		WithViewable: viewerID != nil && wantsAnswers(with),
	}
	c.JSON(http.StatusOK, ctrl.formatter.Question(question, opt))
}

// ListQuestions godoc
// @Summary Browse questions
// @Description Pages through all questions, newest first. Answers nested via with=answers carry visibility verdicts for authenticated viewers.
// @Tags questions
// @Produce json
// @Param with query []string false "Relations to include (user, answers, answers.user, tags)"
// @Param withCount query []string false "Counts to include (answers)"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {array} map[string]interface{}
// @Router /questions [get]
func (ctrl *QuestionController) ListQuestions(c *gin.Context) {
	viewerID := ViewerID(c)
	params := dto.FeedParams{
		With:      c.QueryArray("with"),
		WithCount: c.QueryArray("withCount"),
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "15"))

	questions, err := ctrl.questions.List(viewerID, params)
	if err != nil {
		abortError(c, err)
		return
	}

	opt := resource.Options{
		ViewerID:     viewerID,
		WithViewable: viewerID != nil && wantsAnswers(params.With),
	}
	res := make([]gin.H, 0, len(questions))
	for i := range questions {
		res = append(res, ctrl.formatter.Question(&questions[i], opt))
	}
	c.JSON(http.StatusOK, res)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.SaveQuestionRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /questions/{id} [put]
func (ctrl *QuestionController) UpdateQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, img, ok := bindSaveQuestion(c)
	if !ok {
		return
	}

	viewerID := ViewerID(c)
	question, err := ctrl.questions.Update(*viewerID, id, req, img)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctrl.formatter.Question(question, resource.Options{ViewerID: viewerID}))
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /questions/{id} [delete]
func (ctrl *QuestionController) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.questions.Delete(*ViewerID(c), ViewerRoles(c), id); err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted."})
}

// RestoreQuestion godoc
// @Summary Restore a deleted question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /questions/{id}/restore [post]
func (ctrl *QuestionController) RestoreQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.questions.Restore(*ViewerID(c), ViewerRoles(c), id); err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Question restored."})
}
