package controller

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/resource"
	"github.com/dterira/Quorable/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AnswerController struct {
	answers   service.AnswerService
	votes     service.VoteService
	formatter *resource.Formatter
}

func NewAnswerController(answers service.AnswerService, votes service.VoteService, formatter *resource.Formatter) *AnswerController {
	return &AnswerController{answers: answers, votes: votes, formatter: formatter}
}

// bindSaveAnswer reads the request either as JSON or as a multipart form
// carrying the upload under file_img_src.
func bindSaveAnswer(c *gin.Context) (dto.SaveAnswerRequest, *multipart.FileHeader, bool) {
	var req dto.SaveAnswerRequest
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

// CreateAnswer godoc
// @Summary Post an answer to a question
// @Description Creates an answer. With make_private a price (0-10) and currency are required and the answer's content is access-gated.
// @Tags answers
// @Accept json,mpfd
// @Produce json
// @Param answer body dto.SaveAnswerRequest true "Answer fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Parent question missing"
// @Failure 422 {object} dto.ErrorResponse "Validation failure"
// @Security BearerAuth
// @Router /answers [post]
func (ctrl *AnswerController) CreateAnswer(c *gin.Context) {
	req, img, ok := bindSaveAnswer(c)
	if !ok {
		return
	}

	viewerID := ViewerID(c)
	answer, err := ctrl.answers.Create(*viewerID, req, img)
	if err != nil {
		abortError(c, err)
		return
	}

	log.Info().Uint("answerID", answer.ID).Uint("userID", *viewerID).Msg("Answer posted")
	c.JSON(http.StatusCreated, ctrl.formatter.Answer(answer, resource.Options{ViewerID: viewerID}))
}

// GetAnswer godoc
// @Summary Get an answer
// @Description Loads an answer with the requested relations. Pass with=transactionsViewable to receive the viewer's is_viewable verdict.
// @Tags answers
// @Produce json
// @Param id path int true "Answer ID"
// @Param with query []string false "Relations to include (user, question, transactionsViewable)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{id} [get]
func (ctrl *AnswerController) GetAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	with := c.QueryArray("with")
	viewerID := ViewerID(c)

	answer, err := ctrl.answers.Get(id, with, viewerID)
	if err != nil {
		abortError(c, err)
		return
	}

	opt := resource.Options{
		ViewerID:     viewerID,
		WithViewable: contains(with, "transactionsViewable"),
	}
	c.JSON(http.StatusOK, ctrl.formatter.Answer(answer, opt))
}

// UpdateAnswer godoc
// @Summary Update an answer
// @Description Owner-only. make_private toggling preserves the original privatization moment.
// @Tags answers
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Answer ID"
// @Param answer body dto.SaveAnswerRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Security BearerAuth
// @Router /answers/{id} [put]
func (ctrl *AnswerController) UpdateAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, img, ok := bindSaveAnswer(c)
	if !ok {
		return
	}

	viewerID := ViewerID(c)
	answer, err := ctrl.answers.Update(*viewerID, id, req, img)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctrl.formatter.Answer(answer, resource.Options{ViewerID: viewerID}))
}

// DeleteAnswer godoc
// @Summary Delete an answer
// @Tags answers
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Security BearerAuth
// @Router /answers/{id} [delete]
func (ctrl *AnswerController) DeleteAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.answers.Delete(*ViewerID(c), ViewerRoles(c), id); err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Answer deleted."})
}

// RestoreAnswer godoc
// @Summary Restore a deleted answer
// @Tags answers
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Security BearerAuth
// @Router /answers/{id}/restore [post]
func (ctrl *AnswerController) RestoreAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.answers.Restore(*ViewerID(c), ViewerRoles(c), id); err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Answer restored."})
}

// SetBestAnswer godoc
// @Summary Mark or clear the best answer
// @Description Question-owner only. Does not touch the answer's update timestamp.
// @Tags answers
// @Accept json
// @Produce json
// @Param id path int true "Answer ID"
// @Param body body dto.SetBestRequest true "Best flag"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not the question owner"
// @Security BearerAuth
// @Router /answers/{id}/best [put]
func (ctrl *AnswerController) SetBestAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetBestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := ctrl.answers.SetBest(*ViewerID(c), id, req.Best); err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Answer updated."})
}

// VoteAnswer godoc
// @Summary Vote on an answer
// @Description Value 1 or -1 casts, 0 clears the viewer's vote.
// @Tags answers
// @Accept json
// @Produce json
// @Param id path int true "Answer ID"
// @Param body body dto.CastVoteRequest true "Vote value"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /answers/{id}/vote [post]
func (ctrl *AnswerController) VoteAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	vote, err := ctrl.votes.Cast(*ViewerID(c), model.VoteableAnswer, id, req.Value)
	if err != nil {
		abortError(c, err)
		return
	}

	total, err := ctrl.votes.Total(model.VoteableAnswer, id)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vote": vote, "votes_total": total})
}
