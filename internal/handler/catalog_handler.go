package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
	"github.com/oncoliving/checkin-api/internal/handler/dto"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
	"github.com/oncoliving/checkin-api/internal/service"
)

// CatalogHandler handles questionnaire catalog requests.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetActiveQuiz returns the active questionnaire for the requested purpose.
// GET /api/quizzes/active?purpose=DAILY_CHECKIN|INITIAL_ASSESSMENT
func (h *CatalogHandler) GetActiveQuiz(c *gin.Context) {
	purpose := c.DefaultQuery("purpose", entity.QuizPurposeDailyCheckin)

	quiz, err := h.catalogService.GetActiveQuiz(purpose)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// GetQuiz returns a questionnaire with its questions and options.
func (h *CatalogHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.catalogService.GetQuizWithQuestions(quizID)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// ListQuizzes returns a paginated questionnaire listing.
func (h *CatalogHandler) ListQuizzes(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	quizzes, total, err := h.catalogService.ListQuizzes(pageSize, (page-1)*pageSize)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizzes": dto.NewListQuizResponse(quizzes),
		"total":   total,
		"page":    page,
		"size":    pageSize,
	})
}

// CreateQuizRequest represents a questionnaire creation request.
type CreateQuizRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Purpose     string `json:"purpose" binding:"required"`
}

// CreateQuiz creates a new, inactive questionnaire.
func (h *CatalogHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var createdBy *uint
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(uint); ok {
			createdBy = &id
		}
	}

	quiz, err := h.catalogService.CreateQuiz(req.Name, req.Description, req.Purpose, createdBy)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, false))
}

// UpdateQuizRequest represents a questionnaire update. Absent fields stay
// unchanged.
type UpdateQuizRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// UpdateQuiz updates questionnaire metadata.
func (h *CatalogHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.catalogService.UpdateQuiz(quizID, req.Name, req.Description)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, false))
}

// ActivateQuiz makes a questionnaire the active one for its purpose,
// deactivating any sibling.
func (h *CatalogHandler) ActivateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	if err := h.catalogService.ActivateQuiz(quizID); err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz activated successfully"})
}

// DeleteQuiz removes a questionnaire that has no recorded responses.
func (h *CatalogHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	if err := h.catalogService.DeleteQuiz(quizID); err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// AddQuestionRequest represents a question creation request.
type AddQuestionRequest struct {
	Text         string `json:"text" binding:"required,min=3,max=500"`
	Type         string `json:"type" binding:"required"`
	Role         string `json:"role" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"omitempty,min=0"`
}

// AddQuestion appends a question to a questionnaire.
func (h *CatalogHandler) AddQuestion(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.catalogService.AddQuestion(quizID, req.Text, req.Type, req.Role, req.DisplayOrder)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// UpdateQuestionRequest represents a question update. Absent fields stay
// unchanged.
type UpdateQuestionRequest struct {
	Text         *string `json:"text" binding:"omitempty,min=3,max=500"`
	Role         *string `json:"role"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}

// UpdateQuestion updates a question. Role changes are rejected once the
// questionnaire has recorded responses.
func (h *CatalogHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.catalogService.UpdateQuestion(questionID, req.Text, req.Role, req.DisplayOrder)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// DeleteQuestion removes a question from a questionnaire without responses.
func (h *CatalogHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.catalogService.DeleteQuestion(questionID); err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// AddOptionRequest represents an option creation request.
type AddOptionRequest struct {
	Token        string `json:"token" binding:"required,min=1,max=50"`
	Label        string `json:"label" binding:"required,min=1,max=255"`
	DisplayOrder int    `json:"display_order" binding:"omitempty,min=0"`
}

// AddOption appends an option to a multiple-choice question.
func (h *CatalogHandler) AddOption(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req AddOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	option, err := h.catalogService.AddOption(questionID, req.Token, req.Label, req.DisplayOrder)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewOptionResponse(option))
}

// UpdateOptionRequest represents an option update. Absent fields stay
// unchanged.
type UpdateOptionRequest struct {
	Token        *string `json:"token" binding:"omitempty,min=1,max=50"`
	Label        *string `json:"label" binding:"omitempty,min=1,max=255"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}

// UpdateOption updates an option. Token changes are rejected once the
// questionnaire has recorded responses; relabeling is always allowed.
func (h *CatalogHandler) UpdateOption(c *gin.Context) {
	optionID := c.MustGet("optionID").(uint)

	var req UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	option, err := h.catalogService.UpdateOption(optionID, req.Token, req.Label, req.DisplayOrder)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOptionResponse(option))
}

// DeleteOption removes an option from a questionnaire without responses.
func (h *CatalogHandler) DeleteOption(c *gin.Context) {
	optionID := c.MustGet("optionID").(uint)

	if err := h.catalogService.DeleteOption(optionID); err != nil {
		h.handleCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Option deleted successfully"})
}

// handleCatalogError maps service errors to HTTP responses.
func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in CatalogHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
