package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
	"github.com/oncoliving/checkin-api/internal/handler/dto"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
	"github.com/oncoliving/checkin-api/internal/service"
)

const exportHistoryLimit = 366

// CheckinHandler handles daily check-in submission and history requests.
type CheckinHandler struct {
	checkinService *service.CheckinService
	catalogService *service.CatalogService
	reportService  *service.ReportService
}

func NewCheckinHandler(
	checkinService *service.CheckinService,
	catalogService *service.CatalogService,
	reportService *service.ReportService,
) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
		catalogService: catalogService,
		reportService:  reportService,
	}
}

// SubmitCheckinRequest represents a check-in submission.
type SubmitCheckinRequest struct {
	QuizID       uint   `json:"quiz_id"`
	Observations string `json:"observations" binding:"omitempty,max=2000"`
	Answers      []struct {
		QuestionID uint   `json:"question_id" binding:"required"`
		Value      string `json:"value" binding:"required,max=50"`
	} `json:"answers" binding:"required,min=1"`
}

// SubmitCheckin handles POST /api/checkins.
func (h *CheckinHandler) SubmitCheckin(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req SubmitCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quizID, err := h.resolveQuizID(req.QuizID)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}

	answers := make([]service.SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, service.SubmittedAnswer{
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}

	response, err := h.checkinService.SubmitDaily(c.Request.Context(), userID, quizID, answers, req.Observations)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCheckinResponse(response, false))
}

// GetToday handles GET /api/checkins/today. Returns 404 when the user has
// not checked in yet today.
func (h *CheckinHandler) GetToday(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	quizID, err := h.resolveQuizID(parseQueryUint(c, "quiz_id"))
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}

	response, err := h.checkinService.GetToday(c.Request.Context(), userID, quizID)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCheckinResponse(response, false))
}

// GetHistory handles GET /api/checkins/history?limit=N.
func (h *CheckinHandler) GetHistory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit < 1 || limit > exportHistoryLimit {
		limit = 30
	}

	responses, err := h.reportService.GetHistory(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkins": dto.NewListCheckinResponse(responses),
		"total":    len(responses),
	})
}

// GetStats handles GET /api/checkins/stats.
func (h *CheckinHandler) GetStats(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	stats, err := h.reportService.GetStats(c.Request.Context(), userID)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// ExportHistory exports the caller's check-in history in CSV or Excel format.
// GET /api/checkins/export?format=csv|xlsx
func (h *CheckinHandler) ExportHistory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	format := c.DefaultQuery("format", "csv")

	responses, err := h.reportService.GetHistory(c.Request.Context(), userID, exportHistoryLimit)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}

	filename := fmt.Sprintf("checkins_%d_%s", userID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, responses, filename)
	default:
		h.exportCSV(c, responses, filename)
	}
}

// exportCSV writes history rows as CSV with proper quoting of special characters.
func (h *CheckinHandler) exportCSV(c *gin.Context, responses []entity.Response, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel renders UTF-8 correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Date", "Classification", "Score", "Good day for exercise", "Recommendation", "Observations"})

	for _, r := range responses {
		goodDay := "No"
		if r.IsGoodDayForExercise {
			goodDay = "Yes"
		}

		writer.Write([]string{
			r.ResponseDate.Format("2006-01-02"),
			r.Classification,
			strconv.Itoa(r.TotalScore),
			goodDay,
			sanitizeForExcel(r.RecommendedExerciseType),
			sanitizeForExcel(r.GeneralObservations),
		})
	}
}

// exportXLSX writes history rows to an Excel workbook using a StreamWriter.
func (h *CheckinHandler) exportXLSX(c *gin.Context, responses []entity.Response, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Check-ins"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[CheckinHandler] Failed to create StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Date", "Classification", "Score", "Good day for exercise", "Recommendation", "Observations"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[CheckinHandler] Failed to write headers: %v", err)
	}

	for i, r := range responses {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		goodDay := "No"
		if r.IsGoodDayForExercise {
			goodDay = "Yes"
		}

		row := []interface{}{
			r.ResponseDate.Format("2006-01-02"),
			r.Classification,
			r.TotalScore,
			goodDay,
			sanitizeForExcel(r.RecommendedExerciseType),
			sanitizeForExcel(r.GeneralObservations),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[CheckinHandler] Failed to write row %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[CheckinHandler] StreamWriter flush failed: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[CheckinHandler] Failed to write Excel to response: %v", err)
	}
}

// sanitizeForExcel guards exported cells against formula injection.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Characters that start a formula in Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// resolveQuizID falls back to the active daily check-in questionnaire when
// the client did not name one.
func (h *CheckinHandler) resolveQuizID(quizID uint) (uint, error) {
	if quizID != 0 {
		return quizID, nil
	}
	quiz, err := h.catalogService.GetActiveQuiz(entity.QuizPurposeDailyCheckin)
	if err != nil {
		return 0, err
	}
	return quiz.ID, nil
}

func parseQueryUint(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}

// handleCheckinError maps service errors to HTTP responses.
func (h *CheckinHandler) handleCheckinError(c *gin.Context, err error) {
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
		log.Printf("ERROR: Internal server error in CheckinHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
