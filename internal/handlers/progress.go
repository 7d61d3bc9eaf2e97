package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/requestdata"
  "github.com/easylearn/easylearn-backend/internal/services"
)

type ProgressHandler struct {
  attemptService    services.AttemptService
  scoringService    services.ScoringService
}

func NewProgressHandler(attemptService services.AttemptService, scoringService services.ScoringService) *ProgressHandler {
  return &ProgressHandler{attemptService: attemptService, scoringService: scoringService}
}

func (ph *ProgressHandler) CompleteLesson(c *gin.Context) {
  lessonID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  record, err := ph.attemptService.CompleteLesson(c.Request.Context(), userID, lessonID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, record)
}

func (ph *ProgressHandler) UnitPoints(c *gin.Context) {
  unitID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  summary, err := ph.scoringService.UnitPoints(c.Request.Context(), userID, unitID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, summary)
}

func (ph *ProgressHandler) CoursePoints(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  summary, err := ph.scoringService.CoursePoints(c.Request.Context(), userID, courseID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  completed, err := ph.scoringService.IsCourseCompleted(c.Request.Context(), userID, courseID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "total_possible": summary.TotalPossible,
    "earned":         summary.Earned,
    "completed":      completed,
  })
}
