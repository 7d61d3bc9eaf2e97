package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/requestdata"
  "github.com/easylearn/easylearn-backend/internal/services"
)

type QuizHandler struct {
  catalogService    services.CatalogService
  attemptService    services.AttemptService
}

func NewQuizHandler(catalogService services.CatalogService, attemptService services.AttemptService) *QuizHandler {
  return &QuizHandler{catalogService: catalogService, attemptService: attemptService}
}

func (qh *QuizHandler) GetQuiz(c *gin.Context) {
  quizID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
    return
  }
  quiz, err := qh.catalogService.GetQuiz(c.Request.Context(), quizID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, quiz)
}

func (qh *QuizHandler) GetMatchingGame(c *gin.Context) {
  gameID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
    return
  }
  game, err := qh.catalogService.GetMatchingGame(c.Request.Context(), gameID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, game)
}

func (qh *QuizHandler) SubmitAttempt(c *gin.Context) {
  quizID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
    return
  }
  var req struct {
    Answers       map[uuid.UUID]uuid.UUID   `json:"answers"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  result, err := qh.attemptService.SubmitAttempt(c.Request.Context(), userID, quizID, req.Answers)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, result)
}

func (qh *QuizHandler) GetMyAttempt(c *gin.Context) {
  quizID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  attempt, err := qh.attemptService.GetMyAttempt(c.Request.Context(), userID, quizID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, attempt)
}
