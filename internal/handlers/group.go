package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/requestdata"
  "github.com/easylearn/easylearn-backend/internal/services"
)

type GroupHandler struct {
  groupService          services.GroupService
  leaderboardService    services.LeaderboardService
}

func NewGroupHandler(groupService services.GroupService, leaderboardService services.LeaderboardService) *GroupHandler {
  return &GroupHandler{groupService: groupService, leaderboardService: leaderboardService}
}

func (gh *GroupHandler) CreateGroup(c *gin.Context) {
  var req struct {
    Title         string        `json:"title"`
    CourseIDs     []uuid.UUID   `json:"course_ids"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  group, err := gh.groupService.CreateGroup(c.Request.Context(), userID, req.Title, req.CourseIDs)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, group)
}

func (gh *GroupHandler) ListMyGroups(c *gin.Context) {
  userID := requestdata.ActingUserID(c.Request.Context())
  groups, err := gh.groupService.ListMyGroups(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"groups": groups})
}

func (gh *GroupHandler) GetGroup(c *gin.Context) {
  groupID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  detail, err := gh.groupService.GetGroup(c.Request.Context(), userID, groupID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, detail)
}

func (gh *GroupHandler) JoinGroup(c *gin.Context) {
  groupID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  membership, err := gh.groupService.JoinGroup(c.Request.Context(), userID, groupID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, membership)
}

func (gh *GroupHandler) LeaveGroup(c *gin.Context) {
  groupID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  if err := gh.groupService.LeaveGroup(c.Request.Context(), userID, groupID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "left group"})
}

func (gh *GroupHandler) UpdateGroupCourses(c *gin.Context) {
  groupID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
    return
  }
  var req struct {
    CourseIDs     []uuid.UUID   `json:"course_ids"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  group, err := gh.groupService.UpdateGroupCourses(c.Request.Context(), userID, groupID, req.CourseIDs)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, group)
}

func (gh *GroupHandler) PromoteMember(c *gin.Context) {
  groupID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
    return
  }
  var req struct {
    UserID        uuid.UUID     `json:"user_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.UserID == uuid.Nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  if err := gh.groupService.PromoteMember(c.Request.Context(), userID, groupID, req.UserID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "member promoted"})
}

func (gh *GroupHandler) Leaderboard(c *gin.Context) {
  groupID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  standings, err := gh.leaderboardService.Standings(c.Request.Context(), userID, groupID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"standings": standings})
}
