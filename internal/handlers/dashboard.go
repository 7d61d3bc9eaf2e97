package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/easylearn/easylearn-backend/internal/requestdata"
  "github.com/easylearn/easylearn-backend/internal/services"
)

type DashboardHandler struct {
  dashboardService      services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
  return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Dashboard(c *gin.Context) {
  userID := requestdata.ActingUserID(c.Request.Context())
  data, err := dh.dashboardService.Dashboard(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, data)
}

func (dh *DashboardHandler) Profile(c *gin.Context) {
  userID := requestdata.ActingUserID(c.Request.Context())
  profile, err := dh.dashboardService.Profile(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, profile)
}
