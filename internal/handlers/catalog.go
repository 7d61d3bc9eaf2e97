package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/requestdata"
  "github.com/easylearn/easylearn-backend/internal/services"
)

type CatalogHandler struct {
  catalogService    services.CatalogService
  accessService     services.AccessService
}

func NewCatalogHandler(catalogService services.CatalogService, accessService services.AccessService) *CatalogHandler {
  return &CatalogHandler{catalogService: catalogService, accessService: accessService}
}

func (ch *CatalogHandler) ListCategories(c *gin.Context) {
  categories, err := ch.catalogService.ListCategories(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"categories": categories})
}

func (ch *CatalogHandler) ListCourses(c *gin.Context) {
  var categoryID *uuid.UUID
  if raw := c.Query("category_id"); raw != "" {
    id, err := uuid.Parse(raw)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
      return
    }
    categoryID = &id
  }
  courses, err := ch.catalogService.ListCourses(c.Request.Context(), categoryID, c.Query("search"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"courses": courses})
}

func (ch *CatalogHandler) GetCourse(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
    return
  }
  outline, err := ch.catalogService.GetCourseOutline(c.Request.Context(), courseID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, outline)
}

func (ch *CatalogHandler) GetUnit(c *gin.Context) {
  unitID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  content, err := ch.accessService.GetUnitContent(c.Request.Context(), userID, unitID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, content)
}

func (ch *CatalogHandler) Enroll(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
    return
  }
  userID := requestdata.ActingUserID(c.Request.Context())
  enrollment, err := ch.accessService.EnrollInCourse(c.Request.Context(), userID, courseID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  if enrollment == nil {
    RespondOK(c, gin.H{"message": "already enrolled"})
    return
  }
  c.JSON(http.StatusCreated, gin.H{"enrollment": enrollment})
}

func (ch *CatalogHandler) MyEnrollments(c *gin.Context) {
  userID := requestdata.ActingUserID(c.Request.Context())
  courses, err := ch.accessService.EnrolledCourses(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"courses": courses})
}

func (ch *CatalogHandler) MyCourses(c *gin.Context) {
  userID := requestdata.ActingUserID(c.Request.Context())
  courses, err := ch.catalogService.MyCourses(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"courses": courses})
}
