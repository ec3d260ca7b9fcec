package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/corpfinity/corpfinity-backend/internal/requestdata"
  "github.com/corpfinity/corpfinity-backend/internal/services"
)

type ProgressHandler struct {
  progressService   services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
  return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) userID(c *gin.Context) (uint, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == 0 {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return 0, false
  }
  return rd.UserID, true
}

func (ph *ProgressHandler) Summary(c *gin.Context) {
  userID, ok := ph.userID(c)
  if !ok {
    return
  }
  summary, err := ph.progressService.Summary(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, summary)
}

func (ph *ProgressHandler) Breakdown(c *gin.Context) {
  userID, ok := ph.userID(c)
  if !ok {
    return
  }
  items, err := ph.progressService.Breakdown(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"items": items})
}

func (ph *ProgressHandler) Calendar(c *gin.Context) {
  userID, ok := ph.userID(c)
  if !ok {
    return
  }
  items, err := ph.progressService.Calendar(c.Request.Context(), userID, c.Query("month"))
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"items": items})
}

func (ph *ProgressHandler) Weekly(c *gin.Context) {
  userID, ok := ph.userID(c)
  if !ok {
    return
  }
  items, err := ph.progressService.Weekly(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"items": items})
}

func (ph *ProgressHandler) Monthly(c *gin.Context) {
  userID, ok := ph.userID(c)
  if !ok {
    return
  }
  items, err := ph.progressService.Monthly(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"items": items})
}

func (ph *ProgressHandler) Yearly(c *gin.Context) {
  userID, ok := ph.userID(c)
  if !ok {
    return
  }
  items, err := ph.progressService.Yearly(c.Request.Context(), userID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"items": items})
}
