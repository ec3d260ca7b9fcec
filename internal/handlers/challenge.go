package handlers

import (
  "errors"
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/corpfinity/corpfinity-backend/internal/requestdata"
  "github.com/corpfinity/corpfinity-backend/internal/services"
)

type ChallengeHandler struct {
  challengeService    services.ChallengeService
}

func NewChallengeHandler(challengeService services.ChallengeService) *ChallengeHandler {
  return &ChallengeHandler{challengeService: challengeService}
}

func (ch *ChallengeHandler) List(c *gin.Context) {
  items, err := ch.challengeService.ListChallenges(c.Request.Context(), c.Query("pillar"), c.Query("energy_level"))
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"items": items})
}

func (ch *ChallengeHandler) Next(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == 0 {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  item, err := ch.challengeService.NextChallenge(c.Request.Context(), rd.UserID, c.Query("pillar"), c.Query("energy_level"))
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  // An empty bucket is a valid null result, not an error.
  c.JSON(http.StatusOK, gin.H{"item": item})
}

func (ch *ChallengeHandler) Complete(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == 0 {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  challengeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challenge id"})
    return
  }
  if err := ch.challengeService.CompleteChallenge(c.Request.Context(), rd.UserID, uint(challengeID)); err != nil {
    if errors.Is(err, services.ErrChallengeNotFound) {
      c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
      return
    }
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
