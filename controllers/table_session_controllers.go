package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type TableSessionController struct {
	Sessions *services.SessionService
}

func NewTableSessionController(db *gorm.DB) *TableSessionController {
	return &TableSessionController{Sessions: services.NewSessionService(db)}
}

// OpenSession -> occupy a table
func (sc *TableSessionController) OpenSession(c *gin.Context) {
	var req struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Sessions.OpenSession(c.Request.Context(), req.TableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table session %d opened on table %d", session.ID, session.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Table session opened", session)
}

// GetAllSessions -> sessions ordered by closed_at, open ones first
func (sc *TableSessionController) GetAllSessions(c *gin.Context) {
	filter := services.SessionFilter{Status: c.Query("status")}
	if raw := c.Query("table_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("table_id must be a number"))
			return
		}
		tableID := uint(id)
		filter.TableID = &tableID
	}

	sessions, err := sc.Sessions.ListSessions(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of table sessions", sessions)
}

func (sc *TableSessionController) GetSessionByID(c *gin.Context) {
	id, ok := paramID(c, "session_id")
	if !ok {
		return
	}
	session, err := sc.Sessions.GetSession(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table session detail", session)
}

// CloseSession -> free the table, no further orders accepted
func (sc *TableSessionController) CloseSession(c *gin.Context) {
	id, ok := paramID(c, "session_id")
	if !ok {
		return
	}
	session, err := sc.Sessions.CloseSession(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table session %d closed on table %d", session.ID, session.TableID)
	utils.RespondJSON(c, http.StatusOK, "Table session closed", session)
}

func (sc *TableSessionController) GetSessionActivity(c *gin.Context) {
	id, ok := paramID(c, "session_id")
	if !ok {
		return
	}
	entries, err := sc.Sessions.Activity(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table session activity", entries)
}
