package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type TableController struct {
	Tables   *services.TableService
	Sessions *services.SessionService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		Tables:   services.NewTableService(db),
		Sessions: services.NewSessionService(db),
	}
}

// GetAllTables -> every table ordered by table number
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.ListTables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	table, err := tc.Tables.GetTable(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// GetActiveSession -> the session currently occupying the table
func (tc *TableController) GetActiveSession(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	session, err := tc.Sessions.OpenSessionForTable(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active table session", session)
}
