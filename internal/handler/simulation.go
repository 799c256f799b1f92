package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"greencart/internal/domain"
	"greencart/internal/service"
)

// SimulationHandler handles HTTP requests for simulation runs and history.
type SimulationHandler struct {
	simService *service.SimulationService
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(simService *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{simService: simService}
}

// RunSimulationRequest is the HTTP request body for running a simulation.
type RunSimulationRequest struct {
	NumberOfDrivers   int     `json:"numberOfDrivers"`
	RouteStartTime    string  `json:"routeStartTime"`
	MaxHoursPerDriver float64 `json:"maxHoursPerDriver"`
	OvertimePercent   float64 `json:"overtimePercent"`
	AllowSplitOrders  bool    `json:"allowSplitOrders"`
}

// HistoryResponse is one history entry.
type HistoryResponse struct {
	ID        string                  `json:"id"`
	Input     domain.SimulationConfig `json:"input"`
	Result    domain.SimulationResult `json:"result"`
	CreatedAt string                  `json:"createdAt"`
}

// Run handles POST /v1/simulation/run
func (h *SimulationHandler) Run(c *gin.Context) {
	var req RunSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.simService.RunSimulation(c.Request.Context(), domain.SimulationConfig{
		NumberOfDrivers:   req.NumberOfDrivers,
		RouteStartTime:    req.RouteStartTime,
		MaxHoursPerDriver: req.MaxHoursPerDriver,
		OvertimePercent:   req.OvertimePercent,
		AllowSplitOrders:  req.AllowSplitOrders,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, result)
}

// History handles GET /v1/simulation/history
func (h *SimulationHandler) History(c *gin.Context) {
	records, err := h.simService.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]HistoryResponse, 0, len(records))
	for _, rec := range records {
		response = append(response, historyEntry(rec))
	}

	respondJSON(c, http.StatusOK, response)
}

// Latest handles GET /v1/simulation/latest
func (h *SimulationHandler) Latest(c *gin.Context) {
	rec, err := h.simService.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, historyEntry(*rec))
}

func historyEntry(rec domain.SimulationRecord) HistoryResponse {
	return HistoryResponse{
		ID:        rec.ID,
		Input:     rec.Config,
		Result:    rec.Result,
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
