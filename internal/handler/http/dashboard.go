package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Manager(w http.ResponseWriter, r *http.Request)
	EmployeeOverview(w http.ResponseWriter, r *http.Request)
	OrgSummary(w http.ResponseWriter, r *http.Request)
	DepartmentStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// Manager implements DashboardHandler.
func (h *dashboardHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Manager(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeOverview implements DashboardHandler.
func (h *dashboardHandlerImpl) EmployeeOverview(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.EmployeeOverview(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// OrgSummary implements DashboardHandler.
func (h *dashboardHandlerImpl) OrgSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.OrgSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DepartmentStats implements DashboardHandler.
func (h *dashboardHandlerImpl) DepartmentStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.dashboardService.DepartmentStats(r.Context(), q.Get("period"), q.Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
