package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/dto"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/gym-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	setStatus  *ucAppointment.SetAppointmentStatus
	list       *ucAppointment.ListAppointments
	statistics *ucAppointment.GetStatistics
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	setStatus *ucAppointment.SetAppointmentStatus,
	list *ucAppointment.ListAppointments,
	statistics *ucAppointment.GetStatistics,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		setStatus:  setStatus,
		list:       list,
		statistics: statistics,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	MemberID  uint   `json:"memberId"`
	TrainerID uint   `json:"trainerId" binding:"required"`
	ServiceID uint   `json:"serviceId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	Notes     string `json:"notes" binding:"max=500"`
}

type SetStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid appointment request.")
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, CodeInvalidDate, "Date must be YYYY-MM-DD.")
		return
	}

	// members book for themselves; admins book on behalf of a member
	userID := middleware.UserID(c)
	memberID := req.MemberID
	switch middleware.UserRole(c) {
	case models.RoleMember:
		if memberID != 0 && memberID != userID {
			respondError(c, domain.ErrForbidden)
			return
		}
		memberID = userID
	default:
		if memberID == 0 {
			badRequest(c, "memberId is required.")
			return
		}
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		MemberID:  memberID,
		TrainerID: req.TrainerID,
		ServiceID: req.ServiceID,
		Date:      date,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid appointment id.")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "newStatus is required.")
		return
	}
	status, ok := domain.ParseStatus(req.NewStatus)
	if !ok {
		badRequest(c, "Unknown status.")
		return
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), ucAppointment.SetStatusInput{
		AppointmentID: id,
		NewStatus:     status,
		ActorRole:     middleware.UserRole(c),
		ActorID:       middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// LIST
// ======================================================

// ListMine returns every appointment the calling member booked.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	aps, err := h.list.ForMember(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, dto.FromAppointments(aps))
}

// ListTrainerDay returns the calling trainer's agenda for ?date=.
func (h *AppointmentHandler) ListTrainerDay(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		httperr.BadRequest(c, CodeInvalidDate, "date is required.")
		return
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, CodeInvalidDate, "Date must be YYYY-MM-DD.")
		return
	}

	aps, err := h.list.ForTrainerUser(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, dto.FromAppointments(aps))
}

// ListAll serves the admin listing with optional from, to, status,
// trainerId and memberId filters.
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	from, ok1 := optionalDate(c, "from")
	to, ok2 := optionalDate(c, "to")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, CodeInvalidDate, "Dates must be YYYY-MM-DD.")
		return
	}

	trainerID, ok1 := parseIDQuery(c, "trainerId")
	memberID, ok2 := parseIDQuery(c, "memberId")
	if !ok1 || !ok2 {
		badRequest(c, "Invalid id filter.")
		return
	}

	var status domain.Status
	if raw := c.Query("status"); raw != "" {
		s, ok := domain.ParseStatus(raw)
		if !ok {
			badRequest(c, "Unknown status.")
			return
		}
		status = s
	}

	aps, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		MemberID:  memberID,
		TrainerID: trainerID,
		From:      from,
		To:        to,
		Status:    status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, dto.FromAppointments(aps))
}

func (h *AppointmentHandler) Statistics(c *gin.Context) {
	from, ok1 := optionalDate(c, "from")
	to, ok2 := optionalDate(c, "to")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, CodeInvalidDate, "Dates must be YYYY-MM-DD.")
		return
	}

	st, err := h.statistics.Execute(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
