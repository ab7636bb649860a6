package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/service"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OfficerHandler handles officer record requests
type OfficerHandler struct {
	service service.OfficerService
}

// NewOfficerHandler creates a new OfficerHandler
func NewOfficerHandler(s service.OfficerService) *OfficerHandler {
	return &OfficerHandler{service: s}
}

func parseRecordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid record id")
		return uuid.Nil, false
	}
	return id, true
}

// Submit accepts a public intake form submission
func (h *OfficerHandler) Submit(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	officer, err := h.service.Submit(c.Request.Context(), raw)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			respondFieldErrors(c, verr.Fields)
		case errors.Is(err, service.ErrDuplicateRecord):
			respondError(c, http.StatusConflict, service.ErrDuplicateRecord.Error())
		default:
			log.Printf("Error submitting officer record: %v", err)
			respondError(c, http.StatusInternalServerError, "Error submitting officer data")
		}
		return
	}

	respondData(c, http.StatusCreated, "Officer data submitted successfully", officer)
}

// List returns a filtered, paged record listing
func (h *OfficerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filters := model.OfficerFilters{
		Status:  c.Query("status"),
		Command: c.Query("command"),
		Rank:    c.Query("rank"),
		Search:  c.Query("search"),
	}

	officers, pagination, err := h.service.List(c.Request.Context(), filters, page, limit)
	if err != nil {
		log.Printf("Error listing officer records: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching officers")
		return
	}
	if officers == nil {
		officers = []model.Officer{}
	}

	respondPage(c, "", officers, pagination)
}

func (h *OfficerHandler) Get(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	officer, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOfficerNotFound) {
			respondError(c, http.StatusNotFound, "Officer not found")
			return
		}
		log.Printf("Error fetching officer record: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching officer")
		return
	}

	respondData(c, http.StatusOK, "", officer)
}

// Update applies an admin patch; the record becomes status "updated"
func (h *OfficerHandler) Update(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	officer, err := h.service.Update(c.Request.Context(), id, raw)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			respondFieldErrors(c, verr.Fields)
		case errors.Is(err, service.ErrOfficerNotFound):
			respondError(c, http.StatusNotFound, "Officer not found")
		case errors.Is(err, service.ErrDuplicateRecord):
			respondError(c, http.StatusConflict, service.ErrDuplicateRecord.Error())
		default:
			log.Printf("Error updating officer record: %v", err)
			respondError(c, http.StatusInternalServerError, "Error updating officer")
		}
		return
	}

	respondData(c, http.StatusOK, "Officer data updated successfully", officer)
}

func (h *OfficerHandler) Delete(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOfficerNotFound) {
			respondError(c, http.StatusNotFound, "Officer not found")
			return
		}
		log.Printf("Error deleting officer record: %v", err)
		respondError(c, http.StatusInternalServerError, "Error deleting officer")
		return
	}

	respondData(c, http.StatusOK, "Officer deleted successfully", nil)
}

func (h *OfficerHandler) Approve(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	officer, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOfficerNotFound) {
			respondError(c, http.StatusNotFound, "Officer not found")
			return
		}
		log.Printf("Error approving officer record: %v", err)
		respondError(c, http.StatusInternalServerError, "Error approving officer")
		return
	}

	respondData(c, http.StatusOK, "Officer approved successfully", officer)
}

func (h *OfficerHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		log.Printf("Error computing statistics: %v", err)
		respondError(c, http.StatusInternalServerError, "Error fetching statistics")
		return
	}

	respondData(c, http.StatusOK, "", stats)
}

// Export downloads the filtered record set as CSV
func (h *OfficerHandler) Export(c *gin.Context) {
	filters := model.OfficerFilters{
		Status:  c.Query("status"),
		Command: c.Query("command"),
		Rank:    c.Query("rank"),
		Search:  c.Query("search"),
	}

	buf, err := h.service.ExportCSV(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error exporting officer records: %v", err)
		respondError(c, http.StatusInternalServerError, "Error exporting officers")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename(time.Now())+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// RegisterOfficerRoutes registers officer routes. Submission is public;
// everything else requires a token, with update/approve gated to admins and
// delete to superadmins.
func (h *OfficerHandler) RegisterOfficerRoutes(rg *gin.RouterGroup, authMW, adminMW, superAdminMW gin.HandlerFunc) {
	officers := rg.Group("/officers")
	{
		officers.POST("", h.Submit)
		officers.GET("", authMW, h.List)
		officers.GET("/stats", authMW, h.Statistics)
		officers.GET("/export", authMW, adminMW, h.Export)
		officers.GET("/:id", authMW, h.Get)
		officers.PUT("/:id", authMW, adminMW, h.Update)
		officers.DELETE("/:id", authMW, superAdminMW, h.Delete)
		officers.PATCH("/:id/approve", authMW, adminMW, h.Approve)
	}
}
