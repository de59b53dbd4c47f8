package handlers

import (
	"net/http"
	"strconv"

	"tpo_system/internal/models"

	"github.com/gin-gonic/gin"
)

// Request DTO shared by add and update.
type tpoRequest struct {
	Name      string `json:"name" binding:"required"`
	College   string `json:"college" binding:"required"`
	Email     string `json:"email" binding:"required"`
	ContactNo string `json:"contact_no" binding:"required"`
}

func (r tpoRequest) toModel(id int) models.TPORecord {
	return models.TPORecord{
		ID:        id,
		Name:      r.Name,
		College:   r.College,
		Email:     r.Email,
		ContactNo: r.ContactNo,
	}
}

// idParamOrBadRequest parses the :id path segment, writing a 400 on failure.
func (h *Handler) idParamOrBadRequest(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.respondError(c, http.StatusBadRequest,
			"Validation Failed", "id must be a positive integer", typeValidationError, "tpo_bad_id", nil)
		return 0, false
	}
	return id, true
}

// @Summary      List TPO records
// @Tags         tpo
// @Produce      json
// @Success      200  {array}   models.TPORecord
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/tpo [get]
// @Security     BearerAuth
func (h *Handler) listTPO(c *gin.Context) {
	records, err := h.services.TPO.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "tpo_list_failed")
		return
	}
	if records == nil {
		records = []models.TPORecord{}
	}
	c.JSON(http.StatusOK, records)
}

// @Summary      Add a TPO record
// @Tags         tpo
// @Accept       json
// @Produce      json
// @Param        body  body  tpoRequest  true  "Record"
// @Success      201  {object}  map[string]interface{}  "message, id"
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /api/tpo [post]
// @Security     BearerAuth
func (h *Handler) addTPO(c *gin.Context) {
	var input tpoRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.TPO.Add(c.Request.Context(), input.toModel(0))
	if err != nil {
		h.respondServiceError(c, err, "tpo_add_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Data added successfully", "id": id})
}

// @Summary      Update a TPO record
// @Tags         tpo
// @Accept       json
// @Produce      json
// @Param        id    path  int         true  "Record ID"
// @Param        body  body  tpoRequest  true  "Record"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/tpo/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTPO(c *gin.Context) {
	id, ok := h.idParamOrBadRequest(c)
	if !ok {
		return
	}

	var input tpoRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.TPO.Update(c.Request.Context(), input.toModel(id)); err != nil {
		h.respondServiceError(c, err, "tpo_update_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data updated successfully"})
}

// @Summary      Delete a TPO record
// @Tags         tpo
// @Produce      json
// @Param        id  path  int  true  "Record ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/tpo/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTPO(c *gin.Context) {
	id, ok := h.idParamOrBadRequest(c)
	if !ok {
		return
	}

	if err := h.services.TPO.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, err, "tpo_delete_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data deleted successfully"})
}
