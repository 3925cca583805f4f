package server

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
)

// handleCreateMedicalRecord accepts either a JSON body or a multipart
// form with a "file" part. Files are uploaded to object storage and the
// resulting URL stamped on the record.
func (s *Server) handleCreateMedicalRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.CreateMedicalRecordRequest
		var fileHeader *multipart.FileHeader

		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			recordDate, err := time.Parse(time.RFC3339, c.PostForm("record_date"))
			if err != nil {
				recordDate, err = time.Parse("2006-01-02", c.PostForm("record_date"))
				if err != nil {
					response.JSON(c, "invalid record_date", http.StatusBadRequest, nil, err)
					return
				}
			}
			fileSize, _ := strconv.ParseInt(c.PostForm("file_size"), 10, 64)
			request = models.CreateMedicalRecordRequest{
				PatientID:   c.PostForm("patient_id"),
				Title:       c.PostForm("title"),
				Description: c.PostForm("description"),
				RecordType:  c.PostForm("record_type"),
				FileSize:    fileSize,
				RecordDate:  recordDate,
			}
			if request.Title == "" || !isValidRecordType(request.RecordType) {
				response.JSON(c, "title and a valid record_type are required", http.StatusBadRequest, nil, nil)
				return
			}
			if fh, err := c.FormFile("file"); err == nil {
				fileHeader = fh
			}
		} else {
			if err := decode(c, &request); err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
		}

		record, apiErr := s.RecordService.CreateRecord(currentUserID(c), currentUserRole(c), &request, fileHeader)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "medical record created", http.StatusCreated, record, nil)
	}
}

func (s *Server) handleGetMedicalRecords() gin.HandlerFunc {
	return func(c *gin.Context) {
		records, apiErr := s.RecordService.GetRecords(currentUserID(c))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "medical records retrieved", http.StatusOK, records, nil)
	}
}

func isValidRecordType(recordType string) bool {
	switch recordType {
	case models.RecordTypeLabResult, models.RecordTypePrescription, models.RecordTypeImaging,
		models.RecordTypeConsultationNote, models.RecordTypeOther:
		return true
	}
	return false
}
