// ABOUTME: Health record handlers: list, get, create, batch create, update, delete.
// ABOUTME: Every operation is scoped to the authenticated user.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
)

const (
	defaultListLimit = 20
	maxListLimit     = 500
)

type recordRequest struct {
	Type       string   `json:"type" binding:"required"`
	Value      *float64 `json:"value" binding:"required,gte=0"`
	Note       *string  `json:"note" binding:"omitempty,max=500"`
	RecordDate string   `json:"record_date"`
}

func (req recordRequest) toRecord(userID uuid.UUID) (*models.MetricRecord, error) {
	t, err := models.ParseMetricType(req.Type)
	if err != nil {
		return nil, err
	}
	r := models.NewMetricRecord(userID, t, *req.Value)
	r.Note = req.Note
	if req.RecordDate != "" {
		d, err := models.ParseDate(req.RecordDate)
		if err != nil {
			return nil, invalid("%v", err)
		}
		r.WithRecordDate(d)
	}
	if err := r.Validate(); err != nil {
		return nil, invalid("%v", err)
	}
	return r, nil
}

type batchRequest struct {
	Records []recordRequest `json:"records" binding:"required,min=1,dive"`
}

type updateRecordRequest struct {
	Value      *float64 `json:"value" binding:"omitempty,gte=0"`
	Note       *string  `json:"note" binding:"omitempty,max=500"`
	RecordDate *string  `json:"record_date"`
}

type recordList struct {
	Records []*models.MetricRecord `json:"records"`
	Total   int                    `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

func (s *Server) listRecords(c *gin.Context) {
	f := storage.RecordFilter{Limit: defaultListLimit}

	if v := c.Query("type"); v != "" {
		t, err := models.ParseMetricType(v)
		if err != nil {
			s.fail(c, err)
			return
		}
		f.Type = &t
	}
	var err error
	if f.Start, err = parseOptionalDate(c.Query("start_date")); err != nil {
		s.fail(c, err)
		return
	}
	if f.End, err = parseOptionalDate(c.Query("end_date")); err != nil {
		s.fail(c, err)
		return
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			s.fail(c, invalid("limit must be between 1 and %d", maxListLimit))
			return
		}
		f.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(c, invalid("offset must be a non-negative integer"))
			return
		}
		f.Offset = n
	}

	records, total, err := s.store.ListRecords(c.Request.Context(), currentUser(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, recordList{Records: records, Total: total, Limit: f.Limit, Offset: f.Offset})
}

func (s *Server) getRecord(c *gin.Context) {
	r, err := s.store.GetRecord(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, r)
}

func (s *Server) createRecord(c *gin.Context) {
	var req recordRequest
	if !s.bind(c, &req) {
		return
	}
	r, err := req.toRecord(currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.store.CreateRecord(c.Request.Context(), r); err != nil {
		s.fail(c, err)
		return
	}
	respondCreated(c, r)
}

func (s *Server) createRecordsBatch(c *gin.Context) {
	var req batchRequest
	if !s.bind(c, &req) {
		return
	}
	if len(req.Records) > storage.MaxBatchSize {
		s.fail(c, invalid("at most %d records per batch, got %d", storage.MaxBatchSize, len(req.Records)))
		return
	}

	userID := currentUser(c)
	records := make([]*models.MetricRecord, 0, len(req.Records))
	for i, rr := range req.Records {
		r, err := rr.toRecord(userID)
		if err != nil {
			s.fail(c, invalid("record %d: %v", i, err))
			return
		}
		records = append(records, r)
	}

	n, err := s.store.CreateRecords(c.Request.Context(), records)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondCreated(c, gin.H{"inserted_count": n, "records": records})
}

func (s *Server) updateRecord(c *gin.Context) {
	var req updateRecordRequest
	if !s.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	r, err := s.store.GetRecord(ctx, currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.Value != nil {
		r.Value = *req.Value
	}
	if req.Note != nil {
		r.Note = req.Note
	}
	if req.RecordDate != nil {
		d, err := models.ParseDate(*req.RecordDate)
		if err != nil {
			s.fail(c, invalid("%v", err))
			return
		}
		r.WithRecordDate(d)
	}

	if err := s.store.UpdateRecord(ctx, r); err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, r)
}

func (s *Server) deleteRecord(c *gin.Context) {
	if err := s.store.DeleteRecord(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	respondMessage(c, "record deleted")
}
