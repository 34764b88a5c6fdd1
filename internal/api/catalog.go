// ABOUTME: Public catalog handlers for health tips and exercise advice.
// ABOUTME: These routes need no authentication.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
)

// fallbackTip is served as the daily tip when the catalog is empty.
const fallbackTip = "Stay active: thirty minutes of movement a day goes a long way."

func (s *Server) pageParams(c *gin.Context) (limit, offset int, ok bool) {
	for _, p := range []struct {
		name string
		dst  *int
		min  int
	}{{"limit", &limit, 1}, {"offset", &offset, 0}} {
		v := c.Query(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < p.min {
			s.fail(c, invalid("%s must be an integer >= %d", p.name, p.min))
			return 0, 0, false
		}
		*p.dst = n
	}
	return limit, offset, true
}

func (s *Server) listTips(c *gin.Context) {
	limit, offset, ok := s.pageParams(c)
	if !ok {
		return
	}
	tips, err := s.store.ListTips(c.Request.Context(), storage.TipFilter{
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, tips)
}

func (s *Server) tipCategories(c *gin.Context) {
	categories, err := s.store.TipCategories(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, categories)
}

func (s *Server) getTip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, invalid("invalid tip id %q", c.Param("id")))
		return
	}
	tip, err := s.store.GetTip(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, tip)
}

// dailyTip picks one tip per calendar day, rotating through the catalog.
func (s *Server) dailyTip(c *gin.Context) {
	tips, err := s.store.ListTips(c.Request.Context(), storage.TipFilter{Limit: 100})
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(tips) == 0 {
		respondOK(c, gin.H{"tip": fallbackTip})
		return
	}
	respondOK(c, tips[s.now().YearDay()%len(tips)])
}

func (s *Server) listExercises(c *gin.Context) {
	limit, offset, ok := s.pageParams(c)
	if !ok {
		return
	}
	exercises, err := s.store.ListExercises(c.Request.Context(), models.ExerciseFilter{
		Weather:   c.Query("weather"),
		TimeSlot:  c.Query("time_slot"),
		Intensity: c.Query("intensity"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, exercises)
}

func (s *Server) recommendExercises(c *gin.Context) {
	limit, _, ok := s.pageParams(c)
	if !ok {
		return
	}
	weather, slot := c.Query("weather"), c.Query("time_slot")
	exercises, err := s.store.RecommendExercises(c.Request.Context(), weather, slot, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, exercises)
}

func (s *Server) weatherTypes(c *gin.Context) {
	types, err := s.store.WeatherTypes(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, types)
}
