// ABOUTME: Personalization profile and health goal handlers.
// ABOUTME: Profile writes replace the whole profile; goal writes patch individual goals.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/harperreed/healthtrack/internal/models"
)

type profileRequest struct {
	AgeGroup        string   `json:"age_group" binding:"required,oneof=child teen adult middle_age senior"`
	ActivityLevel   string   `json:"activity_level" binding:"omitempty,oneof=sedentary lightly_active moderately_active very_active extremely_active"`
	HealthCondition string   `json:"health_condition" binding:"omitempty,oneof=excellent good fair poor"`
	Cardiovascular  bool     `json:"has_cardiovascular_issues"`
	Diabetes        bool     `json:"has_diabetes"`
	JointIssues     bool     `json:"has_joint_issues"`
	Pregnant        bool     `json:"is_pregnant"`
	Recovering      bool     `json:"is_recovering"`
	StepsGoal       *int     `json:"personalized_steps_goal" binding:"omitempty,gte=0,lte=50000"`
	HeartRateMin    *int     `json:"personalized_heart_rate_min" binding:"omitempty,gte=0,lte=200"`
	HeartRateMax    *int     `json:"personalized_heart_rate_max" binding:"omitempty,gte=0,lte=220"`
	SleepGoal       *float64 `json:"personalized_sleep_goal" binding:"omitempty,gte=0,lte=15"`
	WaterGoal       *int     `json:"personalized_water_goal" binding:"omitempty,gte=0,lte=10000"`
	DoctorNotes     *string  `json:"doctor_notes"`
}

type doctorNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

type goalsRequest struct {
	StepsGoal    *int     `json:"steps_goal" binding:"omitempty,gte=1000,lte=100000"`
	WaterGoal    *int     `json:"water_goal" binding:"omitempty,gte=500,lte=10000"`
	SleepGoal    *float64 `json:"sleep_goal" binding:"omitempty,gte=1,lte=24"`
	CaloriesGoal *int     `json:"calories_goal" binding:"omitempty,gte=500,lte=10000"`
	WeightGoal   *float64 `json:"weight_goal" binding:"omitempty,gte=20,lte=300"`
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.analyzer.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, p)
}

func (s *Server) upsertProfile(c *gin.Context) {
	var req profileRequest
	if !s.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	userID := currentUser(c)
	p := models.NewPersonalizationProfile(userID, models.AgeGroup(req.AgeGroup))
	if existing, err := s.store.FindProfileByUserID(ctx, userID); err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	if req.ActivityLevel != "" {
		p.ActivityLevel = models.ActivityLevel(req.ActivityLevel)
	}
	if req.HealthCondition != "" {
		p.HealthCondition = models.HealthCondition(req.HealthCondition)
	}
	p.Conditions = models.Conditions{
		Cardiovascular: req.Cardiovascular,
		Diabetes:       req.Diabetes,
		JointIssues:    req.JointIssues,
		Pregnant:       req.Pregnant,
		Recovering:     req.Recovering,
	}
	p.StepsGoal = req.StepsGoal
	p.HeartRateMin = req.HeartRateMin
	p.HeartRateMax = req.HeartRateMax
	p.SleepGoal = req.SleepGoal
	p.WaterGoal = req.WaterGoal
	p.DoctorNotes = req.DoctorNotes
	p.UpdatedAt = s.now()

	if err := p.Validate(); err != nil {
		s.fail(c, invalid("%v", err))
		return
	}
	if err := s.store.UpsertProfile(ctx, p); err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, p)
}

func (s *Server) deleteProfile(c *gin.Context) {
	if err := s.store.DeleteProfile(c.Request.Context(), currentUser(c)); err != nil {
		s.fail(c, err)
		return
	}
	respondMessage(c, "profile deleted")
}

func (s *Server) updateDoctorNotes(c *gin.Context) {
	var req doctorNotesRequest
	if !s.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	userID := currentUser(c)
	// Make sure a profile exists to hold the notes.
	if _, err := s.analyzer.Profile(ctx, userID); err != nil {
		s.fail(c, err)
		return
	}
	if err := s.store.UpdateDoctorNotes(ctx, userID, req.Notes); err != nil {
		s.fail(c, err)
		return
	}
	p, err := s.store.FindProfileByUserID(ctx, userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, p)
}

func (s *Server) getGoals(c *gin.Context) {
	goals, err := s.store.FindGoalsWithDefaults(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, goals)
}

func (s *Server) updateGoals(c *gin.Context) {
	var req goalsRequest
	if !s.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	goals, err := s.store.FindGoalsWithDefaults(ctx, currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.StepsGoal != nil {
		goals.StepsGoal = *req.StepsGoal
	}
	if req.WaterGoal != nil {
		goals.WaterGoal = *req.WaterGoal
	}
	if req.SleepGoal != nil {
		goals.SleepGoal = *req.SleepGoal
	}
	if req.CaloriesGoal != nil {
		goals.CaloriesGoal = *req.CaloriesGoal
	}
	if req.WeightGoal != nil {
		goals.WeightGoal = req.WeightGoal
	}
	if err := goals.Validate(); err != nil {
		s.fail(c, invalid("%v", err))
		return
	}

	if err := s.store.UpsertGoals(ctx, goals); err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, goals)
}
