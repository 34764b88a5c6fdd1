// ABOUTME: Account handlers for registration, login, token refresh, and the current user.
// ABOUTME: Registration can seed a month of generated history for the new account.
package api

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/healthtrack/internal/auth"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type registerRequest struct {
	Username        string   `json:"username" binding:"required,min=3,max=20"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=6,max=50"`
	Nickname        *string  `json:"nickname" binding:"omitempty,max=30"`
	Height          *float64 `json:"height" binding:"omitempty,gte=50,lte=250"`
	Gender          *string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Birthday        *string  `json:"birthday"`
	GenerateHistory bool     `json:"generate_history"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email    *string  `json:"email" binding:"omitempty,email"`
	Nickname *string  `json:"nickname" binding:"omitempty,max=30"`
	Height   *float64 `json:"height" binding:"omitempty,gte=50,lte=250"`
	Gender   *string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Birthday *string  `json:"birthday"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50"`
}

type tokenResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
}

func (s *Server) issue(c *gin.Context, user *models.User, created bool) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := tokenResponse{User: user, Token: token, ExpiresIn: int64(s.tokens.TTL().Seconds())}
	if created {
		respondCreated(c, resp)
		return
	}
	respondOK(c, resp)
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if !s.bind(c, &req) {
		return
	}
	if !usernamePattern.MatchString(req.Username) {
		s.fail(c, invalid("username may only contain letters, digits, and underscores"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.fail(c, invalid("%v", err))
		return
	}

	user := models.NewUser(req.Username, strings.ToLower(strings.TrimSpace(req.Email)))
	user.PasswordHash = hash
	user.Nickname = req.Nickname
	user.Height = req.Height
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		user.Gender = &g
	}
	if req.Birthday != nil {
		b, err := models.ParseDate(*req.Birthday)
		if err != nil {
			s.fail(c, invalid("%v", err))
			return
		}
		user.Birthday = &b
	}

	ctx := c.Request.Context()
	if err := s.store.CreateUser(ctx, user); err != nil {
		s.fail(c, err)
		return
	}
	s.log.Info("user registered", "user_id", user.ID.String(), "username", user.Username)

	if req.GenerateHistory || s.opts.SeedHistory {
		res, err := s.generator.Generate(ctx, generator.Request{UserID: user.ID, Days: generator.DefaultDays})
		if err != nil {
			// Registration still succeeds without the sample history.
			s.log.Warn("seed history failed", "user_id", user.ID.String(), "error", err)
		} else {
			s.log.Info("seeded history", "user_id", user.ID.String(), "records", res.InsertedCount)
		}
	}

	s.issue(c, user, true)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if !s.bind(c, &req) {
		return
	}

	user, err := s.store.FindUserByLogin(c.Request.Context(), strings.TrimSpace(req.Login))
	if err != nil {
		// Unknown users and wrong passwords look the same to the client.
		s.fail(c, auth.ErrInvalidCredentials)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.fail(c, err)
		return
	}
	s.issue(c, user, false)
}

func (s *Server) refresh(c *gin.Context) {
	user, err := s.store.FindUserByID(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.issue(c, user, false)
}

func (s *Server) getMe(c *gin.Context) {
	user, err := s.store.FindUserByID(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, user)
}

func (s *Server) updateMe(c *gin.Context) {
	var req updateUserRequest
	if !s.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := s.store.FindUserByID(ctx, currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Nickname != nil {
		user.Nickname = req.Nickname
	}
	if req.Height != nil {
		user.Height = req.Height
	}
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		user.Gender = &g
	}
	if req.Birthday != nil {
		b, err := models.ParseDate(*req.Birthday)
		if err != nil {
			s.fail(c, invalid("%v", err))
			return
		}
		user.Birthday = &b
	}
	user.UpdatedAt = s.now()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, user)
}

func (s *Server) updatePassword(c *gin.Context) {
	var req passwordRequest
	if !s.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := s.store.FindUserByID(ctx, currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.OldPassword); err != nil {
		s.fail(c, err)
		return
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.fail(c, invalid("%v", err))
		return
	}
	if err := s.store.UpdatePassword(ctx, user.ID, hash); err != nil {
		s.fail(c, err)
		return
	}
	respondMessage(c, "password updated")
}

// parseOptionalDate parses a YYYY-MM-DD query value, returning nil when empty.
func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := models.ParseDate(v)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return &t, nil
}
