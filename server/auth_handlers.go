package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthService.SignupUser(&request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		if _, err := s.Mail.SendWelcomeMessage(user.Email, "Welcome to Harmonia"); err != nil {
			log.Printf("Error sending welcome email to %s: %v", user.Email, err)
		}

		response.JSON(c, "signup successful", http.StatusCreated, user.Response(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists := c.Get("access_token")
		if !exists {
			log.Println("Access token not found in context")
			respondAndAbort(c, "Access token not found in context", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}
		accessToken, ok := token.(string)
		if !ok {
			respondAndAbort(c, "Access token is not a string", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}

		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "User not found in context", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}

		if err := s.AuthService.LogoutUser(user.Email, accessToken); err != nil {
			log.Printf("Error adding access token to blacklist: %v", err)
			respondAndAbort(c, "Logout failed", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}

		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		response.JSON(c, "profile retrieved", http.StatusOK, user.Response(), nil)
	}
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		resetToken, apiErr := s.AuthService.GeneratePasswordResetToken(&request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		baseURL := s.Config.BaseUrl
		if baseURL == "" {
			baseURL = "http://localhost:3000"
		}
		resetLink := fmt.Sprintf("%s/reset-password/%s", baseURL, resetToken)

		if _, err := s.Mail.SendResetPasswordMessage(request.Email, resetLink); err != nil {
			response.JSON(c, "connection to mail service interrupted", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Reset Password Link Sent Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ResetPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		token := c.Param("token")
		if apiErr := s.AuthService.ResetPassword(&request, token); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "password reset successful", http.StatusOK, nil, nil)
	}
}

// currentUser pulls the authenticated user set by Authorize.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// currentUserID pulls the authenticated user id set by Authorize.
func currentUserID(c *gin.Context) string {
	value, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return id
}

// currentUserRole pulls the authenticated user role set by Authorize.
func currentUserRole(c *gin.Context) string {
	value, exists := c.Get("userRole")
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}
