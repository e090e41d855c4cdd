package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/models"
)

func (suite *HandlerTestSuite) TestSignup() {
	w := suite.do(http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "new@example.com",
		"password": "supersecret",
		"role":     "admin",
	}, nil)

	suite.Require().Equal(http.StatusCreated, w.Code)
	var response dto.UserDTO
	suite.decode(w, &response)
	suite.Equal("new@example.com", response.Email)
	suite.Equal(models.RoleAdmin, response.Role)
}

func (suite *HandlerTestSuite) TestSignup_Errors() {
	w := suite.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "a@example.com", "password": "short"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "a@example.com", "password": "supersecret", "role": "owner"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.login("a@example.com", models.RoleIntern)
	w = suite.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "a@example.com", "password": "supersecret"}, nil)
	suite.Equal(http.StatusConflict, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeConflict, apiErr.Code)
}

func (suite *HandlerTestSuite) TestSignup_InvalidEmail() {
	for _, email := range []string{"not-an-email", "a@", "Bob <bob@example.com>"} {
		w := suite.do(http.MethodPost, "/api/auth/signup", gin.H{"email": email, "password": "supersecret"}, nil)
		suite.Equal(http.StatusBadRequest, w.Code, email)
	}

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	suite.Zero(count)
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.login("a@example.com", models.RoleIntern)

	w := suite.do(http.MethodPost, "/api/auth/login", gin.H{"email": "a@example.com", "password": "wrongpassword"}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestMeAndLogout() {
	user, cookies := suite.login("a@example.com", models.RoleIntern)

	w := suite.do(http.MethodGet, "/api/auth/me", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var response dto.UserDTO
	suite.decode(w, &response)
	suite.Equal(user.ID, response.ID)

	w = suite.do(http.MethodPost, "/api/auth/logout", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRoleGuards() {
	_, internCookies := suite.login("intern@example.com", models.RoleIntern)
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)

	suite.Equal(http.StatusForbidden, suite.do(http.MethodPost, "/api/allocate", nil, internCookies).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/projects", nil, internCookies).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/me/profile", nil, adminCookies).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/allocate", nil, nil).Code)
}

func (suite *HandlerTestSuite) TestHealthAndMetrics() {
	w := suite.do(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/metrics", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "go_goroutines")
}
