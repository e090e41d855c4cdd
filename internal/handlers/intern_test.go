package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	"github.com/yukikurage/intern-allocation-api/internal/models"
)

func (suite *HandlerTestSuite) updateProfile(cookies []*http.Cookie, goal float64, ratings map[uint64]int) dto.ProfileDTO {
	body := gin.H{"goal_hours": goal, "ratings": map[string]int{}}
	for skillID, rating := range ratings {
		body["ratings"].(map[string]int)[fmt.Sprint(skillID)] = rating
	}
	w := suite.do(http.MethodPut, "/api/me/profile", body, cookies)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var profile dto.ProfileDTO
	suite.decode(w, &profile)
	return profile
}

func (suite *HandlerTestSuite) TestUpdateProfile() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	skill := suite.createSkill(adminCookies, "Go")
	_, cookies := suite.login("intern@example.com", models.RoleIntern)

	profile := suite.updateProfile(cookies, 25, map[uint64]int{skill.ID: 4})

	suite.Require().NotNil(profile.GoalHours)
	suite.Equal(25.0, *profile.GoalHours)
	suite.Require().Len(profile.Ratings, 1)
	suite.Equal("Go", profile.Ratings[0].SkillName)

	w := suite.do(http.MethodGet, "/api/me/profile", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateProfile_Invalid() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	skill := suite.createSkill(adminCookies, "Go")
	_, cookies := suite.login("intern@example.com", models.RoleIntern)

	tests := []struct {
		name string
		body gin.H
	}{
		{"rating too high", gin.H{"ratings": gin.H{fmt.Sprint(skill.ID): 9}}},
		{"unknown skill", gin.H{"ratings": gin.H{"999": 3}}},
		{"non numeric skill", gin.H{"ratings": gin.H{"go": 3}}},
		{"negative goal", gin.H{"goal_hours": -5}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPut, "/api/me/profile", tt.body, cookies)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestCompleteAssignment() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	intern, cookies := suite.login("intern@example.com", models.RoleIntern)
	suite.updateProfile(cookies, 10, nil)
	project := suite.createProject(adminCookies, "API", 5)

	w := suite.do(http.MethodPost, "/api/assignments", gin.H{"intern_id": intern.ID, "project_id": project.ID}, adminCookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/me/assignments", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var assignments struct {
		Assignments []dto.AssignmentDTO `json:"assignments"`
	}
	suite.decode(w, &assignments)
	suite.Require().Len(assignments.Assignments, 1)
	suite.Equal("API", assignments.Assignments[0].Project.Name)

	path := fmt.Sprintf("/api/me/assignments/%d/complete", project.ID)
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPost, path, nil, cookies).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPost, path, nil, cookies).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/me/assignments/abc/complete", nil, cookies).Code)

	w = suite.do(http.MethodGet, "/api/me/completed", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var completed struct {
		Completed []dto.CompletedProjectDTO `json:"completed"`
	}
	suite.decode(w, &completed)
	suite.Require().Len(completed.Completed, 1)

	w = suite.do(http.MethodGet, "/api/reports/completed", nil, adminCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var report struct {
		Completed []dto.CompletedReportDTO `json:"completed"`
	}
	suite.decode(w, &report)
	suite.Require().Len(report.Completed, 1)
	suite.Equal("intern@example.com", report.Completed[0].InternEmail)
	suite.Equal("API", report.Completed[0].ProjectName)

	w = suite.do(http.MethodGet, "/api/reports/interns", nil, adminCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var chart struct {
		Interns []dto.InternReportDTO `json:"interns"`
	}
	suite.decode(w, &chart)
	suite.Require().Len(chart.Interns, 1)
	suite.Equal(int64(1), chart.Interns[0].CompletedCount)
	suite.Zero(chart.Interns[0].ActiveCount)
}
