package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	"github.com/yukikurage/intern-allocation-api/internal/models"
)

func (suite *HandlerTestSuite) createSkill(cookies []*http.Cookie, name string) dto.SkillDTO {
	w := suite.do(http.MethodPost, "/api/skills", gin.H{"name": name}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var skill dto.SkillDTO
	suite.decode(w, &skill)
	return skill
}

func (suite *HandlerTestSuite) createProject(cookies []*http.Cookie, name string, hours float64, skillIDs ...uint64) dto.ProjectDTO {
	w := suite.do(http.MethodPost, "/api/projects", gin.H{
		"name":            name,
		"description":     "Test Description",
		"estimated_hours": hours,
		"skill_ids":       skillIDs,
	}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var project dto.ProjectDTO
	suite.decode(w, &project)
	return project
}

func (suite *HandlerTestSuite) TestSkills() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	_, internCookies := suite.login("intern@example.com", models.RoleIntern)

	suite.createSkill(adminCookies, "Go")
	w := suite.do(http.MethodPost, "/api/skills", gin.H{"name": "go"}, adminCookies)
	suite.Equal(http.StatusConflict, w.Code)
	w = suite.do(http.MethodPost, "/api/skills", gin.H{"name": "SQL"}, internCookies)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, "/api/skills", nil, internCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var response struct {
		Skills []dto.SkillDTO `json:"skills"`
	}
	suite.decode(w, &response)
	suite.Len(response.Skills, 1)
}

func (suite *HandlerTestSuite) TestCreateAndListProjects() {
	_, cookies := suite.login("admin@example.com", models.RoleAdmin)
	goSkill := suite.createSkill(cookies, "Go")
	sqlSkill := suite.createSkill(cookies, "SQL")

	created := suite.createProject(cookies, "API", 8, goSkill.ID, sqlSkill.ID)
	suite.Len(created.RequiredSkills, 2)
	suite.False(created.Assigned)
	suite.createProject(cookies, "Big", 80, sqlSkill.ID)
	suite.createProject(cookies, "Docs", 2)

	w := suite.do(http.MethodGet, "/api/projects?max_hours=10&page=1&limit=1", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.ProjectListResponse
	suite.decode(w, &list)
	suite.Equal(int64(2), list.TotalCount)
	suite.Equal(2, list.TotalPages)
	suite.Require().Len(list.Projects, 1)
	suite.Equal("API", list.Projects[0].Name)

	w = suite.do(http.MethodGet, "/api/projects?skill_id=999", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &list)
	suite.Empty(list.Projects)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/projects?max_hours=abc", nil, cookies).Code)
}

func (suite *HandlerTestSuite) TestCreateProject_UnknownSkill() {
	_, cookies := suite.login("admin@example.com", models.RoleAdmin)

	w := suite.do(http.MethodPost, "/api/projects", gin.H{"name": "API", "estimated_hours": 3, "skill_ids": []uint64{42}}, cookies)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGenerateProjects_NotConfigured() {
	_, cookies := suite.login("admin@example.com", models.RoleAdmin)

	w := suite.do(http.MethodPost, "/api/projects/generate", gin.H{"text": "Build a search page"}, cookies)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}
