package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/intern-allocation-api/internal/allocation"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/lock"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

type runnerFunc func(ctx context.Context) (*allocation.Result, error)

func (f runnerFunc) Run(ctx context.Context) (*allocation.Result, error) {
	return f(ctx)
}

// runAllocationWith serves the trigger backed by the given runner
func (suite *HandlerTestSuite) runAllocationWith(runner services.Runner) *httptest.ResponseRecorder {
	handler := NewAllocationHandler(services.NewAllocationService(runner, lock.NewLocalLocker(), nil))
	r := gin.New()
	r.POST("/api/allocate", handler.RunAllocation)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/allocate", nil))
	return w
}

func (suite *HandlerTestSuite) TestRunAllocation() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	skillA := suite.createSkill(adminCookies, "A")
	skillB := suite.createSkill(adminCookies, "B")
	p1 := suite.createProject(adminCookies, "P1", 10, skillA.ID, skillB.ID)
	p2 := suite.createProject(adminCookies, "P2", 20, skillA.ID)

	_, w1 := suite.login("w1@example.com", models.RoleIntern)
	suite.updateProfile(w1, 12, map[uint64]int{skillA.ID: 3, skillB.ID: 2})
	w2User, w2 := suite.login("w2@example.com", models.RoleIntern)
	suite.updateProfile(w2, 15, map[uint64]int{skillA.ID: 5, skillB.ID: 5})

	w := suite.do(http.MethodPost, "/api/allocate", nil, adminCookies)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.AllocationResponse
	suite.decode(w, &resp)
	suite.True(resp.Success)
	suite.NotEmpty(resp.RunID)
	suite.Equal(1, resp.Assigned)
	suite.Equal(1, resp.Unassigned)
	suite.Require().Len(resp.Outcomes, 2)
	suite.Equal(p1.ID, resp.Outcomes[0].ProjectID)
	suite.Equal(allocation.OutcomeAssigned, resp.Outcomes[0].Status)
	suite.Require().NotNil(resp.Outcomes[0].InternID)
	suite.Equal(w2User.ID, *resp.Outcomes[0].InternID)
	suite.Equal(10, *resp.Outcomes[0].Score)
	suite.Equal(p2.ID, resp.Outcomes[1].ProjectID)
	suite.Equal(allocation.OutcomeUnassigned, resp.Outcomes[1].Status)

	// the assigned project leaves the unassigned listing
	w = suite.do(http.MethodGet, "/api/projects", nil, adminCookies)
	var list dto.ProjectListResponse
	suite.decode(w, &list)
	suite.Require().Len(list.Projects, 1)
	suite.Equal("P2", list.Projects[0].Name)

	// a second run has nothing new to assign
	w = suite.do(http.MethodPost, "/api/allocate", nil, adminCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &resp)
	suite.Zero(resp.Assigned)

	w = suite.do(http.MethodGet, "/metrics", nil, nil)
	suite.Contains(w.Body.String(), `allocation_runs_total{result="success"} 2`)
	suite.Contains(w.Body.String(), `allocation_project_outcomes_total{outcome="assigned"} 1`)
}

func (suite *HandlerTestSuite) TestRunAllocation_NoProjects() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)

	w := suite.do(http.MethodPost, "/api/allocate", nil, adminCookies)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.AllocationResponse
	suite.decode(w, &resp)
	suite.True(resp.Success)
	suite.Empty(resp.Outcomes)
}

func (suite *HandlerTestSuite) TestRunAllocation_InProgress() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	release, err := suite.locker.TryLock(context.Background())
	suite.Require().NoError(err)
	defer release()

	w := suite.do(http.MethodPost, "/api/allocate", nil, adminCookies)

	suite.Require().Equal(http.StatusConflict, w.Code)
	var resp dto.AllocationResponse
	suite.decode(w, &resp)
	suite.False(resp.Success)
	suite.Require().NotNil(resp.Error)
	suite.Equal(apierrors.ErrCodeAllocationInProgress, resp.Error.Code)
}

func (suite *HandlerTestSuite) TestRunAllocation_ListProjectsFailure() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	suite.Require().NoError(suite.db.Migrator().DropTable(&models.ProjectSkill{}, &models.InternProject{}, &models.CompletedProject{}, &models.Project{}))

	w := suite.do(http.MethodPost, "/api/allocate", nil, adminCookies)

	suite.Require().Equal(http.StatusInternalServerError, w.Code)
	var resp dto.AllocationResponse
	suite.decode(w, &resp)
	suite.False(resp.Success)
	suite.Equal(apierrors.ErrCodeListProjectsFailed, resp.Error.Code)
}

func (suite *HandlerTestSuite) TestRunAllocation_ListWorkersFailure() {
	w := suite.runAllocationWith(runnerFunc(func(ctx context.Context) (*allocation.Result, error) {
		return &allocation.Result{RunID: "run-1", Outcomes: []allocation.Outcome{}},
			fmt.Errorf("%w: connection refused", allocation.ErrListWorkers)
	}))

	suite.Require().Equal(http.StatusInternalServerError, w.Code)
	var resp dto.AllocationResponse
	suite.decode(w, &resp)
	suite.False(resp.Success)
	suite.Equal("run-1", resp.RunID)
	suite.Require().NotNil(resp.Error)
	suite.Equal(apierrors.ErrCodeListWorkersFailed, resp.Error.Code)
	suite.Empty(resp.Outcomes)
}

func (suite *HandlerTestSuite) TestRunAllocation_PartialFailure() {
	w := suite.runAllocationWith(runnerFunc(func(ctx context.Context) (*allocation.Result, error) {
		return &allocation.Result{
			RunID: "run-2",
			Outcomes: []allocation.Outcome{
				{ProjectID: 1, Status: allocation.OutcomeFailed, WorkerID: 7, Score: 4, Error: "failed to create assignment: timeout"},
				{ProjectID: 2, Status: allocation.OutcomeAssigned, WorkerID: 8, Score: 9},
			},
			Assigned: 1,
			Failed:   1,
		}, fmt.Errorf("%w: 1 of 2 projects failed", allocation.ErrPartialFailure)
	}))

	suite.Require().Equal(http.StatusInternalServerError, w.Code)
	var resp dto.AllocationResponse
	suite.decode(w, &resp)
	suite.False(resp.Success)
	suite.Require().NotNil(resp.Error)
	suite.Equal(apierrors.ErrCodePartialFailure, resp.Error.Code)
	suite.Equal(1, resp.Failed)
	suite.Equal(1, resp.Assigned)
	suite.Require().Len(resp.Outcomes, 2)
	suite.Equal(allocation.OutcomeFailed, resp.Outcomes[0].Status)
	suite.Equal("failed to create assignment: timeout", resp.Outcomes[0].Error)
	suite.Equal(allocation.OutcomeAssigned, resp.Outcomes[1].Status)
	suite.Require().NotNil(resp.Outcomes[1].InternID)
	suite.Equal(uint64(8), *resp.Outcomes[1].InternID)
}

func (suite *HandlerTestSuite) TestRunAllocation_ConvergesHalfWrittenProject() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	intern, internCookies := suite.login("a@example.com", models.RoleIntern)
	suite.updateProfile(internCookies, 5, nil)
	project := suite.createProject(adminCookies, "API", 10)
	suite.Require().NoError(suite.db.Create(&models.InternProject{InternID: intern.ID, ProjectID: project.ID}).Error)

	w := suite.do(http.MethodPost, "/api/allocate", nil, adminCookies)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.AllocationResponse
	suite.decode(w, &resp)
	suite.Equal(1, resp.Converged)
	suite.Require().Len(resp.Outcomes, 1)
	suite.Equal(allocation.OutcomeConverged, resp.Outcomes[0].Status)

	w = suite.do(http.MethodGet, "/api/projects", nil, adminCookies)
	var list dto.ProjectListResponse
	suite.decode(w, &list)
	suite.Empty(list.Projects)
}

func (suite *HandlerTestSuite) TestManualAssignment_Errors() {
	_, adminCookies := suite.login("admin@example.com", models.RoleAdmin)
	first, firstCookies := suite.login("a@example.com", models.RoleIntern)
	second, secondCookies := suite.login("b@example.com", models.RoleIntern)
	suite.updateProfile(firstCookies, 10, nil)
	suite.updateProfile(secondCookies, 2, nil)
	project := suite.createProject(adminCookies, "API", 5)

	w := suite.do(http.MethodPost, "/api/assignments", gin.H{"intern_id": second.ID, "project_id": project.ID}, adminCookies)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.do(http.MethodPost, "/api/assignments", gin.H{"intern_id": first.ID, "project_id": project.ID}, adminCookies)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/assignments", gin.H{"intern_id": first.ID, "project_id": project.ID}, adminCookies)
	suite.Equal(http.StatusConflict, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeAlreadyAssigned, apiErr.Code)

	w = suite.do(http.MethodPost, "/api/assignments", gin.H{"intern_id": first.ID, "project_id": 999}, adminCookies)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/interns", nil, adminCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var interns struct {
		Interns []dto.ProfileDTO `json:"interns"`
	}
	suite.decode(w, &interns)
	suite.Len(interns.Interns, 2)
}
