package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	"github.com/plantaohub/plantao_backend/internal/dto"
)

// AdminHandlerTestSuite covers the settings, audit-log and reporting routes.
type AdminHandlerTestSuite struct {
	suite.Suite
	mocks  *handlerMocks
	router *gin.Engine
}

func (s *AdminHandlerTestSuite) SetupTest() {
	s.mocks = newHandlerMocks()
	s.router = newTestRouter(s.mocks)
}

func (s *AdminHandlerTestSuite) TestListSettings_Success() {
	settings := []domain.Setting{
		{Key: "weight_sales", Value: "8"},
		{Key: "schedule_opening_day", Value: "25"},
	}
	s.mocks.setting.On("ListSettings", mock.Anything, "u-1").Return(settings, nil).Once()

	w := doJSON(s.router, http.MethodGet, "/api/v1/settings", nil, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusOK, w.Code)
	var env testEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	var resp []dto.SettingResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Require().Len(resp, 2)
	s.Equal("weight_sales", resp[0].Key)
}

func (s *AdminHandlerTestSuite) TestPutSetting_Success() {
	s.mocks.setting.On("PutSetting", mock.Anything, "u-1", "weight_sales", "10", mock.Anything).
		Return(nil).Once()

	w := doJSON(s.router, http.MethodPut, "/api/v1/settings/weight_sales",
		dto.PutSettingRequest{Value: "10"}, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusOK, w.Code)
	s.mocks.setting.AssertExpectations(s.T())
}

func (s *AdminHandlerTestSuite) TestPutSetting_NonAdminMapsTo403() {
	s.mocks.setting.On("PutSetting", mock.Anything, "u-1", "weight_sales", "10", mock.Anything).
		Return(fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)).Once()

	w := doJSON(s.router, http.MethodPut, "/api/v1/settings/weight_sales",
		dto.PutSettingRequest{Value: "10"}, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AdminHandlerTestSuite) TestPutSetting_MissingValueRejected() {
	w := doJSON(s.router, http.MethodPut, "/api/v1/settings/weight_sales", gin.H{}, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusBadRequest, w.Code)
	s.mocks.setting.AssertNotCalled(s.T(), "PutSetting")
}

func (s *AdminHandlerTestSuite) TestListAuditLogs_PassesFilterAndPaging() {
	logs := []domain.AuditLog{{
		LogID:     "l-1",
		ActorID:   "u-2",
		Action:    "shift.claim",
		CreatedAt: time.Now(),
	}}
	filter := portsrepo.AuditLogFilter{ActorID: "u-2", Action: "claim"}
	s.mocks.audit.On("ListLogs", mock.Anything, "u-1", filter, 2, 10).
		Return(logs, int64(11), nil).Once()

	w := doJSON(s.router, http.MethodGet,
		"/api/v1/audit-logs?actorID=u-2&action=claim&page=2&perPage=10", nil, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusOK, w.Code)
	var env testEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	var resp dto.ListAuditLogsResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Equal(int64(11), resp.Total)
	s.Equal(2, resp.Page)
	s.Require().Len(resp.Logs, 1)
	s.Equal("shift.claim", resp.Logs[0].Action)
}

func (s *AdminHandlerTestSuite) TestOccupancyTrend_DefaultsToSixMonths() {
	trend := &dto.OccupancyTrendResponse{Months: []dto.OccupancyPoint{{Month: "2026-08", Occupancy: 0.75}}}
	s.mocks.reporting.On("OccupancyTrend", mock.Anything, "u-1", 6).Return(trend, nil).Once()

	w := doJSON(s.router, http.MethodGet, "/api/v1/reports/occupancy-trend", nil, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusOK, w.Code)
	s.mocks.reporting.AssertExpectations(s.T())
}

func (s *AdminHandlerTestSuite) TestStatistics_Success() {
	stats := &dto.StatisticsResponse{TotalPoints: "123.5", OccupancyRate: 0.8, FilledSeats: 40, TotalSeats: 50}
	s.mocks.reporting.On("Statistics", mock.Anything).Return(stats, nil).Once()

	w := doJSON(s.router, http.MethodGet, "/api/v1/reports/statistics", nil, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusOK, w.Code)
	var env testEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	var resp dto.StatisticsResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Equal(40, resp.FilledSeats)
}

func (s *AdminHandlerTestSuite) TestListUsers_ForbiddenMapsTo403() {
	s.mocks.user.On("ListUsers", mock.Anything, "u-1", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: manager role required", apperrors.ErrForbidden)).Once()

	w := doJSON(s.router, http.MethodGet, "/api/v1/users", nil, bearerFor(s.T(), "u-1"))

	s.Equal(http.StatusForbidden, w.Code)
}

func TestAdminHandler(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}
