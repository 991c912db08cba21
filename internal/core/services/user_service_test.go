package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	"github.com/plantaohub/plantao_backend/internal/core/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockUserRepository
	mockWorkerRepo *MockWorkerRepository
	service        *services.UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockWorkerRepo = new(MockWorkerRepository)
	s.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}

	audit := services.NewAuditService(new(MockAuditLogRepository), s.mockUserRepo)
	s.service = services.NewUserService(s.mockUserRepo, s.mockWorkerRepo, audit)
}

func (s *UserServiceTestSuite) TestRegister_WorkerGetsWorkerRecord() {
	var savedUser domain.User
	var savedWorker *domain.Worker
	s.mockUserRepo.SaveUserWithWorkerFn = func(ctx context.Context, user domain.User, worker *domain.Worker) error {
		savedUser, savedWorker = user, worker
		return nil
	}

	req := dto.RegisterRequest{Name: " Ana Souza ", Email: "Ana@Example.COM", Password: "secret123"}
	user, err := s.service.Register(context.Background(), req, "")

	s.Require().NoError(err)
	s.Equal("ana@example.com", user.Email)
	s.Equal("Ana Souza", user.Name)
	s.Equal(domain.UserTypeWorker, user.Type)
	s.True(user.Active)
	s.NotEqual("secret123", savedUser.PasswordHash)
	s.True(utils.CheckPasswordHash("secret123", savedUser.PasswordHash))

	s.Require().NotNil(savedWorker)
	s.Equal(user.UserID, savedWorker.UserID)
	s.Equal(10, savedWorker.MonthlyQuota)
}

func (s *UserServiceTestSuite) TestRegister_ManagerHasNoWorkerRecord() {
	var savedWorker *domain.Worker
	s.mockUserRepo.SaveUserWithWorkerFn = func(ctx context.Context, user domain.User, worker *domain.Worker) error {
		savedWorker = worker
		return nil
	}

	req := dto.RegisterRequest{Name: "Boss", Email: "boss@example.com", Password: "secret123", Type: "manager"}
	user, err := s.service.Register(context.Background(), req, "")

	s.Require().NoError(err)
	s.Equal(domain.UserTypeManager, user.Type)
	s.Nil(savedWorker)
}

func (s *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	s.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Email: email}, nil
	}

	req := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
	_, err := s.service.Register(context.Background(), req, "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) authUser(password string, active bool) *domain.User {
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Email:        "ana@example.com",
		PasswordHash: hash,
		Type:         domain.UserTypeWorker,
		Active:       active,
	}
}

func (s *UserServiceTestSuite) TestAuthenticate_Success() {
	user := s.authUser("secret123", true)
	s.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		s.Equal("ana@example.com", email)
		return user, nil
	}

	got, err := s.service.Authenticate(context.Background(), " ANA@example.com ", "secret123", "")

	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	user := s.authUser("secret123", true)
	s.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}

	_, err := s.service.Authenticate(context.Background(), "ana@example.com", "wrong", "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	s.Contains(err.Error(), "invalid credentials")
}

func (s *UserServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	_, err := s.service.Authenticate(context.Background(), "ghost@example.com", "whatever", "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	s.Contains(err.Error(), "invalid credentials")
}

func (s *UserServiceTestSuite) TestAuthenticate_InactiveUser() {
	user := s.authUser("secret123", false)
	s.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}

	_, err := s.service.Authenticate(context.Background(), "ana@example.com", "secret123", "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestChangePassword_VerifiesCurrent() {
	user := s.authUser("oldpass", true)
	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return user, nil
	}
	var newHash string
	s.mockUserRepo.UpdatePasswordFn = func(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
		newHash = passwordHash
		return nil
	}

	err := s.service.ChangePassword(context.Background(), user.UserID, "oldpass", "newpass1", "")

	s.Require().NoError(err)
	s.True(utils.CheckPasswordHash("newpass1", newHash))
}

func (s *UserServiceTestSuite) TestChangePassword_WrongCurrent() {
	user := s.authUser("oldpass", true)
	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return user, nil
	}

	err := s.service.ChangePassword(context.Background(), user.UserID, "nope", "newpass1", "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestListUsers_ClampsLimit() {
	managerID := uuid.NewString()
	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return managerUser(userID), nil
	}
	var gotLimit int
	s.mockUserRepo.FindUsersFn = func(ctx context.Context, limit, offset int) ([]domain.User, error) {
		gotLimit = limit
		return nil, nil
	}

	_, err := s.service.ListUsers(context.Background(), managerID, 1000, 0)

	s.Require().NoError(err)
	s.Equal(20, gotLimit)
}

func (s *UserServiceTestSuite) TestGetProfile_ManagerWithoutWorker() {
	managerID := uuid.NewString()
	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return managerUser(userID), nil
	}

	user, worker, err := s.service.GetProfile(context.Background(), managerID)

	s.Require().NoError(err)
	s.NotNil(user)
	s.Nil(worker)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
