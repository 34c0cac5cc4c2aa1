package auth

import (
	"log/slog"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
)

// Directory is the slice of the employee roster authentication needs.
type Directory interface {
	ResolveByEmail(email string) (*employee.Employee, error)
	ResolveUser(id int64) (*employee.Employee, error)
	UpdatePasswordHash(userID int64, hash string) error
}

type Service struct {
	directory  Directory
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(directory Directory, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		directory:  directory,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate validates credentials and returns an access/refresh pair.
// Lookup failures and password mismatches collapse into the same error so
// the response does not reveal which accounts exist.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	emp, err := s.directory.ResolveByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}
	if !emp.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(emp)
}

// RefreshTokens validates the refresh token, re-checks the account is still
// active and rotates both tokens.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	userID, err := claims.UserIDInt()
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	emp, err := s.directory.ResolveUser(userID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !emp.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(emp)
}

// ValidateAccessToken resolves the token back to an employee. Used by the
// request middleware.
func (s *Service) ValidateAccessToken(tokenString string) (*employee.Employee, error) {
	claims, err := s.tokens.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserIDInt()
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	emp, err := s.directory.ResolveUser(userID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	if !emp.IsActive {
		return nil, internal.ErrUserInactive
	}
	return emp, nil
}

// ChangePassword verifies the current credential before replacing it.
func (s *Service) ChangePassword(actor *employee.Employee, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return internal.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.directory.UpdatePasswordHash(actor.ID, string(hash)); err != nil {
		s.logger.Error("failed to update password", "error", err, "user_id", actor.ID)
		return err
	}

	s.logger.Info("password changed", "user_id", actor.ID)
	return nil
}

func (s *Service) issueTokens(emp *employee.Employee) (AuthTokens, error) {
	userID := strconv.FormatInt(emp.ID, 10)

	accessToken, err := s.tokens.GenerateAccessToken(userID, emp.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(userID, emp.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
