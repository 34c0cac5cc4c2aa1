package employee

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hrportal/workforce/internal"
)

// Repository defines the data access methods for the roster.
type Repository interface {
	Create(emp *Employee) error
	GetByID(id int64) (*Employee, error)
	GetByEmail(email string) (*Employee, error)
	GetAll(limit, offset int) ([]*Employee, error)
	GetByManagerID(managerID int64, limit, offset int) ([]*Employee, error)
	Update(emp *Employee) error
	Delete(id int64) error
	// HasRequestHistory reports whether any leave request or overtime claim
	// references the user. Such users must never be hard-deleted.
	HasRequestHistory(userID int64) (bool, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// ResolveUser implements the directory contract consumed by the request
// lifecycles.
func (s *Service) ResolveUser(id int64) (*Employee, error) {
	return s.repo.GetByID(id)
}

// ResolveByEmail looks an employee up by login email.
func (s *Service) ResolveByEmail(email string) (*Employee, error) {
	return s.repo.GetByEmail(email)
}

// UpdatePasswordHash replaces the stored credential for a user.
func (s *Service) UpdatePasswordHash(userID int64, hash string) error {
	emp, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	emp.PasswordHash = hash
	return s.repo.Update(emp)
}

// ActiveManagerOf returns the user's manager when one is assigned and still
// active. A nil result with nil error means approval must route to an Admin.
func (s *Service) ActiveManagerOf(userID int64) (*Employee, error) {
	emp, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if emp.ManagerID == nil {
		return nil, nil
	}
	mgr, err := s.repo.GetByID(*emp.ManagerID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !mgr.IsActive {
		return nil, nil
	}
	return mgr, nil
}

func (s *Service) List(actor *Employee, limit, offset int) ([]*Employee, error) {
	if !actor.Role.CanManage() {
		return nil, internal.ErrNotPermitted
	}
	return s.repo.GetAll(limit, offset)
}

// Team lists the actor's direct reports.
func (s *Service) Team(actor *Employee, limit, offset int) ([]*Employee, error) {
	if !actor.Role.CanManage() {
		return nil, internal.ErrNotPermitted
	}
	return s.repo.GetByManagerID(actor.ID, limit, offset)
}

func (s *Service) Create(actor *Employee, dto CreateEmployeeDTO) (*Employee, error) {
	if !actor.Role.CanManage() {
		return nil, internal.ErrNotPermitted
	}

	role, err := dto.Validate()
	if err != nil {
		s.logger.Warn("employee validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	// Only admins may mint other admins.
	if role == RoleAdmin && actor.Role != RoleAdmin {
		return nil, internal.ErrNotPermitted
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.NewValidationError("an employee with this email already exists", internal.ErrCodeDuplicateEmail)
	}

	if dto.ManagerID != nil {
		if err := s.validateManagerRef(*dto.ManagerID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}

	emp := &Employee{
		Email:        dto.Email,
		PasswordHash: string(hash),
		FullName:     NormalizeName(dto.FullName),
		Role:         role,
		Designation:  dto.Designation,
		DOB:          dto.ParseDate(dto.DOB),
		PhoneNumber:  dto.PhoneNumber,
		JoinDate:     dto.ParseDate(dto.JoinDate),
		ManagerID:    dto.ManagerID,
		IsActive:     active,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "role", emp.Role, "created_by", actor.ID)
	return emp, nil
}

func (s *Service) Update(actor *Employee, id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if !actor.Role.CanManage() {
		return nil, internal.ErrNotPermitted
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil {
		emp.Email = *dto.Email
	}
	if dto.FullName != nil {
		emp.FullName = NormalizeName(*dto.FullName)
	}
	if dto.Role != nil {
		role, _ := ParseRole(*dto.Role)
		if role == RoleAdmin && actor.Role != RoleAdmin {
			return nil, internal.ErrNotPermitted
		}
		emp.Role = role
	}
	if dto.Designation != nil {
		emp.Designation = *dto.Designation
	}
	if dto.PhoneNumber != nil {
		emp.PhoneNumber = dto.PhoneNumber
	}
	if dto.IsActive != nil {
		emp.IsActive = *dto.IsActive
	}
	if dto.ManagerID != nil {
		if err := s.validateManagerRef(*dto.ManagerID); err != nil {
			return nil, err
		}
		emp.ManagerID = dto.ManagerID
	}
	if d := (CreateEmployeeDTO{}).ParseDate(dto.DOB); d != nil {
		emp.DOB = d
	}
	if d := (CreateEmployeeDTO{}).ParseDate(dto.JoinDate); d != nil {
		emp.JoinDate = d
	}
	if dto.Password != nil && *dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		emp.PasswordHash = string(hash)
	}

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	return emp, nil
}

// Delete removes an employee with no request history. Anyone referenced by
// leave or overtime rows is the permanent record and can only be deactivated.
func (s *Service) Delete(actor *Employee, id int64) (*Employee, error) {
	if actor.Role != RoleAdmin {
		return nil, internal.ErrNotPermitted
	}
	if actor.ID == id {
		return nil, internal.NewValidationError("you cannot delete yourself", internal.ErrCodeValidationFailed)
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	referenced, err := s.repo.HasRequestHistory(id)
	if err != nil {
		return nil, err
	}
	if referenced {
		return nil, internal.ErrEmployeeReferenced
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee deleted", "employee_id", id, "deleted_by", actor.ID)
	return emp, nil
}

func (s *Service) validateManagerRef(managerID int64) error {
	mgr, err := s.repo.GetByID(managerID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return internal.NewValidationFieldError("manager_id", "manager does not exist", internal.ErrCodeInvalidManager)
		}
		return err
	}
	if !mgr.Role.CanManage() {
		return internal.NewValidationFieldError("manager_id", "manager must hold the MANAGER or ADMIN role", internal.ErrCodeInvalidManager)
	}
	return nil
}
