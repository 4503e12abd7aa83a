package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"campusit/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// =============================================
// 1. SERVICE STRUCTURE
// =============================================

type Service struct {
	db       *gorm.DB
	approval AccountApprovalCreator
}

// AccountApprovalCreator files the pending approval request produced by a
// self-registration. Injected to keep auth decoupled from the request module.
type AccountApprovalCreator interface {
	CreateAccountApproval(tx *gorm.DB, userID uuid.UUID, name string, departmentID *uuid.UUID) error
}

func NewService(db *gorm.DB, approval AccountApprovalCreator) *Service {
	return &Service{db: db, approval: approval}
}

// =============================================
// 2. AUTHENTICATION
// =============================================

func (s *Service) Login(email, password string) (*LoginResponse, error) {
	var user User
	if err := s.db.Where("email = ? AND is_active = true", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.Forbiddenf("invalid credentials")
		}
		return nil, common.Storef(err, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.Forbiddenf("invalid credentials")
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, common.Storef(err, "failed to sign token")
	}

	return &LoginResponse{Token: token, User: &user}, nil
}

func (s *Service) issueToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if user.DepartmentID != nil {
		claims["department_id"] = user.DepartmentID.String()
	}
	if user.LabID != nil {
		claims["lab_id"] = user.LabID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// =============================================
// 3. SELF-REGISTRATION (ACCOUNT_APPROVAL FLOW)
// =============================================

// Register creates an inactive HOD account and files an ACCOUNT_APPROVAL
// request for the Dean in the same transaction. The account only becomes
// usable once that request is approved; declining it deletes the account.
func (s *Service) Register(req *RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.Storef(err, "failed to hash password")
	}

	var departmentID *uuid.UUID
	if req.DepartmentID != "" {
		id, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return nil, common.Validationf("invalid department_id")
		}
		departmentID = &id
	}

	user := User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         common.RoleHOD,
		DepartmentID: departmentID,
		IsActive:     false,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return s.approval.CreateAccountApproval(tx, user.ID, user.Name, departmentID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.Conflictf("an account with this email already exists")
		}
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, common.Storef(err, "failed to register account")
	}

	return &user, nil
}

// =============================================
// 4. USER MANAGEMENT
// =============================================

func (s *Service) GetUser(id uuid.UUID) (*User, error) {
	var user User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("user %s not found", id)
		}
		return nil, common.Storef(err, "failed to load user")
	}
	return &user, nil
}

func (s *Service) ListByRole(role common.Role) ([]User, error) {
	var users []User
	if err := s.db.Where("role = ?", role).Order("name asc").Find(&users).Error; err != nil {
		return nil, common.Storef(err, "failed to list users")
	}
	return users, nil
}

// DeleteUser permanently removes an account. Dean only; also clears the HOD
// back-reference on any department the user headed.
func (s *Service) DeleteUser(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Exec("UPDATE departments SET hod_id = NULL WHERE hod_id = ?", id)
		if result.Error != nil {
			return common.Storef(result.Error, "failed to detach HOD reference")
		}
		result = tx.Where("id = ?", id).Delete(&User{})
		if result.Error != nil {
			return common.Storef(result.Error, "failed to delete user")
		}
		if result.RowsAffected == 0 {
			return common.NotFoundf("user %s not found", id)
		}
		return nil
	})
}

// IsAccountActive reports whether the account still exists and is active.
// Used by the middleware layer so deactivated accounts are cut off even
// while holding a valid token.
func (s *Service) IsAccountActive(userID uuid.UUID) (bool, error) {
	var active bool
	err := s.db.Model(&User{}).Select("is_active").Where("id = ?", userID).Scan(&active).Error
	if err != nil {
		return false, err
	}
	return active, nil
}

func isUniqueViolation(err error) bool {
	// pgx reports unique violations with SQLSTATE 23505
	return err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "23505"))
}
