package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., SQLite, PostgreSQL, a caching decorator) to be used interchangeably.
// Lookups of an absent id fail with *errors.NotFoundError.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)   // Create a new user and return its id
	GetByID(ctx context.Context, id int64) (*domain.User, error) // Retrieve user by ID
	List(ctx context.Context) ([]domain.User, error)             // List all users in storage order
	Update(ctx context.Context, u *domain.User) (int64, error)   // Overwrite all fields of an existing user
	Delete(ctx context.Context, id int64) (int64, error)         // Delete user by ID
}

// Usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, validate: validator.New()}
}

// payloadNames maps request struct fields to their payload keys.
var payloadNames = map[string]string{
	"Name":      domain.FieldName,
	"Email":     domain.FieldEmail,
	"BirthDate": domain.FieldBirthDate,
}

// formatValidationError converts validator.ValidationErrors into a malformed request error
// naming the first offending field.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	var messages []string
	for _, e := range validationErrors {
		field := payloadNames[e.Field()]
		if field == "" {
			field = strings.ToLower(e.Field())
		}
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must not be empty", field))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	first := payloadNames[validationErrors[0].Field()]
	return pkgerrors.NewMalformedRequestError(first, strings.Join(messages, ", "))
}

func notFound() error {
	return pkgerrors.NewNotFoundError("user", "user not found")
}

// CreateUser validates the request, parses the birth date and stores a new user.
// Duplicate names and emails are accepted.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	if err := domain.ValidateFields(map[string]string{
		domain.FieldName:      in.Name,
		domain.FieldEmail:     in.Email,
		domain.FieldBirthDate: in.BirthDate,
	}); err != nil {
		uc.log.Warn("field validation failed", zap.Error(err))
		return nil, err
	}

	birthDate, err := domain.ParseBirthDate(in.BirthDate)
	if err != nil {
		uc.log.Warn("birth date parse failed", zap.String("birth_date", in.BirthDate), zap.Error(err))
		return nil, err
	}

	u := &domain.User{
		Name:      in.Name,
		Email:     in.Email,
		BirthDate: birthDate,
	}
	id, err := uc.repo.Create(ctx, u)
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	u.ID = id

	return &CreateUserResponse{User: toDTO(u)}, nil
}

// UpdateUser merges the supplied fields over the stored user. Only supplied
// fields are validated; omitted fields keep their stored value.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	uc.log.Info("updating user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		uc.log.Warn("update user for impossible id", zap.Int64("id", in.ID))
		return nil, notFound()
	}

	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	if err := domain.ValidateFields(in.suppliedFields()); err != nil {
		uc.log.Warn("field validation failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	merged := *existing
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Email != nil {
		merged.Email = *in.Email
	}
	if in.BirthDate != nil {
		birthDate, err := domain.ParseBirthDate(*in.BirthDate)
		if err != nil {
			uc.log.Warn("birth date parse failed", zap.String("birth_date", *in.BirthDate), zap.Error(err))
			return nil, err
		}
		merged.BirthDate = birthDate
	}

	if _, err := uc.repo.Update(ctx, &merged); err != nil {
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &UpdateUserResponse{User: toDTO(&merged)}, nil
}

// suppliedFields returns the payload view of the fields present in the request.
func (in UpdateUserRequest) suppliedFields() map[string]string {
	fields := make(map[string]string, 3)
	if in.Name != nil {
		fields[domain.FieldName] = *in.Name
	}
	if in.Email != nil {
		fields[domain.FieldEmail] = *in.Email
	}
	if in.BirthDate != nil {
		fields[domain.FieldBirthDate] = *in.BirthDate
	}
	return fields
}

// DeleteUser deletes a user and returns its id.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		uc.log.Warn("delete user for impossible id", zap.Int64("id", in.ID))
		return nil, notFound()
	}

	id, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	return &DeleteUserResponse{ID: id}, nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	if in.ID <= 0 {
		uc.log.Warn("get user for impossible id", zap.Int64("id", in.ID))
		return nil, notFound()
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			uc.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	return &GetUserResponse{User: toDTO(u)}, nil
}

// ListUsers retrieves every stored user. No ordering is guaranteed.
func (uc *Usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	uc.log.Info("listing users")

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = toDTO(&domainUsers[i])
	}

	return &ListUsersResponse{
		Users: users,
	}, nil
}

func toDTO(u *domain.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		BirthDate: u.BirthDate,
	}
}
