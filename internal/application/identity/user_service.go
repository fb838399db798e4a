package identity

import (
	"context"

	"github.com/clothora/backend/internal/domain/identity"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles administrative user operations
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToUserResponses(users), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// GetByID returns a single user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Promote grants the admin role to a user
func (s *UserService) Promote(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.PromoteToAdmin(); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete deletes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// Count returns the number of users
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx, shared.DefaultFilter())
}
