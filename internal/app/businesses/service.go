package businesses

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/validation"
)

// Backend defines the business calls the service makes.
type Backend interface {
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
	GetBusiness(ctx context.Context, businessID string) (domain.Business, error)
	CreateBusiness(ctx context.Context, in domain.CreateBusinessInput) (domain.Business, error)
	UpdateBusiness(ctx context.Context, businessID string, in domain.UpdateBusinessInput) (domain.Business, error)
	ListBusinessUsers(ctx context.Context, businessID string) ([]domain.BusinessUser, error)
	AddBusinessUser(ctx context.Context, businessID string, in domain.CreateBusinessUserInput) (domain.BusinessUser, error)
	UpdateBusinessUser(ctx context.Context, businessID, userID string, in domain.UpdateBusinessUserInput) (domain.BusinessUser, error)
	RemoveBusinessUser(ctx context.Context, businessID, userID string) error
}

// Service coordinates business and membership operations.
type Service struct {
	backend Backend
	cache   *querycache.Cache
	logger  *slog.Logger
}

// NewService constructs a Service.
func NewService(backend Backend, cache *querycache.Cache, logger *slog.Logger) *Service {
	return &Service{backend: backend, cache: cache, logger: logger}
}

// Businesses returns the businesses visible to the session.
func (s *Service) Businesses(ctx context.Context) ([]domain.Business, error) {
	return querycache.Fetch(ctx, s.cache, querycache.KeyBusinesses,
		func(ctx context.Context) ([]domain.Business, error) {
			return s.backend.ListBusinesses(ctx)
		})
}

// BusinessByID returns one business.
func (s *Service) BusinessByID(ctx context.Context, businessID string) (domain.Business, error) {
	return querycache.Fetch(ctx, s.cache, querycache.BusinessProfileKey(businessID),
		func(ctx context.Context) (domain.Business, error) {
			return s.backend.GetBusiness(ctx, businessID)
		})
}

func (s *Service) Create(ctx context.Context, in domain.CreateBusinessInput) (domain.Business, error) {
	if err := validation.Struct(in); err != nil {
		return domain.Business{}, err
	}
	business, err := s.backend.CreateBusiness(ctx, in)
	if err != nil {
		return domain.Business{}, err
	}
	s.cache.Invalidate(querycache.KeyBusinesses)
	logging.Info(s.logger, "business created", logging.FieldBusinessID, business.ID)
	return business, nil
}

func (s *Service) Update(ctx context.Context, businessID string, in domain.UpdateBusinessInput) (domain.Business, error) {
	if err := validation.Struct(in); err != nil {
		return domain.Business{}, err
	}
	business, err := s.backend.UpdateBusiness(ctx, businessID, in)
	if err != nil {
		return domain.Business{}, err
	}
	s.cache.Invalidate(querycache.KeyBusinesses)
	s.cache.Invalidate(querycache.BusinessProfileKey(businessID))
	return business, nil
}

// Members returns the staff of a business.
func (s *Service) Members(ctx context.Context, businessID string) ([]domain.BusinessUser, error) {
	return querycache.Fetch(ctx, s.cache, querycache.BusinessUsersKey(businessID),
		func(ctx context.Context) ([]domain.BusinessUser, error) {
			return s.backend.ListBusinessUsers(ctx, businessID)
		})
}

func (s *Service) AddMember(ctx context.Context, businessID string, in domain.CreateBusinessUserInput) (domain.BusinessUser, error) {
	if err := validation.Struct(in); err != nil {
		return domain.BusinessUser{}, err
	}
	member, err := s.backend.AddBusinessUser(ctx, businessID, in)
	if err != nil {
		return domain.BusinessUser{}, err
	}
	s.cache.Invalidate(querycache.BusinessUsersKey(businessID))
	return member, nil
}

func (s *Service) UpdateMember(ctx context.Context, businessID, userID string, in domain.UpdateBusinessUserInput) (domain.BusinessUser, error) {
	if err := validation.Struct(in); err != nil {
		return domain.BusinessUser{}, err
	}
	member, err := s.backend.UpdateBusinessUser(ctx, businessID, userID, in)
	if err != nil {
		return domain.BusinessUser{}, err
	}
	s.cache.Invalidate(querycache.BusinessUsersKey(businessID))
	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, businessID, userID string) error {
	if err := s.backend.RemoveBusinessUser(ctx, businessID, userID); err != nil {
		return err
	}
	s.cache.Invalidate(querycache.BusinessUsersKey(businessID))
	return nil
}
