package courts

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/validation"
)

// Backend defines the court calls the service makes.
type Backend interface {
	ListCourts(ctx context.Context, businessID string) ([]domain.Court, error)
	GetCourt(ctx context.Context, businessID, courtID string) (domain.Court, error)
	CreateCourt(ctx context.Context, businessID string, in domain.CreateCourtInput) (domain.Court, error)
	UpdateCourt(ctx context.Context, businessID, courtID string, in domain.UpdateCourtInput) (domain.Court, error)
	DeleteCourt(ctx context.Context, businessID, courtID string) error
}

// Service coordinates court operations through the query cache.
type Service struct {
	backend Backend
	cache   *querycache.Cache
	logger  *slog.Logger
}

// NewService constructs a Service.
func NewService(backend Backend, cache *querycache.Cache, logger *slog.Logger) *Service {
	return &Service{backend: backend, cache: cache, logger: logger}
}

// Courts returns the business's courts.
func (s *Service) Courts(ctx context.Context, businessID string) ([]domain.Court, error) {
	return querycache.Fetch(ctx, s.cache, querycache.CourtsKey(businessID),
		func(ctx context.Context) ([]domain.Court, error) {
			return s.backend.ListCourts(ctx, businessID)
		})
}

// CourtByID returns a single court.
func (s *Service) CourtByID(ctx context.Context, businessID, courtID string) (domain.Court, error) {
	return querycache.Fetch(ctx, s.cache, querycache.CourtKey(businessID, courtID),
		func(ctx context.Context) (domain.Court, error) {
			return s.backend.GetCourt(ctx, businessID, courtID)
		})
}

func (s *Service) Create(ctx context.Context, businessID string, in domain.CreateCourtInput) (domain.Court, error) {
	if err := validation.Struct(in); err != nil {
		return domain.Court{}, err
	}
	court, err := s.backend.CreateCourt(ctx, businessID, in)
	if err != nil {
		return domain.Court{}, err
	}
	s.cache.Invalidate(querycache.CourtsKey(businessID))
	logging.Info(s.logger, "court created",
		logging.FieldBusinessID, businessID,
		logging.FieldCourtID, court.ID,
	)
	return court, nil
}

func (s *Service) Update(ctx context.Context, businessID, courtID string, in domain.UpdateCourtInput) (domain.Court, error) {
	if err := validation.Struct(in); err != nil {
		return domain.Court{}, err
	}
	court, err := s.backend.UpdateCourt(ctx, businessID, courtID, in)
	if err != nil {
		return domain.Court{}, err
	}
	s.cache.Invalidate(querycache.CourtsKey(businessID))
	return court, nil
}

// Delete removes a court and drops everything cached under it.
func (s *Service) Delete(ctx context.Context, businessID, courtID string) error {
	if err := s.backend.DeleteCourt(ctx, businessID, courtID); err != nil {
		return err
	}
	s.cache.Invalidate(querycache.CourtsKey(businessID))
	s.cache.Invalidate(querycache.CourtAvailabilityKey(courtID))
	s.cache.Invalidate(querycache.CourtExceptionsKey(courtID))
	s.cache.Invalidate(querycache.ExceptionRulesKey(businessID))
	logging.Info(s.logger, "court deleted",
		logging.FieldBusinessID, businessID,
		logging.FieldCourtID, courtID,
	)
	return nil
}
