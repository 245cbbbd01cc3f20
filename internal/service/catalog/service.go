package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/catalog"
	"github.com/haderrenteria13/ronald-barber/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List возвращает каталог услуг, отсортированный по цене
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services")

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}
