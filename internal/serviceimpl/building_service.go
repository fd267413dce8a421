package serviceimpl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/request"
	"github.com/PayRam/go-search/service"
	"gorm.io/gorm"
)

type buildingService struct {
	DB      *gorm.DB
	Builder service.PredicateBuilder
}

var _ service.BuildingService = &buildingService{}

func NewBuildingService(db *gorm.DB, builder service.PredicateBuilder) *buildingService {
	return &buildingService{DB: db, Builder: builder}
}

// CreateBuilding registers a building. Names are unique.
func (s *buildingService) CreateBuilding(req request.CreateBuildingRequest) (*models.Building, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("building name is required")
	}

	var count int64
	if err := s.DB.Model(&models.Building{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing building: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("building %q already exists", name)
	}

	building := &models.Building{
		Organization: strings.TrimSpace(req.Organization),
		Name:         name,
		Address:      req.Address,
	}
	if err := s.DB.Create(building).Error; err != nil {
		return nil, fmt.Errorf("failed to create building: %w", err)
	}
	return building, nil
}

// GetBuildingsByName returns the buildings with the given names, or all buildings
// when names is empty.
func (s *buildingService) GetBuildingsByName(names []string) ([]models.Building, error) {
	values := make([]interface{}, len(names))
	for i, name := range names {
		values[i] = name
	}
	frag, err := s.Builder.BuildInFilter(models.JoinWhere, models.Column("buildings", "name"), values,
		request.BuildOptions{Mode: models.Parameterized})
	if err != nil {
		return nil, fmt.Errorf("failed to build name filter: %w", err)
	}

	var buildings []models.Building
	query := request.ApplyFragment(s.DB.Model(&models.Building{}), frag)
	if err := query.Order("name ASC").Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch buildings: %w", err)
	}
	return buildings, nil
}
