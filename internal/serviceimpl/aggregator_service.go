package serviceimpl

import (
	"fmt"

	"github.com/PayRam/go-search/request"
	"github.com/PayRam/go-search/response"
	"github.com/PayRam/go-search/service"
	"gorm.io/gorm"
)

type aggregatorService struct {
	DB      *gorm.DB
	Builder service.PredicateBuilder
}

var _ service.AggregatorService = &aggregatorService{}

func NewAggregatorService(db *gorm.DB, builder service.PredicateBuilder) *aggregatorService {
	return &aggregatorService{DB: db, Builder: builder}
}

// GetBuildingStats counts the visitors matching req per building. Paging in req
// is ignored; buildings without matching visitors are left out.
func (s *aggregatorService) GetBuildingStats(req request.GetVisitorsRequest) ([]response.BuildingStats, error) {
	query := s.DB.Table("visitors").
		Select(`
			buildings.id AS building_id,
			buildings.name AS building_name,
			COUNT(visitors.id) AS visitor_count,
			SUM(CASE WHEN visitors.checked_out_at IS NULL THEN 1 ELSE 0 END) AS on_site_count
		`).
		Joins("LEFT JOIN buildings ON buildings.id = visitors.building_id").
		Where("visitors.deleted_at IS NULL")

	query, err := applyVisitorFilters(s.Builder, query, req)
	if err != nil {
		return nil, err
	}

	results := []response.BuildingStats{}
	if err := query.Group("buildings.id, buildings.name").Order("buildings.name ASC").Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch building stats: %w", err)
	}
	return results, nil
}
