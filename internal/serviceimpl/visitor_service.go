package serviceimpl

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/PayRam/go-search/internal/log"
	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/request"
	"github.com/PayRam/go-search/response"
	"github.com/PayRam/go-search/service"
	"github.com/PayRam/go-search/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type visitorService struct {
	DB      *gorm.DB
	Parser  service.TermParser
	Builder service.PredicateBuilder
}

var _ service.VisitorService = &visitorService{}

func NewVisitorService(db *gorm.DB, parser service.TermParser, builder service.PredicateBuilder) *visitorService {
	return &visitorService{DB: db, Parser: parser, Builder: builder}
}

// CreateVisitor checks a visitor in to an existing building.
func (s *visitorService) CreateVisitor(req request.CreateVisitorRequest) (*models.Visitor, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	hostName := strings.TrimSpace(req.HostName)
	if firstName == "" || lastName == "" {
		return nil, errors.New("first and last name are required")
	}
	if hostName == "" {
		return nil, errors.New("host name is required")
	}
	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return nil, fmt.Errorf("invalid email %q: %w", *req.Email, err)
		}
	}

	var building models.Building
	if err := s.DB.First(&building, req.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("building not found with ID: %d", req.BuildingID)
		}
		return nil, fmt.Errorf("failed to fetch building: %w", err)
	}

	visitor := &models.Visitor{
		BuildingID:  building.ID,
		BadgeID:     uuid.New(),
		BadgeCode:   utils.GenerateBadgeCode(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       req.Email,
		Company:     req.Company,
		HostName:    hostName,
		Status:      models.VisitorStatusCheckedIn,
		CheckedInAt: time.Now(),
	}
	if err := s.DB.Create(visitor).Error; err != nil {
		return nil, fmt.Errorf("failed to create visitor: %w", err)
	}
	visitor.Building = &building
	return visitor, nil
}

// CheckOutVisitor stamps the check-out time of the visitor holding badgeCode.
func (s *visitorService) CheckOutVisitor(badgeCode string) (*models.Visitor, error) {
	var visitor models.Visitor
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("badge_code = ?", badgeCode).First(&visitor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("visitor not found with badge: %s", badgeCode)
			}
			return fmt.Errorf("failed to fetch visitor: %w", err)
		}
		if visitor.CheckedOutAt != nil {
			return fmt.Errorf("visitor %s already checked out at %s", badgeCode, visitor.CheckedOutAt.Format(time.RFC3339))
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":         models.VisitorStatusCheckedOut,
			"checked_out_at": now,
		}
		if err := tx.Model(&visitor).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to check out visitor: %w", err)
		}
		visitor.Status = models.VisitorStatusCheckedOut
		visitor.CheckedOutAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// GetVisitors returns one page of visitors matching req and the total number of
// matches ignoring paging.
func (s *visitorService) GetVisitors(req request.GetVisitorsRequest) ([]models.Visitor, int64, error) {
	query := s.DB.Model(&models.Visitor{}).
		Joins("LEFT JOIN buildings ON buildings.id = visitors.building_id")

	query, err := applyVisitorFilters(s.Builder, query, req)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count visitors: %w", err)
	}

	query, err = request.ApplyPaginationConditions(query, "visitors", req.PaginationConditions)
	if err != nil {
		return nil, 0, err
	}

	var visitors []models.Visitor
	if err := query.Select("visitors.*").Preload("Building").Find(&visitors).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch visitors: %w", err)
	}
	return visitors, total, nil
}

// SearchTerms shows how a search box string is understood.
func (s *visitorService) SearchTerms(text string) []models.SearchTerm {
	return s.Parser.Parse(text)
}

// applyVisitorFilters adds the search and filter fragments of req to query. The
// query must join buildings for building:term searches.
func applyVisitorFilters(builder service.PredicateBuilder, query *gorm.DB, req request.GetVisitorsRequest) (*gorm.DB, error) {
	var fragments []*response.Fragment

	if req.Search != nil {
		frag, err := builder.BuildTextSearch(models.JoinAnd, *req.Search, request.VisitorSearchPlan(),
			request.BuildOptions{Mode: models.Parameterized, ParamPrefix: "s"})
		if err != nil {
			return nil, fmt.Errorf("failed to build visitor search: %w", err)
		}
		fragments = append(fragments, frag)
	}

	if len(req.BuildingIDs) > 0 {
		ids := make([]interface{}, len(req.BuildingIDs))
		for i, id := range req.BuildingIDs {
			ids[i] = id
		}
		frag, err := builder.BuildInFilter(models.JoinAnd, models.Column("visitors", "building_id"), ids,
			request.BuildOptions{Mode: models.Parameterized, ParamPrefix: "b"})
		if err != nil {
			return nil, fmt.Errorf("failed to build building filter: %w", err)
		}
		fragments = append(fragments, frag)
	}

	if req.Status != nil {
		frag, err := builder.BuildEqualFilter(models.JoinAnd, models.Column("visitors", "status"), *req.Status,
			request.BuildOptions{Mode: models.Parameterized, ParamPrefix: "st"})
		if err != nil {
			return nil, fmt.Errorf("failed to build status filter: %w", err)
		}
		fragments = append(fragments, frag)
	}

	if req.CheckedOut != nil {
		frag, err := builder.BuildNullFilter(models.JoinAnd, models.Column("visitors", "checked_out_at"), !*req.CheckedOut,
			request.BuildOptions{Mode: models.Parameterized})
		if err != nil {
			return nil, fmt.Errorf("failed to build check-out filter: %w", err)
		}
		fragments = append(fragments, frag)
	}

	for _, frag := range fragments {
		if frag != nil {
			log.Debug("visitor filter: %s %v", frag.Predicate, frag.Params.Names())
		}
		query = request.ApplyFragment(query, frag)
	}
	return query, nil
}
