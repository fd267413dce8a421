package service

import (
	"time"

	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/request"
	"github.com/PayRam/go-search/response"
)

// TermParser turns a raw search box string into ordered search terms. It never fails.
type TermParser interface {
	Parse(raw string) []models.SearchTerm
}

// PredicateBuilder renders search terms and filters as SQL fragments. A nil
// fragment with a nil error means there was nothing to filter on.
type PredicateBuilder interface {
	BuildSearch(join models.QueryJoinKind, groups []models.TermTargetGroup, opts request.BuildOptions) (*response.Fragment, error)
	BuildTermSearch(join models.QueryJoinKind, term models.SearchTerm, targets []models.ColumnTarget, opts request.BuildOptions) (*response.Fragment, error)
	BuildTextSearch(join models.QueryJoinKind, text string, plan request.SearchPlan, opts request.BuildOptions) (*response.Fragment, error)
	BuildInFilter(join models.QueryJoinKind, target models.ColumnTarget, values []interface{}, opts request.BuildOptions) (*response.Fragment, error)
	BuildEqualFilter(join models.QueryJoinKind, target models.ColumnTarget, value interface{}, opts request.BuildOptions) (*response.Fragment, error)
	BuildNullFilter(join models.QueryJoinKind, target models.ColumnTarget, isNull bool, opts request.BuildOptions) (*response.Fragment, error)
}

type BuildingService interface {
	CreateBuilding(req request.CreateBuildingRequest) (*models.Building, error)
	GetBuildingsByName(names []string) ([]models.Building, error)
}

type VisitorService interface {
	CreateVisitor(req request.CreateVisitorRequest) (*models.Visitor, error)
	CheckOutVisitor(badgeCode string) (*models.Visitor, error)
	GetVisitors(req request.GetVisitorsRequest) ([]models.Visitor, int64, error)
	SearchTerms(text string) []models.SearchTerm
}

type AggregatorService interface {
	GetBuildingStats(req request.GetVisitorsRequest) ([]response.BuildingStats, error)
}

// Worker runs periodic maintenance over visitor records.
type Worker interface {
	CheckOutStaleVisitors(cutoff time.Time) (int, error)
}
