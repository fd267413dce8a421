package go_search

import (
	"github.com/PayRam/go-search/config"
	db2 "github.com/PayRam/go-search/internal/db"
	"github.com/PayRam/go-search/internal/log"
	"github.com/PayRam/go-search/internal/serviceimpl"
	"github.com/PayRam/go-search/service"
	"gorm.io/gorm"
)

type SearchService struct {
	Parser     service.TermParser
	Builder    service.PredicateBuilder
	Buildings  service.BuildingService
	Visitors   service.VisitorService
	Aggregator service.AggregatorService
	Worker     service.Worker
}

// NewSearchService migrates db and wires the visitor services around a parser and
// builder configured by cfg. A nil cfg uses config.Default().
func NewSearchService(db *gorm.DB, cfg *config.Config) (*SearchService, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.SetDebug(cfg.LogSQL)
	if err := db2.Migrate(db); err != nil {
		return nil, err
	}

	parser := NewTermParser(cfg)
	builder := serviceimpl.NewPredicateBuilder(parser, cfg.EscapeChar, cfg.ParamPrefix)
	return &SearchService{
		Parser:     parser,
		Builder:    builder,
		Buildings:  serviceimpl.NewBuildingService(db, builder),
		Visitors:   serviceimpl.NewVisitorService(db, parser, builder),
		Aggregator: serviceimpl.NewAggregatorService(db, builder),
		Worker:     serviceimpl.NewWorkerService(db, builder),
	}, nil
}

// NewTermParser returns the tokenizer alone, for callers without a database.
func NewTermParser(cfg *config.Config) service.TermParser {
	if cfg == nil {
		cfg = config.Default()
	}
	return serviceimpl.NewTermParser(cfg.FixParserQuirks)
}

// NewPredicateBuilder returns the predicate builder alone, for callers that run
// the generated SQL themselves.
func NewPredicateBuilder(cfg *config.Config) (service.PredicateBuilder, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return serviceimpl.NewPredicateBuilder(NewTermParser(cfg), cfg.EscapeChar, cfg.ParamPrefix), nil
}
