package serviceimpl

import (
	"fmt"
	"time"

	"github.com/PayRam/go-search/internal/log"
	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/request"
	"github.com/PayRam/go-search/service"
	"gorm.io/gorm"
)

type worker struct {
	DB      *gorm.DB
	Builder service.PredicateBuilder
}

var _ service.Worker = &worker{}

func NewWorkerService(db *gorm.DB, builder service.PredicateBuilder) service.Worker {
	return &worker{DB: db, Builder: builder}
}

// CheckOutStaleVisitors checks out every visitor still on site who checked in
// before cutoff. It returns how many visitors were checked out.
func (w *worker) CheckOutStaleVisitors(cutoff time.Time) (int, error) {
	onSite, err := w.Builder.BuildNullFilter(models.JoinWhere, models.Column("visitors", "checked_out_at"), true,
		request.BuildOptions{Mode: models.Parameterized})
	if err != nil {
		return 0, err
	}

	var stale []models.Visitor
	query := request.ApplyFragment(w.DB.Model(&models.Visitor{}), onSite).
		Where("checked_in_at < ?", cutoff)
	if err := query.Find(&stale).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch stale visitors: %w", err)
	}

	processed := 0
	for _, visitor := range stale {
		err := w.DB.Transaction(func(tx *gorm.DB) error {
			// skip visitors checked out since the scan
			result := tx.Model(&models.Visitor{}).
				Where("id = ? AND checked_out_at IS NULL", visitor.ID).
				Updates(map[string]interface{}{
					"status":         models.VisitorStatusCheckedOut,
					"checked_out_at": cutoff,
				})
			if result.Error != nil {
				return result.Error
			}
			processed += int(result.RowsAffected)
			return nil
		})
		if err != nil {
			// keep going; the next run retries
			log.Error("failed to check out visitor %d: %v", visitor.ID, err)
		}
	}

	return processed, nil
}
