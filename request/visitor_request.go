package request

import "github.com/PayRam/go-search/models"

type CreateBuildingRequest struct {
	Organization string  `json:"organization" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Address      *string `json:"address"`
}

type CreateVisitorRequest struct {
	BuildingID uint    `json:"buildingID" binding:"required"`
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      *string `json:"email"`
	Company    *string `json:"company"`
	HostName   string  `json:"hostName" binding:"required"`
}

type GetVisitorsRequest struct {
	Search               *string              `form:"search"`      // Free text, supports "phrases" and field:term
	BuildingIDs          []uint               `form:"buildingIDs"` // Filter by building
	Status               *string              `form:"status"`      // Exact status match
	CheckedOut           *bool                `form:"checkedOut"`  // true: has left, false: still on site
	PaginationConditions PaginationConditions `form:"paginationConditions"`
}

// VisitorSearchPlan maps the field names accepted in the visitor search box to
// columns. Unscoped terms search the visitor's name, email and company.
func VisitorSearchPlan() SearchPlan {
	var (
		firstName = models.Column("visitors", "first_name")
		lastName  = models.Column("visitors", "last_name")
		email     = models.Column("visitors", "email")
		company   = models.Column("visitors", "company")
	)
	return SearchPlan{
		Fields: map[string][]models.ColumnTarget{
			"name":     {firstName, lastName},
			"first":    {firstName},
			"last":     {lastName},
			"email":    {email},
			"company":  {company},
			"host":     {models.Column("visitors", "host_name")},
			"badge":    {models.Column("visitors", "badge_code")},
			"building": {models.Column("buildings", "name")},
		},
		Default: []models.ColumnTarget{firstName, lastName, email, company},
	}
}
