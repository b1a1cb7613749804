package analytics

import (
	"time"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/maintenance"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// Dashboard — сводка по всему парку оборудования.
type Dashboard struct {
	Total              int                      `json:"total"`
	Active             int                      `json:"active"`
	Maintenance        int                      `json:"maintenance"`
	Inactive           int                      `json:"inactive"`
	Overdue            int                      `json:"overdue"`
	DueWithin7         int                      `json:"dueWithin7"`
	DueWithin30        int                      `json:"dueWithin30"`
	DataQuality        int                      `json:"dataQuality"`
	StatusDistribution []StatusCount            `json:"statusDistribution"`
	AtRisk             []maintenance.AtRiskItem `json:"atRisk"`
	RecentActivity     []*models.Equipment      `json:"recentActivity"`
	ServicePolicyDays  int                      `json:"servicePolicyDays"`
}

// KPIs — счётчики по статусам.
type KPIs struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Maintenance int `json:"maintenance"`
	Inactive    int `json:"inactive"`
}

// AppliedFilter описывает применённый отбор.
type AppliedFilter struct {
	Status string `json:"status"`
	Days   int    `json:"days"`
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
}

// Report — аналитика по отфильтрованной выборке.
type Report struct {
	Filter             AppliedFilter            `json:"filter"`
	KPIs               KPIs                     `json:"kpis"`
	StatusDistribution []StatusCount            `json:"statusDistribution"`
	Maintenance        maintenance.Counts       `json:"maintenance"`
	AtRisk             []maintenance.AtRiskItem `json:"atRisk"`
	MonthlySeries      []MonthBucket            `json:"monthlySeries"`
	Insights           []string                 `json:"insights"`
}

// BuildDashboard формирует сводку по всему снимку.
func BuildDashboard(items []*models.Equipment, today time.Time, atRiskLimit int) Dashboard {
	if atRiskLimit <= 0 {
		atRiskLimit = DefaultAtRiskLimit
	}
	counts := maintenance.Count(today, items)
	return Dashboard{
		Total:              len(items),
		Active:             countStatus(items, models.StatusActive),
		Maintenance:        countStatus(items, models.StatusMaintenance),
		Inactive:           countStatus(items, models.StatusInactive),
		Overdue:            counts.Overdue,
		DueWithin7:         counts.DueWithin7,
		DueWithin30:        counts.DueWithin30,
		DataQuality:        DataQuality(items),
		StatusDistribution: StatusDistribution(items),
		AtRisk:             maintenance.AtRisk(today, items, atRiskLimit),
		RecentActivity:     RecentActivity(items, RecentActivityLimit),
		ServicePolicyDays:  servicedate.DefaultIntervalDays,
	}
}

// BuildReport формирует аналитику по снимку с учётом фильтра.
func BuildReport(items []*models.Equipment, today time.Time, f Filter, atRiskLimit int) Report {
	if atRiskLimit <= 0 {
		atRiskLimit = DefaultAtRiskLimit
	}
	filtered := Apply(items, today, f)
	counts := maintenance.Count(today, filtered)
	kpis := KPIs{
		Total:       len(filtered),
		Active:      countStatus(filtered, models.StatusActive),
		Maintenance: countStatus(filtered, models.StatusMaintenance),
		Inactive:    countStatus(filtered, models.StatusInactive),
	}

	applied := AppliedFilter{
		Status: string(f.Status),
		Days:   f.Days,
		To:     servicedate.Format(today),
	}
	if applied.Status == "" {
		applied.Status = "all"
	}
	if f.Days > 0 {
		applied.From = servicedate.Format(today.AddDate(0, 0, -f.Days))
	}

	return Report{
		Filter:             applied,
		KPIs:               kpis,
		StatusDistribution: StatusDistribution(filtered),
		Maintenance:        counts,
		AtRisk:             maintenance.AtRisk(today, filtered, atRiskLimit),
		MonthlySeries:      MonthlySeries(filtered, today),
		Insights:           Insights(kpis.Total, kpis.Active, counts),
	}
}
