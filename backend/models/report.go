package models

// Report identifies an entry in the fixed report catalog
type Report string

const (
	ReportUserManagement       Report = "User Management Report"
	ReportSales                Report = "Sales Report"
	ReportRevenue              Report = "Revenue Report"
	ReportPerformanceAnalytics Report = "Performance Analytics"
	ReportCustomerInsights     Report = "Customer Insights"
	ReportInventory            Report = "Inventory Report"
	ReportFinancialSummary     Report = "Financial Summary"
	ReportAuditLogs            Report = "Audit Logs"
	ReportActivity             Report = "Activity Report"
	ReportCompliance           Report = "Compliance Report"
	ReportExportData           Report = "Export Data"
	ReportStateCountyMap       Report = "State/County Map"
)

// reportCatalog is the display order used by the permissions page
var reportCatalog = []Report{
	ReportUserManagement,
	ReportSales,
	ReportRevenue,
	ReportPerformanceAnalytics,
	ReportCustomerInsights,
	ReportInventory,
	ReportFinancialSummary,
	ReportAuditLogs,
	ReportActivity,
	ReportCompliance,
	ReportExportData,
	ReportStateCountyMap,
}

var reportIndex = func() map[Report]int {
	idx := make(map[Report]int, len(reportCatalog))
	for i, r := range reportCatalog {
		idx[r] = i
	}
	return idx
}()

// ReportCatalog returns a copy of the full catalog in display order
func ReportCatalog() []Report {
	out := make([]Report, len(reportCatalog))
	copy(out, reportCatalog)
	return out
}

// ReportCount returns the number of reports in the catalog
func ReportCount() int {
	return len(reportCatalog)
}

// ParseReport returns the catalog report with the given name
func ParseReport(name string) (Report, bool) {
	r := Report(name)
	return r, r.Valid()
}

// Valid reports whether r belongs to the catalog
func (r Report) Valid() bool {
	_, ok := reportIndex[r]
	return ok
}
