package dto

// ReportRangeParams defines the date range of a report.
// From and To are YYYY-MM-DD dates, both inclusive. Either may be omitted.
type ReportRangeParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}
