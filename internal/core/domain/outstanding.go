package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerBalance is the store's per-customer roll-up of sales with something
// still owed. LatestSaleAt is the creation time of the newest such sale.
type CustomerBalance struct {
	CustomerID            string           `json:"customerID"`
	CustomerName          string           `json:"customerName"`
	Phone                 string           `json:"phone"`
	CreditLimit           *decimal.Decimal `json:"creditLimit,omitempty"`
	TotalOutstanding      decimal.Decimal  `json:"totalOutstanding"`
	OutstandingSalesCount int              `json:"outstandingSalesCount"`
	LatestSaleAt          time.Time        `json:"latestSaleAt"`
	SaleIDs               []string         `json:"saleIDs"`
}

// OutstandingRow is one customer in the outstanding list. DaysOutstanding is the
// age of the customer's freshest outstanding sale.
type OutstandingRow struct {
	CustomerID            string           `json:"customerID"`
	CustomerName          string           `json:"customerName"`
	Phone                 string           `json:"phone"`
	CreditLimit           *decimal.Decimal `json:"creditLimit,omitempty"`
	TotalOutstanding      decimal.Decimal  `json:"totalOutstanding"`
	OutstandingSalesCount int              `json:"outstandingSalesCount"`
	DaysOutstanding       int              `json:"daysOutstanding"`
	AgingBucket           AgingBucket      `json:"agingBucket"`
	SaleIDs               []string         `json:"saleIDs"`
}

// OutstandingFilter narrows the outstanding list. Page is 1-based.
type OutstandingFilter struct {
	SearchTerm  string
	AgingFilter string
	CustomerID  string
	Page        int
	Limit       int
}

// BucketTotal is a count with the money it represents.
type BucketTotal struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Add counts one more entry of amount.
func (b BucketTotal) Add(amount decimal.Decimal) BucketTotal {
	return BucketTotal{Count: b.Count + 1, Amount: b.Amount.Add(amount)}
}

// OutstandingSummary splits the filtered customers into current (≤30 days) and overdue.
type OutstandingSummary struct {
	Current BucketTotal `json:"current"`
	Overdue BucketTotal `json:"overdue"`
}

// OutstandingList is one page of the outstanding list. TotalAmount and
// TotalCustomers cover every filtered row, not just the page.
type OutstandingList struct {
	Rows           []OutstandingRow   `json:"outstandingPayments"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	TotalCustomers int                `json:"totalCustomers"`
	Summary        OutstandingSummary `json:"summary"`
	Page           int                `json:"page"`
	Limit          int                `json:"limit"`
}

// LastPayment describes a customer's most recent payment.
type LastPayment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Method PaymentMethod   `json:"method"`
}

// PaymentSummary rolls up a customer's payments.
type PaymentSummary struct {
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	PaymentCount   int             `json:"paymentCount"`
	LastPayment    *LastPayment    `json:"lastPayment"`
	AveragePayment decimal.Decimal `json:"averagePayment"`
}

// CustomerDetail is the per-customer view of outstanding debt. AgingAnalysis
// buckets each sale on its own age.
type CustomerDetail struct {
	Customer          Customer                    `json:"customer"`
	OutstandingSales  []Sale                      `json:"outstandingSales"`
	PaymentHistory    []PaymentRecord             `json:"paymentHistory"`
	TotalOutstanding  decimal.Decimal             `json:"totalOutstanding"`
	AgingAnalysis     map[AgingBucket]BucketTotal `json:"agingAnalysis"`
	PaymentSummary    PaymentSummary              `json:"paymentSummary"`
	CreditUtilization decimal.Decimal             `json:"creditUtilization"`
}

// RiskLevel classifies a debtor.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// ClassifyRisk puts a debtor in exactly one risk level, checking high first:
// high when older than 90 days or over a configured credit limit, medium when
// older than 60 days, low otherwise.
func ClassifyRisk(days int, outstanding decimal.Decimal, creditLimit *decimal.Decimal) RiskLevel {
	switch {
	case days > 90 || (creditLimit != nil && outstanding.GreaterThan(*creditLimit)):
		return RiskHigh
	case days > 60:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskAnalysis totals debtors per risk level.
type RiskAnalysis struct {
	HighRisk   BucketTotal `json:"highRisk"`
	MediumRisk BucketTotal `json:"mediumRisk"`
	LowRisk    BucketTotal `json:"lowRisk"`
}

// ReportSummary is the headline of the outstanding report.
type ReportSummary struct {
	TotalCustomers     int             `json:"totalCustomers"`
	TotalOutstanding   decimal.Decimal `json:"totalOutstanding"`
	AverageOutstanding decimal.Decimal `json:"averageOutstanding"`
}

// TopDebtorsLimit caps the debtor list in the report.
const TopDebtorsLimit = 10

// OutstandingReport summarises outstanding debt across customers.
type OutstandingReport struct {
	Summary        ReportSummary       `json:"summary"`
	AgingBreakdown map[AgingBucket]int `json:"agingBreakdown"`
	TopDebtors     []OutstandingRow    `json:"topDebtors"`
	RiskAnalysis   RiskAnalysis        `json:"riskAnalysis"`
	GeneratedAt    time.Time           `json:"generatedAt"`
}
