package domain

import "time"

// LeadType classifies a captured prospect submission.
type LeadType string

const (
	LeadEnterprise LeadType = "enterprise"
	LeadCarrier    LeadType = "carrier"
	LeadEmail      LeadType = "email"
)

// Lead is a captured prospective-customer submission. Leads are append-only
// and never deduplicated; field validation happens upstream in the form flow.
type Lead struct {
	Type      LeadType          `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}
