package domain

import "time"

// StatusActive is the only license status that grants view access.
const StatusActive = "active"

// LicenseType is the plan descriptor referenced by a license.
type LicenseType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// License represents one entitlement grant. A user may hold several;
// at most one is current at a time.
type License struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Code        string       `json:"code"`
	Status      string       `json:"status"`
	LicenseType *LicenseType `json:"license_type,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Active reports whether the license grants view access.
func (l License) Active() bool {
	return l.Status == StatusActive
}

// PlanName returns the referenced plan name, or "" when the license type
// was not resolved. Views render their own fallback.
func (l License) PlanName() string {
	if l.LicenseType == nil {
		return ""
	}
	return l.LicenseType.Name
}
