package request

import (
	"fmt"
	"strings"
)

// Address groups the free-form address fields captured at intake.
type Address struct {
	Line1          string
	Line2          string
	Landmark       string
	ServiceAddress string
}

// NewAddress derives the stored address lines from the inbound fields.
// Line2 joins unit and floor ("12B, Floor: 3"), ServiceAddress joins unit and
// street ("12B, MG Road").
func NewAddress(street, unit, floor, landmark string) Address {
	street = strings.TrimSpace(street)
	unit = strings.TrimSpace(unit)
	floor = strings.TrimSpace(floor)

	line2Parts := make([]string, 0, 2)
	if unit != "" {
		line2Parts = append(line2Parts, unit)
	}
	if floor != "" {
		line2Parts = append(line2Parts, fmt.Sprintf("Floor: %s", floor))
	}

	serviceParts := make([]string, 0, 2)
	if unit != "" {
		serviceParts = append(serviceParts, unit)
	}
	if street != "" {
		serviceParts = append(serviceParts, street)
	}

	return Address{
		Line1:          street,
		Line2:          strings.Join(line2Parts, ", "),
		Landmark:       strings.TrimSpace(landmark),
		ServiceAddress: strings.Join(serviceParts, ", "),
	}
}

// Details is the structured auxiliary blob stored next to the request: the
// AI-assist estimate and the split of responsibilities between helper and customer.
type Details struct {
	AIAnalysis        map[string]any `json:"ai_analysis,omitempty"`
	PricingTier       string         `json:"pricing_tier,omitempty"`
	EstimatedDuration float64        `json:"estimated_duration,omitempty"`
	Confidence        float64        `json:"confidence,omitempty"`
	ProblemDuration   string         `json:"problem_duration,omitempty"`
	ErrorCode         string         `json:"error_code,omitempty"`
	PreferredTime     string         `json:"preferred_time,omitempty"`
	Videos            []string       `json:"videos"`
	HelperBrings      []string       `json:"helper_brings,omitempty"`
	CustomerProvides  []string       `json:"customer_provides,omitempty"`
	WorkOverview      string         `json:"work_overview,omitempty"`
	MaterialsNeeded   []string       `json:"materials_needed,omitempty"`
}
