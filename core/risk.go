package core

import (
	"fmt"
	"strings"
)

// RiskLevel classifies a position or strategy: Low, Medium or High.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ParseRiskLevel parses a risk level case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// RiskTolerance is the user-declared appetite driving allocation targets and
// strategy selection.
type RiskTolerance string

const (
	ToleranceLow    RiskTolerance = "low"
	ToleranceMedium RiskTolerance = "medium"
	ToleranceHigh   RiskTolerance = "high"
)

// ParseRiskTolerance parses a risk tolerance case-insensitively.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ToleranceLow, nil
	case "medium":
		return ToleranceMedium, nil
	case "high":
		return ToleranceHigh, nil
	}
	return "", fmt.Errorf("unknown risk tolerance %q", s)
}

// Level maps a tolerance onto the matching RiskLevel.
func (t RiskTolerance) Level() RiskLevel {
	switch t {
	case ToleranceLow:
		return RiskLow
	case ToleranceHigh:
		return RiskHigh
	default:
		return RiskMedium
	}
}
