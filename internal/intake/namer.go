package intake

import (
	"strings"
	"time"
)

const (
	namespaceLayout     = "2006-01-02_15-04-05"
	unknownBusinessName = "Unknown"
)

// Namespace derives the per-submission destination name
// {YYYY-MM-DD_HH-MM-SS}_{business_name}. present is false when the form had
// no business_name field at all; only then is the name replaced with Unknown.
// A submitted empty name yields a bare "{timestamp}_". Uniqueness is only as
// good as the one-second timestamp resolution.
func Namespace(businessName string, present bool, now time.Time) string {
	if !present {
		businessName = unknownBusinessName
	}
	return now.Format(namespaceLayout) + "_" + strings.ReplaceAll(businessName, " ", "_")
}
