package ipo

import (
	"fmt"

	"github.com/viratraj194/Finance-Agent/internal/models"
)

// cyclicalSectors trigger the sector-exposure flag.
var cyclicalSectors = map[string]bool{
	"infrastructure": true,
	"commodities":    true,
	"shipping":       true,
}

// DetectRedFlags runs the structural risk rules over the filing view.
// The leverage rule fires only when both debt and equity were parsed;
// an absent row is never treated as risk.
func DetectRedFlags(doc *models.IPODocument) models.RedFlagSet {
	var set models.RedFlagSet

	if doc.Issue.OFSPct > 40 {
		set.Flags = append(set.Flags, "High OFS component")
		set.Notes = append(set.Notes,
			fmt.Sprintf("Offer for sale constitutes ~%.0f%% of the issue", doc.Issue.OFSPct))
	}

	if doc.Financials != nil && !doc.Financials.IsProfitable {
		set.Flags = append(set.Flags, "Loss-making company")
		set.Notes = append(set.Notes, "Company has not demonstrated sustained profitability")
	}

	if doc.Financials != nil && doc.Financials.Debt > 0 && doc.Financials.Equity > 0 {
		if ratio := doc.Financials.Debt / doc.Financials.Equity; ratio > 1 {
			set.Flags = append(set.Flags, "High leverage")
			set.Notes = append(set.Notes,
				fmt.Sprintf("Debt to equity ratio is %.2f", ratio))
		}
	}

	if cyclicalSectors[doc.Sector] {
		set.Flags = append(set.Flags, "Cyclical sector exposure")
		set.Notes = append(set.Notes,
			fmt.Sprintf("Operates in the cyclical %s sector", doc.Sector))
	}

	if len(set.Flags) == 0 {
		set.Assessment = "No structural red flags identified."
	} else {
		set.Assessment = "Some risk factors identified, but no critical red flags."
	}
	return set
}
