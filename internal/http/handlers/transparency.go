package handlers

import "net/http"

type campaignSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	Target        float64 `json:"target"`
	Raised        float64 `json:"raised"`
	DonationCount int     `json:"donation_count"`
}

type transparencySummary struct {
	Campaigns      []campaignSummary `json:"campaigns"`
	TotalRaised    float64           `json:"total_raised"`
	TotalDonations int               `json:"total_donations"`
}

// TransparencySummary reconciles the donation ledger against the campaign
// catalog for the public impact page.
func (a *App) TransparencySummary(w http.ResponseWriter, r *http.Request) {
	donations := a.Nexus.Donations()
	counts := make(map[string]int, len(donations))
	for _, d := range donations {
		counts[d.CampaignID]++
	}

	summary := transparencySummary{TotalDonations: len(donations)}
	for _, c := range a.Nexus.Campaigns() {
		summary.Campaigns = append(summary.Campaigns, campaignSummary{
			ID:            c.ID,
			Title:         c.Title,
			Category:      string(c.Category),
			Target:        c.Target,
			Raised:        c.Raised,
			DonationCount: counts[c.ID],
		})
		summary.TotalRaised += c.Raised
	}
	a.json(w, http.StatusOK, summary)
}
