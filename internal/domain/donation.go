package domain

// Donation is an immutable ledger entry crediting a campaign from a donor.
// CampaignTitle is a snapshot taken at donation time and is intentionally not
// kept in sync if the campaign is later renamed; the ledger records history,
// not the current catalog.
type Donation struct {
	ID            string  `json:"id"`
	DonorID       string  `json:"donorId"`
	CampaignID    string  `json:"campaignId"`
	CampaignTitle string  `json:"campaignTitle"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
}
