package persona

import "github.com/mavropro/mavro-api/internal/models"

// Datasets serves the fixed per-persona demo tables. Lookups are plain table
// reads; callers always receive copies so mutation never leaks between
// sessions.
type Datasets struct {
	registry *Registry
}

// NewDatasets creates a dataset source backed by the given registry.
func NewDatasets(registry *Registry) *Datasets {
	return &Datasets{registry: registry}
}

// Contacts returns the CRM contacts for the persona. Unknown keys return an
// empty slice with fallback true.
func (d *Datasets) Contacts(key models.PersonaKey) (contacts []models.Contact, fallback bool) {
	if !d.registry.IsKnown(key) {
		_, _ = d.registry.Lookup(key) // log the fallback
		return []models.Contact{}, true
	}
	src := contactTable[key]
	out := make([]models.Contact, len(src))
	for i, c := range src {
		out[i] = c
		if len(c.Tags) > 0 {
			out[i].Tags = append([]string(nil), c.Tags...)
		}
		if len(c.EngagementHistory) > 0 {
			out[i].EngagementHistory = append([]models.EngagementEvent(nil), c.EngagementHistory...)
		}
	}
	return out, false
}

// Campaigns returns the marketing campaigns for the persona.
func (d *Datasets) Campaigns(key models.PersonaKey) (campaigns []models.Campaign, fallback bool) {
	if !d.registry.IsKnown(key) {
		_, _ = d.registry.Lookup(key)
		return []models.Campaign{}, true
	}
	src := campaignTable[key]
	out := make([]models.Campaign, len(src))
	copy(out, src)
	return out, false
}

// Reviews returns the public reviews for the persona.
func (d *Datasets) Reviews(key models.PersonaKey) (reviews []models.Review, fallback bool) {
	if !d.registry.IsKnown(key) {
		_, _ = d.registry.Lookup(key)
		return []models.Review{}, true
	}
	src := reviewTable[key]
	out := make([]models.Review, len(src))
	copy(out, src)
	return out, false
}

// FourSight aggregates the persona's campaign table into the analytics rollup.
func (d *Datasets) FourSight(key models.PersonaKey) (models.FourSightSummary, bool) {
	p, fallback := d.registry.Lookup(key)
	campaigns, _ := d.Campaigns(p.Key)

	summary := models.FourSightSummary{
		Persona:     p.Key,
		IndustryTag: p.IndustryTag,
	}
	var roiSum float64
	for _, c := range campaigns {
		summary.TotalCampaigns++
		if c.Status == models.CampaignStatusActive {
			summary.ActiveCampaigns++
		}
		summary.TotalBudget += c.Budget
		summary.TotalSpent += c.Spent
		summary.TotalImpressions += c.Impressions
		summary.TotalClicks += c.Clicks
		summary.TotalConversions += c.Conversions
		roiSum += c.ROI
	}
	if summary.TotalImpressions > 0 {
		summary.ClickThroughRate = float64(summary.TotalClicks) / float64(summary.TotalImpressions) * 100
	}
	if summary.TotalCampaigns > 0 {
		summary.AverageROI = roiSum / float64(summary.TotalCampaigns)
	}
	return summary, fallback
}

var contactTable = map[models.PersonaKey][]models.Contact{
	models.PersonaKemar: {
		{
			ID: "kemar-c1", Name: "Jennifer Walsh", Email: "jwalsh@summitevents.com", Phone: "+1-555-0142",
			Company: "Summit Events Group", Position: "Event Director",
			Status: models.ContactStatusProspect, Priority: models.ContactPriorityHigh,
			EstimatedValue: 15000, AIScore: 88, Temperature: models.LeadTemperatureHot,
			Persona: models.PersonaKemar, Tags: []string{"keynote", "q4-conference"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-12", Type: "email", Outcome: "requested speaker kit"},
				{Date: "2026-08-20", Type: "call", Duration: 1800, Outcome: "discussed keynote scope"},
			},
		},
		{
			ID: "kemar-c2", Name: "Robert Kim", Email: "rkim@leadforward.io", Phone: "+1-555-0198",
			Company: "LeadForward", Position: "Head of People",
			Status: models.ContactStatusLead, Priority: models.ContactPriorityMedium,
			EstimatedValue: 8000, AIScore: 64, Temperature: models.LeadTemperatureWarm,
			Persona: models.PersonaKemar, Tags: []string{"workshop"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-25", Type: "social", Platform: "linkedin", Outcome: "commented on post"},
			},
		},
		{
			ID: "kemar-c3", Name: "Amara Osei", Email: "amara@globalsummit.org", Phone: "+1-555-0113",
			Company: "Global Leadership Summit", Position: "Program Chair",
			Status: models.ContactStatusCustomer, Priority: models.ContactPriorityHigh,
			EstimatedValue: 25000, AIScore: 95, Temperature: models.LeadTemperatureHot,
			Persona: models.PersonaKemar, Tags: []string{"repeat-client"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-07-02", Type: "meeting", Duration: 3600, Outcome: "booked 2027 keynote"},
			},
		},
	},
	models.PersonaKaren: {
		{
			ID: "karen-c1", Name: "Michael Torres", Email: "mtorres@example.com", Phone: "+1-555-0231",
			Company: "Self", Position: "Buyer",
			Status: models.ContactStatusProspect, Priority: models.ContactPriorityHigh,
			EstimatedValue: 450000, AIScore: 91, Temperature: models.LeadTemperatureHot,
			Persona: models.PersonaKaren, Tags: []string{"pre-approved", "waterfront"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-18", Type: "meeting", Duration: 2700, Outcome: "toured 3 listings"},
				{Date: "2026-08-28", Type: "call", Duration: 600, Outcome: "ready to offer"},
			},
		},
		{
			ID: "karen-c2", Name: "Linda Park", Email: "lpark@example.com", Phone: "+1-555-0277",
			Company: "Self", Position: "Seller",
			Status: models.ContactStatusLead, Priority: models.ContactPriorityMedium,
			EstimatedValue: 320000, AIScore: 58, Temperature: models.LeadTemperatureWarm,
			Persona: models.PersonaKaren,
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-22", Type: "email", Outcome: "asked for market analysis"},
			},
		},
		{
			ID: "karen-c3", Name: "James & Priya Patel", Email: "patels@example.com", Phone: "+1-555-0265",
			Company: "Self", Position: "Buyer",
			Status: models.ContactStatusInactive, Priority: models.ContactPriorityLow,
			EstimatedValue: 275000, AIScore: 22, Temperature: models.LeadTemperatureCold,
			Persona: models.PersonaKaren,
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-05-10", Type: "email", Outcome: "paused search"},
			},
		},
	},
	models.PersonaSarah: {
		{
			ID: "sarah-c1", Name: "Emily Chen", Email: "emily.c@example.com", Phone: "+1-555-0321",
			Company: "Self", Position: "Client",
			Status: models.ContactStatusCustomer, Priority: models.ContactPriorityHigh,
			EstimatedValue: 3600, AIScore: 89, Temperature: models.LeadTemperatureHot,
			Persona: models.PersonaSarah, Tags: []string{"membership", "laser"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-15", Type: "content_view", Platform: "instagram", Outcome: "viewed promo reel"},
				{Date: "2026-08-26", Type: "call", Duration: 480, Outcome: "booked facial series"},
			},
		},
		{
			ID: "sarah-c2", Name: "Dana Brooks", Email: "dana.b@example.com", Phone: "+1-555-0334",
			Company: "Self", Position: "Lead",
			Status: models.ContactStatusLead, Priority: models.ContactPriorityMedium,
			EstimatedValue: 1200, AIScore: 55, Temperature: models.LeadTemperatureWarm,
			Persona: models.PersonaSarah,
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-29", Type: "social", Platform: "instagram", Outcome: "DM about pricing"},
			},
		},
		{
			ID: "sarah-c3", Name: "Olivia Grant", Email: "olivia.g@example.com", Phone: "+1-555-0389",
			Company: "Self", Position: "Prospect",
			Status: models.ContactStatusProspect, Priority: models.ContactPriorityLow,
			EstimatedValue: 800, AIScore: 43, Temperature: models.LeadTemperatureCold,
			Persona: models.PersonaSarah,
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-07-30", Type: "email", Outcome: "opened newsletter"},
			},
		},
	},
	models.PersonaMarco: {
		{
			ID: "marco-c1", Name: "Hartley & Co.", Email: "events@hartleyco.com", Phone: "+1-555-0412",
			Company: "Hartley & Co.", Position: "Office Manager",
			Status: models.ContactStatusProspect, Priority: models.ContactPriorityHigh,
			EstimatedValue: 5500, AIScore: 82, Temperature: models.LeadTemperatureHot,
			Persona: models.PersonaMarco, Tags: []string{"private-event"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-21", Type: "call", Duration: 900, Outcome: "holiday party inquiry"},
			},
		},
		{
			ID: "marco-c2", Name: "Gina Russo", Email: "gina.r@example.com", Phone: "+1-555-0436",
			Company: "Self", Position: "Regular",
			Status: models.ContactStatusCustomer, Priority: models.ContactPriorityMedium,
			EstimatedValue: 2400, AIScore: 76, Temperature: models.LeadTemperatureWarm,
			Persona: models.PersonaMarco, Tags: []string{"loyalty"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-27", Type: "content_view", Platform: "facebook", Outcome: "shared special"},
			},
		},
		{
			ID: "marco-c3", Name: "Tom Delaney", Email: "tdelaney@example.com", Phone: "+1-555-0467",
			Company: "Self", Position: "Lead",
			Status: models.ContactStatusLead, Priority: models.ContactPriorityLow,
			EstimatedValue: 300, AIScore: 31, Temperature: models.LeadTemperatureCold,
			Persona: models.PersonaMarco,
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-05", Type: "social", Platform: "instagram", Outcome: "followed page"},
			},
		},
	},
	models.PersonaAlex: {
		{
			ID: "alex-c1", Name: "Chris Novak", Email: "cnovak@example.com", Phone: "+1-555-0521",
			Company: "Self", Position: "Member",
			Status: models.ContactStatusCustomer, Priority: models.ContactPriorityHigh,
			EstimatedValue: 2160, AIScore: 93, Temperature: models.LeadTemperatureHot,
			Persona: models.PersonaAlex, Tags: []string{"pt-client", "12-week"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-24", Type: "meeting", Duration: 3600, Outcome: "progress check-in"},
			},
		},
		{
			ID: "alex-c2", Name: "Sam Whitfield", Email: "samw@example.com", Phone: "+1-555-0544",
			Company: "Self", Position: "Trial",
			Status: models.ContactStatusLead, Priority: models.ContactPriorityMedium,
			EstimatedValue: 720, AIScore: 61, Temperature: models.LeadTemperatureWarm,
			Persona: models.PersonaAlex,
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-30", Type: "content_view", Platform: "tiktok", Outcome: "watched challenge video"},
			},
		},
		{
			ID: "alex-c3", Name: "Rachel Imani", Email: "rimani@example.com", Phone: "+1-555-0578",
			Company: "Self", Position: "Former member",
			Status: models.ContactStatusInactive, Priority: models.ContactPriorityLow,
			EstimatedValue: 540, AIScore: 18, Temperature: models.LeadTemperatureCold,
			Persona: models.PersonaAlex,
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-04-14", Type: "email", Outcome: "membership lapsed"},
			},
		},
	},
	models.PersonaDavid: {
		{
			ID: "david-c1", Name: "Angela Moore", Email: "amoore@example.com", Phone: "+1-555-0611",
			Company: "Self", Position: "Buyer",
			Status: models.ContactStatusProspect, Priority: models.ContactPriorityHigh,
			EstimatedValue: 38000, AIScore: 86, Temperature: models.LeadTemperatureHot,
			Persona: models.PersonaDavid, Tags: []string{"test-drive", "suv"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-26", Type: "meeting", Duration: 2400, Outcome: "test drove two models"},
			},
		},
		{
			ID: "david-c2", Name: "Frank Delgado", Email: "fdelgado@example.com", Phone: "+1-555-0642",
			Company: "Delgado Plumbing", Position: "Owner",
			Status: models.ContactStatusLead, Priority: models.ContactPriorityMedium,
			EstimatedValue: 52000, AIScore: 67, Temperature: models.LeadTemperatureWarm,
			Persona: models.PersonaDavid, Tags: []string{"fleet"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-08-19", Type: "call", Duration: 720, Outcome: "fleet pricing request"},
			},
		},
		{
			ID: "david-c3", Name: "Nina Sorenson", Email: "nsorenson@example.com", Phone: "+1-555-0688",
			Company: "Self", Position: "Owner",
			Status: models.ContactStatusCustomer, Priority: models.ContactPriorityLow,
			EstimatedValue: 1500, AIScore: 49, Temperature: models.LeadTemperatureCold,
			Persona: models.PersonaDavid, Tags: []string{"service-plan"},
			EngagementHistory: []models.EngagementEvent{
				{Date: "2026-06-08", Type: "email", Outcome: "scheduled service"},
			},
		},
	},
}

var campaignTable = map[models.PersonaKey][]models.Campaign{
	models.PersonaKemar: {
		{ID: "kemar-cam1", Name: "Keynote Highlight Reel", Platform: "linkedin", Status: models.CampaignStatusActive, Budget: 2500, Spent: 1420, Impressions: 84200, Clicks: 2130, Conversions: 34, ROI: 3.2, Persona: models.PersonaKemar},
		{ID: "kemar-cam2", Name: "Leadership Workshop Promo", Platform: "youtube", Status: models.CampaignStatusActive, Budget: 1800, Spent: 960, Impressions: 41200, Clicks: 980, Conversions: 12, ROI: 2.1, Persona: models.PersonaKemar},
		{ID: "kemar-cam3", Name: "Book Launch Teaser", Platform: "instagram", Status: models.CampaignStatusDraft, Budget: 3000, Spent: 0, Impressions: 0, Clicks: 0, Conversions: 0, ROI: 0, Persona: models.PersonaKemar},
	},
	models.PersonaKaren: {
		{ID: "karen-cam1", Name: "Waterfront Listing Spotlight", Platform: "facebook", Status: models.CampaignStatusActive, Budget: 1200, Spent: 840, Impressions: 56300, Clicks: 1740, Conversions: 21, ROI: 4.5, Persona: models.PersonaKaren},
		{ID: "karen-cam2", Name: "Open House Weekend", Platform: "instagram", Status: models.CampaignStatusCompleted, Budget: 600, Spent: 600, Impressions: 28900, Clicks: 860, Conversions: 14, ROI: 3.8, Persona: models.PersonaKaren},
		{ID: "karen-cam3", Name: "Seller Lead Magnet", Platform: "google", Status: models.CampaignStatusPaused, Budget: 900, Spent: 310, Impressions: 12100, Clicks: 410, Conversions: 6, ROI: 1.9, Persona: models.PersonaKaren},
	},
	models.PersonaSarah: {
		{ID: "sarah-cam1", Name: "Fall Glow Facial Series", Platform: "instagram", Status: models.CampaignStatusActive, Budget: 1500, Spent: 1125, Impressions: 67400, Clicks: 2890, Conversions: 48, ROI: 5.1, Persona: models.PersonaSarah},
		{ID: "sarah-cam2", Name: "Membership Drive", Platform: "facebook", Status: models.CampaignStatusActive, Budget: 1000, Spent: 430, Impressions: 31800, Clicks: 1120, Conversions: 19, ROI: 3.4, Persona: models.PersonaSarah},
		{ID: "sarah-cam3", Name: "Laser Package Retargeting", Platform: "google", Status: models.CampaignStatusCompleted, Budget: 800, Spent: 800, Impressions: 19500, Clicks: 640, Conversions: 11, ROI: 2.7, Persona: models.PersonaSarah},
	},
	models.PersonaMarco: {
		{ID: "marco-cam1", Name: "Weekend Tasting Menu", Platform: "instagram", Status: models.CampaignStatusActive, Budget: 700, Spent: 520, Impressions: 44600, Clicks: 1980, Conversions: 62, ROI: 4.2, Persona: models.PersonaMarco},
		{ID: "marco-cam2", Name: "Lunch Loyalty Push", Platform: "facebook", Status: models.CampaignStatusPaused, Budget: 500, Spent: 180, Impressions: 15200, Clicks: 530, Conversions: 17, ROI: 2.3, Persona: models.PersonaMarco},
		{ID: "marco-cam3", Name: "Private Events Landing", Platform: "google", Status: models.CampaignStatusActive, Budget: 1100, Spent: 640, Impressions: 9800, Clicks: 390, Conversions: 8, ROI: 3.6, Persona: models.PersonaMarco},
	},
	models.PersonaAlex: {
		{ID: "alex-cam1", Name: "12-Week Challenge Signups", Platform: "tiktok", Status: models.CampaignStatusActive, Budget: 2000, Spent: 1610, Impressions: 132000, Clicks: 5400, Conversions: 73, ROI: 4.8, Persona: models.PersonaAlex},
		{ID: "alex-cam2", Name: "Transformation Stories", Platform: "instagram", Status: models.CampaignStatusActive, Budget: 900, Spent: 415, Impressions: 48700, Clicks: 1860, Conversions: 26, ROI: 3.9, Persona: models.PersonaAlex},
		{ID: "alex-cam3", Name: "Corporate Wellness Pilot", Platform: "linkedin", Status: models.CampaignStatusDraft, Budget: 1500, Spent: 0, Impressions: 0, Clicks: 0, Conversions: 0, ROI: 0, Persona: models.PersonaAlex},
	},
	models.PersonaDavid: {
		{ID: "david-cam1", Name: "Trade-In Event", Platform: "facebook", Status: models.CampaignStatusActive, Budget: 3500, Spent: 2870, Impressions: 98400, Clicks: 3120, Conversions: 18, ROI: 6.2, Persona: models.PersonaDavid},
		{ID: "david-cam2", Name: "Certified Pre-Owned Search", Platform: "google", Status: models.CampaignStatusActive, Budget: 2800, Spent: 1940, Impressions: 41600, Clicks: 2240, Conversions: 14, ROI: 4.1, Persona: models.PersonaDavid},
		{ID: "david-cam3", Name: "Service Department Reminder", Platform: "email", Status: models.CampaignStatusCompleted, Budget: 400, Spent: 400, Impressions: 8600, Clicks: 940, Conversions: 112, ROI: 7.5, Persona: models.PersonaDavid},
	},
}

var reviewTable = map[models.PersonaKey][]models.Review{
	models.PersonaKemar: {
		{ID: "kemar-r1", Platform: "google", Author: "Conference Committee", Rating: 5, Text: "Kemar's keynote was the highlight of our summit. Booked him again for next year.", Responded: true, Persona: models.PersonaKemar},
		{ID: "kemar-r2", Platform: "linkedin", Author: "HR Director", Rating: 4, Text: "Engaging workshop, though we wished for more Q&A time.", Responded: false, Persona: models.PersonaKemar},
	},
	models.PersonaKaren: {
		{ID: "karen-r1", Platform: "zillow", Author: "First-time buyer", Rating: 5, Text: "Karen found us our dream home under budget. Incredible negotiator.", Responded: true, Persona: models.PersonaKaren},
		{ID: "karen-r2", Platform: "google", Author: "Seller", Rating: 5, Text: "Sold in nine days over asking. The staging advice made the difference.", Responded: true, Persona: models.PersonaKaren},
		{ID: "karen-r3", Platform: "facebook", Author: "Relocating family", Rating: 3, Text: "Great local knowledge but responses were slow during closing week.", Responded: false, Persona: models.PersonaKaren},
	},
	models.PersonaSarah: {
		{ID: "sarah-r1", Platform: "google", Author: "Monthly member", Rating: 5, Text: "The Glow facial series transformed my skin. Staff is wonderful.", Responded: true, Persona: models.PersonaSarah},
		{ID: "sarah-r2", Platform: "yelp", Author: "Walk-in client", Rating: 4, Text: "Beautiful space and professional service. Booking app could be smoother.", Responded: false, Persona: models.PersonaSarah},
	},
	models.PersonaMarco: {
		{ID: "marco-r1", Platform: "google", Author: "Anniversary dinner", Rating: 5, Text: "Bella Vista never misses. The tasting menu was spectacular.", Responded: true, Persona: models.PersonaMarco},
		{ID: "marco-r2", Platform: "yelp", Author: "Lunch regular", Rating: 4, Text: "Best pasta in the neighborhood. Gets crowded on Fridays.", Responded: false, Persona: models.PersonaMarco},
		{ID: "marco-r3", Platform: "tripadvisor", Author: "Tourist", Rating: 3, Text: "Good food but a long wait even with a reservation.", Responded: true, Persona: models.PersonaMarco},
	},
	models.PersonaAlex: {
		{ID: "alex-r1", Platform: "google", Author: "Challenge graduate", Rating: 5, Text: "Lost 18 pounds in the 12-week challenge. Alex keeps you accountable.", Responded: true, Persona: models.PersonaAlex},
		{ID: "alex-r2", Platform: "facebook", Author: "New member", Rating: 4, Text: "Great coaching and community. Early classes fill up fast.", Responded: false, Persona: models.PersonaAlex},
	},
	models.PersonaDavid: {
		{ID: "david-r1", Platform: "google", Author: "Repeat buyer", Rating: 5, Text: "Third vehicle from Wilson Motors. No-pressure sales every time.", Responded: true, Persona: models.PersonaDavid},
		{ID: "david-r2", Platform: "cars.com", Author: "Trade-in customer", Rating: 4, Text: "Fair trade-in value and quick paperwork.", Responded: false, Persona: models.PersonaDavid},
		{ID: "david-r3", Platform: "facebook", Author: "Service customer", Rating: 2, Text: "Sales was great but service scheduling took two weeks.", Responded: true, Persona: models.PersonaDavid},
	},
}
