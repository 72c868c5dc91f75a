package models

import "time"

// Provider is a doctor whose calendar can be reserved against.
//
// SlotsBooked maps a calendar date key (see availability.DateKey, format
// "day_month_year" without zero padding) to the set of time-of-day labels
// already claimed on that date. It is the single source of truth for
// whether a slot is taken; the appointment ledger records why and by whom.
type Provider struct {
	ID           string              `bson:"id" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"passwordHash" json:"-"`
	Speciality   string              `bson:"speciality" json:"speciality"`
	Degree       string              `bson:"degree" json:"degree"`
	Experience   string              `bson:"experience" json:"experience"`
	About        string              `bson:"about" json:"about"`
	Fees         float64             `bson:"fees" json:"fees"`
	Available    bool                `bson:"available" json:"available"`
	Address      Address             `bson:"address" json:"address"`
	Image        string              `bson:"image" json:"image"`
	SlotsBooked  map[string][]string `bson:"slotsBooked" json:"slotsBooked"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ProviderSnapshot is the immutable provider display data embedded in an
// appointment at booking time. It never changes after capture, regardless
// of later profile edits.
type ProviderSnapshot struct {
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Speciality string  `bson:"speciality" json:"speciality"`
	Degree     string  `bson:"degree" json:"degree"`
	Fees       float64 `bson:"fees" json:"fees"`
	Address    Address `bson:"address" json:"address"`
	Image      string  `bson:"image" json:"image"`
}

// Snapshot captures the provider's display data.
func (p *Provider) Snapshot() ProviderSnapshot {
	return ProviderSnapshot{
		ID:         p.ID,
		Name:       p.Name,
		Speciality: p.Speciality,
		Degree:     p.Degree,
		Fees:       p.Fees,
		Address:    p.Address,
		Image:      p.Image,
	}
}

// PublicView strips credentials and booking internals for unauthenticated
// provider listings.
type ProviderPublicView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       float64 `json:"fees"`
	Available  bool    `json:"available"`
	Address    Address `json:"address"`
	Image      string  `json:"image"`
}

func (p *Provider) PublicView() ProviderPublicView {
	return ProviderPublicView{
		ID:         p.ID,
		Name:       p.Name,
		Speciality: p.Speciality,
		Degree:     p.Degree,
		Experience: p.Experience,
		About:      p.About,
		Fees:       p.Fees,
		Available:  p.Available,
		Address:    p.Address,
		Image:      p.Image,
	}
}
