package handlers

import (
	"html/template"

	"dkylabs.com/web/internal/cms"
	"dkylabs.com/web/internal/format"
)

// HomeData is the view model for the home page.
type HomeData struct {
	Features []cms.Feature
}

// BuildHomeData constructs the view model for the landing page.
func BuildHomeData(lang string) *HomeData {
	return &HomeData{Features: cms.HomeFeatures(lang)}
}

// ServiceCard is a pricing card with display-ready duration and price.
type ServiceCard struct {
	Slug         string
	Name         string
	Deliverables []string
	Duration     string
	Price        string
	PriceMinor   int64
	Currency     string
}

// BuildServiceCards formats the service catalog for lang.
func BuildServiceCards(lang string) []ServiceCard {
	pkgs := cms.Services(lang)
	out := make([]ServiceCard, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, ServiceCard{
			Slug:         p.Slug,
			Name:         p.Name,
			Deliverables: p.Deliverables,
			Duration:     format.FmtWeeks(p.DurationWeeks, lang),
			Price:        format.FmtCurrency(p.PriceMinor, p.Currency, lang),
			PriceMinor:   p.PriceMinor,
			Currency:     p.Currency,
		})
	}
	return out
}

// TeamCard is a team member with the alt text of the photo.
type TeamCard struct {
	Name     string
	Role     string
	Photo    string
	PhotoAlt string
	Bio      template.HTML
	Links    []cms.Link
}

// BuildTeamCards returns the team for lang.
func BuildTeamCards(lang string) []TeamCard {
	members := cms.Team(lang)
	out := make([]TeamCard, 0, len(members))
	for _, m := range members {
		out = append(out, TeamCard{
			Name:     m.Name,
			Role:     m.Role,
			Photo:    m.Photo,
			PhotoAlt: m.Name,
			Bio:      m.Bio,
			Links:    m.Links,
		})
	}
	return out
}

// PracticeData is the view model for the data management practice page.
type PracticeData struct {
	cms.Practice
}

// BuildPracticeData returns the practice page content for lang.
func BuildPracticeData(lang string) *PracticeData {
	return &PracticeData{Practice: cms.PracticePage(lang)}
}
