// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// The old MySQL schema stored list-valued content as numbered flat columns
// (stat_1_value, stat_1_label, feature_1_icon, ...). The mappers in this file
// fold those slots into the JSON lists the sqlite schema keeps. Slots where
// every column is empty are dropped; order follows the slot number.

// heroRow mirrors the legacy hero_content columns.
type heroRow struct {
	BadgeText           string
	Title               string
	TitleHighlight      string
	Description         string
	ButtonPrimaryText   string
	ButtonPrimaryLink   string
	ButtonSecondaryText string
	ButtonSecondaryLink string
	HeroImage           string
	StatValues          [3]string
	StatLabels          [3]string
	UpdatedAt           time.Time
}

func (r heroRow) params() store.UpsertHeroContentParams {
	return store.UpsertHeroContentParams{
		BadgeText:           r.BadgeText,
		Title:               r.Title,
		TitleHighlight:      r.TitleHighlight,
		Description:         r.Description,
		PrimaryButtonText:   r.ButtonPrimaryText,
		PrimaryButtonLink:   r.ButtonPrimaryLink,
		SecondaryButtonText: r.ButtonSecondaryText,
		SecondaryButtonLink: r.ButtonSecondaryLink,
		HeroImage:           r.HeroImage,
		Stats:               foldStats(r.StatValues[:], r.StatLabels[:]),
		UpdatedAt:           r.UpdatedAt,
	}
}

// aboutRow mirrors the legacy about_content columns.
type aboutRow struct {
	SectionLabel        string
	Title               string
	TitleHighlight      string
	Description         string
	FeatureIcons        [4]string
	FeatureTitles       [4]string
	FeatureDescriptions [4]string
	CardStatValues      [3]string
	CardStatLabels      [3]string
	UpdatedAt           time.Time
}

func (r aboutRow) params() store.UpsertAboutContentParams {
	return store.UpsertAboutContentParams{
		SectionLabel:   r.SectionLabel,
		Title:          r.Title,
		TitleHighlight: r.TitleHighlight,
		Description:    r.Description,
		Features:       foldFeatures(r.FeatureIcons[:], r.FeatureTitles[:], r.FeatureDescriptions[:]),
		CardStats:      foldStats(r.CardStatValues[:], r.CardStatLabels[:]),
		UpdatedAt:      r.UpdatedAt,
	}
}

// contactRow mirrors the legacy contact_content columns. Social handles were
// four separate columns; they become the social_links JSON object.
type contactRow struct {
	SectionLabel   string
	Title          string
	TitleHighlight string
	Description    string
	Email          string
	Phone          string
	Address        string
	WhatsApp       string
	Instagram      string
	LinkedIn       string
	Twitter        string
	UpdatedAt      time.Time
}

func (r contactRow) params() store.UpsertContactContentParams {
	return store.UpsertContactContentParams{
		SectionLabel:   r.SectionLabel,
		Title:          r.Title,
		TitleHighlight: r.TitleHighlight,
		Description:    r.Description,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		SocialLinks: model.SocialLinks{
			WhatsApp:  r.WhatsApp,
			Instagram: r.Instagram,
			LinkedIn:  r.LinkedIn,
			Twitter:   r.Twitter,
		},
		UpdatedAt: r.UpdatedAt,
	}
}

// foldStats pairs numbered value/label columns into an ordered stat list.
// A slot with both sides empty is an unused column, not an empty stat.
func foldStats(values, labels []string) []model.Stat {
	stats := make([]model.Stat, 0, len(values))
	for i := range values {
		if values[i] == "" && labels[i] == "" {
			continue
		}
		stats = append(stats, model.Stat{Value: values[i], Label: labels[i]})
	}
	return stats
}

// foldFeatures pairs numbered icon/title/description columns into an
// ordered feature list, dropping fully empty slots.
func foldFeatures(icons, titles, descriptions []string) []model.Feature {
	features := make([]model.Feature, 0, len(icons))
	for i := range icons {
		if icons[i] == "" && titles[i] == "" && descriptions[i] == "" {
			continue
		}
		features = append(features, model.Feature{
			Icon:        icons[i],
			Title:       titles[i],
			Description: descriptions[i],
		})
	}
	return features
}
