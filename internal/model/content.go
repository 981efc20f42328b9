// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Stat is a single landing page statistic, e.g. {"150+", "Projects Delivered"}.
// Stored as an ordered JSON array on the owning content row.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Feature is a single about-section feature card.
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SocialLinks holds the contact section social media URLs.
type SocialLinks struct {
	WhatsApp  string `json:"whatsapp,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// HeroContent is the landing page hero section. A single row with id=1.
type HeroContent struct {
	ID                  int64     `json:"id"`
	BadgeText           string    `json:"badge_text"`
	Title               string    `json:"title"`
	TitleHighlight      string    `json:"title_highlight"`
	Description         string    `json:"description"`
	PrimaryButtonText   string    `json:"primary_button_text"`
	PrimaryButtonLink   string    `json:"primary_button_link"`
	SecondaryButtonText string    `json:"secondary_button_text"`
	SecondaryButtonLink string    `json:"secondary_button_link"`
	HeroImage           string    `json:"hero_image"`
	Stats               []Stat    `json:"stats"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AboutContent is the landing page about section. A single row with id=1.
type AboutContent struct {
	ID           int64     `json:"id"`
	SectionLabel string    `json:"section_label"`
	Title        string    `json:"title"`
	TitleHighlight string  `json:"title_highlight"`
	Description  string    `json:"description"`
	Features     []Feature `json:"features"`
	CardStats    []Stat    `json:"card_stats"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ContactContent is the landing page contact section. A single row with id=1.
type ContactContent struct {
	ID             int64       `json:"id"`
	SectionLabel   string      `json:"section_label"`
	Title          string      `json:"title"`
	TitleHighlight string      `json:"title_highlight"`
	Description    string      `json:"description"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	SocialLinks    SocialLinks `json:"social_links"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// FooterContent is the landing page footer. A single row with id=1.
type FooterContent struct {
	ID             int64     `json:"id"`
	CompanyName    string    `json:"company_name"`
	CompanyTagline string    `json:"company_tagline"`
	CopyrightText  string    `json:"copyright_text"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ServicesSection is the heading block above the services grid. A single row with id=1.
type ServicesSection struct {
	ID             int64     `json:"id"`
	SectionLabel   string    `json:"section_label"`
	Title          string    `json:"title"`
	TitleHighlight string    `json:"title_highlight"`
	Description    string    `json:"description"`
	UpdatedAt      time.Time `json:"updated_at"`
}
