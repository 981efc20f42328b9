// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import "testing"

func TestLookupUninitialized(t *testing.T) {
	g := NewLookup()

	if got := g.LookupCountry("8.8.8.8"); got != "" {
		t.Errorf("uninitialized lookup = %q, want empty", got)
	}
	if g.IsEnabled() {
		t.Error("uninitialized lookup reports enabled")
	}
}

func TestInitEmptyPathDisables(t *testing.T) {
	g := NewLookup()

	if err := g.Init(""); err != nil {
		t.Fatalf("Init with empty path: %v", err)
	}
	if g.IsEnabled() {
		t.Error("lookup enabled with empty path")
	}
}

func TestInitMissingDatabase(t *testing.T) {
	g := NewLookup()

	if err := g.Init("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Error("expected error for missing database file")
	}
	if g.IsEnabled() {
		t.Error("lookup enabled after failed init")
	}
}

func TestLookupCountryLocalAddresses(t *testing.T) {
	g := NewLookup()
	if err := g.Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", "LOCAL"},
		{"::1", "LOCAL"},
		{"10.1.2.3", "LOCAL"},
		{"172.16.0.1", "LOCAL"},
		{"192.168.1.100", "LOCAL"},
		{"fe80::1", "LOCAL"},
		{"not-an-ip", ""},
		{"", ""},
		// Public address without a database loaded
		{"8.8.8.8", ""},
	}

	for _, tt := range tests {
		if got := g.LookupCountry(tt.ip); got != tt.want {
			t.Errorf("LookupCountry(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
}

func TestReloadWithoutPath(t *testing.T) {
	g := NewLookup()
	if err := g.Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.Reload(); err != nil {
		t.Errorf("Reload without path: %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	g := NewLookup()
	if err := g.Close(); err != nil {
		t.Errorf("Close on fresh lookup: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
