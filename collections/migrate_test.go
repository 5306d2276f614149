package collections_test

import (
	"strings"
	"testing"

	"sitebooks/collections"
	"sitebooks/testhelpers"
)

func TestMigrateMissingSiteCodes_AssignsCodes(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	site := testhelpers.CreateTestSite(t, app, "Legacy Site")
	site.Set("site_code", "")
	if err := app.Save(site); err != nil {
		t.Fatalf("failed to blank site code: %v", err)
	}

	if err := collections.MigrateMissingSiteCodes(app); err != nil {
		t.Fatalf("MigrateMissingSiteCodes() error: %v", err)
	}

	reloaded, err := app.FindRecordById("sites", site.Id)
	if err != nil {
		t.Fatalf("reload site: %v", err)
	}
	if got := reloaded.GetString("site_code"); got != "S001" {
		t.Errorf("site_code = %q, want %q", got, "S001")
	}
}

func TestMigrateMissingSiteCodes_SkipsTakenCodes(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// S001 is already in use, so the two legacy sites get S002 and S003.
	holder := testhelpers.CreateTestSite(t, app, "Holder")
	holder.Set("site_code", "S001")
	if err := app.Save(holder); err != nil {
		t.Fatalf("failed to set holder code: %v", err)
	}

	var legacies []string
	for _, name := range []string{"Legacy A", "Legacy B"} {
		s := testhelpers.CreateTestSite(t, app, name)
		s.Set("site_code", "")
		if err := app.Save(s); err != nil {
			t.Fatalf("failed to blank site code: %v", err)
		}
		legacies = append(legacies, s.Id)
	}

	if err := collections.MigrateMissingSiteCodes(app); err != nil {
		t.Fatalf("MigrateMissingSiteCodes() error: %v", err)
	}

	assigned := map[string]bool{}
	for _, id := range legacies {
		s, err := app.FindRecordById("sites", id)
		if err != nil {
			t.Fatalf("reload site: %v", err)
		}
		code := s.GetString("site_code")
		if code == "" || code == "S001" {
			t.Errorf("legacy site got code %q", code)
		}
		if assigned[code] {
			t.Errorf("code %q assigned twice", code)
		}
		assigned[code] = true
	}
}

func TestMigrateMissingSiteCodes_LeavesCodedSitesAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Coded Site")
	before := site.GetString("site_code")

	if err := collections.MigrateMissingSiteCodes(app); err != nil {
		t.Fatalf("MigrateMissingSiteCodes() error: %v", err)
	}

	reloaded, _ := app.FindRecordById("sites", site.Id)
	if got := reloaded.GetString("site_code"); got != before {
		t.Errorf("site_code changed from %q to %q", before, got)
	}
}

func TestMigrateMissingStaffTokens_IssuesTokens(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// api_token is required on save, so a tokenless row can only come
	// from a direct database insert. SaveNoValidate reproduces that.
	member := testhelpers.CreateTestStaff(t, app, "Legacy Clerk", "accounts", "tok-legacy")
	member.Set("api_token", "")
	if err := app.SaveNoValidate(member); err != nil {
		t.Fatalf("failed to blank token: %v", err)
	}

	if err := collections.MigrateMissingStaffTokens(app); err != nil {
		t.Fatalf("MigrateMissingStaffTokens() error: %v", err)
	}

	reloaded, err := app.FindRecordById("staff", member.Id)
	if err != nil {
		t.Fatalf("reload staff: %v", err)
	}
	token := reloaded.GetString("api_token")
	if token == "" {
		t.Fatal("expected a token to be issued")
	}
	if token == "tok-legacy" {
		t.Error("expected a fresh token, got the old one")
	}
	// uuid shape: 8-4-4-4-12
	if strings.Count(token, "-") != 4 {
		t.Errorf("token %q does not look like a uuid", token)
	}
}

func TestMigrateMissingStaffTokens_LeavesTokenedStaffAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	member := testhelpers.CreateTestStaff(t, app, "Tokened Clerk", "stores", "tok-keep")

	if err := collections.MigrateMissingStaffTokens(app); err != nil {
		t.Fatalf("MigrateMissingStaffTokens() error: %v", err)
	}

	reloaded, _ := app.FindRecordById("staff", member.Id)
	if got := reloaded.GetString("api_token"); got != "tok-keep" {
		t.Errorf("api_token changed to %q", got)
	}
}
