package collections

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
)

// MigrateMissingSiteCodes assigns a short code to every site that has
// none. Document numbering embeds the site code, so sites created before
// codes became part of the create form would otherwise fall back to raw
// record IDs in voucher and PO numbers.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateMissingSiteCodes(app *pocketbase.PocketBase) error {
	sitesCol, err := app.FindCollectionByNameOrId("sites")
	if err != nil {
		return fmt.Errorf("migrate: could not find sites collection: %w", err)
	}

	orphans, err := app.FindRecordsByFilter(
		sitesCol,
		"site_code = ''",
		"created",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query sites without codes: %w", err)
	}
	if len(orphans) == 0 {
		return nil
	}

	log.Printf("migrate: found %d site(s) without a code -- assigning codes...\n", len(orphans))

	all, err := app.FindAllRecords(sitesCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query sites: %w", err)
	}
	taken := map[string]bool{}
	for _, s := range all {
		if code := s.GetString("site_code"); code != "" {
			taken[code] = true
		}
	}

	next := 1
	for _, site := range orphans {
		var code string
		for {
			code = fmt.Sprintf("S%03d", next)
			next++
			if !taken[code] {
				break
			}
		}
		taken[code] = true

		site.Set("site_code", code)
		if err := app.Save(site); err != nil {
			log.Printf("migrate: failed to assign code to site %q (%s): %v\n", site.GetString("name"), site.Id, err)
			continue
		}
		log.Printf("migrate: site %q -> code %q\n", site.GetString("name"), code)
	}

	log.Println("migrate: site code migration complete.")
	return nil
}

// MigrateMissingStaffTokens issues an API token to every staff record
// that has none. Rows inserted directly into the database, or created
// before tokens existed, cannot authenticate until repaired.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateMissingStaffTokens(app *pocketbase.PocketBase) error {
	staffCol, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		return fmt.Errorf("migrate: could not find staff collection: %w", err)
	}

	orphans, err := app.FindRecordsByFilter(
		staffCol,
		"api_token = ''",
		"created",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query staff without tokens: %w", err)
	}
	if len(orphans) == 0 {
		return nil
	}

	log.Printf("migrate: found %d staff record(s) without a token -- issuing tokens...\n", len(orphans))

	for _, member := range orphans {
		member.Set("api_token", uuid.NewString())
		if err := app.Save(member); err != nil {
			log.Printf("migrate: failed to issue token for staff %q (%s): %v\n", member.GetString("name"), member.Id, err)
			continue
		}
		log.Printf("migrate: issued token for staff %q\n", member.GetString("name"))
	}

	log.Println("migrate: staff token migration complete.")
	return nil
}
