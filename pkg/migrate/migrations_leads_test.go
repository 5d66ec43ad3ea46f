package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestLeadsMigrationCoversLeadColumns(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	var leadsSQL string
	for _, e := range entries {
		if strings.Contains(e.Name(), "create_leads") {
			b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
			if err != nil {
				t.Fatalf("read migration: %v", err)
			}
			leadsSQL = string(b)
		}
	}
	if leadsSQL == "" {
		t.Fatal("create_leads migration missing")
	}

	for _, col := range []string{
		"session_id", "brand", "engine_id", "trim_id", "color_name",
		"accessory_ids BIGINT[]", "total_price", "payment_mode",
		"dealer_name", "buyer_phone", "status",
	} {
		if !strings.Contains(leadsSQL, col) {
			t.Fatalf("leads migration missing %q", col)
		}
	}
	if !strings.Contains(leadsSQL, "idx_leads_created_at_id") {
		t.Fatal("keyset pagination index missing")
	}
}
