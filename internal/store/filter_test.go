package store

import (
	"strings"
	"testing"

	"github.com/leadvaulthq/leadvault/internal/models"
)

func TestBuildBuyerFilter_Empty(t *testing.T) {
	where, args := buildBuyerFilter(models.BuyerFilter{})
	if where != "" {
		t.Errorf("where = %q, want empty", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildBuyerFilter_ComposesWithAND(t *testing.T) {
	where, args := buildBuyerFilter(models.BuyerFilter{
		City:         models.CityMohali,
		PropertyType: models.PropertyApartment,
		Status:       models.StatusQualified,
		Timeline:     models.TimelineZeroToThree,
	})

	if !strings.HasPrefix(where, " WHERE ") {
		t.Fatalf("where = %q", where)
	}
	if got := strings.Count(where, " AND "); got != 3 {
		t.Errorf("AND count = %d, want 3\nwhere = %q", got, where)
	}
	for i, want := range []string{"city = $1", "property_type = $2", "status = $3", "timeline = $4"} {
		if !strings.Contains(where, want) {
			t.Errorf("missing %q (cond %d) in %q", want, i, where)
		}
	}
	if len(args) != 4 {
		t.Fatalf("args = %v", args)
	}
	if args[0] != "Mohali" || args[3] != "0-3m" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildBuyerFilter_SearchSpansThreeColumns(t *testing.T) {
	where, args := buildBuyerFilter(models.BuyerFilter{Search: "asha"})

	for _, col := range []string{"full_name ILIKE $1", "phone ILIKE $1", "email ILIKE $1"} {
		if !strings.Contains(where, col) {
			t.Errorf("missing %q in %q", col, where)
		}
	}
	if len(args) != 1 || args[0] != "%asha%" {
		t.Errorf("args = %v, want one wrapped pattern", args)
	}
}

func TestBuildBuyerFilter_EscapesLikeMetachars(t *testing.T) {
	_, args := buildBuyerFilter(models.BuyerFilter{Search: `50%_off\`})

	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}
	if args[0] != `%50\%\_off\\%` {
		t.Errorf("pattern = %q, want LIKE metacharacters escaped", args[0])
	}
}
