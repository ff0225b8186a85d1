package validators

import (
	"errors"
	"strings"
	"testing"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/listings"
)

func TestValidateSearch(t *testing.T) {
	v := NewSearchValidator()

	tests := []struct {
		name      string
		req       models.SearchRequest
		wantField string
		wantType  string
	}{
		{"valid", models.SearchRequest{Suburb: "Belmont North", PropertyType: "house"}, "", "house"},
		{"defaults type", models.SearchRequest{Suburb: "Belmont North"}, "", "house"},
		{"normalizes type", models.SearchRequest{Suburb: "Belmont North", PropertyType: " Unit "}, "", "unit"},
		{"empty suburb", models.SearchRequest{Suburb: "   ", PropertyType: "house"}, "suburb", "house"},
		{"long suburb", models.SearchRequest{Suburb: strings.Repeat("x", 101)}, "suburb", "house"},
		{"provider type outside common set", models.SearchRequest{Suburb: "Belmont North", PropertyType: "Acreage"}, "", "acreage"},
		{"long type", models.SearchRequest{Suburb: "Belmont North", PropertyType: strings.Repeat("x", 41)}, "property_type", strings.Repeat("x", 41)},
		{"type with query syntax", models.SearchRequest{Suburb: "Belmont North", PropertyType: "house&page=2"}, "property_type", "house&page=2"},
		{"type with space", models.SearchRequest{Suburb: "Belmont North", PropertyType: "semi detached"}, "property_type", "semi detached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := v.ValidateSearch(&req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else {
				var validationErr *listings.ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("got %v, want ValidationError", err)
				}
				if validationErr.Field != tt.wantField {
					t.Errorf("Field: got %s, want %s", validationErr.Field, tt.wantField)
				}
			}
			if req.PropertyType != tt.wantType {
				t.Errorf("PropertyType: got %q, want %q", req.PropertyType, tt.wantType)
			}
		})
	}
}
