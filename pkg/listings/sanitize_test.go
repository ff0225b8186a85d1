package listings

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"property-dashboard/internal/models"
)

func TestSanitizeReplacesNonFiniteTokens(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		replaced int
	}{
		{
			name:     "top level and nested",
			in:       `{"a":NaN,"b":[1,Infinity,{"c":-Infinity,"d":{"e":[NaN]}}]}`,
			want:     `{"a":null,"b":[1,null,{"c":null,"d":{"e":[null]}}]}`,
			replaced: 4,
		},
		{
			name:     "strings untouched",
			in:       `{"s":"NaN inside","t":"a \"NaN\" b","n":NaN}`,
			want:     `{"s":"NaN inside","t":"a \"NaN\" b","n":null}`,
			replaced: 1,
		},
		{
			name:     "valid numbers and literals untouched",
			in:       `[1e-5,-1.5,+2,true,false,null,0.25E+3]`,
			want:     `[1e-5,-1.5,+2,true,false,null,0.25E+3]`,
			replaced: 0,
		},
		{
			name:     "whitespace and lowercase variants",
			in:       "{\"x\": nan , \"y\":\t-inf,\n\"z\": +Infinity}",
			want:     "{\"x\": null , \"y\":\tnull,\n\"z\": null}",
			replaced: 3,
		},
		{
			name:     "escaped backslash before closing quote",
			in:       `{"p":"C:\\","q":NaN}`,
			want:     `{"p":"C:\\","q":null}`,
			replaced: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := Sanitize([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("Sanitize: got %s, want %s", got, tt.want)
			}
			if n != tt.replaced {
				t.Errorf("replaced: got %d, want %d", n, tt.replaced)
			}
		})
	}
}

func TestSanitizedBodyParses(t *testing.T) {
	body := []byte(`{"results":[{"price":NaN,"attributes":{"land_size":NaN,"bedrooms":3}},{"deep":{"deeper":[[NaN,Infinity]]}}]}`)

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err == nil {
		t.Fatal("expected the unsanitized body to be rejected by the parser")
	}

	sanitized, _ := Sanitize(body)
	if err := json.Unmarshal(sanitized, &raw); err != nil {
		t.Fatalf("sanitized body does not parse: %v", err)
	}
}

func TestDecode(t *testing.T) {
	resp, err := Decode([]byte(`{"results":[{"price":650000,"area_name":"1 Lake St","attributes":{"land_size":"650 m²","bedrooms":NaN}}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results: got %d, want 1", len(resp.Results))
	}
	if resp.Results[0].Attributes.Bedrooms != nil {
		t.Errorf("bedrooms: got %v, want nil", resp.Results[0].Attributes.Bedrooms)
	}
	if resp.Results[0].AreaName != "1 Lake St" {
		t.Errorf("area_name: got %q", resp.Results[0].AreaName)
	}
}

func TestDecodeMissingResults(t *testing.T) {
	resp, err := Decode([]byte(`{"status":"ok"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("results: got %v, want empty non-nil slice", resp.Results)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, body := range []string{"", "<html>oops</html>", `{"results":[`, `{"results": NaNa}`} {
		_, err := Decode([]byte(body))
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Errorf("Decode(%q): got %v, want MalformedResponseError", body, err)
		}
	}
}

func TestDecodeNumericTextFields(t *testing.T) {
	resp, err := Decode([]byte(`{"results":[{"listing_date":20250819,"property_type":null,"price":"1,100,000"}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := resp.Results[0]
	if got.ListingDate != "20250819" {
		t.Errorf("listing_date: got %q, want 20250819", got.ListingDate)
	}
	if got.PropertyType != "" {
		t.Errorf("property_type: got %q, want empty", got.PropertyType)
	}
	if got.Price != "1,100,000" {
		t.Errorf("price: got %v, want raw string", got.Price)
	}
}

func TestDecodeKeepsProviderDocument(t *testing.T) {
	body := `{"results":[{"price":NaN,"listing_id":"abc","images":["x.jpg"],` +
		`"attributes":{"land_size":"650 m²","description":"nice","pool":true}}],"meta":{"total":1}}`

	resp, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Price != nil {
		t.Fatalf("typed results: got %+v", resp.Results)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc struct {
		Results []map[string]interface{} `json:"results"`
		Meta    map[string]interface{}   `json:"meta"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("re-decode %s: %v", out, err)
	}
	if doc.Meta["total"] != float64(1) {
		t.Errorf("meta: got %v, want total 1", doc.Meta)
	}
	listing := doc.Results[0]
	if listing["listing_id"] != "abc" {
		t.Errorf("listing_id: got %v", listing["listing_id"])
	}
	if price, ok := listing["price"]; !ok || price != nil {
		t.Errorf("price: got %v, want null", price)
	}
	if _, ok := listing["images"]; !ok {
		t.Error("images: dropped")
	}
	attrs := listing["attributes"].(map[string]interface{})
	if attrs["pool"] != true {
		t.Errorf("pool: got %v", attrs["pool"])
	}
	if _, ok := attrs["bedrooms"]; ok {
		t.Error("bedrooms: key added that the provider never sent")
	}
}

func TestListingsResponseWithoutDocument(t *testing.T) {
	out, err := json.Marshal(&models.ListingsResponse{Results: []models.RawListing{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"results":[]}` {
		t.Errorf("got %s, want {\"results\":[]}", out)
	}
}
