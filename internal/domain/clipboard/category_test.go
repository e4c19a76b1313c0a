package clipboard

import "testing"

// TestDescribe_AllCategoriesComplete tests that every code has full display metadata.
func TestDescribe_AllCategoriesComplete(t *testing.T) {
	all := AllCategories()
	if len(all) != 7 {
		t.Fatalf("got %d categories, want 7", len(all))
	}
	for i, c := range all {
		if int(c) != i {
			t.Errorf("AllCategories()[%d] = %d, want %d", i, c, i)
		}
		d := Describe(c)
		if d.Name == "" || d.Icon == "" || d.Color == "" {
			t.Errorf("Describe(%d) = %+v, want non-empty fields", c, d)
		}
		if _, ok := ColorHex[d.Color]; !ok {
			t.Errorf("Describe(%d).Color = %q has no hex value", c, d.Color)
		}
	}
}

// TestDescribe_Pure tests that repeated calls return the same value.
func TestDescribe_Pure(t *testing.T) {
	for _, c := range AllCategories() {
		first := c.Describe()
		for i := 0; i < 3; i++ {
			if got := Describe(c); got != first {
				t.Errorf("Describe(%d) call %d = %+v, want %+v", c, i, got, first)
			}
		}
	}
}

// TestDescribe_DistinctNames tests that no two categories share a label.
func TestDescribe_DistinctNames(t *testing.T) {
	seen := map[string]Category{}
	for _, c := range AllCategories() {
		name := c.Describe().Name
		if prev, ok := seen[name]; ok {
			t.Errorf("categories %d and %d share name %q", prev, c, name)
		}
		seen[name] = c
	}
}

// TestDescribe_Invalid tests the fallback for codes outside the set.
func TestDescribe_Invalid(t *testing.T) {
	for _, c := range []Category{-1, 7, 42} {
		if c.Valid() {
			t.Errorf("Category(%d).Valid() = true, want false", c)
		}
		if got := c.Describe(); got.Name != "Unknown" {
			t.Errorf("Category(%d).Describe().Name = %q, want Unknown", c, got.Name)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		code    int
		want    Category
		wantErr bool
	}{
		{0, CategoryText, false},
		{1, CategoryCode, false},
		{2, CategoryLink, false},
		{3, CategoryEmail, false},
		{4, CategoryPhone, false},
		{5, CategoryColor, false},
		{6, CategoryImage, false},
		{-1, CategoryText, true},
		{7, CategoryText, true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%d) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestCategoryFromName(t *testing.T) {
	tests := []struct {
		name    string
		want    Category
		wantErr bool
	}{
		{"text", CategoryText, false},
		{"Code", CategoryCode, false},
		{" LINK ", CategoryLink, false},
		{"email", CategoryEmail, false},
		{"phone", CategoryPhone, false},
		{"color", CategoryColor, false},
		{"Image", CategoryImage, false},
		{"video", CategoryText, true},
		{"", CategoryText, true},
	}
	for _, tt := range tests {
		got, err := CategoryFromName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("CategoryFromName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("CategoryFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestCategory_StringRoundTrip tests that String output parses back.
func TestCategory_StringRoundTrip(t *testing.T) {
	for _, c := range AllCategories() {
		got, err := CategoryFromName(c.String())
		if err != nil {
			t.Fatalf("CategoryFromName(%q): %v", c.String(), err)
		}
		if got != c {
			t.Errorf("round trip of %d gave %d", c, got)
		}
	}
}
