package inputval

import "testing"

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		// Valid roles
		{"manager", true},
		{"teacher", true},
		{"student", true},

		// Valid roles - case insensitive
		{"MANAGER", true},
		{"Teacher", true},
		{"STUDENT", true},

		// Valid with whitespace
		{"  manager  ", true},
		{"\tteacher\t", true},

		// Invalid roles
		{"", false},
		{"   ", false},
		{"admin", false},
		{"superadmin", false},
		{"parent", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got := IsValidRole(tt.role)
			if got != tt.want {
				t.Errorf("IsValidRole(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestAllowedRolesList(t *testing.T) {
	list := AllowedRolesList()

	expected := []string{"manager", "teacher", "student"}
	if len(list) != len(expected) {
		t.Fatalf("AllowedRolesList() has %d items, want %d", len(list), len(expected))
	}
	for i, want := range expected {
		if list[i] != want {
			t.Errorf("AllowedRolesList()[%d] = %q, want %q", i, list[i], want)
		}
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		// Valid ObjectIDs (24 hex characters)
		{"507f1f77bcf86cd799439011", true},
		{"000000000000000000000000", true},
		{"ffffffffffffffffffffffff", true},
		{"FFFFFFFFFFFFFFFFFFFFFFFF", true}, // uppercase hex is valid

		// Valid with whitespace (trimmed)
		{"  507f1f77bcf86cd799439011  ", true},

		// Invalid ObjectIDs
		{"", false},
		{"   ", false},
		{"507f1f77bcf86cd79943901", false},   // too short (23 chars)
		{"507f1f77bcf86cd7994390111", false}, // too long (25 chars)
		{"507f1f77bcf86cd79943901g", false},  // invalid hex char
		{"not-a-valid-id", false},
		{"12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := IsValidObjectID(tt.id)
			if got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
		zero   bool
	}{
		{"2024-01-15", true, false},
		{"  2024-01-15  ", true, false},
		{"", true, true}, // optional fields stay optional
		{"01/15/2024", false, true},
		{"2024-13-01", false, true},
		{"yesterday", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			if ok != tt.wantOK {
				t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got.IsZero() != tt.zero {
				t.Errorf("ParseDate(%q) zero = %v, want %v", tt.in, got.IsZero(), tt.zero)
			}
		})
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"100", 100, false},
		{"45", 45, false},
		{" 45 ", 45, false},
		{"-1", 0, true},
		{"101", 0, true},
		{"", 0, true},
		{"forty", 0, true},
		{"4.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProgress(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProgress(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseProgress(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type TestInput struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Email string `validate:"required,email" label:"Email address"`
	}

	tests := []struct {
		name       string
		input      TestInput
		wantErrors bool
		wantFirst  string
	}{
		{
			name:       "valid input",
			input:      TestInput{Name: "John", Email: "john@example.com"},
			wantErrors: false,
		},
		{
			name:       "missing name",
			input:      TestInput{Name: "", Email: "john@example.com"},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
		{
			name:       "name too long",
			input:      TestInput{Name: "VeryLongNameThatExceedsLimit", Email: "john@example.com"},
			wantErrors: true,
			wantFirst:  "Full name must be at most 10 characters.",
		},
		{
			name:       "invalid email",
			input:      TestInput{Name: "John", Email: "not-an-email"},
			wantErrors: true,
			wantFirst:  "A valid email address is required.",
		},
		{
			name:       "missing both",
			input:      TestInput{Name: "", Email: ""},
			wantErrors: true,
			wantFirst:  "Full name is required.", // First error
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			if result.HasErrors() != tt.wantErrors {
				t.Errorf("Validate() HasErrors = %v, want %v", result.HasErrors(), tt.wantErrors)
			}

			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}

func TestResult_All(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.All() != "" {
			t.Errorf("All() = %q, want empty", r.All())
		}
	})

	t.Run("one error", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{{Message: "Error 1"}},
		}
		if r.All() != "Error 1" {
			t.Errorf("All() = %q, want %q", r.All(), "Error 1")
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "Error 1"},
				{Message: "Error 2"},
			},
		}
		want := "Error 1; Error 2"
		if r.All() != want {
			t.Errorf("All() = %q, want %q", r.All(), want)
		}
	})
}

func TestResult_First(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.First() != "" {
			t.Errorf("First() = %q, want empty", r.First())
		}
	})

	t.Run("with errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "First error"},
				{Message: "Second error"},
			},
		}
		if r.First() != "First error" {
			t.Errorf("First() = %q, want %q", r.First(), "First error")
		}
	})
}

func TestValidate_CustomRules(t *testing.T) {
	type RoleInput struct {
		Role string `validate:"required,role" label:"Role"`
	}

	type IDInput struct {
		ID string `validate:"required,objectid" label:"User ID"`
	}

	type DateInput struct {
		Due string `validate:"date" label:"Due date"`
	}

	t.Run("valid role", func(t *testing.T) {
		result := Validate(RoleInput{Role: "teacher"})
		if result.HasErrors() {
			t.Errorf("Validate(valid role) has errors: %v", result.Errors)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		result := Validate(RoleInput{Role: "wizard"})
		if !result.HasErrors() {
			t.Error("Validate(invalid role) should have errors")
		}
	})

	t.Run("valid object id", func(t *testing.T) {
		result := Validate(IDInput{ID: "507f1f77bcf86cd799439011"})
		if result.HasErrors() {
			t.Errorf("Validate(valid id) has errors: %v", result.Errors)
		}
	})

	t.Run("invalid object id", func(t *testing.T) {
		result := Validate(IDInput{ID: "nope"})
		if !result.HasErrors() {
			t.Error("Validate(invalid id) should have errors")
		}
	})

	t.Run("blank optional date passes", func(t *testing.T) {
		result := Validate(DateInput{Due: ""})
		if result.HasErrors() {
			t.Errorf("Validate(blank date) has errors: %v", result.Errors)
		}
	})

	t.Run("malformed date fails", func(t *testing.T) {
		result := Validate(DateInput{Due: "tomorrow"})
		if !result.HasErrors() {
			t.Error("Validate(malformed date) should have errors")
		}
	})

	t.Run("pointer input", func(t *testing.T) {
		result := Validate(&RoleInput{Role: "student"})
		if result.HasErrors() {
			t.Errorf("Validate(pointer) has errors: %v", result.Errors)
		}
	})
}
