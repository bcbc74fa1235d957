package application

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "valid value",
			fieldName: "path",
			value:     "/home/dev/api",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "path",
			value:     "",
			wantErr:   true,
			wantMsg:   "path is required",
		},
		{
			name:      "whitespace only",
			fieldName: "newName",
			value:     "   ",
			wantErr:   true,
			wantMsg:   "new name is required",
		},
		{
			name:      "unknown field name kept as is",
			fieldName: "template",
			value:     "",
			wantErr:   true,
			wantMsg:   "template is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if valErr.Message != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, valErr.Message)
				}
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{
			name: "absolute path cleaned",
			path: "/home/dev//api/",
			want: "/home/dev/api",
		},
		{
			name: "surrounding whitespace trimmed",
			path: "  /srv/site  ",
			want: "/srv/site",
		},
		{
			name: "relative path made absolute",
			path: "api",
			want: filepath.Join(wd, "api"),
		},
		{
			name:    "empty",
			path:    "",
			wantErr: true,
		},
		{
			name:    "root",
			path:    "/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePath("path", tt.path)
			if tt.wantErr {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLaunchError_Unwrap(t *testing.T) {
	cause := errors.New("executable file not found")
	err := &LaunchError{IDE: "code", Paths: []string{"/a", "/b"}, Reason: cause}

	if !errors.Is(err, cause) {
		t.Error("expected LaunchError to unwrap to its reason")
	}
	want := "cannot launch code with 2 project(s): executable file not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
