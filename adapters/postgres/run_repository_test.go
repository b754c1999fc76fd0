package postgres

import (
	"testing"
)

// TestDSNWithSSLMode tests sslmode handling for both DSN forms
func TestDSNWithSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		sslMode  string
		expected string
	}{
		{
			name:     "url without query",
			dsn:      "postgres://user:pw@localhost:5432/runs",
			sslMode:  "disable",
			expected: "postgres://user:pw@localhost:5432/runs?sslmode=disable",
		},
		{
			name:     "url with existing query",
			dsn:      "postgres://localhost/runs?connect_timeout=5",
			sslMode:  "require",
			expected: "postgres://localhost/runs?connect_timeout=5&sslmode=require",
		},
		{
			name:     "key value form",
			dsn:      "host=localhost dbname=runs",
			sslMode:  "disable",
			expected: "host=localhost dbname=runs sslmode=disable",
		},
		{
			name:     "dsn already sets sslmode",
			dsn:      "postgres://localhost/runs?sslmode=require",
			sslMode:  "disable",
			expected: "postgres://localhost/runs?sslmode=require",
		},
		{
			name:     "empty dsn stays empty",
			dsn:      "",
			sslMode:  "disable",
			expected: "",
		},
		{
			name:     "empty sslmode leaves dsn alone",
			dsn:      "postgres://localhost/runs",
			sslMode:  "",
			expected: "postgres://localhost/runs",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := DSNWithSSLMode(test.dsn, test.sslMode)
			if result != test.expected {
				t.Errorf("Expected %q, got %q", test.expected, result)
			}
		})
	}
}
