package postgres

import "testing"

func TestMigrateURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/prema?sslmode=disable": "pgx5://u:p@localhost:5432/prema?sslmode=disable",
		"postgresql://db/prema":                                "pgx5://db/prema",
	}
	for in, want := range cases {
		got, err := migrateURL(in)
		if err != nil || got != want {
			t.Errorf("migrateURL(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := migrateURL("host=localhost dbname=prema"); err == nil {
		t.Fatalf("expected an error for key=value dsn")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected up and down migrations, got %d files", len(entries))
	}
}
