package postgres

import (
	"testing"
	"testing/fstest"
)

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys["sql/migrations/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadMigrationsFromFS(t *testing.T) {
	fsys := migrationFS(map[string]string{
		"0002_create_cart_item.up.sql":   "CREATE TABLE cart_item (id BIGSERIAL PRIMARY KEY);",
		"0002_create_cart_item.down.sql": "DROP TABLE cart_item;",
		"0001_create_customer.up.sql":    "CREATE TABLE customer (id BIGSERIAL PRIMARY KEY);",
		"0001_create_customer.down.sql":  "DROP TABLE customer;",
	})

	migrations, err := loadMigrationsFromFS(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[1].Version != 2 {
		t.Fatalf("expected migrations sorted by version, got %d then %d",
			migrations[0].Version, migrations[1].Version)
	}
	if migrations[0].Name != "create_customer" {
		t.Fatalf("expected name create_customer, got %s", migrations[0].Name)
	}
	if migrations[0].UpSQL == "" || migrations[0].DownSQL == "" {
		t.Fatal("expected both up and down bodies to be loaded")
	}
}

func TestLoadMigrationsFromFS_EmbeddedFiles(t *testing.T) {
	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("embedded migrations must load: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected embedded migrations to be present")
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i-1].Version >= migrations[i].Version {
			t.Fatalf("embedded migrations out of order: %d before %d",
				migrations[i-1].Version, migrations[i].Version)
		}
	}
}

func TestLoadMigrationsFromFS_Errors(t *testing.T) {
	cases := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "no files",
			files: map[string]string{},
		},
		{
			name: "invalid file name",
			files: map[string]string{
				"create_customer.sql": "CREATE TABLE customer ();",
			},
		},
		{
			name: "missing down file",
			files: map[string]string{
				"0001_create_customer.up.sql": "CREATE TABLE customer ();",
			},
		},
		{
			name: "empty body",
			files: map[string]string{
				"0001_create_customer.up.sql":   "   ",
				"0001_create_customer.down.sql": "DROP TABLE customer;",
			},
		},
		{
			name: "name mismatch for same version",
			files: map[string]string{
				"0001_create_customer.up.sql": "CREATE TABLE customer ();",
				"0001_create_user.down.sql":   "DROP TABLE customer;",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadMigrationsFromFS(migrationFS(tc.files)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestMigrationFilePattern(t *testing.T) {
	valid := []string{
		"0001_create_customer.up.sql",
		"0001_create_customer.down.sql",
		"42_add_index.up.sql",
	}
	for _, name := range valid {
		if !migrationFilePattern.MatchString(name) {
			t.Errorf("expected %s to match", name)
		}
	}

	invalid := []string{
		"create_customer.up.sql",
		"0001-create-customer.up.sql",
		"0001_create_customer.sql",
		"0001_create_customer.up.txt",
	}
	for _, name := range invalid {
		if migrationFilePattern.MatchString(name) {
			t.Errorf("expected %s not to match", name)
		}
	}
}
