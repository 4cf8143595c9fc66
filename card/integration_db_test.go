package card_test

import (
    "context"
    "database/sql"
    "os"
    "testing"

    "github.com/alovak/namecard/card"
    "github.com/alovak/namecard/card/models"
    _ "github.com/lib/pq"
)

// TestPGRepository_Integration reads a card back from a real cards table.
// Skips unless DB_DSN is provided.
func TestPGRepository_Integration(t *testing.T) {
    dsn := os.Getenv("DB_DSN")
    if dsn == "" {
        t.Skip("DB_DSN not set; skipping DB integration test")
    }

    db, err := sql.Open("postgres", dsn)
    if err != nil { t.Fatalf("open db: %v", err) }
    defer db.Close()
    // temporary tables are per connection
    db.SetMaxOpenConns(1)
    if err := db.Ping(); err != nil { t.Fatalf("ping db: %v", err) }

    if _, err := db.Exec(`create temporary table cards (
        handle text primary key,
        name text, title text, company_name text, department text,
        email text, phone_number text, company_address text
    )`); err != nil {
        t.Fatalf("create table: %v", err)
    }
    if _, err := db.Exec(`insert into cards(handle, name, title, company_name, email)
        values ('ann', 'Ann Lee', 'Engineer', 'Acme', 'a@x.com')`); err != nil {
        t.Fatalf("insert card: %v", err)
    }

    repo := card.NewPGRepository(db, "cards")

    got, err := repo.FindByHandle(context.Background(), "ann")
    if err != nil { t.Fatalf("find card: %v", err) }
    if got == nil { t.Fatalf("card not found") }
    if models.Text(got.Name) != "Ann Lee" || got.Subtitle() != "Engineer · Acme" {
        t.Fatalf("unexpected card: name=%q subtitle=%q", models.Text(got.Name), got.Subtitle())
    }
    if got.Department != nil {
        t.Fatalf("department = %q want absent", *got.Department)
    }

    missing, err := repo.FindByHandle(context.Background(), "ghost")
    if err != nil { t.Fatalf("find missing card: %v", err) }
    if missing != nil { t.Fatalf("expected no card, got %+v", missing) }
}
