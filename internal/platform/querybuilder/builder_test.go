package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "title").
		From("contests").
		Where(Eq("creator_id", "user-1"), IsNull("deleted_at")).
		OrderBy("public_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, title FROM contests WHERE creator_id = $1 AND deleted_at IS NULL ORDER BY public_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "user-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderInAndExpr(t *testing.T) {
	query, args, err := Select("public_id").
		From("submissions").
		Where(
			In("status", []any{"pending", "accepted"}),
			Expr("submitted_at >= ?", "2026-03-01"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM submissions WHERE status IN ($1, $2) AND submitted_at >= $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "2026-03-01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	query, args, err := Select("public_id").
		From("submissions").
		Where(In("status", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM submissions WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("contests").
		Columns("public_id", "title").
		Values("contest-1", "Spring Editathon").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO contests (public_id, title) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "contest-1" || args[1] != "Spring Editathon" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("submissions").
		Set("status", "accepted").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "sub-1"), Expr("status = ?", "pending")).
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE submissions SET status = $1, updated_at = NOW() WHERE public_id = $2 AND status = $3 RETURNING public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "accepted" || args[1] != "sub-1" || args[2] != "pending" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Title    string `db:"title"`
		Ignored  string `db:"-"`
		noTag    string
	}

	query, args, err := InsertModel("contests", row{PublicID: "contest-1", Title: "Spring"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO contests (public_id, title) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "contest-1" || args[1] != "Spring" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
