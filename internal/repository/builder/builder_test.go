package builder

import (
	"testing"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		query, args := NewSQLBuilder().
			Select("emp_id", "project_id").
			From("project_assignment").
			Where("project_id = ?", 7).
			Where("emp_id <> ?", 3).
			OrderBy("id").
			Build()
		expected := "SELECT emp_id, project_id FROM project_assignment WHERE project_id = $1 AND emp_id <> $2 ORDER BY id"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != 7 || args[1] != 3 {
			t.Errorf("expected args [7 3], got %v", args)
		}
	})

	t.Run("LimitOffset", func(t *testing.T) {
		query, args := NewSQLBuilder().Select("*").From("t").Limit(10).Offset(20).Build()
		expected := "SELECT * FROM t LIMIT $1 OFFSET $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != 10 || args[1] != 20 {
			t.Errorf("expected args [10 20], got %v", args)
		}
	})

	t.Run("InsertPrepared", func(t *testing.T) {
		query, args := NewSQLBuilder().Insert("t", "a", "b", "c").Build()
		expected := "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("BuildIsRepeatable", func(t *testing.T) {
		b := NewSQLBuilder().Select("*").From("t").Where("a = ?", 1).Limit(5)
		q1, a1 := b.Build()
		q2, a2 := b.Build()
		if q1 != q2 || len(a1) != len(a2) {
			t.Errorf("expected identical builds, got %s %v and %s %v", q1, a1, q2, a2)
		}
	})
}

func TestSQLBuilder_BuildSafe(t *testing.T) {
	if _, _, err := NewSQLBuilder().Select("*").From("t").Where("a = ? AND b = ?", 1, 2).Limit(3).BuildSafe(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, _, err := NewSQLBuilder().Select("*").From("t").Where("a = ?", 1, 2).BuildSafe(); err == nil {
		t.Error("expected placeholder mismatch error")
	}

	if _, _, err := NewSQLBuilder().Select("*").BuildSafe(); err == nil {
		t.Error("expected missing table error")
	}

	if _, _, err := NewSQLBuilder().Insert("t").BuildSafe(); err == nil {
		t.Error("expected missing columns error")
	}

	if _, _, err := NewSQLBuilder().Insert("t", "a").BuildSafe(); err != nil {
		t.Errorf("unexpected error for prepared insert: %v", err)
	}
}
