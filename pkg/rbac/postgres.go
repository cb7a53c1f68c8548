package rbac

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rolekit/pkg/pg"
)

// PostgresStore is the pgx-backed Store implementation. Binding predicates
// are compiled to WHERE clauses so filtering happens in the database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Permissions(ctx context.Context) ([]Permission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, app, resource, action, alias, scope
		 FROM permissions
		 ORDER BY app, resource, action`)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	return scanPermissions(rows)
}

func (s *PostgresStore) PermissionsByIDs(ctx context.Context, ids []uuid.UUID) ([]Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, app, resource, action, alias, scope
		 FROM permissions
		 WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query permissions by ids: %w", err)
	}
	return scanPermissions(rows)
}

func scanPermissions(rows pgx.Rows) ([]Permission, error) {
	defer rows.Close()

	var out []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.App, &p.Resource, &p.Action, &p.Alias, &p.Scope); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetOrCreateRole(ctx context.Context, defaults Role) (Role, bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO roles (id, name, scope, builtin)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		defaults.ID, defaults.Name, defaults.Scope, defaults.Builtin)
	if err != nil {
		return Role{}, false, fmt.Errorf("upsert role: %w", err)
	}
	created := tag.RowsAffected() > 0

	role, err := s.RoleByID(ctx, defaults.ID)
	if err != nil {
		return Role{}, false, err
	}
	return role, created, nil
}

func (s *PostgresStore) ReplaceRolePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("clear role permissions: %w", err)
	}
	if len(permissionIDs) > 0 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id)
			 SELECT $1, unnest($2::uuid[])`, roleID, permissionIDs); err != nil {
			return fmt.Errorf("insert role permissions: %w", err)
		}
	}
	return tx.Commit(ctx)
}

const roleSelect = `
	SELECT r.id, r.name, r.scope, r.builtin,
	       COALESCE(ARRAY_AGG(rp.permission_id) FILTER (WHERE rp.permission_id IS NOT NULL), '{}') AS permission_ids
	FROM roles r
	LEFT JOIN role_permissions rp ON rp.role_id = r.id`

func (s *PostgresStore) RoleByID(ctx context.Context, id uuid.UUID) (Role, error) {
	row := s.pool.QueryRow(ctx, roleSelect+` WHERE r.id = $1 GROUP BY r.id`, id)

	var role Role
	if err := row.Scan(&role.ID, &role.Name, &role.Scope, &role.Builtin, &role.PermissionIDs); err != nil {
		if pg.IsNotFoundError(err) {
			return Role{}, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
		}
		return Role{}, fmt.Errorf("query role: %w", err)
	}
	return role, nil
}

func (s *PostgresStore) Roles(ctx context.Context) ([]Role, error) {
	rows, err := s.pool.Query(ctx, roleSelect+` GROUP BY r.id ORDER BY r.name`)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Scope, &role.Builtin, &role.PermissionIDs); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveBinding(ctx context.Context, b *RoleBinding) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO role_bindings (id, user_id, role_id, org_id, scope)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET user_id = EXCLUDED.user_id,
		     role_id = EXCLUDED.role_id,
		     org_id = EXCLUDED.org_id,
		     scope = EXCLUDED.scope`,
		b.ID, b.UserID, b.RoleID, b.OrgID, b.Scope)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateBinding
		}
		return fmt.Errorf("save binding: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteBinding(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM role_bindings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete binding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrBindingNotFound, id)
	}
	return nil
}

func (s *PostgresStore) FindBindings(ctx context.Context, pred Predicate) ([]RoleBinding, error) {
	where, args := compilePredicate(pred)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, role_id, org_id, scope FROM role_bindings WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query bindings: %w", err)
	}
	defer rows.Close()

	var out []RoleBinding
	for rows.Next() {
		var b RoleBinding
		if err := rows.Scan(&b.ID, &b.UserID, &b.RoleID, &b.OrgID, &b.Scope); err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindBindingRefs(ctx context.Context, pred Predicate) ([]BindingRef, error) {
	where, args := compilePredicate(pred)
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, role_id, scope FROM role_bindings WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query binding refs: %w", err)
	}
	defer rows.Close()

	var out []BindingRef
	for rows.Next() {
		var ref BindingRef
		if err := rows.Scan(&ref.UserID, &ref.RoleID, &ref.Scope); err != nil {
			return nil, fmt.Errorf("scan binding ref: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

// compilePredicate renders a predicate as a parameterized WHERE expression.
func compilePredicate(pred Predicate) (string, []any) {
	if len(pred) == 0 {
		return "TRUE", nil
	}
	var args []any
	conds := make([]string, 0, len(pred))
	for _, cond := range pred {
		clauses := make([]string, 0, len(cond))
		for _, cl := range cond {
			clauses = append(clauses, compileClause(cl, &args))
		}
		conds = append(conds, "("+strings.Join(clauses, " AND ")+")")
	}
	return strings.Join(conds, " OR "), args
}

func compileClause(cl Clause, args *[]any) string {
	col := string(cl.Field)
	uuidCol := cl.Field != FieldScope

	if len(cl.Values) == 1 {
		v := cl.Values[0]
		// The global org is stored as NULL.
		if cl.Field == FieldOrgID && v == "" {
			return col + " IS NULL"
		}
		*args = append(*args, v)
		if uuidCol {
			return fmt.Sprintf("%s = $%d::uuid", col, len(*args))
		}
		return fmt.Sprintf("%s = $%d", col, len(*args))
	}

	*args = append(*args, cl.Values)
	if uuidCol {
		return fmt.Sprintf("%s = ANY(($%d::text[])::uuid[])", col, len(*args))
	}
	return fmt.Sprintf("%s = ANY($%d::text[])", col, len(*args))
}
