package handlers_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRoles_ExcludesSuperadmin(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT role_id, role_name\\s*FROM roles").
		WithArgs("superadmin").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "role_name"}).
			AddRow(int64(2), "admin").
			AddRow(int64(7), "user"))

	req := jsonRequest("GET", "/api/roles", "")
	req.AddCookie(sessionCookie(t, 1, "alice", "user"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRolePermissions_ListsAssociations(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("FROM role_permissions rp\\s*JOIN permissions p").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"permission_id", "permission_name"}).
			AddRow(int64(1), "create-todo").
			AddRow(int64(2), "update-todo"))

	req := jsonRequest("GET", "/api/role-permissions/3", "")
	req.AddCookie(sessionCookie(t, 1, "alice", "user"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissions_RequiresArray(t *testing.T) {
	app, mock := newTestApp(t)

	expectPermissionCheck(mock, 99, "manage-permissions", true)

	req := jsonRequest("PUT", "/api/role-permissions/3", `{}`)
	req.AddCookie(sessionCookie(t, 99, "boss", "superadmin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "permissionIds must be an array", decodeBody(t, resp)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissions_AtomicReplace(t *testing.T) {
	app, mock := newTestApp(t)

	expectPermissionCheck(mock, 99, "manage-permissions", true)
	mock.ExpectQuery("SELECT role_name FROM roles WHERE role_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"role_name"}).AddRow("manager"))

	// Xóa rồi chèn phải nằm trong cùng một transaction
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM role_permissions").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO role_permissions").
		WithArgs(3, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO role_permissions").
		WithArgs(3, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := jsonRequest("PUT", "/api/role-permissions/3", `{"permissionIds":[1,2]}`)
	req.AddCookie(sessionCookie(t, 99, "boss", "superadmin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissions_RollsBackOnFailure(t *testing.T) {
	app, mock := newTestApp(t)

	expectPermissionCheck(mock, 99, "manage-permissions", true)
	mock.ExpectQuery("SELECT role_name FROM roles WHERE role_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"role_name"}).AddRow("manager"))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM role_permissions").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO role_permissions").
		WithArgs(3, int64(1)).
		WillReturnError(errors.New("permission does not exist"))
	mock.ExpectRollback()

	req := jsonRequest("PUT", "/api/role-permissions/3", `{"permissionIds":[1,2]}`)
	req.AddCookie(sessionCookie(t, 99, "boss", "superadmin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissions_SuperadminRoleShielded(t *testing.T) {
	app, mock := newTestApp(t)

	expectPermissionCheck(mock, 99, "manage-permissions", true)
	mock.ExpectQuery("SELECT role_name FROM roles WHERE role_id").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"role_name"}).AddRow("superadmin"))

	req := jsonRequest("PUT", "/api/role-permissions/1", `{"permissionIds":[1]}`)
	req.AddCookie(sessionCookie(t, 99, "boss", "superadmin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
