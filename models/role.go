package models

// Tên các role đặc biệt. Role superadmin không bao giờ xuất hiện trong các
// endpoint quản trị chung.
const (
	RoleSuperadmin  = "superadmin"
	DefaultRoleName = "user"
)

// IsElevated báo role có được thao tác trên dữ liệu của người khác hay không
func IsElevated(roleName string) bool {
	return roleName == RoleSuperadmin
}

// Role là một bậc quyền có định danh số ổn định
type Role struct {
	ID   int64  `json:"role_id"`
	Name string `json:"role_name"`
}

// Permission là một khả năng được đặt tên, ví dụ "delete-todo"
type Permission struct {
	ID   int64  `json:"permission_id"`
	Name string `json:"permission_name"`
}

// ReplaceRolePermissionsRequest for atomically replacing a role's permission set
type ReplaceRolePermissionsRequest struct {
	PermissionIDs []int64 `json:"permissionIds"`
}
