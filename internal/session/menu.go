package session

import "github.com/noah-isme/edgylearn-api/internal/models"

// View is a top-level screen of the shell.
type View string

const (
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewForgotPassword View = "forgot_password"
	ViewDashboard      View = "dashboard"
)

// MenuItem is an entry of the navigation bar.
type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type menuEntry struct {
	item  MenuItem
	roles []models.Role
}

// menu entries with no roles are shown to everybody.
var menu = []menuEntry{
	{item: MenuItem{Key: "courses", Label: "Cursos", Path: "/api/v2/catalog"}},
	{item: MenuItem{Key: "progress", Label: "Mi Progreso", Path: "/api/v2/student/dashboard"}, roles: []models.Role{models.RoleStudent}},
	{item: MenuItem{Key: "management", Label: "Gestión", Path: "/api/v2/teacher/dashboard"}, roles: []models.Role{models.RoleTeacher, models.RoleAdmin}},
	{item: MenuItem{Key: "admin", Label: "Admin", Path: "/api/v2/admin/dashboard"}, roles: []models.Role{models.RoleAdmin}},
}

// Menu returns the navigation entries visible to role, in display order.
func Menu(role models.Role) []MenuItem {
	items := make([]MenuItem, 0, len(menu))
	for _, entry := range menu {
		if len(entry.roles) == 0 || containsRole(entry.roles, role) {
			items = append(items, entry.item)
		}
	}
	return items
}

func containsRole(roles []models.Role, role models.Role) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
