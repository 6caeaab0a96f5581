package dto

// UserFormRequest is the admin "create user" form.
type UserFormRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,basic_email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher instructor admin"`
}

// CourseFormRequest is the teacher "create/edit course" form.
type CourseFormRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Duration    string `json:"duration"`
	Modules     int    `json:"modules"`
}
