// Package seed loads the static mock records the platform starts from.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/edgylearn-api/internal/models"
)

//go:embed data/seed.json
var defaultFixture []byte

//go:embed data/seed.schema.json
var fixtureSchema []byte

const schemaURL = "mem://edgylearn/seed.schema.json"

// Account is a demo login recognised by the shell.
type Account struct {
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	UserID string      `json:"user_id"`
}

// Landing holds the marketing page content.
type Landing struct {
	Features     []models.Feature     `json:"features"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

// AdminBoard is the initial admin dashboard state.
type AdminBoard struct {
	Stats          models.AdminStats      `json:"stats"`
	PendingCourses []models.PendingCourse `json:"pending_courses"`
	RecentUsers    []models.ManagedUser   `json:"recent_users"`
	Metrics        []models.SystemMetric  `json:"metrics"`
}

// TeacherBoard is the initial teacher dashboard state.
type TeacherBoard struct {
	Stats        models.TeacherStats    `json:"stats"`
	Courses      []models.TeacherCourse `json:"courses"`
	Activity     []models.ActivityItem  `json:"activity"`
	LiveMessages []string               `json:"live_messages"`
}

// StudentBoard is the initial student dashboard state.
type StudentBoard struct {
	Progress  models.StudentProgress   `json:"progress"`
	Enrolled  []models.EnrolledCourse  `json:"enrolled"`
	Suggested []models.SuggestedCourse `json:"suggested"`
}

// Dashboards groups the per-role initial states.
type Dashboards struct {
	Admin   AdminBoard   `json:"admin"`
	Teacher TeacherBoard `json:"teacher"`
	Student StudentBoard `json:"student"`
}

// Dataset is the complete seed. It is treated as read-only once loaded.
type Dataset struct {
	Users         []models.User         `json:"users"`
	Accounts      []Account             `json:"accounts"`
	Courses       []models.Course       `json:"courses"`
	LearningPaths []models.LearningPath `json:"learning_paths"`
	Progress      []models.Progress     `json:"progress"`
	Landing       Landing               `json:"landing"`
	Dashboards    Dashboards            `json:"dashboards"`
}

// Default parses the fixture compiled into the binary.
func Default() (*Dataset, error) {
	return Parse(defaultFixture)
}

// Parse validates raw against the fixture schema and decodes it.
func Parse(raw []byte) (*Dataset, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	var document interface{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}
	if err := schema.Validate(document); err != nil {
		return nil, fmt.Errorf("seed fixture does not match schema: %w", err)
	}

	var dataset Dataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}

	if err := dataset.normalize(); err != nil {
		return nil, err
	}

	return &dataset, nil
}

// Account looks up a demo login by email.
func (d *Dataset) Account(email string) (Account, bool) {
	for _, account := range d.Accounts {
		if strings.EqualFold(account.Email, strings.TrimSpace(email)) {
			return account, true
		}
	}
	return Account{}, false
}

// AccountEmails lists the demo logins, used in the login hint.
func (d *Dataset) AccountEmails() []string {
	emails := make([]string, 0, len(d.Accounts))
	for _, account := range d.Accounts {
		emails = append(emails, account.Email)
	}
	return emails
}

func (d *Dataset) normalize() error {
	for i := range d.Users {
		role, ok := models.ParseRole(string(d.Users[i].Role))
		if !ok {
			return fmt.Errorf("user %s: unknown role %q", d.Users[i].ID, d.Users[i].Role)
		}
		d.Users[i].Role = role
	}
	for i := range d.Accounts {
		role, ok := models.ParseRole(string(d.Accounts[i].Role))
		if !ok {
			return fmt.Errorf("account %s: unknown role %q", d.Accounts[i].Email, d.Accounts[i].Role)
		}
		d.Accounts[i].Role = role
	}
	for i := range d.Courses {
		status, ok := models.ParseCourseStatus(string(d.Courses[i].Status))
		if !ok {
			return fmt.Errorf("course %s: unknown status %q", d.Courses[i].ID, d.Courses[i].Status)
		}
		d.Courses[i].Status = status
	}
	for i := range d.Dashboards.Teacher.Courses {
		course := &d.Dashboards.Teacher.Courses[i]
		status, ok := models.ParseCourseStatus(string(course.Status))
		if !ok {
			return fmt.Errorf("teacher course %d: unknown status %q", course.ID, course.Status)
		}
		course.Status = status
	}
	for i := range d.Dashboards.Admin.RecentUsers {
		user := &d.Dashboards.Admin.RecentUsers[i]
		role, ok := models.ParseRole(string(user.Role))
		if !ok {
			return fmt.Errorf("recent user %d: unknown role %q", user.ID, user.Role)
		}
		user.Role = role
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(fixtureSchema)); err != nil {
		return nil, fmt.Errorf("load seed schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}
	return schema, nil
}
