// Package cli implements the interactive terminal menu.
//
// The CLI is a thin shell: it collects raw field input (with basic type
// coercion for the integer/real fields), forwards everything to the
// controller, and renders the results. All business rules live behind
// the controller boundary — nothing here mutates the collection
// directly.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MuhammadAnbiya/student-manager/internal/controller"
	"github.com/MuhammadAnbiya/student-manager/internal/opresult"
	"github.com/MuhammadAnbiya/student-manager/internal/types"
)

// App is the menu-driven terminal application. The reader and writer
// are fields so tests can script a session against buffers.
type App struct {
	ctrl *controller.Controller
	in   *bufio.Scanner
	out  io.Writer
}

// New returns an App reading from stdin and writing to stdout.
func New(ctrl *controller.Controller) *App {
	return &App{
		ctrl: ctrl,
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
	}
}

// NewWithIO returns an App bound to the given reader and writer.
func NewWithIO(ctrl *controller.Controller, in io.Reader, out io.Writer) *App {
	return &App{ctrl: ctrl, in: bufio.NewScanner(in), out: out}
}

// Run drives the main menu loop until the user exits or input ends.
func (a *App) Run() {
	for {
		a.clearScreen()
		a.printHeader()
		a.printMenu()

		choice, ok := a.promptRequired("Enter your choice (1-9): ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.createStudent()
		case "2":
			a.viewAllStudents()
		case "3":
			a.findStudentByID()
		case "4":
			a.updateStudent()
		case "5":
			a.deleteStudent()
		case "6":
			a.searchStudents()
		case "7":
			a.viewStatistics()
		case "8":
			a.loadSampleData()
		case "9":
			fmt.Fprintln(a.out, "\nThank you for using the Student Management System. Goodbye!")
			return
		default:
			fmt.Fprintln(a.out, "Invalid choice. Please enter a number between 1 and 9.")
		}

		if !a.pause() {
			return
		}
	}
}

// ─────────────────────────────────────────────────────────────────────
// Menu actions
// ─────────────────────────────────────────────────────────────────────

func (a *App) createStudent() {
	a.sectionHeader("CREATE NEW STUDENT")

	var rec types.StudentRecord
	var ok bool

	if rec.ID, ok = a.promptRequired("Enter Student ID: "); !ok {
		return
	}
	if rec.Name, ok = a.promptRequired("Enter Full Name: "); !ok {
		return
	}
	if rec.Email, ok = a.promptRequired("Enter Email Address: "); !ok {
		return
	}
	if rec.Age, ok = a.promptRequiredInt("Enter Age: "); !ok {
		return
	}
	if rec.Major, ok = a.promptRequired("Enter Major/Field of Study: "); !ok {
		return
	}
	if rec.GPA, ok = a.promptRequiredFloat("Enter GPA (0.0-4.0): "); !ok {
		return
	}

	created, err := a.ctrl.Create(rec)
	fmt.Fprintln(a.out, "\n"+strings.Repeat("-", 40))
	if err != nil {
		a.printError(err)
		return
	}

	fmt.Fprintln(a.out, "✓ SUCCESS:")
	fmt.Fprintf(a.out, "Student %s (ID: %s) created successfully!\n", created.Name, created.ID)
	fmt.Fprintln(a.out, "\nStudent Details:")
	a.printStudent(created)
}

func (a *App) viewAllStudents() {
	a.sectionHeader("ALL STUDENTS")

	students := a.ctrl.ReadAll()
	if len(students) == 0 {
		fmt.Fprintln(a.out, "No students found in the system.")
		return
	}

	fmt.Fprintf(a.out, "Found %d student(s).\n", len(students))
	a.printTable(students)
	fmt.Fprintf(a.out, "Total Students: %d\n", len(students))
}

func (a *App) findStudentByID() {
	a.sectionHeader("SEARCH STUDENT BY ID")

	id, ok := a.promptRequired("Enter Student ID to search: ")
	if !ok {
		return
	}

	student, err := a.ctrl.ReadByID(id)
	fmt.Fprintln(a.out, "\n"+strings.Repeat("-", 40))
	if err != nil {
		a.printError(err)
		return
	}

	fmt.Fprintln(a.out, "✓ STUDENT FOUND:")
	a.printStudent(student)
}

func (a *App) updateStudent() {
	a.sectionHeader("UPDATE STUDENT INFORMATION")

	id, ok := a.promptRequired("Enter Student ID to update: ")
	if !ok {
		return
	}

	current, err := a.ctrl.ReadByID(id)
	if err != nil {
		a.printError(err)
		return
	}

	fmt.Fprintf(a.out, "\nCurrent Information for %s:\n", current.Name)
	fmt.Fprintf(a.out, "1. Name: %s\n", current.Name)
	fmt.Fprintf(a.out, "2. Email: %s\n", current.Email)
	fmt.Fprintf(a.out, "3. Age: %d\n", current.Age)
	fmt.Fprintf(a.out, "4. Major: %s\n", current.Major)
	fmt.Fprintf(a.out, "5. GPA: %.2f\n", current.GPA)
	fmt.Fprintln(a.out, "\nEnter new values (press Enter to keep current value):")

	// Only the fields the user actually filled in go into the partial
	// update — the controller merges them onto the stored record.
	fields := make(map[string]any)

	name, ok := a.promptOptional(fmt.Sprintf("New Name [%s]: ", current.Name))
	if !ok {
		return
	}
	if name != "" {
		fields["name"] = name
	}

	email, ok := a.promptOptional(fmt.Sprintf("New Email [%s]: ", current.Email))
	if !ok {
		return
	}
	if email != "" {
		fields["email"] = email
	}

	age, ok := a.promptOptionalInt(fmt.Sprintf("New Age [%d]: ", current.Age))
	if !ok {
		return
	}
	if age != nil {
		fields["age"] = *age
	}

	major, ok := a.promptOptional(fmt.Sprintf("New Major [%s]: ", current.Major))
	if !ok {
		return
	}
	if major != "" {
		fields["major"] = major
	}

	gpa, ok := a.promptOptionalFloat(fmt.Sprintf("New GPA [%.2f]: ", current.GPA))
	if !ok {
		return
	}
	if gpa != nil {
		fields["gpa"] = *gpa
	}

	if len(fields) == 0 {
		fmt.Fprintln(a.out, "No changes made.")
		return
	}

	updated, err := a.ctrl.Update(id, fields)
	fmt.Fprintln(a.out, "\n"+strings.Repeat("-", 40))
	if err != nil {
		a.printError(err)
		return
	}

	fmt.Fprintln(a.out, "✓ SUCCESS:")
	fmt.Fprintf(a.out, "Student %s (ID: %s) updated successfully!\n", updated.Name, updated.ID)
	fmt.Fprintln(a.out, "\nUpdated Information:")
	a.printStudent(updated)
}

func (a *App) deleteStudent() {
	a.sectionHeader("DELETE STUDENT")

	id, ok := a.promptRequired("Enter Student ID to delete: ")
	if !ok {
		return
	}

	student, err := a.ctrl.ReadByID(id)
	if err != nil {
		a.printError(err)
		return
	}

	fmt.Fprintln(a.out, "\nStudent to be deleted:")
	fmt.Fprintf(a.out, "ID: %s\n", student.ID)
	fmt.Fprintf(a.out, "Name: %s\n", student.Name)
	fmt.Fprintf(a.out, "Email: %s\n", student.Email)
	fmt.Fprintf(a.out, "Major: %s\n", student.Major)

	confirm, ok := a.promptRequired("\nAre you sure you want to delete this student? (yes/no): ")
	if !ok {
		return
	}
	if c := strings.ToLower(confirm); c != "yes" && c != "y" {
		fmt.Fprintln(a.out, "Deletion cancelled.")
		return
	}

	removed, err := a.ctrl.Delete(id)
	fmt.Fprintln(a.out, "\n"+strings.Repeat("-", 40))
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, "✓ SUCCESS:")
	fmt.Fprintf(a.out, "Student %s (ID: %s) deleted successfully!\n", removed.Name, removed.ID)
}

func (a *App) searchStudents() {
	a.sectionHeader("SEARCH STUDENTS")

	fmt.Fprintln(a.out, "Search by:")
	fmt.Fprintln(a.out, "1. Name")
	fmt.Fprintln(a.out, "2. Major")
	fmt.Fprintln(a.out, "3. Email")
	fmt.Fprintln(a.out, "4. Student ID")

	choice, ok := a.promptRequired("Enter your choice (1-4): ")
	if !ok {
		return
	}

	fieldByChoice := map[string]string{
		"1": "name",
		"2": "major",
		"3": "email",
		"4": "student_id",
	}
	field, valid := fieldByChoice[choice]
	if !valid {
		fmt.Fprintln(a.out, "Invalid choice.")
		return
	}

	term, ok := a.promptRequired(fmt.Sprintf("Enter search term for %s: ", field))
	if !ok {
		return
	}

	matches, err := a.ctrl.Search(term, field)
	fmt.Fprintln(a.out, "\n"+strings.Repeat("-", 40))
	if err != nil {
		a.printError(err)
		return
	}

	if len(matches) == 0 {
		fmt.Fprintf(a.out, "No students found matching '%s' in %s.\n", term, field)
		return
	}

	fmt.Fprintf(a.out, "Found %d student(s) matching '%s' in %s.\n", len(matches), term, field)
	a.printTable(matches)
}

func (a *App) viewStatistics() {
	a.sectionHeader("SYSTEM STATISTICS")

	stats, err := a.ctrl.Statistics()
	if err != nil {
		a.printError(err)
		return
	}
	if stats == nil {
		fmt.Fprintln(a.out, "No students in the system.")
		return
	}

	fmt.Fprintf(a.out, "Total Students: %d\n", stats.TotalStudents)
	fmt.Fprintf(a.out, "Average GPA: %v\n", stats.AverageGPA)
	fmt.Fprintf(a.out, "Highest GPA: %v\n", stats.HighestGPA)
	fmt.Fprintf(a.out, "Lowest GPA: %v\n", stats.LowestGPA)
	fmt.Fprintf(a.out, "Average Age: %v years\n", stats.AverageAge)

	fmt.Fprintln(a.out, "\nMajor Distribution:")
	fmt.Fprintln(a.out, strings.Repeat("-", 30))
	for major, count := range stats.MajorDistribution {
		percentage := float64(count) / float64(stats.TotalStudents) * 100
		fmt.Fprintf(a.out, "%s: %d students (%.1f%%)\n", major, count, percentage)
	}
}

func (a *App) loadSampleData() {
	a.sectionHeader("LOAD SAMPLE DATA")

	samples := []types.StudentRecord{
		{ID: "STU001", Name: "John Doe", Email: "john.doe@email.com", Age: 20, Major: "Computer Science", GPA: 3.8},
		{ID: "STU002", Name: "Jane Smith", Email: "jane.smith@email.com", Age: 19, Major: "Mathematics", GPA: 3.9},
		{ID: "STU003", Name: "Mike Johnson", Email: "mike.johnson@email.com", Age: 21, Major: "Physics", GPA: 3.5},
		{ID: "STU004", Name: "Sarah Williams", Email: "sarah.williams@email.com", Age: 20, Major: "Chemistry", GPA: 3.7},
		{ID: "STU005", Name: "David Brown", Email: "david.brown@email.com", Age: 22, Major: "Computer Science", GPA: 3.6},
	}

	loaded := 0
	for _, rec := range samples {
		if _, err := a.ctrl.Create(rec); err != nil {
			// Typically "Student ID already exists" when loaded twice.
			fmt.Fprintf(a.out, "Skipped %s: %s\n", rec.ID, err.Error())
			continue
		}
		loaded++
	}
	fmt.Fprintf(a.out, "Loaded %d sample student(s).\n", loaded)
}

// ─────────────────────────────────────────────────────────────────────
// Rendering helpers
// ─────────────────────────────────────────────────────────────────────

func (a *App) clearScreen() {
	// ANSI: move cursor home, clear to end of screen.
	fmt.Fprint(a.out, "\033[H\033[2J")
}

func (a *App) printHeader() {
	fmt.Fprintln(a.out, strings.Repeat("=", 60))
	fmt.Fprintln(a.out, "           STUDENT MANAGEMENT SYSTEM")
	fmt.Fprintln(a.out, "         In-Memory CRUD Application")
	fmt.Fprintln(a.out, strings.Repeat("=", 60))
	fmt.Fprintln(a.out)
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out, "MAIN MENU:")
	fmt.Fprintln(a.out, "1. Create New Student")
	fmt.Fprintln(a.out, "2. View All Students")
	fmt.Fprintln(a.out, "3. Search Student by ID")
	fmt.Fprintln(a.out, "4. Update Student Information")
	fmt.Fprintln(a.out, "5. Delete Student")
	fmt.Fprintln(a.out, "6. Search Students")
	fmt.Fprintln(a.out, "7. View Statistics")
	fmt.Fprintln(a.out, "8. Load Sample Data (for testing)")
	fmt.Fprintln(a.out, "9. Exit")
	fmt.Fprintln(a.out, strings.Repeat("-", 40))
}

func (a *App) sectionHeader(title string) {
	fmt.Fprintln(a.out, "\n"+strings.Repeat("=", 40))
	fmt.Fprintln(a.out, title)
	fmt.Fprintln(a.out, strings.Repeat("=", 40))
}

func (a *App) printStudent(rec types.StudentRecord) {
	fmt.Fprintf(a.out, "ID: %s\n", rec.ID)
	fmt.Fprintf(a.out, "Name: %s\n", rec.Name)
	fmt.Fprintf(a.out, "Email: %s\n", rec.Email)
	fmt.Fprintf(a.out, "Age: %d\n", rec.Age)
	fmt.Fprintf(a.out, "Major: %s\n", rec.Major)
	fmt.Fprintf(a.out, "GPA: %.2f\n", rec.GPA)
	fmt.Fprintf(a.out, "Created: %s\n", rec.CreatedAt)
	fmt.Fprintf(a.out, "Last Updated: %s\n", rec.UpdatedAt)
}

func (a *App) printTable(students []types.StudentRecord) {
	fmt.Fprintln(a.out, "\n"+strings.Repeat("-", 100))
	fmt.Fprintf(a.out, "%-10s %-20s %-25s %-5s %-15s %-5s\n",
		"ID", "Name", "Email", "Age", "Major", "GPA")
	fmt.Fprintln(a.out, strings.Repeat("-", 100))
	for _, s := range students {
		fmt.Fprintf(a.out, "%-10s %-20s %-25s %-5d %-15s %-5.2f\n",
			s.ID, s.Name, s.Email, s.Age, s.Major, s.GPA)
	}
	fmt.Fprintln(a.out, strings.Repeat("-", 100))
}

// printError renders a controller error. Validation errors list every
// broken rule on its own line; other kinds are a single message.
func (a *App) printError(err error) {
	if e, ok := opresult.As(err); ok && e.Kind == opresult.KindValidation {
		fmt.Fprintln(a.out, "✗ ERROR:")
		fmt.Fprintln(a.out, "Validation failed:")
		for _, detail := range e.Details {
			fmt.Fprintf(a.out, "- %s\n", detail)
		}
		return
	}
	fmt.Fprintf(a.out, "✗ ERROR: %s\n", err.Error())
}

// ─────────────────────────────────────────────────────────────────────
// Input helpers
// ─────────────────────────────────────────────────────────────────────

// readLine reads one trimmed line. ok is false when input is exhausted
// (Ctrl+D or a closed pipe), which ends the session cleanly.
func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// promptRequired keeps asking until the user enters a non-empty value.
func (a *App) promptRequired(label string) (string, bool) {
	for {
		fmt.Fprint(a.out, label)
		line, ok := a.readLine()
		if !ok {
			return "", false
		}
		if line == "" {
			fmt.Fprintln(a.out, "This field is required. Please enter a value.")
			continue
		}
		return line, true
	}
}

// promptOptional asks once; an empty line means "keep the current
// value" and comes back as "".
func (a *App) promptOptional(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	return a.readLine()
}

func (a *App) promptRequiredInt(label string) (int, bool) {
	for {
		raw, ok := a.promptRequired(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid input. Please enter a valid integer.")
			continue
		}
		return n, true
	}
}

func (a *App) promptRequiredFloat(label string) (float64, bool) {
	for {
		raw, ok := a.promptRequired(label)
		if !ok {
			return 0, false
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid input. Please enter a valid number.")
			continue
		}
		return f, true
	}
}

// promptOptionalInt returns nil when the user just presses Enter.
func (a *App) promptOptionalInt(label string) (*int, bool) {
	for {
		raw, ok := a.promptOptional(label)
		if !ok {
			return nil, false
		}
		if raw == "" {
			return nil, true
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid input. Please enter a valid integer.")
			continue
		}
		return &n, true
	}
}

// promptOptionalFloat returns nil when the user just presses Enter.
func (a *App) promptOptionalFloat(label string) (*float64, bool) {
	for {
		raw, ok := a.promptOptional(label)
		if !ok {
			return nil, false
		}
		if raw == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid input. Please enter a valid number.")
			continue
		}
		return &f, true
	}
}

// pause waits for Enter; false means input ended.
func (a *App) pause() bool {
	fmt.Fprint(a.out, "\nPress Enter to continue...")
	_, ok := a.readLine()
	return ok
}
