package authz

import "time"

// Task names a single protected action. Every task referenced by a route must
// be present in the permission registry; hitting the gate with an unknown
// task is a programming error, not a deniable request.
type Task string

// Core tasks owned by the authz module itself.
const (
	// TaskPermissionsView guards the registry listing. Its required level is
	// fixed: the ability to see the permission table must never be hidden by
	// a permission change.
	TaskPermissionsView Task = "permissions_view"
	// TaskPermissionEdit guards registry mutations.
	TaskPermissionEdit Task = "permission_edit"
)

// Resource tasks declared by the academy modules.
const (
	TaskStudentView   Task = "student_view"
	TaskStudentAdd    Task = "student_add"
	TaskStudentEdit   Task = "student_edit"
	TaskStudentDelete Task = "student_delete"

	TaskTeacherView      Task = "teacher_view"
	TaskTeacherAdd       Task = "teacher_add"
	TaskTeacherEdit      Task = "teacher_edit"
	TaskTeacherDelete    Task = "teacher_delete"
	TaskTeacherLevelEdit Task = "teacher_level_edit"

	TaskSchoolView   Task = "school_view"
	TaskSchoolAdd    Task = "school_add"
	TaskSchoolEdit   Task = "school_edit"
	TaskSchoolDelete Task = "school_delete"

	TaskSubjectView   Task = "subject_view"
	TaskSubjectAdd    Task = "subject_add"
	TaskSubjectEdit   Task = "subject_edit"
	TaskSubjectDelete Task = "subject_delete"

	TaskHomeworkView   Task = "homework_view"
	TaskHomeworkAdd    Task = "homework_add"
	TaskHomeworkEdit   Task = "homework_edit"
	TaskHomeworkDelete Task = "homework_delete"

	TaskAttendanceView   Task = "attendance_view"
	TaskAttendanceAdd    Task = "attendance_add"
	TaskAttendanceEdit   Task = "attendance_edit"
	TaskAttendanceDelete Task = "attendance_delete"
)

// DefaultLevels seeds the registry: viewing needs level 1, writing level 2,
// deleting and level administration level 3. permissions_view is 0 so a
// freshly logged-in dashboard can always fetch the table it filters on.
func DefaultLevels() map[Task]Level {
	return map[Task]Level{
		TaskPermissionsView: 0,
		TaskPermissionEdit:  3,

		TaskStudentView:   1,
		TaskStudentAdd:    2,
		TaskStudentEdit:   2,
		TaskStudentDelete: 3,

		TaskTeacherView:      1,
		TaskTeacherAdd:       2,
		TaskTeacherEdit:      2,
		TaskTeacherDelete:    3,
		TaskTeacherLevelEdit: 3,

		TaskSchoolView:   1,
		TaskSchoolAdd:    2,
		TaskSchoolEdit:   2,
		TaskSchoolDelete: 3,

		TaskSubjectView:   1,
		TaskSubjectAdd:    2,
		TaskSubjectEdit:   2,
		TaskSubjectDelete: 3,

		TaskHomeworkView:   1,
		TaskHomeworkAdd:    2,
		TaskHomeworkEdit:   2,
		TaskHomeworkDelete: 3,

		TaskAttendanceView:   1,
		TaskAttendanceAdd:    2,
		TaskAttendanceEdit:   2,
		TaskAttendanceDelete: 3,
	}
}

// PermissionRecord maps a task to the minimum principal level required to
// perform it. Exactly one record exists per task.
type PermissionRecord struct {
	Task      Task      `json:"task"`
	Level     Level     `json:"level"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the authenticated actor: a teacher account with an assigned
// level. The level here is whatever the backing store held at resolve time;
// it is never carried inside the credential.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Level    Level  `json:"level"`
}
