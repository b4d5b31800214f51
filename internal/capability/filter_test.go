package capability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
)

func snapshotAt(level authz.Level) Snapshot {
	return Ready(level, []authz.PermissionRecord{
		{Task: authz.TaskStudentView, Level: 1},
		{Task: authz.TaskStudentEdit, Level: 2},
		{Task: authz.TaskStudentDelete, Level: 3},
		{Task: authz.TaskPermissionsView, Level: 0},
	})
}

func TestSnapshotCanPerform(t *testing.T) {
	t.Run("allows when the level satisfies every task", func(t *testing.T) {
		s := snapshotAt(2)
		assert.Equal(t, Allowed, s.CanPerform(authz.TaskStudentView, authz.TaskStudentEdit))
		assert.True(t, s.CanPerform(authz.TaskStudentView).Granted())
	})

	t.Run("one failing task denies the whole set", func(t *testing.T) {
		s := snapshotAt(2)
		assert.Equal(t, Denied, s.CanPerform(authz.TaskStudentView, authz.TaskStudentDelete))
	})

	t.Run("empty task list is vacuously allowed", func(t *testing.T) {
		assert.Equal(t, Allowed, snapshotAt(0).CanPerform())
	})

	t.Run("task missing from the snapshot denies", func(t *testing.T) {
		s := snapshotAt(3)
		assert.Equal(t, Denied, s.CanPerform(authz.Task("homework_view")))
	})

	t.Run("level zero still passes a zero requirement", func(t *testing.T) {
		s := snapshotAt(0)
		assert.Equal(t, Allowed, s.CanPerform(authz.TaskPermissionsView))
		assert.Equal(t, Denied, s.CanPerform(authz.TaskStudentView))
	})
}

func TestSnapshotStates(t *testing.T) {
	t.Run("loading is neither allow nor deny", func(t *testing.T) {
		s := Loading()
		result := s.CanPerform(authz.TaskStudentView)
		assert.Equal(t, Checking, result)
		assert.False(t, result.Granted())
	})

	t.Run("failed fetch reports unavailable and keeps the error", func(t *testing.T) {
		cause := errors.New("registry fetch timed out")
		s := Failed(cause)
		result := s.CanPerform(authz.TaskStudentView)
		assert.Equal(t, Unavailable, result)
		assert.False(t, result.Granted())
		assert.ErrorIs(t, s.Err(), cause)
	})

	t.Run("loading applies even to an empty task list", func(t *testing.T) {
		assert.Equal(t, Checking, Loading().CanPerform())
	})
}

func TestSnapshotMap(t *testing.T) {
	s := snapshotAt(2)
	m := s.Map([]authz.Task{
		authz.TaskStudentView,
		authz.TaskStudentEdit,
		authz.TaskStudentDelete,
		authz.Task("not_registered"),
	})
	assert.True(t, m[authz.TaskStudentView])
	assert.True(t, m[authz.TaskStudentEdit])
	assert.False(t, m[authz.TaskStudentDelete])
	assert.False(t, m[authz.Task("not_registered")])
}
