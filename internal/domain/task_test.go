package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskVariants(t *testing.T) {
	performed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		variant  TaskVariant
		routine  *RoutinePayload
		assigned *AssignedPayload
		project  *ProjectPayload
		wantErr  bool
	}{
		{
			name:    "routine with payload",
			variant: TaskVariantRoutine,
			routine: &RoutinePayload{DatePerformed: performed},
		},
		{
			name:    "routine missing payload",
			variant: TaskVariantRoutine,
			wantErr: true,
		},
		{
			name:    "routine missing date performed",
			variant: TaskVariantRoutine,
			routine: &RoutinePayload{},
			wantErr: true,
		},
		{
			name:     "assigned with assignees",
			variant:  TaskVariantAssigned,
			assigned: &AssignedPayload{AssigneeIDs: []string{"u-1", "u-2"}},
		},
		{
			name:     "assigned with empty assignees",
			variant:  TaskVariantAssigned,
			assigned: &AssignedPayload{},
			wantErr:  true,
		},
		{
			name:    "project with client",
			variant: TaskVariantProject,
			project: &ProjectPayload{ClientName: "Globex"},
		},
		{
			name:    "project without client name",
			variant: TaskVariantProject,
			project: &ProjectPayload{},
			wantErr: true,
		},
		{
			name:     "mixed payloads rejected",
			variant:  TaskVariantProject,
			project:  &ProjectPayload{ClientName: "Globex"},
			assigned: &AssignedPayload{AssigneeIDs: []string{"u-1"}},
			wantErr:  true,
		},
		{
			name:    "unknown variant",
			variant: TaskVariant("EPIC"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask("org-1", "dept-1", "user-1", "Fix boiler", "", tt.variant, tt.routine, tt.assigned, tt.project)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.variant, task.Variant)
			assert.Equal(t, TaskStatusToDo, task.Status)
			assert.False(t, task.Deleted())
		})
	}
}

func TestNewTaskRequiresTitle(t *testing.T) {
	_, err := NewTask("org-1", "dept-1", "user-1", "   ", "", TaskVariantRoutine,
		&RoutinePayload{DatePerformed: time.Now()}, nil, nil)
	assert.Error(t, err)
}
