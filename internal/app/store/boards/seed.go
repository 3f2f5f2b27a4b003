// internal/app/store/boards/seed.go
package boardstore

import (
	"time"

	"github.com/campushub/campushub/internal/domain/models"
	"github.com/google/uuid"
)

const defaultBoardName = "School Operations"

// seedGroups builds the starter board for a fresh deployment: enough
// realistic school-operations work to make every view render something
// useful on first sign-in.
func seedGroups() []*models.Group {
	now := time.Now().UTC()
	term := &models.Group{
		ID:    uuid.NewString(),
		Name:  "Term Planning",
		Color: models.ColorSky,
	}
	facilities := &models.Group{
		ID:    uuid.NewString(),
		Name:  "Facilities",
		Color: models.ColorAmber,
	}
	events := &models.Group{
		ID:    uuid.NewString(),
		Name:  "Events",
		Color: models.ColorEmerald,
	}

	term.Tasks = []*models.Task{
		seedTask(term.ID, now, seedSpec{
			name:       "Publish exam timetable",
			status:     models.StatusInProgress,
			priority:   models.PriorityHigh,
			progress:   40,
			assignee:   "Dana Whitfield",
			department: "Academics",
			dueIn:      14,
			span:       [2]int{-3, 14},
			tags:       []string{"exams", "scheduling"},
		}),
		seedTask(term.ID, now, seedSpec{
			name:       "Order term 2 textbooks",
			status:     models.StatusNotStarted,
			priority:   models.PriorityMedium,
			assignee:   "Priya Raman",
			department: "Academics",
			dueIn:      30,
			tags:       []string{"procurement"},
		}),
		seedTask(term.ID, now, seedSpec{
			name:       "Finalize elective roster",
			status:     models.StatusInReview,
			priority:   models.PriorityMedium,
			progress:   85,
			assignee:   "Dana Whitfield",
			department: "Academics",
			dueIn:      7,
			span:       [2]int{-10, 7},
		}),
	}

	facilities.Tasks = []*models.Task{
		seedTask(facilities.ID, now, seedSpec{
			name:       "Repair gym bleachers",
			status:     models.StatusBlocked,
			priority:   models.PriorityHigh,
			progress:   10,
			assignee:   "Marcus Cole",
			department: "Facilities",
			dueIn:      21,
			tags:       []string{"maintenance", "safety"},
		}),
		seedTask(facilities.ID, now, seedSpec{
			name:       "Service HVAC before summer",
			status:     models.StatusNotStarted,
			priority:   models.PriorityLow,
			assignee:   "Marcus Cole",
			department: "Facilities",
			dueIn:      45,
			span:       [2]int{20, 45},
		}),
	}

	events.Tasks = []*models.Task{
		seedTask(events.ID, now, seedSpec{
			name:       "Book venue for science fair",
			status:     models.StatusDone,
			priority:   models.PriorityMedium,
			progress:   100,
			assignee:   "Elena Soto",
			department: "Student Life",
			dueIn:      -2,
			span:       [2]int{-12, -2},
			tags:       []string{"science-fair"},
		}),
		seedTask(events.ID, now, seedSpec{
			name:       "Recruit fair volunteers",
			status:     models.StatusInProgress,
			priority:   models.PriorityMedium,
			progress:   55,
			assignee:   "Elena Soto",
			department: "Student Life",
			dueIn:      10,
			span:       [2]int{-5, 10},
			tags:       []string{"science-fair", "volunteers"},
		}),
	}

	return []*models.Group{term, facilities, events}
}

type seedSpec struct {
	name       string
	status     models.Status
	priority   models.Priority
	progress   int
	assignee   string
	department string
	dueIn      int    // days from now
	span       [2]int // timeline start/end as day offsets; zero value means no timeline
	tags       []string
}

func seedTask(groupID string, now time.Time, spec seedSpec) *models.Task {
	day := func(offset int) time.Time {
		return now.AddDate(0, 0, offset).Truncate(24 * time.Hour)
	}
	t := &models.Task{
		ID:         uuid.NewString(),
		Name:       spec.name,
		Status:     spec.status,
		Priority:   spec.priority,
		Progress:   spec.progress,
		Assignee:   models.Assignee{Name: spec.assignee},
		Department: spec.department,
		DueDate:    day(spec.dueIn),
		Tags:       spec.tags,
		GroupID:    groupID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if spec.span != [2]int{} {
		t.Timeline = &models.TaskTimeline{
			StartDate: day(spec.span[0]),
			EndDate:   day(spec.span[1]),
		}
	}
	return t
}
