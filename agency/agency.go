package agency

import (
	"fmt"
	"slices"
	"strings"

	"github.com/simmyhq/simmy/pubsub"
)

// Task is one tracked unit of work. Identifiers are dense ordinals
// (task_1, task_2, ...) assigned at creation and never reused.
type Task struct {
	ID           string   `json:"id"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Completed    bool     `json:"completed"`
	Notes        string   `json:"notes"`
}

// Agency tracks tasks and publishes their lifecycle on the bus. It is not
// safe for concurrent use; all mutation happens on the agent's goroutine.
type Agency struct {
	bus     *pubsub.Bus
	tasks   []Task
	created int
}

// New creates an empty tracker publishing on bus.
func New(bus *pubsub.Bus) *Agency {
	if bus == nil {
		panic("agency: bus cannot be nil")
	}
	return &Agency{bus: bus}
}

// nextID derives the next identifier from the number of tasks ever created,
// not from the current list length, so ids stay unique even if the list is
// ever cleared.
func (a *Agency) nextID() string {
	return fmt.Sprintf("task_%d", a.created+1)
}

func (a *Agency) find(id string) *Task {
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			return &a.tasks[i]
		}
	}
	return nil
}

func (a *Agency) notFound(id string) error {
	err := fmt.Errorf("task %s not found", id)
	a.bus.Publish(pubsub.TopicError, fmt.Sprintf("Task %s not found.", id))
	return err
}

// CreateTask appends a new task and publishes task_created. Description and
// at least one requirement are mandatory; on failure nothing is created and
// the task count is unchanged.
func (a *Agency) CreateTask(description string, requirements []string, completed bool) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, fmt.Errorf("task description is required")
	}
	if len(requirements) == 0 {
		return Task{}, fmt.Errorf("task requires at least one requirement")
	}

	task := Task{
		ID:           a.nextID(),
		Description:  description,
		Requirements: slices.Clone(requirements),
		Completed:    completed,
	}
	a.created++
	a.tasks = append(a.tasks, task)
	a.bus.Publish(pubsub.TopicTaskCreated, task)
	return task, nil
}

// CompleteTask marks the task completed and publishes task_completed.
// Completing an already-completed task succeeds and publishes again; no
// consumer deduplicates, so there is nothing to protect.
func (a *Agency) CompleteTask(id string) (Task, error) {
	task := a.find(id)
	if task == nil {
		return Task{}, a.notFound(id)
	}
	task.Completed = true
	a.bus.Publish(pubsub.TopicTaskCompleted, *task)
	return *task, nil
}

// ModifyTaskNotes replaces the task's notes wholesale and publishes
// task_notes_modified.
func (a *Agency) ModifyTaskNotes(id, notes string) (Task, error) {
	task := a.find(id)
	if task == nil {
		return Task{}, a.notFound(id)
	}
	task.Notes = notes
	a.bus.Publish(pubsub.TopicTaskNotesModified, *task)
	return *task, nil
}

// ModifyTaskRequirements replaces the task's requirements wholesale (no
// merge) and publishes task_requirements_modified.
func (a *Agency) ModifyTaskRequirements(id string, requirements []string) (Task, error) {
	task := a.find(id)
	if task == nil {
		return Task{}, a.notFound(id)
	}
	task.Requirements = slices.Clone(requirements)
	a.bus.Publish(pubsub.TopicTaskRequirementsModified, *task)
	return *task, nil
}

// Tasks returns a copy of every task in creation order.
func (a *Agency) Tasks() []Task {
	return slices.Clone(a.tasks)
}

// IncompleteTasks returns the tasks not yet completed, in creation order.
func (a *Agency) IncompleteTasks() []Task {
	var out []Task
	for _, t := range a.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CompletedTasks returns the completed tasks, in creation order.
func (a *Agency) CompletedTasks() []Task {
	var out []Task
	for _, t := range a.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// HasIncompleteTasks reports whether any open work remains.
func (a *Agency) HasIncompleteTasks() bool {
	for _, t := range a.tasks {
		if !t.Completed {
			return true
		}
	}
	return false
}

// TasksDescribed renders tasks as a delimited textual block suitable for
// injection into the model's context.
func TasksDescribed(tasks []Task) string {
	var sb strings.Builder
	for _, task := range tasks {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "Task ID: %s\n", task.ID)
		fmt.Fprintf(&sb, "Description: %s\n", task.Description)
		sb.WriteString("Requirements:\n")
		for _, req := range task.Requirements {
			fmt.Fprintf(&sb, "- %s\n", req)
		}
		fmt.Fprintf(&sb, "Notes:\n%s\n", task.Notes)
		fmt.Fprintf(&sb, "Completed: %t\n", task.Completed)
		sb.WriteString("---\n")
	}
	return sb.String()
}

// IncompleteTasksDescribed renders the open tasks for context injection.
func (a *Agency) IncompleteTasksDescribed() string {
	return TasksDescribed(a.IncompleteTasks())
}
