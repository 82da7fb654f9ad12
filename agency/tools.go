package agency

import (
	"fmt"

	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/tool"
)

// Tools returns the tracker's operations as tool definitions for the model.
// The definitions close over this tracker instance; they are created once at
// agent construction and registered in the ordinary toolbox.
//
// Each wrapper re-validates its required arguments before delegating, so a
// malformed call degrades to a textual error without touching the tracker.
func (a *Agency) Tools() []tool.Definition {
	return []tool.Definition{
		a.createTaskTool(),
		a.completeTaskTool(),
		a.modifyTaskNotesTool(),
		a.modifyTaskRequirementsTool(),
	}
}

func (a *Agency) createTaskTool() tool.Definition {
	run := func(_ *pubsub.Bus, args tool.Args) (string, error) {
		if args.String("description") == "" {
			return "Error creating task: No description provided.", nil
		}
		if !args.Has("requirements") {
			return "Error creating task: No requirements provided.", nil
		}
		requirements := args.Strings("requirements")
		if requirements == nil {
			return "Error creating task: Requirements must be a list.", nil
		}

		task, err := a.CreateTask(args.String("description"), requirements, args.Bool("completed"))
		if err != nil {
			return fmt.Sprintf("Error creating task: %s.", err), nil
		}
		return fmt.Sprintf("Task created with id %s.", task.ID), nil
	}

	return tool.Must("create_task", run,
		tool.Description("Use this tool to create a new task."),
		tool.Parameters(tool.Object([]string{"description", "requirements"},
			tool.P("description", tool.String("A description of the overall task.")),
			tool.P("requirements", tool.StringArray("A list of requirements for the task.")),
			tool.P("completed", tool.Boolean("Whether the task is currently completed. Defaults to false.")),
		)),
	)
}

func (a *Agency) completeTaskTool() tool.Definition {
	run := func(_ *pubsub.Bus, args tool.Args) (string, error) {
		id := args.String("task_id")
		if id == "" {
			return "Error completing task: No task_id provided.", nil
		}
		if _, err := a.CompleteTask(id); err != nil {
			return fmt.Sprintf("Error completing task with id %s.", id), nil
		}
		return fmt.Sprintf("Task with id %s marked as complete.", id), nil
	}

	return tool.Must("complete_task", run,
		tool.Description("Use this to mark a task complete."),
		tool.Parameters(tool.Object([]string{"task_id"},
			tool.P("task_id", tool.String("The id of the task to complete.")),
		)),
	)
}

func (a *Agency) modifyTaskNotesTool() tool.Definition {
	run := func(_ *pubsub.Bus, args tool.Args) (string, error) {
		id := args.String("task_id")
		if id == "" {
			return "Error modifying task: No task_id provided.", nil
		}
		if !args.Has("notes") {
			return "Error modifying task: No notes provided.", nil
		}
		if _, err := a.ModifyTaskNotes(id, args.String("notes")); err != nil {
			return fmt.Sprintf("Error modifying notes for task with id %s.", id), nil
		}
		return fmt.Sprintf("Notes for task with id %s modified.", id), nil
	}

	return tool.Must("modify_task_notes", run,
		tool.Description("Use this to modify the notes for a task."),
		tool.Parameters(tool.Object([]string{"task_id", "notes"},
			tool.P("task_id", tool.String("The id of the task to modify.")),
			tool.P("notes", tool.String("The new notes for the task.")),
		)),
	)
}

func (a *Agency) modifyTaskRequirementsTool() tool.Definition {
	run := func(_ *pubsub.Bus, args tool.Args) (string, error) {
		id := args.String("task_id")
		if id == "" {
			return "Error modifying task: No task_id provided.", nil
		}
		requirements := args.Strings("requirements")
		if len(requirements) == 0 {
			return "Error modifying task: No requirements provided.", nil
		}
		if _, err := a.ModifyTaskRequirements(id, requirements); err != nil {
			return fmt.Sprintf("Error modifying requirements for task with id %s.", id), nil
		}
		return fmt.Sprintf("Requirements for task with id %s modified.", id), nil
	}

	return tool.Must("modify_task_requirements", run,
		tool.Description("Use this to modify the requirements for a task."),
		tool.Parameters(tool.Object([]string{"task_id", "requirements"},
			tool.P("task_id", tool.String("The id of the task to modify.")),
			tool.P("requirements", tool.StringArray("The new requirements for the task.")),
		)),
	)
}
