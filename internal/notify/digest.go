// Package notify builds and delivers task digests over email and telegram.
// Delivery is one-shot: the cmd/notify command runs once and exits, there is
// no scheduler.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Digest is a plain-text summary of a user's open tasks.
type Digest struct {
	Subject string
	Body    string
	// OpenCount is the number of tasks included.
	OpenCount int
}

// BuildDigest renders the user's open tasks (neither done nor cancelled)
// into a digest. Returns a zero-count digest when nothing is open.
func BuildDigest(user *domain.User, tasks []*domain.Task) Digest {
	open := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == domain.TaskStatusDone || task.Status == domain.TaskStatusCancelled {
			continue
		}
		open = append(open, task)
	}

	name := user.DisplayName
	if name == "" {
		name = user.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	if len(open) == 0 {
		b.WriteString("You have no open tasks. Nice work!\n")
	} else {
		fmt.Fprintf(&b, "You have %d open task(s):\n\n", len(open))
		for _, task := range open {
			line := fmt.Sprintf("- [%s] %s", task.Status.Label(), task.Title)
			if task.Category != nil {
				line += fmt.Sprintf(" (%s)", task.Category.Name)
			}
			if task.DueDate != nil {
				line += fmt.Sprintf(", due %s", task.DueDate.Format("2006-01-02"))
			}
			b.WriteString(line + "\n")
		}
	}

	return Digest{
		Subject:   fmt.Sprintf("Task digest for %s", time.Now().Format("2006-01-02")),
		Body:      b.String(),
		OpenCount: len(open),
	}
}
