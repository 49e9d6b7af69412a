// Package agenda sorts fetched tasks into overdue, today, future and unscheduled buckets
// relative to the viewer's local "now".
package agenda

import (
	"fmt"
	"sort"
	"time"

	"github.com/harrisonrobin/ticked/pkg/ticktick"
	"github.com/harrisonrobin/ticked/pkg/ticktime"
)

// DefaultProject is the label used when a task's project id is not in the project list.
// The service's inbox is not part of that list, so inbox tasks end up here.
const DefaultProject = "Inbox"

// Item is a fetched task plus the values derived from it. The embedded Task is a copy;
// the fetched record itself is never modified.
type Item struct {
	ticktick.Task
	Due     time.Time // viewer-local, zero if the task has no due date
	Remind  time.Time // viewer-local, zero if the task has no remind time
	Project string
}

// HasDue reports whether the task has a due date.
func (it Item) HasDue() bool { return !it.Due.IsZero() }

// HasRemind reports whether the task has an explicit remind time.
func (it Item) HasRemind() bool { return !it.Remind.IsZero() }

// Buckets holds the four disjoint task groupings in display order.
type Buckets struct {
	Overdue     []Item
	Today       []Item
	Future      []Item
	Unscheduled []Item
}

// Len is the total number of classified tasks.
func (b Buckets) Len() int {
	return len(b.Overdue) + len(b.Today) + len(b.Future) + len(b.Unscheduled)
}

// Bucket is a labelled group, used for printing.
type Bucket struct {
	Label string
	Items []Item
}

// Ordered returns the buckets with their labels in display order.
func (b Buckets) Ordered() []Bucket {
	return []Bucket{
		{Label: "overdue", Items: b.Overdue},
		{Label: "today", Items: b.Today},
		{Label: "future", Items: b.Future},
		{Label: "unscheduled", Items: b.Unscheduled},
	}
}

// ProjectNames builds the project id -> name mapping.
func ProjectNames(projects []ticktick.Project) map[string]string {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names
}

// Classifier buckets tasks. Zero values fall back to DefaultProject, time.Local and time.Now.
type Classifier struct {
	Projects       map[string]string
	DefaultProject string
	Location       *time.Location
	Now            func() time.Time
}

// Classify enriches every task and places it in exactly one bucket.
// A due or remind timestamp that cannot be parsed aborts classification.
func (c *Classifier) Classify(tasks []ticktick.Task) (Buckets, error) {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	nowFn := c.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().In(loc)

	var b Buckets
	for _, task := range tasks {
		it, err := c.enrich(task, loc)
		if err != nil {
			return Buckets{}, err
		}

		switch {
		case !it.HasDue():
			b.Unscheduled = append(b.Unscheduled, it)
		case ticktime.SameDay(now, it.Due):
			b.Today = append(b.Today, it)
		case it.Due.Before(now):
			b.Overdue = append(b.Overdue, it)
		default:
			b.Future = append(b.Future, it)
		}
	}

	sortByDue(b.Overdue)
	sortByDue(b.Today)
	sortByDue(b.Future)
	sort.SliceStable(b.Unscheduled, func(i, j int) bool {
		return b.Unscheduled[i].SortOrder < b.Unscheduled[j].SortOrder
	})
	return b, nil
}

func (c *Classifier) enrich(task ticktick.Task, loc *time.Location) (Item, error) {
	it := Item{Task: task, Project: c.projectName(task.ProjectID)}

	if task.RemindTime != "" {
		t, err := ticktime.Parse(task.RemindTime)
		if err != nil {
			return Item{}, fmt.Errorf("task %s: remind time: %w", task.ID, err)
		}
		it.Remind = ticktime.Local(t, loc)
	}
	if task.DueDate != "" {
		t, err := ticktime.Parse(task.DueDate)
		if err != nil {
			return Item{}, fmt.Errorf("task %s: due date: %w", task.ID, err)
		}
		it.Due = ticktime.Local(t, loc)
	}
	return it, nil
}

func (c *Classifier) projectName(id string) string {
	if name, ok := c.Projects[id]; ok {
		return name
	}
	if c.DefaultProject != "" {
		return c.DefaultProject
	}
	return DefaultProject
}

// sortByDue orders by due instant; the raw string breaks ties so equal instants
// written with different offsets still sort deterministically.
func sortByDue(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Due.Equal(items[j].Due) {
			return items[i].Due.Before(items[j].Due)
		}
		return items[i].DueDate < items[j].DueDate
	})
}
