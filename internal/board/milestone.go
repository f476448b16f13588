package board

import "strings"

// AddMilestone appends a milestone owned by the given user. Blank text is
// rejected before anything changes.
func (d *Document) AddMilestone(userID uint, text string, isCompleted bool) (*Milestone, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalid("milestone text is required")
	}
	m := Milestone{
		ID:          NewID(),
		UserID:      userID,
		Text:        text,
		IsCompleted: isCompleted,
	}
	d.Milestones = append(d.Milestones, m)
	return &d.Milestones[len(d.Milestones)-1], nil
}

// MilestonesFor returns the milestones owned by the user, in creation order.
func (d *Document) MilestonesFor(userID uint) []Milestone {
	out := []Milestone{}
	for _, m := range d.Milestones {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out
}

// SetMilestoneCompleted toggles a milestone's completion flag.
func (d *Document) SetMilestoneCompleted(id string, completed bool) (*Milestone, error) {
	m, err := d.Milestone(id)
	if err != nil {
		return nil, err
	}
	m.IsCompleted = completed
	return m, nil
}

// RemoveMilestone deletes a milestone by id.
func (d *Document) RemoveMilestone(id string) error {
	for i := range d.Milestones {
		if d.Milestones[i].ID == id {
			d.Milestones = append(d.Milestones[:i], d.Milestones[i+1:]...)
			return nil
		}
	}
	return notFound(LevelMilestone)
}
